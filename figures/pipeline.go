package figures

import (
	"fmt"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// Pipeline runs the registered detectors over pages in order and applies
// the document-level continuation merge.
type Pipeline struct {
	config    Config
	detectors []Detector
}

// NewPipeline builds a pipeline over the standard detectors in their
// registration order. Fresh detector instances are created per pipeline
// so concurrent extractions do not share counters.
func NewPipeline(config Config) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	detectors := []Detector{
		NewImageDetector(),
		NewDrawingDetector(),
		NewTableDetector(),
	}
	for _, d := range detectors {
		if err := d.Configure(config); err != nil {
			return nil, fmt.Errorf("configure %s: %w", d.Name(), err)
		}
	}

	return &Pipeline{config: config, detectors: detectors}, nil
}

// Config returns the pipeline's configuration
func (p *Pipeline) Config() Config {
	return p.config
}

// ProcessPage scans one page for captions and runs each detector against
// them in order. Records are returned in detector order within the page.
func (p *Pipeline) ProcessPage(page *model.PageContent) ([]model.Figure, error) {
	captions := ScanCaptions(page, p.config)

	var out []model.Figure
	for _, d := range p.detectors {
		records, err := d.Detect(page, captions)
		if err != nil {
			return nil, fmt.Errorf("%s on page %d: %w", d.Name(), page.Number, err)
		}
		out = append(out, records...)
	}
	return out, nil
}

// Process runs every page through the detectors and merges continuations
// across the document.
func (p *Pipeline) Process(pages []*model.PageContent) ([]model.Figure, error) {
	var all []model.Figure
	for _, page := range pages {
		records, err := p.ProcessPage(page)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return MergeContinuations(all), nil
}
