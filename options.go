package journalclub

import (
	"time"

	"github.com/nayanlc19/journal-club-standalone/figures"
	"github.com/nayanlc19/journal-club-standalone/render"
)

// extractOptions holds the configuration accumulated by the fluent
// chain. Fields are private; use the Extractor's With* methods.
type extractOptions struct {
	pages       []int
	config      figures.Config
	rasterizer  render.Rasterizer
	withImages  bool
	ocrEnabled  bool
	ocrLanguage string
	timeout     time.Duration
}

func defaultOptions() extractOptions {
	return extractOptions{
		config:     figures.DefaultConfig(),
		withImages: true,
		timeout:    render.DefaultTimeout,
	}
}

// clone returns a deep copy so chained configuration calls never
// mutate the extractor they were called on.
func (o extractOptions) clone() extractOptions {
	copied := o
	if o.pages != nil {
		copied.pages = make([]int, len(o.pages))
		copy(copied.pages, o.pages)
	}
	return copied
}
