package figures

import (
	"fmt"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// Detector is the interface for figure and table detection algorithms.
// Detectors run in registration order against a shared caption set, so an
// earlier detector's claims are visible to later ones.
type Detector interface {
	// Detect finds figures or tables on a page
	Detect(page *model.PageContent, captions *CaptionSet) ([]model.Figure, error)

	// Name returns the detector name, used as the record Source
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detection thresholds. All distances are in PDF points.
type Config struct {
	// Minimum page-space area for an embedded image to count as a figure
	MinImageArea float64

	// Minimum intrinsic pixel dimension (each side) for an embedded image
	MinImagePixels int

	// Maximum horizontal offset between a caption's left edge and an
	// element's left edge for the two to be considered aligned
	AlignTolerance float64

	// Maximum vertical gap between a caption and its element
	MaxCaptionGap float64

	// Maximum distance from a drawing cluster for a path to join it
	ClusterRadius float64

	// Minimum number of paths for a drawing cluster to survive
	MinClusterPaths int

	// Maximum vertical gap between caption lines when extending a caption
	// across multiple text lines
	CaptionLineGap float64

	// Maximum left-edge offset for a line to extend a caption
	CaptionLeftSlack float64

	// Horizontal slack added to the left of a table caption when building
	// the table search region
	TableLeftSlack float64

	// Horizontal slack added to the right of a table caption
	TableRightSlack float64

	// How far below a table caption to search for table content
	TableSearchDepth float64

	// Scale factor applied when rendering figure crops
	RenderScale float64
}

// DefaultConfig returns the thresholds the heuristics were tuned with
func DefaultConfig() Config {
	return Config{
		MinImageArea:     10000,
		MinImagePixels:   100,
		AlignTolerance:   100,
		MaxCaptionGap:    100,
		ClusterRadius:    200,
		MinClusterPaths:  5,
		CaptionLineGap:   20,
		CaptionLeftSlack: 50,
		TableLeftSlack:   50,
		TableRightSlack:  200,
		TableSearchDepth: 500,
		RenderScale:      2.0,
	}
}

// Validate reports the first invalid threshold, if any
func (c Config) Validate() error {
	switch {
	case c.MinImageArea < 0:
		return fmt.Errorf("min image area must be non-negative, got %v", c.MinImageArea)
	case c.MinImagePixels < 0:
		return fmt.Errorf("min image pixels must be non-negative, got %d", c.MinImagePixels)
	case c.MinClusterPaths < 1:
		return fmt.Errorf("min cluster paths must be at least 1, got %d", c.MinClusterPaths)
	case c.RenderScale <= 0:
		return fmt.Errorf("render scale must be positive, got %v", c.RenderScale)
	}
	return nil
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
	order     []string
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector. Registration order is preserved and
// determines pipeline run order.
func (r *DetectorRegistry) Register(detector Detector) {
	name := detector.Name()
	if _, exists := r.detectors[name]; !exists {
		r.order = append(r.order, name)
	}
	r.detectors[name] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names in registration order
func (r *DetectorRegistry) List() []string {
	return append([]string(nil), r.order...)
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	// Image placements are the strongest signal, then vector clusters,
	// then table text regions over whatever captions remain unclaimed.
	RegisterDetector(NewImageDetector())
	RegisterDetector(NewDrawingDetector())
	RegisterDetector(NewTableDetector())
}
