package figures

import (
	"math"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// TableDetector recovers tables from text layout. It runs last: any table
// caption still unclaimed after the image and drawing passes is assumed to
// sit above a table typeset as plain text, and the region below the caption
// is searched for the table body.
type TableDetector struct {
	config Config
}

// NewTableDetector creates a table detector with default configuration
func NewTableDetector() *TableDetector {
	return &TableDetector{config: DefaultConfig()}
}

// Name returns the detector name
func (d *TableDetector) Name() string {
	return "table-region"
}

// Configure sets detector parameters
func (d *TableDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect emits one record per unclaimed table caption. The table body is
// the union of text blocks fully contained in the search region below the
// caption; the caption itself is included in the record's box so a crop
// shows the table with its title.
func (d *TableDetector) Detect(page *model.PageContent, captions *CaptionSet) ([]model.Figure, error) {
	var out []model.Figure

	for _, capt := range captions.Unclaimed(model.KindTable) {
		region := d.searchRegion(capt.BBox, page)
		blocks := page.BlocksInRegion(region)

		bounds := capt.BBox
		if len(blocks) == 0 {
			// No body text found. Fall back to the clipped search region so
			// rasterized or line-drawn tables still get a usable crop.
			bounds = bounds.Union(region)
		}
		for _, b := range blocks {
			bounds = bounds.Union(b.BBox)
		}

		capt.Claim()
		out = append(out, model.Figure{
			Kind:       model.KindTable,
			PageNumber: page.Number,
			Name:       capt.Name,
			Caption:    capt.Text,
			BBox:       bounds,
			Source:     d.Name(),
		})
	}

	return out, nil
}

// searchRegion builds the area below a caption where table content is
// expected, clipped to the page.
func (d *TableDetector) searchRegion(caption model.BBox, page *model.PageContent) model.BBox {
	region := model.BBox{
		X1: caption.X1 - d.config.TableLeftSlack,
		Y1: caption.Y2,
		X2: caption.X2 + d.config.TableRightSlack,
		Y2: caption.Y2 + d.config.TableSearchDepth,
	}

	region.X1 = math.Max(region.X1, 0)
	region.Y1 = math.Max(region.Y1, 0)
	if page.Width > 0 {
		region.X2 = math.Min(region.X2, page.Width)
	}
	if page.Height > 0 {
		region.Y2 = math.Min(region.Y2, page.Height)
	}
	return region
}
