package figures

import (
	"fmt"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// ImageDetector turns embedded raster image placements into figure records.
// Small images (logos, icons, decorative rules) are filtered by both their
// placed area and their intrinsic pixel dimensions.
type ImageDetector struct {
	config Config

	// running counter for unnamed figures across the document
	unnamed int
}

// NewImageDetector creates an image detector with default configuration
func NewImageDetector() *ImageDetector {
	return &ImageDetector{config: DefaultConfig()}
}

// Name returns the detector name
func (d *ImageDetector) Name() string {
	return "embedded-image"
}

// Configure sets detector parameters
func (d *ImageDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect emits one record per qualifying image placement. An image with a
// matching caption takes the caption's kind and name; an image with no
// caption is still reported as a figure under a synthesized name, since
// large embedded rasters in journal PDFs are almost always figure content.
func (d *ImageDetector) Detect(page *model.PageContent, captions *CaptionSet) ([]model.Figure, error) {
	var out []model.Figure

	for _, img := range page.Images {
		if img.BBox.Area() < d.config.MinImageArea {
			continue
		}
		if img.PixelWidth > 0 && img.PixelWidth < d.config.MinImagePixels {
			continue
		}
		if img.PixelHeight > 0 && img.PixelHeight < d.config.MinImagePixels {
			continue
		}

		record := model.Figure{
			Kind:       model.KindFigure,
			PageNumber: page.Number,
			BBox:       img.BBox,
			Source:     d.Name(),
		}

		// Only figure captions can claim an image. Tables rendered as
		// rasters are still recovered by the table region detector, which
		// runs after this one and sees the caption as unclaimed.
		// The record keeps the image's own bounds; the caption contributes
		// name and text only. Only table crops include their caption.
		if match := matchCaption(captions, model.KindFigure, img.BBox, d.config); match != nil {
			match.Claim()
			record.Name = match.Name
			record.Caption = match.Text
		} else {
			d.unnamed++
			record.Name = fmt.Sprintf("Figure %d", d.unnamed)
		}

		out = append(out, record)
	}

	return out, nil
}
