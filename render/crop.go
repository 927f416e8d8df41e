package render

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// Crop cuts a page-space bounding box out of a rendered page. scale must be
// the factor the page was rendered at, so page points map onto raster
// pixels. The box is padded slightly and clamped to the raster.
func Crop(page image.Image, bbox model.BBox, scale float64) (image.Image, error) {
	if !bbox.IsValid() {
		return nil, fmt.Errorf("invalid crop box %+v", bbox)
	}

	const pad = 5 // points of breathing room around the element

	bounds := page.Bounds()
	rect := image.Rect(
		int((bbox.X1-pad)*scale),
		int((bbox.Y1-pad)*scale),
		int((bbox.X2+pad)*scale+0.5),
		int((bbox.Y2+pad)*scale+0.5),
	).Intersect(bounds)

	if rect.Empty() {
		return nil, fmt.Errorf("crop box %+v lies outside the page raster", bbox)
	}

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.Draw(out, out.Bounds(), page, rect.Min, xdraw.Src)
	return out, nil
}

// ScaleToWidth resizes an image to the given width preserving aspect
// ratio. Images already at or below the width pass through untouched.
func ScaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if width <= 0 || bounds.Dx() <= width {
		return img
	}

	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, bounds, xdraw.Over, nil)
	return out
}
