package render

import (
	"context"
	"fmt"
	"image/png"
	"io"
)

// ThumbnailDPI is the resolution thumbnails are rendered at
const ThumbnailDPI = 150

// Thumbnail renders the first page at ThumbnailDPI and writes it as PNG.
// maxWidth caps the output width in pixels; zero means no cap.
func Thumbnail(ctx context.Context, r Rasterizer, pdfPath string, maxWidth int, w io.Writer) error {
	img, err := r.RenderPage(ctx, pdfPath, 1, ThumbnailDPI/72.0)
	if err != nil {
		return fmt.Errorf("render thumbnail: %w", err)
	}

	img = ScaleToWidth(img, maxWidth)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}
