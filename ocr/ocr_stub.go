//go:build !ocr

// Package ocr recovers text from scanned article pages.
//
// This is the stub compiled without the "ocr" build tag: every operation
// returns ErrNotEnabled. Rebuild with -tags ocr (Tesseract libraries
// required) for the real implementation.
package ocr

// Enabled reports whether OCR support was compiled in
const Enabled = false

// Client is the stub OCR client
type Client struct{}

// New returns ErrNotEnabled
func New() (*Client, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op, safe on a nil client
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns ErrNotEnabled
func (c *Client) SetLanguage(lang string) error {
	return ErrNotEnabled
}

// RecognizePage returns ErrNotEnabled
func (c *Client) RecognizePage(imageData []byte) ([]string, error) {
	return nil, ErrNotEnabled
}
