//go:build ocr

// Package ocr recovers text from scanned article pages.
//
// It wraps the Tesseract engine via gosseract and is compiled in only with
// the "ocr" build tag, since it needs the Tesseract C libraries installed:
//
//	go build -tags ocr
//
// On Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev. On
// macOS: brew install tesseract.
//
// Pages recovered this way carry no glyph positions, so caption matching
// against OCR text is page-level only.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support was compiled in
const Enabled = true

// Client wraps a Tesseract session. Not safe for concurrent use; create
// one client per goroutine.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it to release the Tesseract session.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract session
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition language(s), "+" separated for multiple
// (e.g. "eng+deu"). The default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizePage runs OCR over a rendered page image (PNG or JPEG bytes)
// and returns its text lines. Tesseract's automatic page segmentation is
// used, which handles the single- and two-column layouts of journal pages.
func (c *Client) RecognizePage(imageData []byte) ([]string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}
	if err := c.client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, fmt.Errorf("set page segmentation: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
