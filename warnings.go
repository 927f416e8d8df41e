package journalclub

import (
	"fmt"
	"strings"
)

// Warning codes reported by terminal operations.
const (
	WarnPageSkipped  = "page-skipped"
	WarnRenderFailed = "render-failed"
	WarnNoTextLayer  = "no-text-layer"
	WarnOCRFailed    = "ocr-failed"
	WarnNoRasterizer = "no-rasterizer"
)

// Warning describes a non-fatal problem encountered during extraction.
// Terminal operations return warnings alongside their result so that a
// partially damaged document still yields whatever could be recovered.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Page    int    `json:"page,omitempty"`
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

func warnf(code string, page int, format string, args ...any) Warning {
	return Warning{Code: code, Page: page, Message: fmt.Sprintf(format, args...)}
}

// FormatWarnings renders warnings one per line for log or console output.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
