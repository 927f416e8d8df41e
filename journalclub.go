// Package journalclub extracts figures and tables from academic PDF
// articles. Detection is caption-first: caption lines ("Figure 3",
// "Table IV", "Supplementary Figure 2") are located in the text layer
// and nearby visual content is associated with them.
//
// The entry point is Open, which returns an Extractor. Configuration
// methods return a new Extractor, so a configured extractor can be
// reused and further specialized without affecting the original:
//
//	figs, warnings, err := journalclub.Open("paper.pdf").
//		Pages(1, 2, 3).
//		WithRasterizer(render.NewExternal("pdftoppm")).
//		Figures()
//
// Terminal operations (Figures, Metadata, Thumbnail, PageCount) return
// their result along with any non-fatal warnings collected on the way.
package journalclub

import (
	"fmt"

	"github.com/nayanlc19/journal-club-standalone/model"
	"github.com/nayanlc19/journal-club-standalone/reader"
)

// Open prepares an extractor for the PDF at path. The file is not
// opened until a terminal operation runs, so configuration errors
// surface there rather than here.
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		ownsDoc:  true,
		options:  defaultOptions(),
	}
}

// FromDocument wraps an already-open document. The caller retains
// ownership: terminal operations will not close it.
func FromDocument(doc *reader.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must panics if err is non-nil, otherwise returns v. It is a
// convenience for examples and tests.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("journalclub: %v", err))
	}
	return v
}

// MustFigures extracts figures from the PDF at path and panics on
// error. Warnings are discarded.
func MustFigures(path string) []model.Figure {
	figs, _, err := Open(path).Figures()
	if err != nil {
		panic(fmt.Sprintf("journalclub: %v", err))
	}
	return figs
}
