package journalclub

import (
	"context"
	"fmt"
	"image"
	"io"
	"sort"
	"time"

	"github.com/nayanlc19/journal-club-standalone/figures"
	"github.com/nayanlc19/journal-club-standalone/model"
	"github.com/nayanlc19/journal-club-standalone/ocr"
	"github.com/nayanlc19/journal-club-standalone/reader"
	"github.com/nayanlc19/journal-club-standalone/render"
)

// Extractor extracts figures, tables and metadata from a PDF article.
// Configuration methods return a new Extractor and never mutate the
// receiver. A terminal operation opens the document, does its work and
// closes it again, so an Extractor can run more than one terminal
// operation.
type Extractor struct {
	filename string
	doc      *reader.Document
	ownsDoc  bool

	options extractOptions
	err     error
}

// clone returns a copy sharing the document but owning its options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		doc:      e.doc,
		ownsDoc:  e.ownsDoc,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// Err returns the first configuration error recorded on the chain.
func (e *Extractor) Err() error {
	return e.err
}

// Pages restricts extraction to the given 1-based page numbers.
func (e *Extractor) Pages(pages ...int) *Extractor {
	ext := e.clone()
	if ext.err != nil {
		return ext
	}
	for _, p := range pages {
		if p < 1 {
			ext.err = fmt.Errorf("invalid page number %d", p)
			return ext
		}
	}
	ext.options.pages = append([]int(nil), pages...)
	return ext
}

// PageRange restricts extraction to pages from through to, inclusive.
func (e *Extractor) PageRange(from, to int) *Extractor {
	ext := e.clone()
	if ext.err != nil {
		return ext
	}
	if from < 1 || to < from {
		ext.err = fmt.Errorf("invalid page range %d-%d", from, to)
		return ext
	}
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	ext.options.pages = pages
	return ext
}

// WithConfig replaces the detection thresholds.
func (e *Extractor) WithConfig(cfg figures.Config) *Extractor {
	ext := e.clone()
	if ext.err != nil {
		return ext
	}
	if err := cfg.Validate(); err != nil {
		ext.err = err
		return ext
	}
	ext.options.config = cfg
	return ext
}

// WithRasterizer sets the renderer used for figure crops and thumbnails.
func (e *Extractor) WithRasterizer(r render.Rasterizer) *Extractor {
	ext := e.clone()
	ext.options.rasterizer = r
	return ext
}

// WithoutImages skips rendering: extracted records carry coordinates
// and captions but no image data.
func (e *Extractor) WithoutImages() *Extractor {
	ext := e.clone()
	ext.options.withImages = false
	return ext
}

// WithOCR enables caption recovery on pages without a text layer.
// lang is a tesseract language code such as "eng"; pass "" for the
// engine default. Requires a rasterizer and an OCR-enabled build.
func (e *Extractor) WithOCR(lang string) *Extractor {
	ext := e.clone()
	ext.options.ocrEnabled = true
	ext.options.ocrLanguage = lang
	return ext
}

// WithTimeout bounds each external render invocation.
func (e *Extractor) WithTimeout(d time.Duration) *Extractor {
	ext := e.clone()
	if ext.err != nil {
		return ext
	}
	if d <= 0 {
		ext.err = fmt.Errorf("invalid timeout %v", d)
		return ext
	}
	ext.options.timeout = d
	return ext
}

func (e *Extractor) ensureDoc() error {
	if e.doc != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no document: use Open or FromDocument")
	}
	doc, err := reader.Open(e.filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.filename, err)
	}
	e.doc = doc
	return nil
}

func (e *Extractor) closeOwned() {
	if e.ownsDoc && e.doc != nil {
		e.doc.Close()
		e.doc = nil
	}
}

// resolvePages returns the sorted, deduplicated page selection, or all
// pages when none was configured.
func (e *Extractor) resolvePages() ([]int, error) {
	total := e.doc.PageCount()
	if len(e.options.pages) == 0 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool, len(e.options.pages))
	var pages []int
	for _, p := range e.options.pages {
		if p > total {
			return nil, fmt.Errorf("page %d out of range: document has %d pages", p, total)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

// rasterizer returns the configured renderer, falling back to pdftoppm
// when one is installed. Returns nil when no renderer is usable.
func (e *Extractor) rasterizer() render.Rasterizer {
	if e.options.rasterizer != nil {
		return e.options.rasterizer
	}
	ext := render.NewExternal("")
	ext.Timeout = e.options.timeout
	if ext.Available() {
		return ext
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDoc(); err != nil {
		return 0, err
	}
	defer e.closeOwned()
	return e.doc.PageCount(), nil
}

// Metadata returns the document information dictionary.
func (e *Extractor) Metadata() (model.Metadata, []Warning, error) {
	if e.err != nil {
		return model.Metadata{}, nil, e.err
	}
	if err := e.ensureDoc(); err != nil {
		return model.Metadata{}, nil, err
	}
	defer e.closeOwned()

	var warnings []Warning
	if !e.doc.HasTextLayer() {
		warnings = append(warnings, warnf(WarnNoTextLayer, 0, "document has no extractable text"))
	}
	meta, err := e.doc.Metadata()
	if err != nil {
		return model.Metadata{}, warnings, err
	}
	return meta, warnings, nil
}

// Thumbnail renders the first page as a PNG no wider than maxWidth
// pixels and writes it to w.
func (e *Extractor) Thumbnail(w io.Writer, maxWidth int) error {
	return e.ThumbnailContext(context.Background(), w, maxWidth)
}

// ThumbnailContext is Thumbnail with a caller-supplied context.
func (e *Extractor) ThumbnailContext(ctx context.Context, w io.Writer, maxWidth int) error {
	if e.err != nil {
		return e.err
	}
	if maxWidth < 1 {
		return fmt.Errorf("invalid thumbnail width %d", maxWidth)
	}
	path, err := e.documentPath()
	if err != nil {
		return err
	}
	r := e.rasterizer()
	if r == nil {
		return fmt.Errorf("no rasterizer available: install pdftoppm or mutool, or use WithRasterizer")
	}
	return render.Thumbnail(ctx, r, path, maxWidth, w)
}

// Figures extracts figure and table records from the selected pages.
func (e *Extractor) Figures() ([]model.Figure, []Warning, error) {
	return e.FiguresContext(context.Background())
}

// FiguresContext runs extraction under ctx, which bounds external
// render invocations. Detection itself is not interruptible.
func (e *Extractor) FiguresContext(ctx context.Context) ([]model.Figure, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDoc(); err != nil {
		return nil, nil, err
	}
	defer e.closeOwned()

	pages, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := figures.NewPipeline(e.options.config)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	var records []model.Figure
	for _, pageNr := range pages {
		page, err := e.doc.PageContent(pageNr)
		if err != nil {
			warnings = append(warnings, warnf(WarnPageSkipped, pageNr, "%v", err))
			continue
		}

		if len(page.Blocks) == 0 && e.options.ocrEnabled {
			recovered, ws := e.ocrCaptions(ctx, page)
			warnings = append(warnings, ws...)
			records = append(records, recovered...)
		} else if len(page.Blocks) == 0 {
			warnings = append(warnings, warnf(WarnNoTextLayer, pageNr, "page has no extractable text"))
		}

		found, err := pipeline.ProcessPage(page)
		if err != nil {
			warnings = append(warnings, warnf(WarnPageSkipped, pageNr, "%v", err))
			continue
		}
		records = append(records, found...)
	}
	records = figures.MergeContinuations(records)

	if e.options.withImages {
		ws := e.renderRecords(ctx, records)
		warnings = append(warnings, ws...)
	}
	return records, warnings, nil
}

// renderRecords fills in the Image field of each record by rendering
// its page and cropping the record's region. Render failures degrade
// to coordinate-only records with a warning.
func (e *Extractor) renderRecords(ctx context.Context, records []model.Figure) []Warning {
	if len(records) == 0 {
		return nil
	}
	path, err := e.documentPath()
	if err != nil {
		return []Warning{warnf(WarnNoRasterizer, 0, "%v", err)}
	}
	r := e.rasterizer()
	if r == nil {
		return []Warning{warnf(WarnNoRasterizer, 0, "no rasterizer available, records carry coordinates only")}
	}

	scale := e.options.config.RenderScale
	rendered := make(map[int]image.Image)
	failed := make(map[int]bool)

	var warnings []Warning
	for i := range records {
		pageNr := records[i].PageNumber
		if failed[pageNr] {
			continue
		}
		img, ok := rendered[pageNr]
		if !ok {
			var err error
			img, err = r.RenderPage(ctx, path, pageNr, scale)
			if err != nil {
				failed[pageNr] = true
				warnings = append(warnings, warnf(WarnRenderFailed, pageNr, "%v", err))
				continue
			}
			rendered[pageNr] = img
		}

		crop, err := render.Crop(img, records[i].BBox, scale)
		if err != nil {
			warnings = append(warnings, warnf(WarnRenderFailed, pageNr, "crop %s: %v", records[i].Name, err))
			continue
		}
		uri, err := render.EncodeDataURI(crop)
		if err != nil {
			warnings = append(warnings, warnf(WarnRenderFailed, pageNr, "encode %s: %v", records[i].Name, err))
			continue
		}
		records[i].Image = uri
	}
	return warnings
}

// ocrCaptions recovers caption records from a scanned page by rendering
// it and running text recognition over the raster. Recovered records
// span the whole page since OCR yields no reliable geometry.
func (e *Extractor) ocrCaptions(ctx context.Context, page *model.PageContent) ([]model.Figure, []Warning) {
	if !ocr.Enabled {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "%v", ocr.ErrNotEnabled)}
	}
	path, err := e.documentPath()
	if err != nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "%v", err)}
	}
	r := e.rasterizer()
	if r == nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "no rasterizer available for text recognition")}
	}

	img, err := r.RenderPage(ctx, path, page.Number, e.options.config.RenderScale)
	if err != nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "render: %v", err)}
	}
	raw, err := render.PNGBytes(img)
	if err != nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "encode: %v", err)}
	}

	client, err := ocr.New()
	if err != nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "%v", err)}
	}
	defer client.Close()
	if e.options.ocrLanguage != "" {
		if err := client.SetLanguage(e.options.ocrLanguage); err != nil {
			return nil, []Warning{warnf(WarnOCRFailed, page.Number, "%v", err)}
		}
	}

	lines, err := client.RecognizePage(raw)
	if err != nil {
		return nil, []Warning{warnf(WarnOCRFailed, page.Number, "%v", err)}
	}

	pageBox := model.BBox{X1: 0, Y1: 0, X2: page.Width, Y2: page.Height}
	var records []model.Figure
	for _, line := range lines {
		kind, name, ok := figures.MatchCaption(line)
		if !ok {
			continue
		}
		records = append(records, model.Figure{
			Kind:       kind,
			PageNumber: page.Number,
			Name:       name,
			Caption:    figures.NormalizeText(line),
			BBox:       pageBox,
			Source:     "ocr-caption",
		})
	}
	return records, nil
}

func (e *Extractor) documentPath() (string, error) {
	if e.filename != "" {
		return e.filename, nil
	}
	if e.doc != nil && e.doc.Path() != "" {
		return e.doc.Path(), nil
	}
	return "", fmt.Errorf("document path unknown, rendering unavailable")
}
