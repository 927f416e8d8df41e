package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nayanlc19/journal-club-standalone/contentstream"
	"github.com/nayanlc19/journal-club-standalone/model"
)

// Document is an open PDF ready for page extraction. Not safe for
// concurrent use.
type Document struct {
	path string

	file *os.File
	ctx  *pdfmodel.Context

	textFile   *os.File
	textReader *pdf.Reader

	dims []pageDim
}

type pageDim struct {
	width  float64
	height float64
}

// Open reads and validates a PDF. A document that fails structural
// validation is rejected here; per-page damage surfaces later as page
// warnings instead.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read pdf %s: %w", path, err)
	}

	d := &Document{path: path, file: f, ctx: ctx}

	if err := d.loadDims(); err != nil {
		f.Close()
		return nil, err
	}

	// The text layer is optional: a scanned PDF still yields images and
	// page dimensions.
	if tf, tr, err := pdf.Open(path); err == nil {
		d.textFile = tf
		d.textReader = tr
	}

	return d, nil
}

// Close releases the underlying files
func (d *Document) Close() error {
	var first error
	if d.textFile != nil {
		if err := d.textFile.Close(); err != nil {
			first = err
		}
		d.textFile = nil
		d.textReader = nil
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil && first == nil {
			first = err
		}
		d.file = nil
	}
	return first
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Path returns the file path the document was opened from
func (d *Document) Path() string {
	return d.path
}

// HasTextLayer reports whether positioned text extraction is available
func (d *Document) HasTextLayer() bool {
	return d.textReader != nil
}

func (d *Document) loadDims() error {
	dims, err := d.ctx.PageDims()
	if err != nil {
		return fmt.Errorf("page dimensions: %w", err)
	}
	d.dims = make([]pageDim, len(dims))
	for i, dim := range dims {
		d.dims[i] = pageDim{width: dim.Width, height: dim.Height}
	}
	return nil
}

// PageSize returns the media box dimensions of a page in points. pageNr is
// 1-based.
func (d *Document) PageSize(pageNr int) (width, height float64, err error) {
	if pageNr < 1 || pageNr > len(d.dims) {
		return 0, 0, fmt.Errorf("page %d out of range 1..%d", pageNr, len(d.dims))
	}
	dim := d.dims[pageNr-1]
	return dim.width, dim.height, nil
}

// PageContent extracts everything the detectors need from one page: text
// blocks, image placements, and painted vector paths. pageNr is 1-based.
func (d *Document) PageContent(pageNr int) (*model.PageContent, error) {
	width, height, err := d.PageSize(pageNr)
	if err != nil {
		return nil, err
	}

	page := model.NewPageContent(pageNr, width, height)

	if d.textReader != nil {
		runs, err := d.pageTextRuns(pageNr, height)
		if err != nil {
			return nil, fmt.Errorf("page %d text: %w", pageNr, err)
		}
		page.Blocks = assembleBlocks(assembleLines(runs))
	}

	images, err := d.extractImages(pageNr)
	if err != nil {
		return nil, fmt.Errorf("page %d images: %w", pageNr, err)
	}

	if err := d.scanContent(pageNr, height, page, images); err != nil {
		return nil, fmt.Errorf("page %d content: %w", pageNr, err)
	}

	return page, nil
}

// pageTextRuns pulls the positioned text runs for a page, flipped into
// top-left coordinates.
func (d *Document) pageTextRuns(pageNr int, pageHeight float64) ([]textRun, error) {
	if pageNr > d.textReader.NumPage() {
		return nil, nil
	}
	p := d.textReader.Page(pageNr)
	if p.V.IsNull() {
		return nil, nil
	}

	var runs []textRun
	for _, t := range p.Content().Text {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		runs = append(runs, textRun{
			text: t.S,
			bbox: model.NewBBox(
				t.X,
				pageHeight-t.Y-size,
				t.X+t.W,
				pageHeight-t.Y,
			),
			fontSize: size,
		})
	}
	return runs, nil
}

// extractImages decodes the page's embedded images, keyed by XObject
// resource name. Images pdfcpu cannot convert are kept as name-only stubs
// so the scanner still records their placement.
func (d *Document) extractImages(pageNr int) (map[string]decodedImage, error) {
	out := make(map[string]decodedImage)

	if d.ctx.Optimize == nil || len(pdfcpu.ImageObjNrs(d.ctx, pageNr)) == 0 {
		return out, nil
	}

	images, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		data, err := io.ReadAll(img)
		if err != nil {
			out[img.Name] = decodedImage{name: img.Name}
			continue
		}
		out[img.Name] = decodeImageData(img.Name, img.FileType, data)
	}
	return out, nil
}

// scanContent replays the page's content streams and attaches the
// resulting placements and drawings to the page model.
func (d *Document) scanContent(pageNr int, pageHeight float64, page *model.PageContent, images map[string]decodedImage) error {
	names := make(map[string]bool, len(images))
	for name := range images {
		names[name] = true
	}

	r, err := pdfcpu.ExtractPageContent(d.ctx, pageNr)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	scanner := contentstream.NewScanner(pageHeight, names)
	if err := scanner.Scan(data); err != nil {
		return err
	}

	for _, placement := range scanner.Images() {
		if img, ok := images[placement.Name]; ok {
			placement.PixelWidth = img.width
			placement.PixelHeight = img.height
			placement.PNG = img.png
		}
		page.Images = append(page.Images, placement)
	}
	page.Drawings = scanner.Drawings()
	return nil
}
