package model

// TextLine is one line of assembled text with its position on the page
type TextLine struct {
	Text     string
	BBox     BBox
	FontSize float64
}

// TextBlock groups vertically adjacent lines that share a left edge
type TextBlock struct {
	Lines []TextLine
	BBox  BBox
}

// Text concatenates the block's lines separated by spaces
func (b TextBlock) Text() string {
	var out string
	for i, ln := range b.Lines {
		if i > 0 {
			out += " "
		}
		out += ln.Text
	}
	return out
}

// ImagePlacement records one placement of a raster XObject on the page.
// BBox is the placed region in page space; PixelWidth and PixelHeight are
// the intrinsic dimensions of the underlying image resource. PNG holds the
// decoded image bytes when the reader was able to extract them.
type ImagePlacement struct {
	Name        string
	BBox        BBox
	PixelWidth  int
	PixelHeight int
	PNG         []byte
}

// DrawingPath is one painted vector path reduced to its bounding box
type DrawingPath struct {
	BBox BBox
	Ops  int // number of construction operators in the path
}

// PageContent collects everything the detectors need from a single page
type PageContent struct {
	Number   int     // 1-indexed page number
	Width    float64 // Page width in points
	Height   float64 // Page height in points
	Rotation int     // Rotation angle (0, 90, 180, 270)

	Blocks   []TextBlock
	Images   []ImagePlacement
	Drawings []DrawingPath
}

// NewPageContent creates an empty page with given dimensions
func NewPageContent(number int, width, height float64) *PageContent {
	return &PageContent{
		Number: number,
		Width:  width,
		Height: height,
	}
}

// Lines returns the page's text lines in block order
func (p *PageContent) Lines() []TextLine {
	var lines []TextLine
	for _, b := range p.Blocks {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// Text concatenates the page's block text, one block per line
func (p *PageContent) Text() string {
	var out string
	for _, b := range p.Blocks {
		out += b.Text() + "\n"
	}
	return out
}

// BlocksInRegion returns the text blocks fully contained in a region
func (p *PageContent) BlocksInRegion(region BBox) []TextBlock {
	var blocks []TextBlock
	for _, b := range p.Blocks {
		if region.ContainsBox(b.BBox) {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
