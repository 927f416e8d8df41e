package contentstream

import (
	"math"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// graphicsState is the slice of PDF graphics state the scanner needs
type graphicsState struct {
	ctm model.Matrix
}

// Scanner replays content stream operations and collects page geometry.
// PDF user space has its origin at the bottom-left with Y up; results are
// flipped into the top-left page coordinates the rest of the pipeline uses,
// which is why the scanner needs the page height.
type Scanner struct {
	pageHeight float64
	imageNames map[string]bool

	state graphicsState
	stack []graphicsState

	// current path under construction, in user space points
	path       []model.Point
	pathOps    int
	subpathX   float64
	subpathY   float64
	currentX   float64
	currentY   float64

	images   []model.ImagePlacement
	drawings []model.DrawingPath
}

// NewScanner creates a scanner for one page. imageNames holds the XObject
// resource names on the page that resolve to images; Do operators naming
// anything else (forms, groups) are ignored.
func NewScanner(pageHeight float64, imageNames map[string]bool) *Scanner {
	return &Scanner{
		pageHeight: pageHeight,
		imageNames: imageNames,
		state:      graphicsState{ctm: model.Identity()},
	}
}

// Scan parses the stream and replays it. It can be called more than once
// for pages with multiple content streams; state carries over between
// calls as the PDF model requires.
func (s *Scanner) Scan(data []byte) error {
	ops, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	for _, op := range ops {
		s.apply(op)
	}
	return nil
}

// Images returns the image placements recorded so far, in paint order
func (s *Scanner) Images() []model.ImagePlacement {
	return s.images
}

// Drawings returns the painted path boxes recorded so far
func (s *Scanner) Drawings() []model.DrawingPath {
	return s.drawings
}

func (s *Scanner) apply(op Operation) {
	switch op.Operator {
	case "q":
		s.stack = append(s.stack, s.state)
	case "Q":
		if n := len(s.stack); n > 0 {
			s.state = s.stack[n-1]
			s.stack = s.stack[:n-1]
		}
	case "cm":
		m := model.Matrix{op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(4), op.Float(5)}
		s.state.ctm = m.Multiply(s.state.ctm)

	case "m":
		s.moveTo(op.Float(0), op.Float(1))
	case "l":
		s.lineTo(op.Float(0), op.Float(1))
		s.pathOps++
	case "c":
		s.curveTo(op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(4), op.Float(5))
	case "v":
		s.curveTo(s.currentX, s.currentY, op.Float(0), op.Float(1), op.Float(2), op.Float(3))
	case "y":
		s.curveTo(op.Float(0), op.Float(1), op.Float(2), op.Float(3), op.Float(2), op.Float(3))
	case "re":
		x, y := op.Float(0), op.Float(1)
		w, h := op.Float(2), op.Float(3)
		s.addPoint(x, y)
		s.addPoint(x+w, y)
		s.addPoint(x+w, y+h)
		s.addPoint(x, y+h)
		s.currentX, s.currentY = x, y
		s.pathOps++
	case "h":
		s.currentX, s.currentY = s.subpathX, s.subpathY

	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
		s.paintPath()
	case "n":
		// end path without painting (used after W/W* clips)
		s.clearPath()

	case "Do":
		name := op.NameArg(0)
		if name != "" && s.imageNames[name] {
			s.placeImage(name)
		}
	}
}

func (s *Scanner) moveTo(x, y float64) {
	s.addPoint(x, y)
	s.subpathX, s.subpathY = x, y
	s.currentX, s.currentY = x, y
}

func (s *Scanner) lineTo(x, y float64) {
	s.addPoint(x, y)
	s.currentX, s.currentY = x, y
}

// curveTo tracks Bezier control points as well as endpoints. The control
// points overestimate the curve's extent slightly, which is fine for
// clustering purposes.
func (s *Scanner) curveTo(x1, y1, x2, y2, x3, y3 float64) {
	s.addPoint(x1, y1)
	s.addPoint(x2, y2)
	s.addPoint(x3, y3)
	s.currentX, s.currentY = x3, y3
	s.pathOps++
}

func (s *Scanner) addPoint(x, y float64) {
	s.path = append(s.path, model.Point{X: x, Y: y})
}

func (s *Scanner) clearPath() {
	s.path = s.path[:0]
	s.pathOps = 0
}

// paintPath flushes the accumulated path as one drawing rectangle
func (s *Scanner) paintPath() {
	if len(s.path) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range s.path {
		dev := s.state.ctm.Transform(pt)
		minX = math.Min(minX, dev.X)
		minY = math.Min(minY, dev.Y)
		maxX = math.Max(maxX, dev.X)
		maxY = math.Max(maxY, dev.Y)
	}

	s.drawings = append(s.drawings, model.DrawingPath{
		BBox: s.flip(minX, minY, maxX, maxY),
		Ops:  s.pathOps,
	})
	s.clearPath()
}

// placeImage records the unit square transformed by the CTM, which is how
// the PDF imaging model positions an image XObject.
func (s *Scanner) placeImage(name string) {
	unit := model.NewBBox(0, 0, 1, 1)
	dev := s.state.ctm.TransformBBox(unit)
	s.images = append(s.images, model.ImagePlacement{
		Name: name,
		BBox: s.flip(dev.X1, dev.Y1, dev.X2, dev.Y2),
	})
}

// flip converts a user-space box (Y up) to page coordinates (Y down)
func (s *Scanner) flip(minX, minY, maxX, maxY float64) model.BBox {
	return model.NewBBox(minX, s.pageHeight-maxY, maxX, s.pageHeight-minY)
}
