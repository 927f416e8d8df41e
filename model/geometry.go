package model

import (
	"encoding/json"
	"math"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in corner form. Coordinates are in PDF
// points with the origin at the top-left of the page, so Y1 is the top edge
// and Y2 the bottom edge.
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBBox creates a bounding box from corner coordinates
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// NewBBoxFromPoints creates a normalized bounding box from two points
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		X1: math.Min(p1.X, p2.X),
		Y1: math.Min(p1.Y, p2.Y),
		X2: math.Max(p1.X, p2.X),
		Y2: math.Max(p1.Y, p2.Y),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X1
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X2
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y1
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y2
}

// Width returns the box width
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the box height
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 &&
		p.Y >= b.Y1 && p.Y <= b.Y2
}

// ContainsBox checks if another box lies entirely inside the bounding box
func (b BBox) ContainsBox(other BBox) bool {
	return other.X1 >= b.X1 && other.X2 <= b.X2 &&
		other.Y1 >= b.Y1 && other.Y2 <= b.Y2
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.X2 < other.X1 ||
		b.X1 > other.X2 ||
		b.Y2 < other.Y1 ||
		b.Y1 > other.Y2)
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	return BBox{
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
		X2: math.Min(b.X2, other.X2),
		Y2: math.Min(b.Y2, other.Y2),
	}
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X1: b.X1 - margin,
		Y1: b.Y1 - margin,
		X2: b.X2 + margin,
		Y2: b.Y2 + margin,
	}
}

// OverlapRatio calculates the overlap ratio with another box
// Returns value between 0 and 1
func (b BBox) OverlapRatio(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}

	intersection := b.Intersection(other)
	minArea := math.Min(b.Area(), other.Area())

	if minArea == 0 {
		return 0
	}

	return intersection.Area() / minArea
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// bboxJSON is the wire form of a bounding box. Width and height are derived
// on marshal and ignored on unmarshal so coordinates always round-trip
// exactly.
type bboxJSON struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarshalJSON implements json.Marshaler
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(bboxJSON{
		X1:     b.X1,
		Y1:     b.Y1,
		X2:     b.X2,
		Y2:     b.Y2,
		Width:  b.Width(),
		Height: b.Height(),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (b *BBox) UnmarshalJSON(data []byte) error {
	var wire bboxJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	b.X1, b.Y1, b.X2, b.Y2 = wire.X1, wire.Y1, wire.X2, wire.Y2
	return nil
}

// Matrix is a 2D affine transform in PDF operand order [a b c d e f]:
// a point (x, y) maps to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity returns the transform that leaves points unchanged
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation by (tx, ty)
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale by (sx, sy)
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Transform maps a point through m
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformBBox transforms the four corners of a box and returns the
// normalized bounding box of the result.
func (m Matrix) TransformBBox(b BBox) BBox {
	corners := [4]Point{
		{b.X1, b.Y1},
		{b.X2, b.Y1},
		{b.X1, b.Y2},
		{b.X2, b.Y2},
	}

	out := NewBBoxFromPoints(m.Transform(corners[0]), m.Transform(corners[1]))
	for _, c := range corners[2:] {
		p := m.Transform(c)
		out = out.Union(BBox{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y})
	}
	return out
}

// Multiply composes transforms: the result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	var out Matrix
	out[0] = m[0]*other[0] + m[1]*other[2]
	out[1] = m[0]*other[1] + m[1]*other[3]
	out[2] = m[2]*other[0] + m[3]*other[2]
	out[3] = m[2]*other[1] + m[3]*other[3]
	out[4] = m[4]*other[0] + m[5]*other[2] + other[4]
	out[5] = m[4]*other[1] + m[5]*other[3] + other[5]
	return out
}

// IsIdentity reports whether m leaves points unchanged
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
