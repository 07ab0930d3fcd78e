// Package geom provides the 2D geometric primitives used for page layout:
// - Points, sizes and axis-aligned rectangles (boxes)
// - Rectangle algebra (containment, intersection, union, insets)
// - 2D affine transformations (translation, scaling) and their composition
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Size represents a width and height.
type Size struct {
	W float64
	H float64
}

// Box represents an axis-aligned rectangle. The origin is the top-left corner.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Insets represents distances inset from the edges of a rectangle.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, E: 1}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeSize(w, h float64) Size                 { return Size{W: w, H: h} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// Translation returns a transform translating by (tx, ty).
func Translation(tx, ty float64) Affine { return MakeAffine(1, 0, tx, 0, 1, ty) }

// Scaling returns a transform scaling uniformly by s around the origin.
func Scaling(s float64) Affine { return MakeAffine(s, 0, 0, 0, s, 0) }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func (s Size) Scale(f float64) Size { return Size{s.W * f, s.H * f} }

// Empty reports whether the size has no area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

func (b Box) MinX() float64 { return b.X }
func (b Box) MinY() float64 { return b.Y }
func (b Box) MaxX() float64 { return b.X + b.W }
func (b Box) MaxY() float64 { return b.Y + b.H }
func (b Box) MidX() float64 { return b.X + b.W/2 }
func (b Box) MidY() float64 { return b.Y + b.H/2 }

func (b Box) Origin() Point { return Point{b.X, b.Y} }
func (b Box) Size() Size    { return Size{b.W, b.H} }
func (b Box) Mid() Point    { return Point{b.MidX(), b.MidY()} }

// IsEmpty reports whether the box has no area.
func (b Box) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

// WithOrigin returns the box moved to the given origin.
func (b Box) WithOrigin(p Point) Box { return Box{p.X, p.Y, b.W, b.H} }

// WithSize returns the box resized, keeping its origin.
func (b Box) WithSize(s Size) Box { return Box{b.X, b.Y, s.W, s.H} }

// Offset returns the box translated by (dx, dy).
func (b Box) Offset(dx, dy float64) Box { return Box{b.X + dx, b.Y + dy, b.W, b.H} }

// Inset returns the box shrunk by dx on the left and right and dy on the top
// and bottom. Negative values grow the box.
func (b Box) Inset(dx, dy float64) Box {
	return Box{b.X + dx, b.Y + dy, b.W - 2*dx, b.H - 2*dy}
}

// ContainsPoint reports whether p lies inside the box. The max edges are
// exclusive.
func (b Box) ContainsPoint(p Point) bool {
	if b.IsEmpty() {
		return false
	}
	return p.X >= b.MinX() && p.X < b.MaxX() && p.Y >= b.MinY() && p.Y < b.MaxY()
}

// Contains reports whether o lies entirely within the box.
func (b Box) Contains(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.MinX() >= b.MinX() && o.MaxX() <= b.MaxX() &&
		o.MinY() >= b.MinY() && o.MaxY() <= b.MaxY()
}

// Intersect returns the overlap of the two boxes, or the zero Box if they do
// not overlap.
func (b Box) Intersect(o Box) Box {
	x0 := math.Max(b.MinX(), o.MinX())
	y0 := math.Max(b.MinY(), o.MinY())
	x1 := math.Min(b.MaxX(), o.MaxX())
	y1 := math.Min(b.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Box{}
	}
	return Box{x0, y0, x1 - x0, y1 - y0}
}

// Intersects reports whether the boxes overlap with a non-zero area.
func (b Box) Intersects(o Box) bool { return !b.Intersect(o).IsEmpty() }

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	x0 := math.Min(b.MinX(), o.MinX())
	y0 := math.Min(b.MinY(), o.MinY())
	x1 := math.Max(b.MaxX(), o.MaxX())
	y1 := math.Max(b.MaxY(), o.MaxY())
	return Box{x0, y0, x1 - x0, y1 - y0}
}

// Transform returns the bounding box of b under t. Only translations and
// scalings (no rotations or shears) keep the result tight.
func (b Box) Transform(t Affine) Box {
	p := t.MulPoint(b.Origin())
	q := t.MulPoint(Point{b.MaxX(), b.MaxY()})
	return Box{math.Min(p.X, q.X), math.Min(p.Y, q.Y), math.Abs(q.X - p.X), math.Abs(q.Y - p.Y)}
}

func (b Box) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", b.X, b.Y, b.W, b.H)
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// IsIdentity reports whether t is the identity transform.
func (t Affine) IsIdentity() bool { return t == Identity }
