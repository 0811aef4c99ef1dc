// Package geometry provides the 2D primitives used by the fixture
// synthesis pipeline: points, axis-aligned rectangles, polygons with
// holes, and the restricted boolean operations panel generation needs.
//
// All coordinates are double-precision millimeters. Outer rings carry
// positive signed area, hole rings negative. The only boolean offered
// is Difference, which cuts a fully-contained hole out of a polygon;
// general clipping is deliberately out of scope.
package geometry

import (
	"errors"
	"math"
)

// Errors returned by this package.
var (
	// ErrUnsupported is returned by Difference when the subtrahend is not
	// fully contained in the minuend's outer ring.
	ErrUnsupported = errors.New("geometry: unsupported boolean operation")
	// ErrMalformed is returned when a polygon violates its invariants
	// (too few vertices, self-intersection, hole outside outer ring).
	ErrMalformed = errors.New("geometry: malformed polygon")
)

// RoundBase is the dimensional tolerance floor. Every normalized
// coordinate is snapped to this grid so repeated runs are
// bit-reproducible.
const RoundBase = 0.01

// Epsilon is the comparison tolerance for coordinate math.
const Epsilon = 1e-9

// Point2 is a point or vector in millimeters.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point2.
func Pt(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// Add returns p + q.
func (p Point2) Add(q Point2) Point2 {
	return Point2{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point2) Scale(s float64) Point2 {
	return Point2{X: p.X * s, Y: p.Y * s}
}

// Distance returns the Euclidean distance between p and q.
func (p Point2) Distance(q Point2) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Round snaps v to the 0.01 mm grid.
func Round(v float64) float64 {
	return math.Round(v/RoundBase) * RoundBase
}

// RoundPoint snaps both coordinates of p to the 0.01 mm grid.
func RoundPoint(p Point2) Point2 {
	return Point2{X: Round(p.X), Y: Round(p.Y)}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the midpoint of r.
func (r Rect) Center() Point2 {
	return Point2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point2) bool {
	return p.X >= r.MinX-Epsilon && p.X <= r.MaxX+Epsilon &&
		p.Y >= r.MinY-Epsilon && p.Y <= r.MaxY+Epsilon
}

// Intersects reports whether r and other overlap with positive area.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX < other.MaxX-Epsilon && r.MaxX > other.MinX+Epsilon &&
		r.MinY < other.MaxY-Epsilon && r.MaxY > other.MinY+Epsilon
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// Grow returns r expanded by pad on every side.
func (r Rect) Grow(pad float64) Rect {
	return Rect{MinX: r.MinX - pad, MinY: r.MinY - pad, MaxX: r.MaxX + pad, MaxY: r.MaxY + pad}
}
