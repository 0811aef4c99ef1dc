package geometry

import (
	"fmt"
	"math"
)

// Ring is a closed vertex loop. The closing edge from the last vertex
// back to the first is implicit.
type Ring []Point2

// SignedArea returns the shoelace area of r. Positive for outer rings,
// negative for hole rings under this package's winding convention.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	for i := range r {
		j := (i + 1) % len(r)
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area of r.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Reversed returns a copy of r with the vertex order flipped.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// BoundingBox returns the axis-aligned bounds of r.
func (r Ring) BoundingBox() Rect {
	if len(r) == 0 {
		return Rect{}
	}
	bb := Rect{MinX: r[0].X, MinY: r[0].Y, MaxX: r[0].X, MaxY: r[0].Y}
	for _, p := range r[1:] {
		bb.MinX = math.Min(bb.MinX, p.X)
		bb.MinY = math.Min(bb.MinY, p.Y)
		bb.MaxX = math.Max(bb.MaxX, p.X)
		bb.MaxY = math.Max(bb.MaxY, p.Y)
	}
	return bb
}

// Centroid returns the arithmetic mean of the vertices.
func (r Ring) Centroid() Point2 {
	if len(r) == 0 {
		return Point2{}
	}
	var c Point2
	for _, p := range r {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(r))
	c.Y /= float64(len(r))
	return c
}

// Contains reports whether p lies inside r using an even-odd crossing
// test. Points on the boundary are not guaranteed either way.
func (r Ring) Contains(p Point2) bool {
	inside := false
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + n - 1) % n
		pi, pj := r[i], r[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xCross := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges of r cross.
func (r Ring) SelfIntersects() bool {
	n := len(r)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := r[i]
		a2 := r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip the shared-vertex neighbours, including the wrap pair.
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1 := r[j]
			b2 := r[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func orientation(a, b, c Point2) int {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if v > Epsilon {
		return 1
	}
	if v < -Epsilon {
		return -1
	}
	return 0
}

func onSegment(a, b, p Point2) bool {
	return math.Min(a.X, b.X)-Epsilon <= p.X && p.X <= math.Max(a.X, b.X)+Epsilon &&
		math.Min(a.Y, b.Y)-Epsilon <= p.Y && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}

// segmentsCross reports a proper or collinear-overlap intersection of
// segments a1a2 and b1b2.
func segmentsCross(a1, a2, b1, b2 Point2) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)
	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if o2 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	if o3 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if o4 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	return false
}

// ringsIntersect reports whether any edge of a crosses any edge of b.
func ringsIntersect(a, b Ring) bool {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1 := a[i]
		a2 := a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if segmentsCross(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return false
}

// ringContainsRing reports whether inner lies fully inside outer: every
// vertex of inner is inside outer and no edges cross.
func ringContainsRing(outer, inner Ring) bool {
	for _, p := range inner {
		if !outer.Contains(p) {
			return false
		}
	}
	return !ringsIntersect(outer, inner)
}

// Polygon is an outer ring plus zero or more hole rings. Holes lie
// strictly inside the outer ring and do not touch each other.
type Polygon struct {
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// Rectangle returns a w by h rectangle with its top-left corner at the
// origin.
func Rectangle(w, h float64) Polygon {
	return RectangleAt(0, 0, w, h)
}

// RectangleAt returns a w by h rectangle with its top-left corner at
// (x, y).
func RectangleAt(x, y, w, h float64) Polygon {
	return Polygon{Outer: Ring{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}}
}

// Circle returns a tessellated circle of the given radius centred on
// the origin. The segment count is uniform across the whole engine so
// output is reproducible.
func Circle(r float64, segments int) Polygon {
	return CircleAt(0, 0, r, segments)
}

// CircleAt returns a tessellated circle centred on (cx, cy).
func CircleAt(cx, cy, r float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	ring := make(Ring, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Point2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return Polygon{Outer: ring}
}

// Stadium returns the convex hull of two equal circles whose centres
// sit length apart on the X axis, the left centre at the origin. Used
// for slots and latch bodies.
func Stadium(length, r float64, segments int) Polygon {
	if segments < 4 {
		segments = 4
	}
	half := segments / 2
	ring := make(Ring, 0, 2*half+2)
	// Right cap, sweeping -90° to +90° about (length, 0).
	for i := 0; i <= half; i++ {
		a := -math.Pi/2 + math.Pi*float64(i)/float64(half)
		ring = append(ring, Point2{X: length + r*math.Cos(a), Y: r * math.Sin(a)})
	}
	// Left cap, sweeping +90° to +270° about the origin.
	for i := 0; i <= half; i++ {
		a := math.Pi/2 + math.Pi*float64(i)/float64(half)
		ring = append(ring, Point2{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return Polygon{Outer: ring}
}

// Capsule returns a stadium stretched between two arbitrary points:
// the convex hull of equal circles of radius r centred on a and b.
// Degenerates to a circle when the points coincide.
func Capsule(a, b Point2, r float64, segments int) Polygon {
	if a.Distance(b) < Epsilon {
		return CircleAt(a.X, a.Y, r, segments)
	}
	if segments < 4 {
		segments = 4
	}
	half := segments / 2
	axis := math.Atan2(b.Y-a.Y, b.X-a.X)
	ring := make(Ring, 0, 2*half+2)
	// Cap about b, sweeping from axis-90° to axis+90°.
	for i := 0; i <= half; i++ {
		ang := axis - math.Pi/2 + math.Pi*float64(i)/float64(half)
		ring = append(ring, Point2{X: b.X + r*math.Cos(ang), Y: b.Y + r*math.Sin(ang)})
	}
	// Cap about a, sweeping the opposite half.
	for i := 0; i <= half; i++ {
		ang := axis + math.Pi/2 + math.Pi*float64(i)/float64(half)
		ring = append(ring, Point2{X: a.X + r*math.Cos(ang), Y: a.Y + r*math.Sin(ang)})
	}
	return Polygon{Outer: ring}
}

// RoundedRect returns a w by h rectangle with corners rounded to radius
// r, top-left of the bounding box at the origin.
func RoundedRect(w, h, r float64, segments int) Polygon {
	if r <= 0 {
		return Rectangle(w, h)
	}
	if segments < 4 {
		segments = 4
	}
	quarter := segments / 4
	if quarter < 1 {
		quarter = 1
	}
	arc := func(cx, cy, start float64) Ring {
		pts := make(Ring, 0, quarter+1)
		for i := 0; i <= quarter; i++ {
			a := start + (math.Pi/2)*float64(i)/float64(quarter)
			pts = append(pts, Point2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
		}
		return pts
	}
	ring := make(Ring, 0, 4*(quarter+1))
	ring = append(ring, arc(w-r, r, -math.Pi/2)...)   // top-right
	ring = append(ring, arc(w-r, h-r, 0)...)          // bottom-right
	ring = append(ring, arc(r, h-r, math.Pi/2)...)    // bottom-left
	ring = append(ring, arc(r, r, math.Pi)...)        // top-left
	return Polygon{Outer: ring}
}

// BoundingBox returns the bounds of the outer ring.
func (p Polygon) BoundingBox() Rect {
	return p.Outer.BoundingBox()
}

// Area returns the outer area minus the hole areas.
func (p Polygon) Area() float64 {
	a := p.Outer.Area()
	for _, h := range p.Holes {
		a -= h.Area()
	}
	return a
}

// ContainsPoint reports whether pt is inside the outer ring and outside
// every hole.
func (p Polygon) ContainsPoint(pt Point2) bool {
	if !p.Outer.Contains(pt) {
		return false
	}
	for _, h := range p.Holes {
		if h.Contains(pt) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of p.
func (p Polygon) Clone() Polygon {
	out := Polygon{Outer: make(Ring, len(p.Outer))}
	copy(out.Outer, p.Outer)
	if len(p.Holes) > 0 {
		out.Holes = make([]Ring, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = make(Ring, len(h))
			copy(out.Holes[i], h)
		}
	}
	return out
}

// Validate checks the polygon invariants: at least three vertices with
// nonzero area, no self-intersection, holes fully inside the outer ring
// and disjoint from each other.
func (p Polygon) Validate() error {
	if len(p.Outer) < 3 {
		return fmt.Errorf("%w: outer ring has %d vertices", ErrMalformed, len(p.Outer))
	}
	if p.Outer.Area() < Epsilon {
		return fmt.Errorf("%w: outer ring has zero area", ErrMalformed)
	}
	if p.Outer.SelfIntersects() {
		return fmt.Errorf("%w: outer ring self-intersects", ErrMalformed)
	}
	for i, h := range p.Holes {
		if len(h) < 3 {
			return fmt.Errorf("%w: hole %d has %d vertices", ErrMalformed, i, len(h))
		}
		if h.SelfIntersects() {
			return fmt.Errorf("%w: hole %d self-intersects", ErrMalformed, i)
		}
		if !ringContainsRing(p.Outer, h) {
			return fmt.Errorf("%w: hole %d escapes the outer ring", ErrMalformed, i)
		}
		for j := 0; j < i; j++ {
			if ringsIntersect(h, p.Holes[j]) {
				return fmt.Errorf("%w: holes %d and %d intersect", ErrMalformed, j, i)
			}
		}
	}
	return nil
}

// Difference subtracts b from a by adding b's outer ring as a hole of
// a. b must lie fully inside a's outer ring, clear of a's existing
// holes, and must itself have no holes; anything else fails with
// ErrUnsupported. This is the only boolean the engine performs: panels
// only ever need a hole or slot cut out of solid material.
func Difference(a, b Polygon) (Polygon, error) {
	if len(b.Holes) != 0 {
		return Polygon{}, fmt.Errorf("%w: subtrahend has holes", ErrUnsupported)
	}
	if len(b.Outer) < 3 {
		return Polygon{}, fmt.Errorf("%w: subtrahend outer ring has %d vertices", ErrMalformed, len(b.Outer))
	}
	if !ringContainsRing(a.Outer, b.Outer) {
		return Polygon{}, fmt.Errorf("%w: subtrahend not fully contained", ErrUnsupported)
	}
	for i, h := range a.Holes {
		if ringsIntersect(h, b.Outer) {
			return Polygon{}, fmt.Errorf("%w: subtrahend crosses existing hole %d", ErrUnsupported, i)
		}
		for _, pt := range b.Outer {
			if h.Contains(pt) {
				return Polygon{}, fmt.Errorf("%w: subtrahend inside existing hole %d", ErrUnsupported, i)
			}
		}
	}
	out := a.Clone()
	hole := make(Ring, len(b.Outer))
	copy(hole, b.Outer)
	if hole.SignedArea() > 0 {
		hole = hole.Reversed()
	}
	out.Holes = append(out.Holes, hole)
	return out, nil
}
