package geometry

// Transform2 is the rigid placement applied to a panel after layout:
// an optional X mirror, then Quarter quarter-turns counter-clockwise
// about the origin, then a translation. Only the packer assigns these.
type Transform2 struct {
	Offset  Point2 `json:"offset"`
	Quarter int    `json:"quarter"`          // quarter turns, 0-3
	Mirror  bool   `json:"mirror,omitempty"` // reflect x before rotating
}

// Identity returns the do-nothing transform.
func Identity() Transform2 {
	return Transform2{}
}

// IsIdentity reports whether t leaves geometry unchanged.
func (t Transform2) IsIdentity() bool {
	return t.Offset.X == 0 && t.Offset.Y == 0 && t.Quarter%4 == 0 && !t.Mirror
}

// Apply maps p through the transform: mirror, rotate, translate.
func (t Transform2) Apply(p Point2) Point2 {
	if t.Mirror {
		p.X = -p.X
	}
	switch ((t.Quarter % 4) + 4) % 4 {
	case 1:
		p.X, p.Y = -p.Y, p.X
	case 2:
		p.X, p.Y = -p.X, -p.Y
	case 3:
		p.X, p.Y = p.Y, -p.X
	}
	return p.Add(t.Offset)
}

// ApplyRing maps every vertex of r through the transform. A mirror or
// an odd quarter count flips the winding, so the ring is reversed to
// preserve the sign convention.
func (t Transform2) ApplyRing(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = t.Apply(p)
	}
	if t.Mirror {
		out = out.Reversed()
	}
	return out
}

// ApplyPolygon maps the outer ring and every hole through the
// transform.
func (t Transform2) ApplyPolygon(p Polygon) Polygon {
	out := Polygon{Outer: t.ApplyRing(p.Outer)}
	if len(p.Holes) > 0 {
		out.Holes = make([]Ring, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = t.ApplyRing(h)
		}
	}
	return out
}

// Translate returns p shifted by (dx, dy).
func Translate(p Polygon, dx, dy float64) Polygon {
	return Transform2{Offset: Point2{X: dx, Y: dy}}.ApplyPolygon(p)
}

// MirrorX reflects p about the vertical line x = width/2, so a shape
// spanning [0, width] stays in place but reads right-to-left. This is
// the bottom-side probe flip: x' = width - x.
func MirrorX(p Polygon, width float64) Polygon {
	return Transform2{Mirror: true, Offset: Point2{X: width}}.ApplyPolygon(p)
}

// Rotate90 turns p a quarter turn counter-clockwise about the origin.
func Rotate90(p Polygon) Polygon {
	return Transform2{Quarter: 1}.ApplyPolygon(p)
}

// Scale stretches p by (sx, sy) about the given point. Anisotropic
// scales keep winding (both factors are expected positive).
func Scale(p Polygon, sx, sy float64, about Point2) Polygon {
	mapPt := func(pt Point2) Point2 {
		return Point2{
			X: about.X + (pt.X-about.X)*sx,
			Y: about.Y + (pt.Y-about.Y)*sy,
		}
	}
	out := Polygon{Outer: make(Ring, len(p.Outer))}
	for i, pt := range p.Outer {
		out.Outer[i] = mapPt(pt)
	}
	if len(p.Holes) > 0 {
		out.Holes = make([]Ring, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = make(Ring, len(h))
			for j, pt := range h {
				out.Holes[i][j] = mapPt(pt)
			}
		}
	}
	return out
}
