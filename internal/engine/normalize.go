package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// sizeMismatchTolerance is how far a declared board dimension may
// disagree with the derived one before the normalizer flags it.
const sizeMismatchTolerance = 0.5

// NormalizedInputs is the fixture-local view of the imported data:
// everything relative to the board's top-left corner, Y growing
// downward, X mirrored about the vertical centerline when the bottom
// layer is probed. Every coordinate is on the 0.01 mm grid.
type NormalizedInputs struct {
	Top      []geometry.Point2
	Bottom   []geometry.Point2
	Outline  geometry.Polygon
	Origin   geometry.Point2 // absolute position of the fixture origin
	Width    float64         // work area X, mm
	Height   float64         // work area Y, mm
	Mirrored bool
	Warnings []string
}

// TPMinY returns the smallest normalized Y among the probe targets the
// hinge must clear: the top list, or the bottom list when no top points
// exist.
func (n *NormalizedInputs) TPMinY() float64 {
	pts := n.Top
	if len(pts) == 0 {
		pts = n.Bottom
	}
	minY := math.Inf(1)
	for _, p := range pts {
		if p.Y < minY {
			minY = p.Y
		}
	}
	return minY
}

// Normalize maps absolute board-file coordinates into the fixture
// frame. When the outline is absent it falls back to the bounding box
// of the test points plus any declared dimensions, warning on
// disagreements above 0.5 mm instead of failing: overhanging connectors
// are normal, a missing outline layer is not fatal.
func Normalize(board model.BoardGeometry, points []model.TestPoint, mirror bool) (*NormalizedInputs, error) {
	if len(points) == 0 {
		return nil, ErrNoTestPoints
	}

	out := &NormalizedInputs{Mirrored: mirror}

	var origin geometry.Point2
	if len(board.Outline.Outer) >= 3 {
		bb := board.Outline.BoundingBox()
		origin = geometry.Pt(bb.MinX, bb.MinY)
		out.Width = geometry.Round(bb.Width())
		out.Height = geometry.Round(bb.Height())
		checkDeclared(out, "width", board.Width, out.Width)
		checkDeclared(out, "height", board.Height, out.Height)
	} else {
		out.Warnings = append(out.Warnings, "board outline missing, falling back to test point bounds")
		bb := pointBounds(points)
		origin = geometry.Pt(bb.MinX, bb.MinY)
		out.Width = geometry.Round(bb.Width())
		out.Height = geometry.Round(bb.Height())
		checkDeclared(out, "width", board.Width, out.Width)
		checkDeclared(out, "height", board.Height, out.Height)
		// A declared dimension beats one derived from point extents.
		if board.Width > 0 {
			out.Width = geometry.Round(board.Width)
		}
		if board.Height > 0 {
			out.Height = geometry.Round(board.Height)
		}
	}

	out.Origin = origin

	norm := func(p geometry.Point2) geometry.Point2 {
		x := geometry.Round(p.X - origin.X)
		y := geometry.Round(p.Y - origin.Y)
		if mirror {
			x = out.Width - x
		}
		return geometry.Pt(x, y)
	}

	for _, tp := range points {
		p := norm(tp.Position)
		if tp.Side == model.SideBottom {
			out.Bottom = append(out.Bottom, p)
		} else {
			out.Top = append(out.Top, p)
		}
	}

	if len(board.Outline.Outer) >= 3 {
		out.Outline = normalizeOutline(board.Outline, norm, mirror)
	} else {
		out.Outline = geometry.Rectangle(out.Width, out.Height)
	}

	return out, nil
}

func checkDeclared(out *NormalizedInputs, dim string, declared, derived float64) {
	if declared > 0 && math.Abs(declared-derived) > sizeMismatchTolerance {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("board %s mismatch: declared %.2f mm, derived %.2f mm", dim, declared, derived))
	}
}

func pointBounds(points []model.TestPoint) geometry.Rect {
	bb := geometry.Rect{
		MinX: points[0].Position.X, MinY: points[0].Position.Y,
		MaxX: points[0].Position.X, MaxY: points[0].Position.Y,
	}
	for _, tp := range points[1:] {
		bb.MinX = math.Min(bb.MinX, tp.Position.X)
		bb.MinY = math.Min(bb.MinY, tp.Position.Y)
		bb.MaxX = math.Max(bb.MaxX, tp.Position.X)
		bb.MaxY = math.Max(bb.MaxY, tp.Position.Y)
	}
	return bb
}

func normalizeOutline(poly geometry.Polygon, norm func(geometry.Point2) geometry.Point2, mirror bool) geometry.Polygon {
	mapRing := func(r geometry.Ring) geometry.Ring {
		out := make(geometry.Ring, len(r))
		for i, p := range r {
			out[i] = norm(p)
		}
		// Mirroring flips the winding; reverse to keep the convention.
		if mirror {
			out = out.Reversed()
		}
		return out
	}
	out := geometry.Polygon{Outer: mapRing(poly.Outer)}
	if len(poly.Holes) > 0 {
		out.Holes = make([]geometry.Ring, len(poly.Holes))
		for i, h := range poly.Holes {
			out.Holes[i] = mapRing(h)
		}
	}
	return out
}
