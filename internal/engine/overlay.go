package engine

import (
	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// BuildValidationScene composes the pre-cut sanity view: board outline,
// copper silhouette, and both probe sets in the same normalized frame
// the panel generator drills from. Read-only; it synthesizes nothing.
func BuildValidationScene(n *NormalizedInputs, copper []geometry.Polygon, probeRadius float64) *model.ValidationScene {
	return &model.ValidationScene{
		Board:        n.Outline,
		Copper:       copper,
		TopPoints:    n.Top,
		BottomPoints: n.Bottom,
		ProbeRadius:  probeRadius,
		Width:        n.Width,
		Height:       n.Height,
		Warnings:     n.Warnings,
	}
}

// normalizeCopper shifts the copper silhouette onto the fixture origin
// and snaps it to the coordinate grid.
func normalizeCopper(copper []geometry.Polygon, origin geometry.Point2) []geometry.Polygon {
	if len(copper) == 0 {
		return nil
	}
	out := make([]geometry.Polygon, len(copper))
	mapRing := func(r geometry.Ring) geometry.Ring {
		mapped := make(geometry.Ring, len(r))
		for i, p := range r {
			mapped[i] = geometry.RoundPoint(p.Sub(origin))
		}
		return mapped
	}
	for i, poly := range copper {
		out[i] = geometry.Polygon{Outer: mapRing(poly.Outer)}
		if len(poly.Holes) > 0 {
			out[i].Holes = make([]geometry.Ring, len(poly.Holes))
			for j, h := range poly.Holes {
				out[i].Holes[j] = mapRing(h)
			}
		}
	}
	return out
}
