package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// segment is one line segment in source-file coordinates, used to chain
// loose LINE and ARC entities into closed loops. Both the DXF and the
// KiCad Edge.Cuts readers feed this.
type segment struct {
	start geometry.Point2
	end   geometry.Point2
}

// chainTolerance is the maximum endpoint gap treated as a connection.
// It matches the 0.01 mm grid the normalizer later rounds to.
const chainTolerance = 0.01

// pointsToSegments converts a point sequence to connected segments.
func pointsToSegments(pts []geometry.Point2) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// pointsClose checks whether two points are within tolerance.
func pointsClose(a, b geometry.Point2, tolerance float64) bool {
	return a.Distance(b) <= tolerance
}

// chainSegments connects individual segments into closed loops. Open
// chains are dropped; the callers warn about the leftovers they care
// about.
func chainSegments(segs []segment, tolerance float64) []geometry.Ring {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var loops []geometry.Ring

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := geometry.Ring{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Closed when the chain returns to its first point.
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			loops = append(loops, chain[:len(chain)-1])
		}
	}

	// Largest first for a stable downstream order.
	sort.SliceStable(loops, func(i, j int) bool {
		return loops[i].Area() > loops[j].Area()
	})

	return loops
}

// boardFromLoops picks the largest closed loop as the board edge and
// keeps smaller loops inside it as holes (slots, milled cutouts).
// Loops outside the edge are counted and skipped: panelised files often
// carry fiducial or rail geometry that is not part of the board.
func boardFromLoops(loops []geometry.Ring) (model.BoardGeometry, []string, []string) {
	var board model.BoardGeometry
	var warnings, errs []string

	if len(loops) == 0 {
		errs = append(errs, "No closed board outline found")
		return board, warnings, errs
	}

	sort.SliceStable(loops, func(i, j int) bool {
		return loops[i].Area() > loops[j].Area()
	})
	outer := loops[0]
	if outer.SignedArea() < 0 {
		outer = outer.Reversed()
	}

	poly := geometry.Polygon{Outer: outer}
	stray := 0
	for _, loop := range loops[1:] {
		if len(loop) < 3 || loop.Area() < 1e-6 {
			continue
		}
		if !outer.Contains(loop[0]) {
			stray++
			continue
		}
		hole := loop
		if hole.SignedArea() > 0 {
			hole = hole.Reversed()
		}
		poly.Holes = append(poly.Holes, hole)
	}
	if stray > 0 {
		warnings = append(warnings, fmt.Sprintf("Ignored %d closed shape(s) outside the board outline", stray))
	}

	if err := poly.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("Board outline is not usable: %v", err))
		return board, warnings, errs
	}

	bb := outer.BoundingBox()
	board.Outline = poly
	board.Origin = geometry.RoundPoint(geometry.Pt(bb.MinX, bb.MinY))
	board.Width = geometry.Round(bb.Width())
	board.Height = geometry.Round(bb.Height())

	if math.Min(board.Width, board.Height) < 5 {
		warnings = append(warnings, fmt.Sprintf("Board outline is only %.2f x %.2f mm; check the drawing units are millimeters", board.Width, board.Height))
	}

	return board, warnings, errs
}
