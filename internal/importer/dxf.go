package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXFOutline reads a board outline from a mechanical DXF drawing.
// Closed shapes (LWPOLYLINE, CIRCLE, chains of connected LINEs/ARCs)
// become candidate loops; the largest is the board edge, loops inside
// it become holes. DXF drawings carry no probe targets, so Points
// stays empty and test points must come from a tabular source.
func ImportDXFOutline(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var loops []geometry.Ring
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			ring := lwPolylineToRing(e)
			if len(ring) >= 3 {
				loops = append(loops, ring)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			loops = append(loops, circleRing(e, 64))

		case *entity.Arc:
			pts := arcPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: geometry.Pt(e.Start[0], e.Start[1]),
				end:   geometry.Pt(e.End[0], e.End[1]),
			})

		default:
			// Text, dimensions and construction geometry are not cuts.
		}
	}

	loops = append(loops, chainSegments(segments, chainTolerance)...)

	board, warns, errs := boardFromLoops(loops)
	result.Board = board
	result.Warnings = append(result.Warnings, warns...)
	result.Errors = append(result.Errors, errs...)
	return result
}

// lwPolylineToRing converts a DXF LWPOLYLINE to a Ring. Bulge values on
// vertices produce interpolated arc segments.
func lwPolylineToRing(lw *entity.LwPolyline) geometry.Ring {
	var ring geometry.Ring

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := geometry.Pt(v[0], v[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			// This vertex bulges: interpolate an arc to the next vertex.
			nextIdx := (i + 1) % len(lw.Vertices)
			next := geometry.Pt(lw.Vertices[nextIdx][0], lw.Vertices[nextIdx][1])
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// All but the last point; the next vertex adds itself.
			ring = append(ring, arcPts[:len(arcPts)-1]...)
		} else {
			ring = append(ring, current)
		}
	}

	return ring
}

// bulgeArcPoints generates points along an arc defined by two endpoints
// and a DXF bulge factor, the tangent of a quarter of the included
// angle.
func bulgeArcPoints(p1, p2 geometry.Point2, bulge float64, numSegments int) []geometry.Point2 {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return []geometry.Point2{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// The centre sits perpendicular to the chord midpoint, on the left
	// of travel for a counterclockwise minor arc. dist goes negative
	// for major arcs, which flips it to the bulge side.
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)

	if bulge < 0 {
		// Clockwise arc.
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]geometry.Point2, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, geometry.Pt(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle)))
	}
	return pts
}

// circleRing approximates a circle as a regular polygon.
func circleRing(c *entity.Circle, numSegments int) geometry.Ring {
	ring := make(geometry.Ring, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		ring[i] = geometry.Pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return ring
}

// arcPoints converts a DXF ARC entity to a point run.
func arcPoints(a *entity.Arc, numSegments int) []geometry.Point2 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geometry.Point2, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geometry.Pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return pts
}
