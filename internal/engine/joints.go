package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/JigCut/internal/geometry"
)

// Phase selects which of the two complementary tab sets a finger joint
// produces. Two mating edges use opposite phases.
type Phase int

const (
	PhaseEven Phase = iota // tabs at segments 0, 2, 4, ... (both ends)
	PhaseOdd               // tabs at segments 1, 3, 5, ...
)

func (p Phase) String() string {
	if p == PhaseOdd {
		return "Odd"
	}
	return "Even"
}

// JointSpec parameterizes one finger-jointed edge. Derived per call,
// never stored.
type JointSpec struct {
	EdgeLength     float64
	FingerCount    int
	PanelThickness float64
	Kerf           float64
}

// fingerPitch is the target tab width FingerCountFor aims for.
const fingerPitch = 15.0

// FingerCountFor returns the default finger count for an edge: the odd
// count nearest a 15 mm pitch, never below 3.
func FingerCountFor(edgeLength float64) int {
	n := int(math.Round(edgeLength / fingerPitch))
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// fingerIntervals returns the [start, end] spans of the phase's
// segments along the edge, before any kerf adjustment.
func fingerIntervals(spec JointSpec, phase Phase) ([][2]float64, error) {
	n := spec.FingerCount
	if n < 3 || n%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFingerCount, n)
	}
	w := spec.EdgeLength / float64(n)
	first := 0
	if phase == PhaseOdd {
		first = 1
	}
	var spans [][2]float64
	for i := first; i < n; i += 2 {
		spans = append(spans, [2]float64{float64(i) * w, float64(i+1) * w})
	}
	return spans, nil
}

// FingerJoint produces the tab rectangles for one edge: the edge runs
// along X from 0 to EdgeLength, tabs extend from y=0 to the panel
// thickness. Kerf compensation grows each mating flank by Kerf/2 so the
// cut part presses tight; flanks at the edge ends are panel boundary,
// not mating surface, and stay put. This is the only place kerf growth
// is applied.
func FingerJoint(spec JointSpec, phase Phase) ([]geometry.Polygon, error) {
	spans, err := fingerIntervals(spec, phase)
	if err != nil {
		return nil, err
	}
	k := spec.Kerf / 2
	tabs := make([]geometry.Polygon, 0, len(spans))
	for _, s := range spans {
		start, end := s[0], s[1]
		if start > 0 {
			start -= k
		}
		if end < spec.EdgeLength {
			end += k
		}
		tabs = append(tabs, geometry.RectangleAt(start, 0, end-start, spec.PanelThickness))
	}
	return tabs, nil
}

// FingerSlots produces the mating slot rectangles for the given phase,
// shrunk by Kerf/2 per flank. Cut as interior holes in the mating
// panel, they receive the opposite panel's FingerJoint tabs of the same
// phase.
func FingerSlots(spec JointSpec, phase Phase) ([]geometry.Polygon, error) {
	spans, err := fingerIntervals(spec, phase)
	if err != nil {
		return nil, err
	}
	k := spec.Kerf / 2
	slots := make([]geometry.Polygon, 0, len(spans))
	for _, s := range spans {
		start, end := s[0]+k, s[1]-k
		slots = append(slots, geometry.RectangleAt(start, 0, end-start, spec.PanelThickness))
	}
	return slots, nil
}

// CapturePocket returns the T-profile cutout that traps a hex nut
// against rotation: a screw-shaft slot from the opening at y=0 down to
// threadLen, crossed by a rectangular pocket holding the nut edgewise.
// The shaft continues one screw diameter past the pocket so the thread
// engages fully. Centered on x=0, opening toward -Y.
//
// Used both as an interior hole and, spliced into a boundary, as an
// edge-opening notch.
func CapturePocket(screwD, nutF2F, nutTh, threadLen float64) geometry.Polygon {
	sr := screwD / 2
	nr := nutF2F / 2
	py := threadLen - screwD - nutTh
	return geometry.Polygon{Outer: geometry.Ring{
		{X: -sr, Y: 0},
		{X: sr, Y: 0},
		{X: sr, Y: py},
		{X: nr, Y: py},
		{X: nr, Y: py + nutTh},
		{X: sr, Y: py + nutTh},
		{X: sr, Y: threadLen},
		{X: -sr, Y: threadLen},
		{X: -sr, Y: py + nutTh},
		{X: -nr, Y: py + nutTh},
		{X: -nr, Y: py},
		{X: -sr, Y: py},
	}}
}

// NutPocket returns the flat rectangular cutout for a hex nut lying in
// the panel plane: flats against the short sides, corners cleared by
// the long sides. Centered on the origin.
func NutPocket(nutF2F, nutC2C float64) geometry.Polygon {
	return geometry.RectangleAt(-nutF2F/2, -nutC2C/2, nutF2F, nutC2C)
}

// PogoHole returns the bore for one spring probe. It is intentionally
// undersized relative to the pin so the hole can be reamed to a press
// fit after cutting; that is a manufacturing step, not a defect.
func PogoHole(radius float64, segments int) geometry.Polygon {
	return geometry.Circle(radius, segments)
}
