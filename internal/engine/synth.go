package engine

import (
	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// Synthesize runs the whole pipeline: normalize, solve the hinge,
// generate the seventeen panels, pack the sheet. It is a pure function
// of its inputs; any failure aborts the run and comes back as a
// *SynthesisError carrying the stage (and panel, when known) that died.
func Synthesize(board model.BoardGeometry, points []model.TestPoint, hw model.HardwareSpec, mirrorBottom bool) (*model.LayoutSheet, error) {
	n, err := Normalize(board, points, mirrorBottom)
	if err != nil {
		return nil, stageErr("normalize", err)
	}
	env, err := SolveEnvelope(n, hw)
	if err != nil {
		return nil, stageErr("solve", err)
	}
	panels, err := GeneratePanels(n, env, hw)
	if err != nil {
		return nil, stageErr("panels", err)
	}
	sheet := PackLayout(panels, hw.LaserPad)
	sheet.Warnings = append(sheet.Warnings, n.Warnings...)
	return sheet, nil
}

// RenderValidation normalizes the inputs without mirroring and returns
// the overlay scene for visual alignment checks. copper may be nil.
func RenderValidation(board model.BoardGeometry, points []model.TestPoint, hw model.HardwareSpec, copper []geometry.Polygon) (*model.ValidationScene, error) {
	n, err := Normalize(board, points, false)
	if err != nil {
		return nil, stageErr("normalize", err)
	}
	return BuildValidationScene(n, normalizeCopper(copper, n.Origin), hw.PogoRadius), nil
}

// Coupon dimensions. Small enough for scrap stock, large enough to
// carry every joint feature.
const (
	couponEdge   = 60.0
	couponHeight = 20.0
)

// TestCut builds a two-plate fit coupon: mating finger edges, a screw
// capture pocket, a nut pocket, and a row of probe bores, all at the
// current hardware settings. Cutting and assembling it verifies kerf
// and pocket sizing before committing a full fixture to material.
func TestCut(hw model.HardwareSpec) (*model.LayoutSheet, error) {
	m := hw.MaterialThickness
	spec := JointSpec{
		EdgeLength:     couponEdge,
		FingerCount:    FingerCountFor(couponEdge),
		PanelThickness: m,
		Kerf:           hw.Kerf,
	}

	even, err := tabSpans(spec, PhaseEven)
	if err != nil {
		return nil, stageErr("testcut", err)
	}
	odd, err := tabSpans(spec, PhaseOdd)
	if err != nil {
		return nil, stageErr("testcut", err)
	}

	// Plate A: even tabs on the lower edge, probe bores across the middle.
	ringA := assembleRing(
		edgeRun(straightRun(couponEdge), geometry.Transform2{}),
		edgeRun(straightRun(couponHeight), geometry.Transform2{Quarter: 1, Offset: geometry.Pt(couponEdge, 0)}),
		edgeRun(tabRun(even, couponEdge, m), geometry.Transform2{Quarter: 2, Offset: geometry.Pt(couponEdge, couponHeight)}),
		edgeRun(straightRun(couponHeight), geometry.Transform2{Quarter: 3, Offset: geometry.Pt(0, couponHeight)}),
	)
	plateA := geometry.Polygon{Outer: ringA}
	for i := 0; i < 5; i++ {
		bore := PogoHole(hw.PogoRadius, hw.Segments)
		plateA, err = geometry.Difference(plateA, geometry.Translate(bore, 10+10*float64(i), couponHeight/2))
		if err != nil {
			return nil, stageErr("testcut", &PanelError{Name: "test_joint_even", Reason: err.Error()})
		}
	}

	// Plate B: odd tabs on the upper edge, a capture pocket opening on
	// the lower edge, and a loose nut pocket beside it.
	pocket := CapturePocket(hw.ScrewDiameter, hw.NutFlatToFlat, hw.NutThickness, hw.ScrewThreadLength-m)
	ringB := assembleRing(
		edgeRun(tabRun(odd, couponEdge, m), geometry.Transform2{}),
		edgeRun(straightRun(couponHeight), geometry.Transform2{Quarter: 1, Offset: geometry.Pt(couponEdge, 0)}),
		edgeRun(notchRun(couponEdge, []float64{couponEdge / 2}, pocket), geometry.Transform2{Quarter: 2, Offset: geometry.Pt(couponEdge, couponHeight)}),
		edgeRun(straightRun(couponHeight), geometry.Transform2{Quarter: 3, Offset: geometry.Pt(0, couponHeight)}),
	)
	plateB := geometry.Polygon{Outer: ringB}
	nut := NutPocket(hw.NutFlatToFlat, hw.NutCornerToCorner)
	plateB, err = geometry.Difference(plateB, geometry.Translate(nut, 48, couponHeight/2))
	if err != nil {
		return nil, stageErr("testcut", &PanelError{Name: "test_joint_odd", Reason: err.Error()})
	}

	panels := []model.Panel{
		{Name: "test_joint_even", Outline: plateA},
		{Name: "test_joint_odd", Outline: plateB},
	}
	for _, p := range panels {
		if err := p.Outline.Validate(); err != nil {
			return nil, stageErr("testcut", &PanelError{Name: p.Name, Reason: err.Error()})
		}
	}
	return PackLayout(panels, hw.LaserPad), nil
}
