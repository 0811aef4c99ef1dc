package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

func generateDefault(t *testing.T, points []model.TestPoint) []model.Panel {
	t.Helper()
	board := model.BoardGeometry{Outline: geometry.Rectangle(100, 50), Width: 100, Height: 50}
	hw := model.DefaultHardware()
	n, err := Normalize(board, points, false)
	require.NoError(t, err)
	env, err := SolveEnvelope(n, hw)
	require.NoError(t, err)
	panels, err := GeneratePanels(n, env, hw)
	require.NoError(t, err)
	return panels
}

func defaultPoints() []model.TestPoint {
	return []model.TestPoint{
		{Position: geometry.Pt(10, 5), Side: model.SideTop},
	}
}

func findPanel(t *testing.T, panels []model.Panel, name string) model.Panel {
	t.Helper()
	for _, p := range panels {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("panel %s not generated", name)
	return model.Panel{}
}

func TestGeneratePanels_FullSetInOrder(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	require.Len(t, panels, len(PanelOrder))
	for i, p := range panels {
		assert.Equal(t, PanelOrder[i], p.Name, "panel %d out of order", i)
		assert.NoError(t, p.Outline.Validate(), "panel %s", p.Name)
		assert.Greater(t, p.Outline.Area(), 0.0, "panel %s", p.Name)
	}
}

func TestGeneratePanels_HeadPlatesShareBorePattern(t *testing.T) {
	points := []model.TestPoint{
		{Position: geometry.Pt(10, 5), Side: model.SideTop},
		{Position: geometry.Pt(80, 40), Side: model.SideTop},
		{Position: geometry.Pt(30, 20), Side: model.SideBottom},
	}
	panels := generateDefault(t, points)

	base := findPanel(t, panels, "head_base")
	top := findPanel(t, panels, "head_top")

	// The probe bores are the first holes cut; both plates must carry
	// bit-identical copies or the pins bind.
	require.GreaterOrEqual(t, len(base.Outline.Holes), 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, base.Outline.Holes[i], top.Outline.Holes[i], "bore %d diverges between the plates", i)
	}
	assert.Len(t, top.Outline.Holes, len(base.Outline.Holes)+2, "head_top adds only the cable screw holes")
}

func TestGeneratePanels_OtherPanelsIgnoreProbeChanges(t *testing.T) {
	a := generateDefault(t, defaultPoints())
	b := generateDefault(t, []model.TestPoint{
		{Position: geometry.Pt(10, 5), Side: model.SideTop},
		{Position: geometry.Pt(55, 30), Side: model.SideTop},
	})

	dependent := map[string]bool{
		"head_base": true, "head_top": true,
	}
	for i := range a {
		if dependent[a[i].Name] {
			assert.NotEqual(t, a[i].Outline, b[i].Outline, "%s must reflect the extra probe", a[i].Name)
			continue
		}
		assert.Equal(t, a[i].Outline, b[i].Outline,
			"%s must not depend on test point data", a[i].Name)
	}
}

func TestGeneratePanels_CarrierScaling(t *testing.T) {
	panels := generateDefault(t, defaultPoints())

	retention := findPanel(t, panels, "carrier_retention")
	require.NotEmpty(t, retention.Outline.Holes)
	cavity := retention.Outline.Holes[0].BoundingBox()
	// scale_x = 1 − 2·border/width about the outline's own centre.
	assert.InDelta(t, 100*(1-2*0.8/100), cavity.Width(), 1e-6)
	assert.InDelta(t, 50*(1-2*0.8/50), cavity.Height(), 1e-6)
	assert.InDelta(t, 9.1+50, cavity.Center().X, 1e-6)
	assert.InDelta(t, 9.1+25, cavity.Center().Y, 1e-6)

	clearance := findPanel(t, panels, "carrier_clearance")
	open := clearance.Outline.Holes[0].BoundingBox()
	assert.InDelta(t, 100*(1+0.125/100), open.Width(), 1e-6,
		"negative border oversizes the clearance cavity")
	assert.Greater(t, open.Width(), cavity.Width())
}

func TestGeneratePanels_CarriersMatchHeadFootprint(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	carrier := findPanel(t, panels, "carrier_retention")
	bb := carrier.Outline.BoundingBox()
	assert.InDelta(t, 118.2, bb.Width(), 1e-9)
	assert.InDelta(t, 50+2*9.1, bb.Height(), 1e-9)
	assert.Len(t, carrier.Outline.Holes, 5, "cavity plus four index screws")
}

func TestGeneratePanels_HeadSideTabsProtrude(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	side := findPanel(t, panels, "head_side_left")
	bb := side.Outline.BoundingBox()
	// Body is headY long and headZ tall; tabs add a material thickness
	// beyond each long edge.
	assert.InDelta(t, 111.3965, bb.Width(), 1e-3)
	assert.InDelta(t, 13.4+2*3.0, bb.Height(), 1e-3)
	require.Len(t, side.Outline.Holes, 1, "pivot bore only")

	right := findPanel(t, panels, "head_side_right")
	assert.Equal(t, side.Outline, right.Outline, "sides are cut as an identical pair")
}

func TestGeneratePanels_RailReliefs(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	front := findPanel(t, panels, "base_front_support")
	middle := findPanel(t, panels, "base_support")
	back := findPanel(t, panels, "base_back_support")

	assert.Equal(t, front.Outline, back.Outline, "front and back rails are the same cut")
	assert.Len(t, front.Outline.Outer, len(middle.Outline.Outer)+8,
		"two head reliefs add four vertices each")

	fb := front.Outline.BoundingBox()
	mb := middle.Outline.BoundingBox()
	assert.InDelta(t, mb.Width(), fb.Width(), 1e-9)
	// Rails span the base interior plus a tab into each side wall.
	assert.InDelta(t, 126.2-2*3.0+2*3.0, fb.Width(), 1e-9)
	assert.InDelta(t, 6.1, mb.Height(), 1e-9)
}

func TestGeneratePanels_BaseSideCarriesRailSlots(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	side := findPanel(t, panels, "base_side_left")

	bb := side.Outline.BoundingBox()
	assert.InDelta(t, 123.4965, bb.Width(), 1e-3)
	assert.InDelta(t, 22.9, bb.Height(), 1e-3)
	// Three rails, two slots each, plus hinge and latch pivot bores.
	assert.Len(t, side.Outline.Holes, 3*2+2)
}

func TestGeneratePanels_SpacerPocketsAlignWithClampScrews(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	spacer := findPanel(t, panels, "spacer_left")
	head := findPanel(t, panels, "head_base")

	require.Len(t, spacer.Outline.Holes, 4)
	// The spacers' nut pockets and the head plates' clamp shafts are
	// concentric: same centres, different cutouts.
	screws := head.Outline.Holes[len(head.Outline.Holes)-4:]
	for i, pocket := range spacer.Outline.Holes {
		assert.InDelta(t, screws[i].BoundingBox().Center().X, pocket.BoundingBox().Center().X, 1e-6, "pocket %d", i)
		assert.InDelta(t, screws[i].BoundingBox().Center().Y, pocket.BoundingBox().Center().Y, 1e-6, "pocket %d", i)
	}
}

func TestGeneratePanels_LatchGeometry(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	latch := findPanel(t, panels, "latch_left")

	require.Len(t, latch.Outline.Holes, 1)
	pivot := latch.Outline.Holes[0].BoundingBox()
	assert.InDelta(t, 0, pivot.Center().X, 1e-9, "pivot bore on the cap centre")
	assert.InDelta(t, 0, pivot.Center().Y, 1e-9)

	bb := latch.Outline.BoundingBox()
	// Stadium of radius pivotSupportR reaching over both plates.
	assert.InDelta(t, 13.4+2*3.0+2*6.1, bb.Width(), 1e-9)
	assert.InDelta(t, 2*6.1, bb.Height(), 1e-9)
}

func TestGeneratePanels_LatchSupportPocket(t *testing.T) {
	panels := generateDefault(t, defaultPoints())
	sup := findPanel(t, panels, "latch_support")

	bb := sup.Outline.BoundingBox()
	assert.InDelta(t, 4*6.1, bb.Width(), 1e-9)
	assert.InDelta(t, 2*6.1, bb.Height(), 1e-9)
	// The capture pocket is spliced into the boundary, not a hole.
	assert.Empty(t, sup.Outline.Holes)
	assert.Len(t, sup.Outline.Outer, 4+12, "rectangle plus the pocket profile")
}

func TestGeneratePanels_DegenerateBoreNamesPanel(t *testing.T) {
	board := model.BoardGeometry{Outline: geometry.Rectangle(100, 50), Width: 100, Height: 50}
	hw := model.DefaultHardware()
	hw.PogoRadius = 500 // bore cannot fit any plate

	n, err := Normalize(board, defaultPoints(), false)
	require.NoError(t, err)
	env, err := SolveEnvelope(n, hw)
	require.NoError(t, err)

	_, err = GeneratePanels(n, env, hw)
	var perr *PanelError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "head_base", perr.Name)
}
