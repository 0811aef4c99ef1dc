package preview

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// meshCells controls marching cubes tessellation resolution.
const meshCells = 200

// SheetSolid extrudes every placed panel to the material thickness,
// producing a flat preview of the cut sheet. The blank's underside
// rests on the z=0 plane.
func SheetSolid(sheet *model.LayoutSheet, thickness float64) (sdf.SDF3, error) {
	if len(sheet.Panels) == 0 {
		return nil, errors.New("no panels to preview")
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("material thickness must be positive, got %g", thickness)
	}

	solids := make([]sdf.SDF3, 0, len(sheet.Panels))
	for i := range sheet.Panels {
		panel := &sheet.Panels[i]
		s, err := panelSolid(panel.Placed(), thickness)
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", panel.Name, err)
		}
		solids = append(solids, s)
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	return sdf.Union3D(solids...), nil
}

// panelSolid extrudes one panel profile, bores subtracted.
func panelSolid(poly geometry.Polygon, thickness float64) (sdf.SDF3, error) {
	profile, err := ringSDF(poly.Outer)
	if err != nil {
		return nil, err
	}
	for _, hole := range poly.Holes {
		h, err := ringSDF(hole)
		if err != nil {
			return nil, err
		}
		profile = sdf.Difference2D(profile, h)
	}

	// Extrude3D centres the slab on z=0; lift it so the underside
	// sits at z=0.
	slab := sdf.Extrude3D(profile, thickness)
	return sdf.Transform3D(slab, sdf.Translate3d(v3.Vec{Z: thickness / 2})), nil
}

// ringSDF builds a 2D profile from a ring, normalizing winding to the
// CCW order sdf.Polygon2D expects.
func ringSDF(ring geometry.Ring) (sdf.SDF2, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("profile ring needs 3 vertices, got %d", len(ring))
	}
	if ring.SignedArea() < 0 {
		ring = ring.Reversed()
	}
	verts := make([]v2.Vec, len(ring))
	for i, p := range ring {
		verts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return sdf.Polygon2D(verts)
}
