package export

import (
	"fmt"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names understood by the common laser front-ends.
const (
	dxfCutLayer     = "cut"
	dxfEngraveLayer = "engrave"

	engraveTextHeight = 3.0 // mm
)

// ExportDXF writes the packed sheet as a DXF drawing. Panel outlines
// and interior cutouts go on the "cut" layer as closed LWPOLYLINEs;
// panel names go on the "engrave" layer as text so the plates stay
// identifiable after they fall out of the blank.
func ExportDXF(path string, sheet *model.LayoutSheet) error {
	if len(sheet.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(dxfCutLayer, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to create %s layer: %w", dxfCutLayer, err)
	}
	if _, err := d.AddLayer(dxfEngraveLayer, color.Cyan, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to create %s layer: %w", dxfEngraveLayer, err)
	}

	for _, panel := range sheet.Panels {
		placed := panel.Placed()

		if err := d.ChangeLayer(dxfCutLayer); err != nil {
			return err
		}
		if err := dxfRing(d, placed.Outer); err != nil {
			return fmt.Errorf("panel %s: %w", panel.Name, err)
		}
		for _, h := range placed.Holes {
			if err := dxfRing(d, h); err != nil {
				return fmt.Errorf("panel %s: %w", panel.Name, err)
			}
		}

		if err := d.ChangeLayer(dxfEngraveLayer); err != nil {
			return err
		}
		c := placed.BoundingBox().Center()
		if _, err := d.Text(panel.Name, c.X, c.Y, 0.0, engraveTextHeight); err != nil {
			return fmt.Errorf("panel %s: %w", panel.Name, err)
		}
	}

	return d.SaveAs(path)
}

// dxfRing appends one closed polyline to the drawing.
func dxfRing(d *drawing.Drawing, ring geometry.Ring) error {
	if len(ring) < 2 {
		return nil
	}
	verts := make([][]float64, len(ring))
	for i, p := range ring {
		verts[i] = []float64{p.X, p.Y}
	}
	_, err := d.LwPolyline(true, verts...)
	return err
}
