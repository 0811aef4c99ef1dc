package engine

import (
	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// rowBreaks marks the panels that open a new layout row. The head
// group, the base group, and the small parts each get a row of their
// own so the sheet stays roughly square.
var rowBreaks = map[string]bool{
	"base_side_left": true,
	"latch_left":     true,
}

// PackLayout places panels left to right in their given order,
// separated by pad, starting a new row at each row-break panel. It
// never rotates and never optimizes: the same input always yields the
// same sheet, byte for byte.
func PackLayout(panels []model.Panel, pad float64) *model.LayoutSheet {
	sheet := &model.LayoutSheet{Panels: make([]model.Panel, len(panels))}

	x, rowY, rowH := 0.0, 0.0, 0.0
	for i, p := range panels {
		if rowBreaks[p.Name] && i > 0 {
			rowY += rowH + pad
			x = 0
			rowH = 0
		}

		bb := p.Outline.BoundingBox()
		p.Placement = geometry.Transform2{Offset: geometry.Pt(x-bb.MinX, rowY-bb.MinY)}
		sheet.Panels[i] = p

		placed := p.PlacedBounds()
		if i == 0 {
			sheet.Bounds = placed
		} else {
			sheet.Bounds = sheet.Bounds.Union(placed)
		}

		x += bb.Width() + pad
		if h := bb.Height(); h > rowH {
			rowH = h
		}
	}
	return sheet
}
