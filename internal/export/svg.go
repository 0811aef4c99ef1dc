package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// sceneMargin is the white border around the validation drawing, mm.
const sceneMargin = 5.0

// ExportSVG writes the packed sheet as an SVG sized in millimeters.
func ExportSVG(path string, sheet *model.LayoutSheet) error {
	if len(sheet.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	WriteSheetSVG(f, sheet)
	return f.Close()
}

// ExportValidationSVG writes the probe validation overlay as an SVG.
func ExportValidationSVG(path string, scene *model.ValidationScene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	WriteValidationSVG(f, scene)
	return f.Close()
}

// WriteSheetSVG renders the packed sheet to w. The blank is drawn in
// wood color with each panel filled in the shared layout palette,
// holes punched via the even-odd fill rule.
func WriteSheetSVG(w io.Writer, sheet *model.LayoutSheet) {
	sheetW, sheetH := sheet.Size()
	vw := int(math.Ceil(sheetW))
	vh := int(math.Ceil(sheetH))

	canvas := svg.New(w)
	canvas.StartviewUnit(vw, vh, "mm", 0, 0, vw, vh)
	canvas.Title("JigCut cut sheet")

	// Stock blank
	canvas.Rect(0, 0, vw, vh, "fill:#d2b48c;stroke:#646464;stroke-width:0.5")

	for i, panel := range sheet.Panels {
		col := panelColors[i%len(panelColors)]
		placed := panel.Placed()
		style := fmt.Sprintf("fill:rgb(%d,%d,%d);fill-rule:evenodd;stroke:#1e1e1e;stroke-width:0.25",
			col.R, col.G, col.B)
		canvas.Path(polygonPath(placed, sheet.Bounds.MinX, sheet.Bounds.MinY), style)

		c := panel.PlacedBounds().Center()
		canvas.Text(int(c.X-sheet.Bounds.MinX), int(c.Y-sheet.Bounds.MinY), panel.Name,
			"font-family:sans-serif;font-size:3px;text-anchor:middle;fill:#1e1e1e")
	}

	canvas.End()
}

// WriteValidationSVG renders the pre-cut sanity view to w: the board
// semi-opaque, copper in copper color, top probes green, bottom probes
// red.
func WriteValidationSVG(w io.Writer, scene *model.ValidationScene) {
	vw := int(math.Ceil(scene.Width + 2*sceneMargin))
	vh := int(math.Ceil(scene.Height + 2*sceneMargin))

	canvas := svg.New(w)
	canvas.StartviewUnit(vw, vh, "mm", -int(sceneMargin), -int(sceneMargin), vw, vh)
	canvas.Title("JigCut probe validation")

	// Board silhouette, semi-opaque so the copper beneath stays visible
	canvas.Path(polygonPath(scene.Board, 0, 0),
		"fill:#4caf50;fill-opacity:0.25;fill-rule:evenodd;stroke:#1b5e20;stroke-width:0.3")

	// Copper on the probed face
	for _, c := range scene.Copper {
		canvas.Path(polygonPath(c, 0, 0),
			"fill:#b87333;fill-opacity:0.8;fill-rule:evenodd;stroke:none")
	}

	// Probe targets
	for _, p := range scene.TopPoints {
		circlePath(canvas, p.X, p.Y, scene.ProbeRadius,
			"fill:#2e7d32;stroke:#1b5e20;stroke-width:0.1")
	}
	for _, p := range scene.BottomPoints {
		circlePath(canvas, p.X, p.Y, scene.ProbeRadius,
			"fill:#c62828;stroke:#8e0000;stroke-width:0.1")
	}

	canvas.End()
}

// polygonPath builds the path data for a polygon with holes, shifted
// so (ox, oy) lands on the viewBox origin.
func polygonPath(p geometry.Polygon, ox, oy float64) string {
	var b strings.Builder
	ringPath(&b, p.Outer, ox, oy)
	for _, h := range p.Holes {
		ringPath(&b, h, ox, oy)
	}
	return b.String()
}

func ringPath(b *strings.Builder, r geometry.Ring, ox, oy float64) {
	for i, pt := range r {
		if i == 0 {
			fmt.Fprintf(b, "M%.2f %.2f", pt.X-ox, pt.Y-oy)
		} else {
			fmt.Fprintf(b, " L%.2f %.2f", pt.X-ox, pt.Y-oy)
		}
	}
	b.WriteString(" Z ")
}

// circlePath emits a circle as two arcs; svgo's Circle only takes
// integer coordinates, too coarse for sub-millimeter probe targets.
func circlePath(canvas *svg.SVG, cx, cy, r float64, style string) {
	d := fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 1 0 %.2f %.2f A%.2f %.2f 0 1 0 %.2f %.2f Z",
		cx-r, cy, r, r, cx+r, cy, r, r, cx-r, cy)
	canvas.Path(d, style)
}
