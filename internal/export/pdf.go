// Package export renders a packed fixture layout into shop-floor
// artifacts: DXF and SVG cut files, a PDF report, QR panel labels, a
// BOM workbook, and a GRBL laser job.
package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// JobMeta stamps the printed artifacts so a cut sheet, its labels, and
// its report can be matched up on the bench later.
type JobMeta struct {
	Name      string
	ID        string
	Generated time.Time
}

// NewJobMeta returns a JobMeta for one run with a fresh short ID.
func NewJobMeta(name string) JobMeta {
	return JobMeta{
		Name:      name,
		ID:        uuid.New().String()[:8],
		Generated: time.Now(),
	}
}

// panelColor represents an RGB fill for a placed panel.
type panelColor struct {
	R, G, B int
}

// panelColors mirrors the color scheme used in the UI sheet canvas widget.
var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates the cut report: the packed sheet rendered to
// scale, a per-panel breakdown, the hardware configuration, and any
// warnings the run accumulated.
func ExportPDF(path string, sheet *model.LayoutSheet, hw model.HardwareSpec, meta JobMeta) error {
	if len(sheet.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSheetPage(pdf, sheet, meta)

	pdf.AddPage()
	renderSummaryPage(pdf, sheet)

	pdf.AddPage()
	renderHardwarePage(pdf, sheet, hw)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws the packed sheet to scale on the current page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet *model.LayoutSheet, meta JobMeta) {
	sheetW, sheetH := sheet.Size()

	// Title with the job stamp on the right
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cut Sheet: %s (%.0f x %.0f mm)", meta.Name, sheetW, sheetH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, marginTop)
	stamp := fmt.Sprintf("Job %s - %s", meta.ID, meta.Generated.Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, stamp, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// Stats line
	stats := model.SheetStats(sheet)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Panels: %d | Interior cuts: %d | Material: %.0f of %.0f mm² (%.1f%%) | Cut length: %.2f m",
		stats.PanelCount, stats.HoleCount, stats.PanelArea, stats.SheetArea, stats.Utilization, stats.CutLengthM)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Calculate scale to fit the sheet within the drawing area
	scaleX := drawWidth / sheetW
	scaleY := drawHeight / sheetH
	scale := math.Min(scaleX, scaleY)

	canvasW := sheetW * scale
	canvasH := sheetH * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(p geometry.Point2) (float64, float64) {
		return offsetX + (p.X-sheet.Bounds.MinX)*scale, offsetY + (p.Y-sheet.Bounds.MinY)*scale
	}

	// Draw the stock blank background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Draw placed panels
	for i, panel := range sheet.Panels {
		col := panelColors[i%len(panelColors)]
		placed := panel.Placed()

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		drawRing(pdf, placed.Outer, toPage)

		// Holes reveal the blank beneath
		pdf.SetFillColor(210, 180, 140)
		for _, h := range placed.Holes {
			drawRing(pdf, h, toPage)
		}

		// Panel label (only if the panel is large enough on the page)
		b := panel.PlacedBounds()
		pw := b.Width() * scale
		ph := b.Height() * scale
		if pw > 15 && ph > 8 {
			cx, cy := toPage(b.Center())
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := panel.Name
			dims := fmt.Sprintf("%.0fx%.0f", b.Width(), b.Height())

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			// First line: name
			if labelW < pw-2 {
				pdf.SetXY(cx-labelW/2, cy-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			// Second line: dimensions
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(cx-dimsW/2, cy)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, sheetW, sheetH, offsetX, offsetY, canvasW, canvasH)

	// Panel legend at the bottom of the page
	drawPanelLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawRing fills one closed ring in the current style.
func drawRing(pdf *fpdf.Fpdf, ring geometry.Ring, toPage func(geometry.Point2) (float64, float64)) {
	if len(ring) < 3 {
		return
	}
	pts := make([]fpdf.PointType, len(ring))
	for i, p := range ring {
		x, y := toPage(p)
		pts[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.Polygon(pts, "FD")
}

// drawDimensionAnnotations adds width and height dimension labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheetW, sheetH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the sheet)
	widthLabel := fmt.Sprintf("%.0f mm", sheetW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the sheet, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", sheetH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawPanelLegend renders a compact legend of placed panels at the bottom of the sheet page.
func drawPanelLegend(pdf *fpdf.Fpdf, sheet *model.LayoutSheet, startY float64) {
	if len(sheet.Panels) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panels placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, panel := range sheet.Panels {
		col := panelColors[i%len(panelColors)]
		b := panel.PlacedBounds()
		label := fmt.Sprintf("%s (%.0fx%.0f)", panel.Name, b.Width(), b.Height())
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the overall statistics and the per-panel table.
func renderSummaryPage(pdf *fpdf.Fpdf, sheet *model.LayoutSheet) {
	stats := model.SheetStats(sheet)

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	summaryItems := []struct {
		label string
		value string
	}{
		{"Panels", fmt.Sprintf("%d", stats.PanelCount)},
		{"Interior cuts", fmt.Sprintf("%d", stats.HoleCount)},
		{"Sheet size", fmt.Sprintf("%.0f x %.0f mm", stats.SheetWidth, stats.SheetHeight)},
		{"Material used", fmt.Sprintf("%.1f%%", stats.Utilization)},
		{"Total cut length", fmt.Sprintf("%.2f m", stats.CutLengthM)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-panel breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Panel Breakdown", "", 0, "L", false, 0, "")
	y += 9

	// Table header
	colWidths := []float64{62, 30, 30, 40, 25, 40}
	headers := []string{"Panel", "Width", "Height", "Area", "Holes", "Cut Length"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows
	pdf.SetFont("Helvetica", "", 9)
	for i, panel := range sheet.Panels {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}

		b := panel.Outline.BoundingBox()
		xPos = marginLeft
		rowData := []string{
			panel.Name,
			fmt.Sprintf("%.1f mm", b.Width()),
			fmt.Sprintf("%.1f mm", b.Height()),
			fmt.Sprintf("%.0f mm²", panel.Outline.Area()),
			fmt.Sprintf("%d", len(panel.Outline.Holes)),
			fmt.Sprintf("%.0f mm", model.CutLength(panel)),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

// renderHardwarePage draws the hardware configuration and the warnings block.
func renderHardwarePage(pdf *fpdf.Fpdf, sheet *model.LayoutSheet, hw model.HardwareSpec) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Hardware Configuration", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	hwItems := []struct {
		label string
		value string
	}{
		{"Material thickness", fmt.Sprintf("%.1f mm", hw.MaterialThickness)},
		{"PCB thickness", fmt.Sprintf("%.1f mm", hw.PCBThickness)},
		{"Screw", fmt.Sprintf("M%.0f x %.0f mm thread", hw.ScrewDiameter, hw.ScrewThreadLength)},
		{"Nut flat-to-flat", fmt.Sprintf("%.2f mm", hw.NutFlatToFlat)},
		{"Nut thickness", fmt.Sprintf("%.1f mm", hw.NutThickness)},
		{"Washer thickness", fmt.Sprintf("%.1f mm", hw.WasherThickness)},
		{"Pivot diameter", fmt.Sprintf("%.1f mm", hw.PivotDiameter)},
		{"Pogo pin", fmt.Sprintf("r%.2f x %.0f mm", hw.PogoRadius, hw.PogoUncompressedLength)},
		{"Pogo compression", fmt.Sprintf("%.1f mm", hw.PogoTargetCompression)},
		{"Carrier border", fmt.Sprintf("%.1f mm", hw.Border)},
		{"Kerf", fmt.Sprintf("%.3f mm", hw.Kerf)},
		{"Layout gap", fmt.Sprintf("%.1f mm", hw.LaserPad)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range hwItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 5, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	// Warnings block
	if len(sheet.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Check before cutting", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, w := range sheet.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by JigCut - PCB test fixture generator", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
