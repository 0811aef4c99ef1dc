package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// Panel colors, cycled through for visual distinction.
var panelColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

// sheetMargin keeps panel strokes clear of the widget edge.
const sheetMargin = float32(8)

// SheetCanvas renders a packed layout sheet: every panel outline and
// its bores drawn as cut paths on the blank, scaled to fit.
type SheetCanvas struct {
	widget.BaseWidget
	sheet     *model.LayoutSheet
	maxWidth  float32
	maxHeight float32
}

func NewSheetCanvas(sheet *model.LayoutSheet, maxW, maxH float32) *SheetCanvas {
	sc := &SheetCanvas{
		sheet:     sheet,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *SheetCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSheetCanvasRenderer(sc)
}

type sheetCanvasRenderer struct {
	sc      *SheetCanvas
	objects []fyne.CanvasObject
}

func newSheetCanvasRenderer(sc *SheetCanvas) *sheetCanvasRenderer {
	r := &sheetCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *sheetCanvasRenderer) scale() float32 {
	sheetW := float32(r.sc.sheet.Bounds.Width())
	sheetH := float32(r.sc.sheet.Bounds.Height())
	if sheetW <= 0 || sheetH <= 0 {
		return 1
	}
	scaleX := (r.sc.maxWidth - 2*sheetMargin) / sheetW
	scaleY := (r.sc.maxHeight - 2*sheetMargin) / sheetH
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return scale
}

func (r *sheetCanvasRenderer) rebuild() {
	r.objects = nil

	sheet := r.sc.sheet
	if sheet == nil {
		return
	}
	sheetW := float32(sheet.Bounds.Width())
	sheetH := float32(sheet.Bounds.Height())
	if sheetW <= 0 || sheetH <= 0 {
		return
	}

	scale := r.scale()
	canvasW := sheetW * scale
	canvasH := sheetH * scale

	toPos := func(p geometry.Point2) fyne.Position {
		return fyne.NewPos(
			float32(p.X-sheet.Bounds.MinX)*scale+sheetMargin,
			float32(p.Y-sheet.Bounds.MinY)*scale+sheetMargin,
		)
	}

	// Blank background
	bg := canvas.NewRectangle(color.NRGBA{R: 210, G: 180, B: 140, A: 255}) // wood color
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(sheetMargin, sheetMargin))
	r.objects = append(r.objects, bg)

	// Blank border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(sheetMargin, sheetMargin))
	r.objects = append(r.objects, border)

	// Cut paths
	for i, p := range sheet.Panels {
		col := panelColors[i%len(panelColors)]
		placed := p.Placed()

		r.strokeRing(placed.Outer, col, 2, toPos)
		for _, hole := range placed.Holes {
			r.strokeRing(hole, col, 1, toPos)
		}

		// Label (only if the panel is big enough)
		bb := p.PlacedBounds()
		pw := float32(bb.Width()) * scale
		ph := float32(bb.Height()) * scale
		if pw > 40 && ph > 16 {
			pos := toPos(geometry.Pt(bb.MinX, bb.MinY))
			label := canvas.NewText(p.Name, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
			label.TextSize = 10
			label.Move(fyne.NewPos(pos.X+3, pos.Y+2))
			r.objects = append(r.objects, label)
		}
	}
}

// strokeRing draws a closed ring as line segments, including the
// implicit closing edge.
func (r *sheetCanvasRenderer) strokeRing(ring geometry.Ring, col color.NRGBA, width float32, toPos func(geometry.Point2) fyne.Position) {
	n := len(ring)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = toPos(ring[i])
		line.Position2 = toPos(ring[(i+1)%n])
		r.objects = append(r.objects, line)
	}
}

func (r *sheetCanvasRenderer) Layout(size fyne.Size)        {}
func (r *sheetCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *sheetCanvasRenderer) Destroy()                     {}
func (r *sheetCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *sheetCanvasRenderer) MinSize() fyne.Size {
	sheetW := float32(r.sc.sheet.Bounds.Width())
	sheetH := float32(r.sc.sheet.Bounds.Height())
	if sheetW <= 0 || sheetH <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale := r.scale()
	return fyne.NewSize(sheetW*scale+2*sheetMargin, sheetH*scale+2*sheetMargin)
}

// RenderLayout creates a scrollable summary of a packed sheet: the
// canvas, any warnings, and the cut statistics line.
func RenderLayout(sheet *model.LayoutSheet, laser model.LaserSettings) fyne.CanvasObject {
	if sheet == nil || len(sheet.Panels) == 0 {
		return widget.NewLabel("No layout to show.")
	}

	stats := model.SheetStats(sheet)

	header := widget.NewLabel(fmt.Sprintf(
		"%d panels on %.0f × %.0f mm (%d bores, %.1f%% utilization)",
		stats.PanelCount, stats.SheetWidth, stats.SheetHeight,
		stats.HoleCount, stats.Utilization,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	sheetCanvas := NewSheetCanvas(sheet, 700, 450)

	items := []fyne.CanvasObject{header, sheetCanvas, widget.NewSeparator()}

	for _, warn := range sheet.Warnings {
		warning := widget.NewLabel("WARNING: " + warn)
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	minutes := model.EstimateCutTime(stats.CutLengthMM, laser.FeedRate, laser.Passes)
	summary := widget.NewLabel(fmt.Sprintf(
		"Cut length %.2f m | est. %.1f min at %.0f mm/min × %d pass(es)",
		stats.CutLengthM, minutes, laser.FeedRate, laser.Passes,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
