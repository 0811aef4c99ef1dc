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

// Overlay colors match the PNG and SVG validation renderings.
var (
	colorBoardFill   = color.NRGBA{R: 76, G: 175, B: 80, A: 64}    // translucent green wash
	colorBoardEdge   = color.NRGBA{R: 46, G: 125, B: 50, A: 255}   // board outline
	colorCopper      = color.NRGBA{R: 184, G: 115, B: 51, A: 204}  // copper silhouettes
	colorTopProbe    = color.NRGBA{R: 46, G: 125, B: 50, A: 255}   // component-side targets
	colorBottomProbe = color.NRGBA{R: 198, G: 40, B: 40, A: 255}   // solder-side targets
	colorFrame       = color.NRGBA{R: 255, G: 255, B: 255, A: 255} // scene background
)

// overlayMargin keeps the board clear of the widget edge.
const overlayMargin = float32(10)

// OverlayCanvas renders the probe validation scene: the board outline,
// copper silhouettes near the targets, and every probe target colored
// by side. Fixture space is Y-up; the canvas flips it.
type OverlayCanvas struct {
	widget.BaseWidget
	scene     *model.ValidationScene
	maxWidth  float32
	maxHeight float32
}

func NewOverlayCanvas(scene *model.ValidationScene, maxW, maxH float32) *OverlayCanvas {
	oc := &OverlayCanvas{
		scene:     scene,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	oc.ExtendBaseWidget(oc)
	return oc
}

func (oc *OverlayCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newOverlayCanvasRenderer(oc)
}

type overlayCanvasRenderer struct {
	oc      *OverlayCanvas
	objects []fyne.CanvasObject
}

func newOverlayCanvasRenderer(oc *OverlayCanvas) *overlayCanvasRenderer {
	r := &overlayCanvasRenderer{oc: oc}
	r.rebuild()
	return r
}

func (r *overlayCanvasRenderer) scale() float32 {
	frameW := float32(r.oc.scene.Width)
	frameH := float32(r.oc.scene.Height)
	if frameW <= 0 || frameH <= 0 {
		return 1
	}
	scaleX := (r.oc.maxWidth - 2*overlayMargin) / frameW
	scaleY := (r.oc.maxHeight - 2*overlayMargin) / frameH
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return scale
}

func (r *overlayCanvasRenderer) rebuild() {
	r.objects = nil

	scene := r.oc.scene
	if scene == nil || scene.Width <= 0 || scene.Height <= 0 {
		return
	}

	scale := r.scale()
	canvasW := float32(scene.Width) * scale
	canvasH := float32(scene.Height) * scale

	toPos := func(p geometry.Point2) fyne.Position {
		return fyne.NewPos(
			float32(p.X)*scale+overlayMargin,
			(float32(scene.Height)-float32(p.Y))*scale+overlayMargin,
		)
	}

	// Scene background
	bg := canvas.NewRectangle(colorFrame)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(overlayMargin, overlayMargin))
	r.objects = append(r.objects, bg)

	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	frame.StrokeWidth = 1
	frame.Resize(fyne.NewSize(canvasW, canvasH))
	frame.Move(fyne.NewPos(overlayMargin, overlayMargin))
	r.objects = append(r.objects, frame)

	// Board wash inside the outline bbox, then the outline itself
	bb := scene.Board.BoundingBox()
	wash := canvas.NewRectangle(colorBoardFill)
	topLeft := toPos(geometry.Pt(bb.MinX, bb.MaxY))
	wash.Resize(fyne.NewSize(float32(bb.Width())*scale, float32(bb.Height())*scale))
	wash.Move(topLeft)
	r.objects = append(r.objects, wash)

	r.strokeRing(scene.Board.Outer, colorBoardEdge, 2, toPos)
	for _, hole := range scene.Board.Holes {
		r.strokeRing(hole, colorBoardEdge, 1, toPos)
	}

	// Copper silhouettes
	for _, track := range scene.Copper {
		r.strokeRing(track.Outer, colorCopper, 1.5, toPos)
	}

	// Probe targets; bottom drawn last so clashes stand out
	r.drawProbes(scene.TopPoints, scene.ProbeRadius, colorTopProbe, scale, toPos)
	r.drawProbes(scene.BottomPoints, scene.ProbeRadius, colorBottomProbe, scale, toPos)
}

func (r *overlayCanvasRenderer) drawProbes(points []geometry.Point2, radius float64, col color.NRGBA, scale float32, toPos func(geometry.Point2) fyne.Position) {
	d := 2 * float32(radius) * scale
	if d < 4 {
		d = 4 // keep tiny tips visible at low zoom
	}
	for _, p := range points {
		marker := canvas.NewCircle(col)
		pos := toPos(p)
		marker.Resize(fyne.NewSize(d, d))
		marker.Move(fyne.NewPos(pos.X-d/2, pos.Y-d/2))
		r.objects = append(r.objects, marker)
	}
}

func (r *overlayCanvasRenderer) strokeRing(ring geometry.Ring, col color.NRGBA, width float32, toPos func(geometry.Point2) fyne.Position) {
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

func (r *overlayCanvasRenderer) Layout(size fyne.Size)        {}
func (r *overlayCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *overlayCanvasRenderer) Destroy()                     {}
func (r *overlayCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *overlayCanvasRenderer) MinSize() fyne.Size {
	frameW := float32(r.oc.scene.Width)
	frameH := float32(r.oc.scene.Height)
	if frameW <= 0 || frameH <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale := r.scale()
	return fyne.NewSize(frameW*scale+2*overlayMargin, frameH*scale+2*overlayMargin)
}

// legendDot builds one colored marker + label pair for the legend row.
func legendDot(col color.NRGBA, text string) fyne.CanvasObject {
	dot := canvas.NewCircle(col)
	dot.Resize(fyne.NewSize(10, 10))
	return container.NewHBox(dot, widget.NewLabel(text))
}

// RenderOverlay creates the probe validation view: the overlay canvas,
// a color legend, and any validation warnings.
func RenderOverlay(scene *model.ValidationScene) fyne.CanvasObject {
	if scene == nil || len(scene.TopPoints)+len(scene.BottomPoints) == 0 {
		return widget.NewLabel("No probe targets to validate.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%d top probes, %d bottom probes on %.0f × %.0f mm board",
		len(scene.TopPoints), len(scene.BottomPoints), scene.Width, scene.Height,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	overlay := NewOverlayCanvas(scene, 700, 450)

	legend := container.NewHBox(
		legendDot(colorTopProbe, "Top probe"),
		legendDot(colorBottomProbe, "Bottom probe"),
		legendDot(colorCopper, "Copper"),
		legendDot(colorBoardEdge, "Board outline"),
	)

	items := []fyne.CanvasObject{header, overlay, legend}

	for _, warn := range scene.Warnings {
		warning := widget.NewLabel("WARNING: " + warn)
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	return container.NewVScroll(container.NewVBox(items...))
}
