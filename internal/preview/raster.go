// Package preview renders synthesized fixtures for inspection before
// cutting: a PNG raster of the probe validation scene and an extruded
// solid of the packed sheet with binary STL output.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// DefaultPxPerMM is the raster scale used when the caller does not pick
// one. 8 px/mm resolves a 0.5 mm probe tip to a 4 px radius circle.
const DefaultPxPerMM = 8.0

// rasterMargin matches the margin the SVG overlay draws around the
// board so the two renderings frame identically.
const rasterMargin = 5.0 // mm

// probeSegments is the tessellation used for probe target circles.
const probeSegments = 24

var (
	rasterBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	boardFill        = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0x40}
	copperFill       = color.NRGBA{R: 0xb8, G: 0x73, B: 0x33, A: 0xcc}
	topProbeFill     = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	bottomProbeFill  = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// RenderValidationPNG rasterizes the validation scene to a PNG file at
// the given scale in pixels per millimetre.
func RenderValidationPNG(path string, scene *model.ValidationScene, pxPerMM float64) error {
	img, err := RasterizeValidation(scene, pxPerMM)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

// RasterizeValidation renders the scene into an RGBA image. Fixture
// space is Y-up; the raster flips it around the scene frame.
func RasterizeValidation(scene *model.ValidationScene, pxPerMM float64) (*image.RGBA, error) {
	if pxPerMM <= 0 {
		return nil, fmt.Errorf("raster scale must be positive, got %g px/mm", pxPerMM)
	}
	w := int(math.Ceil((scene.Width + 2*rasterMargin) * pxPerMM))
	h := int(math.Ceil((scene.Height + 2*rasterMargin) * pxPerMM))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rasterBackground), image.Point{}, draw.Src)

	toPx := func(p geometry.Point2) (float32, float32) {
		x := (p.X + rasterMargin) * pxPerMM
		y := (scene.Height + rasterMargin - p.Y) * pxPerMM
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(w, h)
	fillPolygon(z, img, scene.Board, boardFill, toPx)
	for _, track := range scene.Copper {
		fillPolygon(z, img, track, copperFill, toPx)
	}
	for _, p := range scene.TopPoints {
		target := geometry.CircleAt(p.X, p.Y, scene.ProbeRadius, probeSegments)
		fillPolygon(z, img, target, topProbeFill, toPx)
	}
	for _, p := range scene.BottomPoints {
		target := geometry.CircleAt(p.X, p.Y, scene.ProbeRadius, probeSegments)
		fillPolygon(z, img, target, bottomProbeFill, toPx)
	}
	return img, nil
}

// fillPolygon paints one polygon. Outer rings wind CCW and holes CW, so
// the rasterizer's accumulated coverage cancels inside each hole.
func fillPolygon(z *vector.Rasterizer, dst *image.RGBA, poly geometry.Polygon, c color.NRGBA, toPx func(geometry.Point2) (float32, float32)) {
	if len(poly.Outer) < 3 {
		return
	}
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	rasterRing(z, poly.Outer, toPx)
	for _, hole := range poly.Holes {
		rasterRing(z, hole, toPx)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func rasterRing(z *vector.Rasterizer, ring geometry.Ring, toPx func(geometry.Point2) (float32, float32)) {
	x, y := toPx(ring[0])
	z.MoveTo(x, y)
	for _, p := range ring[1:] {
		x, y = toPx(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
}
