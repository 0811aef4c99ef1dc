package model

import (
	"testing"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet(t *testing.T) *LayoutSheet {
	t.Helper()
	bored, err := geometry.Difference(geometry.Rectangle(100, 50), geometry.CircleAt(50, 25, 5, 20))
	require.NoError(t, err)
	return &LayoutSheet{
		Panels: []Panel{
			{Name: "a", Outline: geometry.Rectangle(100, 50)},
			{Name: "b", Outline: bored, Placement: geometry.Transform2{Offset: geometry.Pt(102, 0)}},
		},
		Bounds: geometry.Rect{MinX: 0, MinY: 0, MaxX: 202, MaxY: 50},
	}
}

func TestCutLength_IncludesHoles(t *testing.T) {
	plain := Panel{Outline: geometry.Rectangle(100, 50)}
	assert.InDelta(t, 300.0, CutLength(plain), 1e-9)

	bored, err := geometry.Difference(geometry.Rectangle(100, 50), geometry.CircleAt(50, 25, 5, 20))
	require.NoError(t, err)
	withHole := Panel{Outline: bored}
	assert.Greater(t, CutLength(withHole), 300.0, "hole perimeter adds beam path")
}

func TestSheetStats(t *testing.T) {
	stats := SheetStats(testSheet(t))

	assert.Equal(t, 2, stats.PanelCount)
	assert.Equal(t, 1, stats.HoleCount)
	assert.Equal(t, 202.0, stats.SheetWidth)
	assert.Equal(t, 50.0, stats.SheetHeight)
	assert.Greater(t, stats.PanelArea, 0.0)
	assert.Less(t, stats.PanelArea, stats.SheetArea)
	assert.InDelta(t, 100*stats.PanelArea/stats.SheetArea, stats.Utilization, 1e-9)
	assert.InDelta(t, stats.CutLengthMM/1000, stats.CutLengthM, 1e-12)
}

func TestEstimateCutTime(t *testing.T) {
	assert.InDelta(t, 2.0, EstimateCutTime(1200, 600, 1), 1e-9)
	assert.InDelta(t, 6.0, EstimateCutTime(1200, 600, 3), 1e-9)
	assert.Equal(t, 0.0, EstimateCutTime(1200, 0, 1), "zero feed rate yields no estimate")
	assert.InDelta(t, 2.0, EstimateCutTime(1200, 600, 0), 1e-9, "pass count floors at 1")
}

func TestFixtureBOM(t *testing.T) {
	lines := FixtureBOM(DefaultHardware(), 12)

	require.Len(t, lines, 5)
	assert.Equal(t, "Pogo pin", lines[0].Item)
	assert.Equal(t, 12, lines[0].Quantity)

	var nuts, screws int
	for _, l := range lines {
		if l.Item == "Hex nut" {
			nuts = l.Quantity
		}
		if l.Item == "Machine screw" || l.Item == "Pivot screw" {
			screws += l.Quantity
		}
	}
	assert.Equal(t, screws, nuts, "every screw gets a nut")
}

func TestStockPreset_Fits(t *testing.T) {
	sheet := &LayoutSheet{Bounds: geometry.Rect{MaxX: 280, MaxY: 190}}

	a4 := StockPreset{Name: "A4", Width: 297, Height: 210}
	small := StockPreset{Name: "small", Width: 200, Height: 200}
	rotated := StockPreset{Name: "tall", Width: 200, Height: 300}

	assert.True(t, a4.Fits(sheet))
	assert.False(t, small.Fits(sheet))
	assert.True(t, rotated.Fits(sheet), "fit is checked in both orientations")
}

func TestSmallestFit(t *testing.T) {
	sheet := &LayoutSheet{Bounds: geometry.Rect{MaxX: 250, MaxY: 180}}
	presets := DefaultStockPresets()

	best, ok := SmallestFit(sheet, presets)
	require.True(t, ok)
	assert.Equal(t, 300.0, best.Width, "the 300x200 sheet is the smallest that fits")

	huge := &LayoutSheet{Bounds: geometry.Rect{MaxX: 1000, MaxY: 900}}
	_, ok = SmallestFit(huge, presets)
	assert.False(t, ok)
}

func TestDetectRemnants(t *testing.T) {
	sheet := &LayoutSheet{Bounds: geometry.Rect{MaxX: 200, MaxY: 100}}
	stock := StockPreset{Name: "Ply 600x400", Width: 600, Height: 400}

	remnants := DetectRemnants(sheet, stock, 0.2)
	require.Len(t, remnants, 2)

	// Largest first: the full-height right strip beats the bottom strip.
	assert.Greater(t, remnants[0].Area(), remnants[1].Area())
	assert.InDelta(t, 200.2, remnants[0].X, 1e-9)
	assert.InDelta(t, 400.0, remnants[0].Height, 1e-9)

	// A stock barely bigger than the layout keeps nothing.
	tight := StockPreset{Name: "tight", Width: 210, Height: 110}
	assert.Empty(t, DetectRemnants(sheet, tight, 0.2))
}
