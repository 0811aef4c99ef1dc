package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Remnant represents a usable rectangular area left on the stock sheet
// after the fixture panels are cut out.
type Remnant struct {
	ID     string  `json:"id"`
	Stock  string  `json:"stock"`  // Name of the source stock preset
	X      float64 `json:"x"`      // Position on the stock (mm from left)
	Y      float64 `json:"y"`      // Position on the stock (mm from top)
	Width  float64 `json:"width"`  // Usable width (mm)
	Height float64 `json:"height"` // Usable height (mm)
}

// Area returns the area of the remnant in square mm.
func (r Remnant) Area() float64 {
	return r.Width * r.Height
}

// MinRemnantDimension is the minimum width or height (in mm) for a
// leftover strip to be worth keeping. Anything narrower is waste.
const MinRemnantDimension = 40.0

// MinRemnantArea is the minimum area (in sq mm) for a strip to be
// worth keeping.
const MinRemnantArea = 4000.0

// DetectRemnants reports the usable strips a given stock sheet retains
// after cutting the packed layout from its top-left corner: the full
// strip to the right of the panels and the strip below them.
func DetectRemnants(sheet *LayoutSheet, stock StockPreset, kerf float64) []Remnant {
	usedW, usedH := sheet.Size()
	usedW += kerf
	usedH += kerf

	var remnants []Remnant

	rightW := stock.Width - usedW
	if rightW >= MinRemnantDimension && stock.Height >= MinRemnantDimension && rightW*stock.Height >= MinRemnantArea {
		remnants = append(remnants, Remnant{
			ID:     uuid.New().String()[:8],
			Stock:  stock.Name,
			X:      usedW,
			Y:      0,
			Width:  rightW,
			Height: stock.Height,
		})
	}

	bottomH := stock.Height - usedH
	bottomW := math.Min(usedW, stock.Width)
	if bottomH >= MinRemnantDimension && bottomW >= MinRemnantDimension && bottomH*bottomW >= MinRemnantArea {
		remnants = append(remnants, Remnant{
			ID:     uuid.New().String()[:8],
			Stock:  stock.Name,
			X:      0,
			Y:      usedH,
			Width:  bottomW,
			Height: bottomH,
		})
	}

	sort.Slice(remnants, func(i, j int) bool {
		return remnants[i].Area() > remnants[j].Area()
	})

	return remnants
}
