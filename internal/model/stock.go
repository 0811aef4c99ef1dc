package model

import "github.com/google/uuid"

// StockPreset represents a stock sheet size the user cuts from.
type StockPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
	Material string  `json:"material"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, height float64, material string) StockPreset {
	return StockPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Height:   height,
		Material: material,
	}
}

// Fits reports whether a packed sheet fits on this stock, in either
// orientation.
func (sp StockPreset) Fits(sheet *LayoutSheet) bool {
	w, h := sheet.Size()
	return (w <= sp.Width && h <= sp.Height) || (h <= sp.Width && w <= sp.Height)
}

// DefaultStockPresets returns common laser-bed sheet sizes.
func DefaultStockPresets() []StockPreset {
	return []StockPreset{
		NewStockPreset("Plywood A4 297x210", 297, 210, "Plywood"),
		NewStockPreset("Plywood 300x200", 300, 200, "Plywood"),
		NewStockPreset("Plywood 600x300", 600, 300, "Plywood"),
		NewStockPreset("Plywood 600x400", 600, 400, "Plywood"),
		NewStockPreset("Acrylic 300x200", 300, 200, "Acrylic"),
		NewStockPreset("Acrylic 600x400", 600, 400, "Acrylic"),
		NewStockPreset("MDF 600x400", 600, 400, "MDF"),
	}
}

// SmallestFit returns the smallest preset (by area) the sheet fits on,
// or false when none is big enough.
func SmallestFit(sheet *LayoutSheet, presets []StockPreset) (StockPreset, bool) {
	var best StockPreset
	found := false
	for _, sp := range presets {
		if !sp.Fits(sheet) {
			continue
		}
		if !found || sp.Width*sp.Height < best.Width*best.Height {
			best = sp
			found = true
		}
	}
	return best, found
}
