package model

// Inventory holds the user's stock presets and banked remnants.
type Inventory struct {
	Stocks   []StockPreset `json:"stocks"`
	Remnants []Remnant     `json:"remnants"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks:   DefaultStockPresets(),
		Remnants: []Remnant{},
	}
}

// AddRemnants banks newly detected remnants, skipping duplicate IDs.
// Returns how many were added.
func (inv *Inventory) AddRemnants(remnants []Remnant) int {
	known := make(map[string]bool, len(inv.Remnants))
	for _, r := range inv.Remnants {
		known[r.ID] = true
	}

	added := 0
	for _, r := range remnants {
		if known[r.ID] {
			continue
		}
		inv.Remnants = append(inv.Remnants, r)
		known[r.ID] = true
		added++
	}
	return added
}

// FindStockByName returns a pointer to the first stock preset with the
// given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}
