package model

import "fmt"

// BOMLine is one row of the fixture's hardware bill of materials.
type BOMLine struct {
	Item     string `json:"item"`
	Spec     string `json:"spec"`
	Quantity int    `json:"quantity"`
}

// Fixed hardware counts from the panel design: four clamp screws and
// four carrier index screws plus two cable-retention screws, two hinge
// pivots and two latch pivots, a nut behind every screw, and a washer
// on each side of each hinge pivot.
const (
	clampScrews   = 4
	carrierScrews = 4
	cableScrews   = 2
	pivotScrews   = 4
	pivotWashers  = 4
)

// FixtureBOM returns the loose hardware one assembled fixture consumes.
// pogoCount is the total probe count, top plus bottom.
func FixtureBOM(hw HardwareSpec, pogoCount int) []BOMLine {
	d := hw.ScrewDiameter
	return []BOMLine{
		{
			Item:     "Pogo pin",
			Spec:     fmt.Sprintf("r%.2f x %.0fmm", hw.PogoRadius, hw.PogoUncompressedLength),
			Quantity: pogoCount,
		},
		{
			Item:     "Machine screw",
			Spec:     fmt.Sprintf("M%.0f x %.0fmm", d, hw.ScrewThreadLength),
			Quantity: clampScrews + carrierScrews + cableScrews,
		},
		{
			Item:     "Pivot screw",
			Spec:     fmt.Sprintf("M%.0f x %.0fmm", d, hw.ScrewThreadLength+2*hw.WasherThickness+hw.MaterialThickness),
			Quantity: pivotScrews,
		},
		{
			Item:     "Hex nut",
			Spec:     fmt.Sprintf("M%.0f (%.2fmm flat-to-flat)", d, hw.NutFlatToFlat),
			Quantity: clampScrews + carrierScrews + cableScrews + pivotScrews,
		},
		{
			Item:     "Washer",
			Spec:     fmt.Sprintf("M%.0f x %.1fmm", d, hw.WasherThickness),
			Quantity: pivotWashers,
		},
	}
}
