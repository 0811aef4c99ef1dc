package engine

import (
	"fmt"

	"github.com/piwi3910/JigCut/internal/model"
)

// ComparisonScenario defines a named hardware variation to synthesize.
type ComparisonScenario struct {
	Name     string
	Hardware model.HardwareSpec
}

// ComparisonResult holds the synthesized sheet and computed statistics
// for a single scenario. A scenario that fails to synthesize carries
// its error instead of a sheet.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Sheet    *model.LayoutSheet
	Stats    model.CutStats
	Err      error
}

// CompareScenarios synthesizes the same board under each scenario and
// returns the results in scenario order. This enables side-by-side
// comparison of material choices, kerf widths, and probe settings
// before committing to stock.
func CompareScenarios(scenarios []ComparisonScenario, board model.BoardGeometry, points []model.TestPoint, mirrorBottom bool) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComparisonResult{Scenario: scenario}
		sheet, err := Synthesize(board, points, scenario.Hardware, mirrorBottom)
		if err != nil {
			res.Err = err
		} else {
			res.Sheet = sheet
			res.Stats = model.SheetStats(sheet)
		}
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based
// on the given hardware, varying key parameters to show what-if
// alternatives.
func BuildDefaultScenarios(base model.HardwareSpec) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Hardware",
			Hardware: base,
		},
	}

	// Scenario: the other common stock thickness
	altMat := base
	if base.MaterialThickness >= 4.0 {
		altMat.MaterialThickness = 3.0
	} else {
		altMat.MaterialThickness = 5.0
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Material %.1fmm", altMat.MaterialThickness),
		Hardware: altMat,
	})

	// Scenario: tighter kerf (simulate a finer beam)
	if base.Kerf > 0.05 {
		tightKerf := base
		tightKerf.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.3fmm (half)", tightKerf.Kerf),
			Hardware: tightKerf,
		})
	}

	// Scenario: deeper probe compression moves the hinge back
	harder := base
	harder.PogoTargetCompression = base.PogoTargetCompression * 1.5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Compression %.1fmm", harder.PogoTargetCompression),
		Hardware: harder,
	})

	return scenarios
}
