package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/engine"
	"github.com/piwi3910/JigCut/internal/export"
	"github.com/piwi3910/JigCut/internal/model"
)

var testcutCmd = &cobra.Command{
	Use:   "testcut",
	Short: "Generate a kerf and fit calibration strip",
	Long: `Testcut writes a two-plate fit coupon for dialing in kerf and joint fit
on new stock: mating finger edges, a screw capture pocket, a nut pocket
and a row of probe bores, cut before committing a full fixture.

Examples:
  jigcut testcut
  jigcut testcut -o /tmp --material 5 --kerf 0.2`,
	Args: cobra.NoArgs,
	RunE: runTestcut,
}

func init() {
	rootCmd.AddCommand(testcutCmd)
	addOutputFlag(testcutCmd)
	addHardwareFlags(testcutCmd)
	addLaserFlags(testcutCmd)
}

func runTestcut(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	hw, err := resolveHardware(cmd, cfg, nil)
	if err != nil {
		return err
	}
	laser := resolveLaser(cmd, cfg, nil)

	sheet, err := engine.TestCut(hw)
	if err != nil {
		return fmt.Errorf("test cut failed: %w", err)
	}
	printWarnings(sheet.Warnings)

	stats := model.SheetStats(sheet)
	fmt.Printf("✓ Test strip: %d pieces, %.0f x %.0f mm, %.2f m of cuts\n",
		stats.PanelCount, stats.SheetWidth, stats.SheetHeight, stats.CutLengthM)

	dir := outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dxfOut := filepath.Join(dir, "testcut.dxf")
	if err := export.ExportDXF(dxfOut, sheet); err != nil {
		return fmt.Errorf("failed to export DXF: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", dxfOut)

	gcodeOut := filepath.Join(dir, "testcut.gcode")
	if err := export.ExportGCode(gcodeOut, sheet, laser); err != nil {
		return fmt.Errorf("failed to export G-code: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", gcodeOut)
	return nil
}
