package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/engine"
	"github.com/piwi3910/JigCut/internal/export"
	"github.com/piwi3910/JigCut/internal/preview"
)

var (
	// validate command flags
	renderSVG bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <board>",
	Short: "Render the probe placement overlay without synthesizing",
	Long: `Validate draws the imported board outline, copper silhouette and probe
targets on one overlay so misplaced or off-pad points are visible before
any material is cut. Top probes render green, bottom probes red.

Examples:
  jigcut validate board.kicad_pcb
  jigcut validate board.kicad_pcb --png --scale 12
  jigcut validate points.csv --outline edge.dxf --svg`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addOutputFlag(validateCmd)
	addBoardFlags(validateCmd)
	addHardwareFlags(validateCmd)
	validateCmd.Flags().BoolVar(&renderSVG, "svg", false, "write an SVG overlay (the default)")
	validateCmd.Flags().BoolVar(&renderPNG, "png", false, "write a PNG overlay")
	validateCmd.Flags().Float64Var(&rasterScale, "scale", preview.DefaultPxPerMM, "PNG resolution in pixels per mm")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	hw, err := resolveHardware(cmd, cfg, nil)
	if err != nil {
		return err
	}

	res, err := loadBoard(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Loaded %s\n", filepath.Base(args[0]))

	scene, err := engine.RenderValidation(res.Board, res.Points, hw, res.Copper)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	printWarnings(scene.Warnings)
	fmt.Printf("  Probes: %d top, %d bottom on %.1f x %.1f mm\n",
		len(scene.TopPoints), len(scene.BottomPoints), scene.Width, scene.Height)

	dir, err := resolveOutDir(cfg, args[0])
	if err != nil {
		return err
	}
	base := baseName(args[0])

	wantSVG, wantPNG := renderSVG, renderPNG
	if !wantSVG && !wantPNG {
		wantSVG = true
	}
	if wantSVG {
		out := filepath.Join(dir, base+"_validation.svg")
		if err := export.ExportValidationSVG(out, scene); err != nil {
			return fmt.Errorf("failed to export SVG: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", out)
	}
	if wantPNG {
		out := filepath.Join(dir, base+"_validation.png")
		if err := preview.RenderValidationPNG(out, scene, rasterScale); err != nil {
			return fmt.Errorf("failed to render PNG: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", out)
	}
	return nil
}
