package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/engine"
	"github.com/piwi3910/JigCut/internal/model"
	"github.com/piwi3910/JigCut/internal/preview"
	"github.com/piwi3910/JigCut/internal/ui"
)

var (
	// preview command flags
	showGUI   bool
	renderSTL bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <board>",
	Short: "Inspect the packed sheet before cutting",
	Long: `Preview synthesizes the fixture and shows the result without writing
any cut files. The default is an interactive window with the packed
sheet and the probe overlay; --stl writes the panels extruded to
material thickness for a slicer or CAD viewer, --png the overlay alone.

Examples:
  jigcut preview board.kicad_pcb
  jigcut preview board.kicad_pcb --stl -o /tmp
  jigcut preview board.kicad_pcb --png --scale 12`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addOutputFlag(previewCmd)
	addBoardFlags(previewCmd)
	addHardwareFlags(previewCmd)
	addLaserFlags(previewCmd)
	previewCmd.Flags().BoolVar(&mirrorBottom, "mirror", false,
		"mirror X for bottom-side probing (board is flipped left to right)")
	previewCmd.Flags().BoolVar(&showGUI, "gui", false, "open the interactive viewer (the default)")
	previewCmd.Flags().BoolVar(&renderSTL, "stl", false, "write an extruded STL of the packed sheet")
	previewCmd.Flags().BoolVar(&renderPNG, "png", false, "write a PNG of the probe overlay")
	previewCmd.Flags().Float64Var(&rasterScale, "scale", preview.DefaultPxPerMM, "PNG resolution in pixels per mm")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	hw, err := resolveHardware(cmd, cfg, nil)
	if err != nil {
		return err
	}
	laser := resolveLaser(cmd, cfg, nil)

	res, err := loadBoard(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Loaded %s\n", filepath.Base(args[0]))

	gui := showGUI || (!renderSTL && !renderPNG)
	base := baseName(args[0])

	var sheet *model.LayoutSheet
	if gui || renderSTL {
		sheet, err = engine.Synthesize(res.Board, res.Points, hw, mirrorBottom)
		if err != nil {
			return fmt.Errorf("synthesis failed: %w", err)
		}
		printWarnings(sheet.Warnings)
	}
	var scene *model.ValidationScene
	if gui || renderPNG {
		scene, err = engine.RenderValidation(res.Board, res.Points, hw, res.Copper)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		printWarnings(scene.Warnings)
	}

	if renderSTL || renderPNG {
		dir, err := resolveOutDir(cfg, args[0])
		if err != nil {
			return err
		}
		if renderSTL {
			out := filepath.Join(dir, base+"_preview.stl")
			if err := preview.ExportSheetSTL(out, sheet, hw.MaterialThickness); err != nil {
				return fmt.Errorf("failed to export STL: %w", err)
			}
			fmt.Printf("✓ Wrote %s\n", out)
		}
		if renderPNG {
			out := filepath.Join(dir, base+"_validation.png")
			if err := preview.RenderValidationPNG(out, scene, rasterScale); err != nil {
				return fmt.Errorf("failed to render PNG: %w", err)
			}
			fmt.Printf("✓ Wrote %s\n", out)
		}
	}

	if gui {
		ui.ShowPreview("JigCut - "+base, sheet, scene, laser, cfg.Theme)
	}
	return nil
}
