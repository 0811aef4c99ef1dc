package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/engine"
	"github.com/piwi3910/JigCut/internal/export"
	"github.com/piwi3910/JigCut/internal/importer"
	"github.com/piwi3910/JigCut/internal/model"
	"github.com/piwi3910/JigCut/internal/project"
)

var (
	// synthesize command flags
	formats     []string
	stockName   string
	compareHW   bool
	saveProject bool
)

// defaultFormats is the full export set written when --formats is absent.
var defaultFormats = []string{"dxf", "svg", "pdf", "gcode", "labels", "bom"}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <board>",
	Short: "Generate a complete fixture from a board file",
	Long: `Synthesize reads test points from a board source (.kicad_pcb, .csv,
.xlsx, .dxf or a saved .jigcut project), solves the hinge geometry around
them, and writes the packed panel sheet in the requested formats.

Examples:
  jigcut synthesize board.kicad_pcb
  jigcut synthesize board.kicad_pcb --mirror --profile "M3 2.5mm acrylic"
  jigcut synthesize points.csv --outline edge.dxf --formats dxf,gcode
  jigcut synthesize board.kicad_pcb --stock "Plywood 600x300"
  jigcut synthesize board.kicad_pcb --compare
  jigcut synthesize job.jigcut -o /tmp/cut`,
	Args: cobra.ExactArgs(1),
	RunE: runSynthesize,
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)
	addOutputFlag(synthesizeCmd)
	addBoardFlags(synthesizeCmd)
	addHardwareFlags(synthesizeCmd)
	addLaserFlags(synthesizeCmd)
	synthesizeCmd.Flags().BoolVar(&mirrorBottom, "mirror", false,
		"mirror X for bottom-side probing (board is flipped left to right)")
	synthesizeCmd.Flags().StringSliceVar(&formats, "formats", defaultFormats,
		"output formats to write")
	synthesizeCmd.Flags().StringVar(&stockName, "stock", "",
		"stock preset to cut from; banks usable offcuts in the inventory")
	synthesizeCmd.Flags().BoolVar(&compareHW, "compare", false,
		"print a hardware what-if table instead of exporting")
	synthesizeCmd.Flags().BoolVar(&saveProject, "save-project", false,
		"write a .jigcut project file next to the outputs")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	boardPath := args[0]
	mirror := mirrorBottom
	var baseHW *model.HardwareSpec
	var baseLaser *model.LaserSettings

	// A .jigcut argument supplies the board path and the saved
	// hardware; explicit flags still win over both.
	if strings.EqualFold(filepath.Ext(boardPath), ".jigcut") {
		proj, err := project.Load(boardPath)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		if proj.BoardPath == "" {
			return fmt.Errorf("project %q has no board path", proj.Name)
		}
		fmt.Printf("✓ Loaded project %q\n", proj.Name)
		rememberProject(&cfg, boardPath)

		bp := proj.BoardPath
		if !filepath.IsAbs(bp) {
			bp = filepath.Join(filepath.Dir(boardPath), bp)
		}
		boardPath = bp
		baseHW = &proj.Hardware
		baseLaser = &proj.Laser
		if !cmd.Flags().Changed("mirror") {
			mirror = proj.MirrorBottom
		}
	}

	hw, err := resolveHardware(cmd, cfg, baseHW)
	if err != nil {
		return err
	}
	laser := resolveLaser(cmd, cfg, baseLaser)

	res, err := loadBoard(boardPath)
	if err != nil {
		return err
	}
	top, bottom := 0, 0
	for _, tp := range res.Points {
		if tp.Side == model.SideBottom {
			bottom++
		} else {
			top++
		}
	}
	fmt.Printf("✓ Loaded %s\n", filepath.Base(boardPath))
	fmt.Printf("  Test points: %d (%d top, %d bottom)\n", len(res.Points), top, bottom)
	if res.HasBoard() {
		bb := res.Board.Outline.BoundingBox()
		fmt.Printf("  Board: %.1f x %.1f mm\n", bb.Width(), bb.Height())
	}

	if compareHW {
		return runComparison(hw, res, mirror)
	}

	sheet, err := engine.Synthesize(res.Board, res.Points, hw, mirror)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}
	printWarnings(sheet.Warnings)

	stats := model.SheetStats(sheet)
	fmt.Printf("✓ Synthesized %d panels on %.0f x %.0f mm (%.1f%% used)\n",
		stats.PanelCount, stats.SheetWidth, stats.SheetHeight, stats.Utilization)
	fmt.Printf("  Cut length: %.2f m, about %.0f min at %.0f mm/min\n",
		stats.CutLengthM, model.EstimateCutTime(stats.CutLengthMM, laser.FeedRate, laser.Passes), laser.FeedRate)
	if verbose {
		for _, p := range sheet.Panels {
			b := p.PlacedBounds()
			fmt.Printf("  %-30s %6.1f x %-6.1f mm %3d holes\n",
				p.Name, b.Width(), b.Height(), len(p.Outline.Holes))
		}
	}

	dir, err := resolveOutDir(cfg, boardPath)
	if err != nil {
		return err
	}
	base := baseName(boardPath)
	meta := export.NewJobMeta(base)

	for _, format := range formats {
		var out string
		var exportErr error
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "dxf":
			out = filepath.Join(dir, base+"_fixture.dxf")
			exportErr = export.ExportDXF(out, sheet)
		case "svg":
			out = filepath.Join(dir, base+"_fixture.svg")
			exportErr = export.ExportSVG(out, sheet)
		case "pdf":
			out = filepath.Join(dir, base+"_report.pdf")
			exportErr = export.ExportPDF(out, sheet, hw, meta)
		case "labels":
			out = filepath.Join(dir, base+"_labels.pdf")
			exportErr = export.ExportLabels(out, sheet, meta)
		case "bom":
			out = filepath.Join(dir, base+"_bom.xlsx")
			exportErr = export.ExportBOM(out, sheet, hw, len(res.Points))
		case "gcode":
			out = filepath.Join(dir, base+".gcode")
			exportErr = export.ExportGCode(out, sheet, laser)
		default:
			return fmt.Errorf("unknown format %q (use dxf, svg, pdf, labels, bom, gcode)", format)
		}
		if exportErr != nil {
			return fmt.Errorf("failed to export %s: %w", format, exportErr)
		}
		fmt.Printf("✓ Wrote %s\n", out)
	}

	if err := trackStock(sheet, hw); err != nil {
		return err
	}

	if saveProject {
		proj := model.NewProject(base)
		proj.BoardPath = absPath(boardPath)
		proj.Hardware = hw
		proj.Laser = laser
		proj.MirrorBottom = mirror
		projPath := filepath.Join(dir, base+".jigcut")
		if err := project.Save(projPath, proj); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", projPath)
		rememberProject(&cfg, projPath)
	}

	return nil
}

// runComparison prints the what-if table instead of exporting anything.
func runComparison(base model.HardwareSpec, res importer.ImportResult, mirror bool) error {
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(base), res.Board, res.Points, mirror)

	fmt.Printf("%-26s %15s %9s %7s\n", "Scenario", "Sheet (mm)", "Cut (m)", "Used")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-26s failed: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Printf("%-26s %6.0f x %-6.0f %9.2f %6.1f%%\n",
			r.Scenario.Name, r.Stats.SheetWidth, r.Stats.SheetHeight,
			r.Stats.CutLengthM, r.Stats.Utilization)
	}
	return nil
}

// trackStock records the sheet against a named stock preset, banking
// usable offcuts, or just names the smallest preset that fits.
func trackStock(sheet *model.LayoutSheet, hw model.HardwareSpec) error {
	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		if stockName != "" {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: ignoring inventory: %v\n", err)
		return nil
	}

	if stockName == "" {
		if sp, ok := model.SmallestFit(sheet, inv.Stocks); ok {
			fmt.Printf("  Fits on: %s (%.0f x %.0f mm)\n", sp.Name, sp.Width, sp.Height)
		} else {
			fmt.Fprintln(os.Stderr, "Warning: no stock preset is large enough for this sheet")
		}
		return nil
	}

	sp := inv.FindStockByName(stockName)
	if sp == nil {
		return fmt.Errorf("unknown stock %q (inventory: %s)", stockName, invPath)
	}
	if !sp.Fits(sheet) {
		w, h := sheet.Size()
		return fmt.Errorf("sheet %.0f x %.0f mm does not fit stock %q (%.0f x %.0f mm)",
			w, h, sp.Name, sp.Width, sp.Height)
	}
	if added := inv.AddRemnants(model.DetectRemnants(sheet, *sp, hw.Kerf)); added > 0 {
		if err := project.SaveInventory(invPath, inv); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}
		fmt.Printf("✓ Banked %d remnant(s) from %s\n", added, sp.Name)
	}
	return nil
}
