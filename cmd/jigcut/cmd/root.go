package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/model"
	"github.com/piwi3910/JigCut/internal/project"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jigcut",
	Short: "JigCut - Laser-cut test fixture generator for PCBs",
	Long: `JigCut turns the test points of a PCB into a ready-to-cut flip-hinge
fixture: seventeen interlocking panels packed onto one sheet, exported
as DXF, SVG, a PDF cut report, GRBL G-code, QR panel labels and a BOM.

Examples:
  jigcut synthesize board.kicad_pcb                  # Full fixture, all formats
  jigcut synthesize points.csv --outline edge.dxf    # CSV points + DXF outline
  jigcut synthesize board.kicad_pcb --compare        # Hardware what-if table
  jigcut validate board.kicad_pcb --png              # Probe placement overlay
  jigcut testcut -o /tmp                             # Kerf calibration strip
  jigcut preview board.kicad_pcb                     # Interactive sheet viewer`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Fix Fyne locale parsing error when LANG=C
	// This needs to run before any Fyne imports are initialized
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the saved application defaults, falling back to the
// factory configuration when the file is unreadable.
func loadConfig() model.AppConfig {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config: %v\n", err)
		return model.DefaultAppConfig()
	}
	return cfg
}

// rememberProject records a project path in the recent list and
// persists the config. Failure to save is reported, never fatal.
func rememberProject(cfg *model.AppConfig, path string) {
	cfg.RememberProject(absPath(path))
	if err := project.SaveAppConfig(project.DefaultConfigPath(), *cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
