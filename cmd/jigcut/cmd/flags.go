package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/JigCut/internal/importer"
	"github.com/piwi3910/JigCut/internal/model"
	"github.com/piwi3910/JigCut/internal/project"
)

var (
	// Shared output and board loading flags
	outDir       string
	mirrorBottom bool
	outlinePath  string
	ignoreLayer  string
	forceLayer   string
	copperLayer  string
	renderPNG    bool
	rasterScale  float64

	// Hardware override flags
	profileName  string
	material     float64
	pcbThickness float64
	screwDia     float64
	screwLen     float64
	kerf         float64
	pogoRadius   float64
	pogoLen      float64
	compression  float64
	contactAngle float64
	segments     int
	panelGap     float64
	border       float64

	// Laser override flags
	feedRate     float64
	travelRate   float64
	laserPower   int
	laserPasses  int
	laserProfile string
)

// addOutputFlag registers -o on commands that write files.
func addOutputFlag(c *cobra.Command) {
	c.Flags().StringVarP(&outDir, "out", "o", "",
		"output directory (default: configured dir, then alongside the input)")
}

// addBoardFlags registers the import tuning every board-loading command shares.
func addBoardFlags(c *cobra.Command) {
	c.Flags().StringVar(&outlinePath, "outline", "",
		"DXF file supplying the board outline (for CSV/XLSX point lists)")
	c.Flags().StringVar(&ignoreLayer, "ignore-layer", importer.DefaultIgnoreLayer,
		"pads touching this KiCad layer are never probed")
	c.Flags().StringVar(&forceLayer, "force-layer", importer.DefaultForceLayer,
		"pads touching this KiCad layer are probed even when not SMD")
	c.Flags().StringVar(&copperLayer, "copper-layer", importer.DefaultCopperLayer,
		"KiCad copper layer rendered in the validation overlay")
}

// addHardwareFlags registers the per-dimension overrides. Defaults shown
// in help come from DefaultHardware; whether a flag was actually set is
// what decides if it overrides the profile.
func addHardwareFlags(c *cobra.Command) {
	hw := model.DefaultHardware()
	c.Flags().StringVar(&profileName, "profile", "", "hardware profile to start from")
	c.Flags().Float64Var(&material, "material", hw.MaterialThickness, "sheet stock thickness in mm")
	c.Flags().Float64Var(&pcbThickness, "pcb", hw.PCBThickness, "PCB thickness in mm")
	c.Flags().Float64Var(&screwDia, "screw-dia", hw.ScrewDiameter, "assembly screw diameter in mm")
	c.Flags().Float64Var(&screwLen, "screw-len", hw.ScrewThreadLength, "assembly screw thread length in mm")
	c.Flags().Float64Var(&kerf, "kerf", hw.Kerf, "laser beam width in mm")
	c.Flags().Float64Var(&pogoRadius, "pogo-radius", hw.PogoRadius, "pogo pin hole radius in mm")
	c.Flags().Float64Var(&pogoLen, "pogo-len", hw.PogoUncompressedLength, "uncompressed pogo pin length in mm")
	c.Flags().Float64Var(&compression, "compression", hw.PogoTargetCompression, "pogo compression at contact in mm")
	c.Flags().Float64Var(&contactAngle, "contact-angle", hw.MinContactAngle, "minimum head angle at contact in degrees")
	c.Flags().IntVar(&segments, "segments", hw.Segments, "circle tessellation segment count")
	c.Flags().Float64Var(&panelGap, "pad", hw.LaserPad, "gap between packed panels in mm")
	c.Flags().Float64Var(&border, "border", hw.Border, "carrier retention lip in mm")
}

// addLaserFlags registers the cut parameter overrides.
func addLaserFlags(c *cobra.Command) {
	s := model.DefaultLaserSettings()
	c.Flags().Float64Var(&feedRate, "feed", s.FeedRate, "cutting feed rate in mm/min")
	c.Flags().Float64Var(&travelRate, "travel", s.TravelRate, "rapid travel rate in mm/min")
	c.Flags().IntVar(&laserPower, "power", s.Power, "laser power (S word, 0-1000 on GRBL)")
	c.Flags().IntVar(&laserPasses, "passes", s.Passes, "repeats of the full cut program")
	c.Flags().StringVar(&laserProfile, "laser", s.LaserProfile, "post-processor profile (Grbl, GrblConstant, Generic)")
}

// resolveHardware layers the hardware sources: an explicit --profile
// wins, then the project file, then the saved default profile, then the
// factory spec with the configured scalar defaults. Flags that were
// actually set override individual fields on top of any of those.
func resolveHardware(cmd *cobra.Command, cfg model.AppConfig, base *model.HardwareSpec) (model.HardwareSpec, error) {
	custom, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		return model.HardwareSpec{}, fmt.Errorf("failed to load custom profiles: %w", err)
	}

	var hw model.HardwareSpec
	switch {
	case cmd.Flags().Changed("profile"):
		p, ok := model.GetHardwareProfile(profileName, custom)
		if !ok {
			return model.HardwareSpec{}, fmt.Errorf("unknown hardware profile %q (available: %s)",
				profileName, strings.Join(model.GetHardwareProfileNames(custom), ", "))
		}
		hw = p.Hardware
	case base != nil:
		hw = *base
	case cfg.DefaultHardwareProfile != "":
		p, ok := model.GetHardwareProfile(cfg.DefaultHardwareProfile, custom)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: default profile %q not found\n", cfg.DefaultHardwareProfile)
			hw = model.DefaultHardware()
			cfg.ApplyToHardware(&hw)
			break
		}
		hw = p.Hardware
	default:
		hw = model.DefaultHardware()
		cfg.ApplyToHardware(&hw)
	}

	fl := cmd.Flags()
	if fl.Changed("material") {
		hw.MaterialThickness = material
	}
	if fl.Changed("pcb") {
		hw.PCBThickness = pcbThickness
	}
	if fl.Changed("screw-dia") {
		hw.ScrewDiameter = screwDia
	}
	if fl.Changed("screw-len") {
		hw.ScrewThreadLength = screwLen
	}
	if fl.Changed("kerf") {
		hw.Kerf = kerf
	}
	if fl.Changed("pogo-radius") {
		hw.PogoRadius = pogoRadius
	}
	if fl.Changed("pogo-len") {
		hw.PogoUncompressedLength = pogoLen
	}
	if fl.Changed("compression") {
		hw.PogoTargetCompression = compression
	}
	if fl.Changed("contact-angle") {
		hw.MinContactAngle = contactAngle
	}
	if fl.Changed("segments") {
		hw.Segments = segments
	}
	if fl.Changed("pad") {
		hw.LaserPad = panelGap
	}
	if fl.Changed("border") {
		hw.Border = border
	}
	return hw, nil
}

// resolveLaser layers the cut parameters the same way, minus profiles.
func resolveLaser(cmd *cobra.Command, cfg model.AppConfig, base *model.LaserSettings) model.LaserSettings {
	var s model.LaserSettings
	if base != nil {
		s = *base
	} else {
		s = model.DefaultLaserSettings()
		cfg.ApplyToLaser(&s)
	}

	fl := cmd.Flags()
	if fl.Changed("feed") {
		s.FeedRate = feedRate
	}
	if fl.Changed("travel") {
		s.TravelRate = travelRate
	}
	if fl.Changed("power") {
		s.Power = laserPower
	}
	if fl.Changed("passes") {
		s.Passes = laserPasses
	}
	if fl.Changed("laser") {
		s.LaserProfile = laserProfile
	}
	return s
}

// loadBoard imports a board source plus any sidecar DXF outline,
// relaying warnings and folding hard errors into one.
func loadBoard(path string) (importer.ImportResult, error) {
	res := importer.ExtractBoard(path, importer.KiCadOptions{
		IgnoreLayer: ignoreLayer,
		ForceLayer:  forceLayer,
		CopperLayer: copperLayer,
	})
	if outlinePath != "" {
		res.Merge(importer.ImportDXFOutline(outlinePath))
	}
	printWarnings(res.Warnings)
	if err := res.Err(); err != nil {
		return res, err
	}
	if len(res.Points) == 0 {
		return res, fmt.Errorf("no test points found in %s", filepath.Base(path))
	}
	return res, nil
}

// resolveOutDir picks the output directory: the -o flag, then the
// configured default, then the input's own directory.
func resolveOutDir(cfg model.AppConfig, inputPath string) (string, error) {
	dir := outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}

// printWarnings relays accumulated warnings to stderr.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

// baseName strips the directory and extension from a path: the stem
// every output filename derives from.
func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
