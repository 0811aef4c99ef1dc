package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/JigCut/internal/model"
)

func newLaserTestSettings() model.LaserSettings {
	s := model.DefaultLaserSettings()
	s.FeedRate = 1000.0
	s.Power = 800
	s.Passes = 1
	s.LaserProfile = "Generic"
	return s
}

func TestGenerateGCode_HeaderAndFooter(t *testing.T) {
	job := NewLaserJob(newLaserTestSettings())
	code := job.Generate(buildTestSheet(t))

	wants := []string{
		"; JigCut laser job - 2 panels on 74 x 30 mm",
		"; Feed: 1000 mm/min, Power: S800, Passes: 1",
		"; Profile: Generic",
		"G21",
		"G90",
		"; === Job complete ===",
		"M2",
	}
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("G-code missing %q", want)
		}
	}
}

func TestGenerateGCode_BeamOnOffPerRing(t *testing.T) {
	job := NewLaserJob(newLaserTestSettings())
	code := job.Generate(buildTestSheet(t))

	// Three rings: plate outline, its bore, and the spacer outline
	if got := strings.Count(code, "M3 S800"); got != 3 {
		t.Errorf("expected 3 beam-on commands, got %d", got)
	}
	// One beam-off per ring plus the one in the end code
	if got := strings.Count(code, "M5"); got != 4 {
		t.Errorf("expected 4 beam-off commands, got %d", got)
	}
}

func TestGenerateGCode_HolesBeforeOutline(t *testing.T) {
	job := NewLaserJob(newLaserTestSettings())
	code := job.Generate(buildTestSheet(t))

	firstOn := strings.Index(code, "M3 S800")
	outlineRapid := strings.Index(code, "G0 X0.000 Y0.000")
	if firstOn < 0 || outlineRapid < 0 {
		t.Fatal("expected both a beam-on command and the outline rapid")
	}
	if outlineRapid < firstOn {
		t.Error("expected the bore to be cut before the panel outline")
	}
}

func TestGenerateGCode_MultiplePasses(t *testing.T) {
	sheet := buildTestSheet(t)

	single := newLaserTestSettings()
	one := NewLaserJob(single).Generate(sheet)

	double := newLaserTestSettings()
	double.Passes = 2
	two := NewLaserJob(double).Generate(sheet)

	if got, want := strings.Count(two, "G1 "), 2*strings.Count(one, "G1 "); got != want {
		t.Errorf("expected %d feed moves with two passes, got %d", want, got)
	}
	if !strings.Contains(two, "Passes: 2") {
		t.Error("header should report the pass count")
	}
}

func TestGenerateGCode_GrblProfile(t *testing.T) {
	settings := newLaserTestSettings()
	settings.LaserProfile = "Grbl"
	code := NewLaserJob(settings).Generate(buildTestSheet(t))

	if !strings.Contains(code, "M4 S800") {
		t.Error("Grbl profile should use dynamic power mode M4")
	}
	if !strings.Contains(code, "G17") {
		t.Error("Grbl profile start code should select the XY plane")
	}
}

func TestNewLaserJob_UnknownProfileFallsBack(t *testing.T) {
	settings := newLaserTestSettings()
	settings.LaserProfile = "NoSuchController"
	job := NewLaserJob(settings)

	if job.profile.Name != "Generic" {
		t.Errorf("expected fallback to Generic profile, got %q", job.profile.Name)
	}
}

func TestExportGCode_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.nc")

	if err := ExportGCode(path, buildTestSheet(t), newLaserTestSettings()); err != nil {
		t.Fatalf("ExportGCode returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("G-code file was not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("G-code file is empty")
	}
}

func TestExportGCode_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.nc")

	if err := ExportGCode(path, &model.LayoutSheet{}, newLaserTestSettings()); err == nil {
		t.Fatal("expected error for empty sheet, got nil")
	}
}
