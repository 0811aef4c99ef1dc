package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

func buildTestScene() *model.ValidationScene {
	return &model.ValidationScene{
		Board: geometry.Rectangle(100, 50),
		Copper: []geometry.Polygon{
			geometry.Capsule(geometry.Pt(30, 20), geometry.Pt(40, 20), 1, 8),
		},
		TopPoints:    []geometry.Point2{geometry.Pt(10, 5)},
		BottomPoints: []geometry.Point2{geometry.Pt(80, 40)},
		ProbeRadius:  0.5,
		Width:        100,
		Height:       50,
	}
}

func TestWriteSheetSVG(t *testing.T) {
	var b strings.Builder
	WriteSheetSVG(&b, buildTestSheet(t))
	out := b.String()

	if !strings.Contains(out, "<svg") {
		t.Fatal("output is not an SVG document")
	}
	if !strings.Contains(out, `width="74mm"`) {
		t.Errorf("expected a 74mm wide canvas in: %.120s", out)
	}
	if !strings.Contains(out, `viewBox="0 0 74 30"`) {
		t.Error("expected a millimeter viewBox")
	}
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("expected 2 panel paths, got %d", got)
	}
	if !strings.Contains(out, "evenodd") {
		t.Error("expected even-odd fill for panel holes")
	}
	for _, name := range []string{"clamp_plate", "spacer"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing panel label %q", name)
		}
	}
}

func TestWriteValidationSVG(t *testing.T) {
	var b strings.Builder
	WriteValidationSVG(&b, buildTestScene())
	out := b.String()

	if !strings.Contains(out, `viewBox="-5 -5 110 60"`) {
		t.Errorf("expected a margin viewBox in: %.200s", out)
	}
	if !strings.Contains(out, "fill-opacity:0.25") {
		t.Error("expected a semi-opaque board fill")
	}
	if !strings.Contains(out, "#b87333") {
		t.Error("expected the copper silhouette in copper color")
	}
	if !strings.Contains(out, "#2e7d32") {
		t.Error("expected top probes in green")
	}
	if !strings.Contains(out, "#c62828") {
		t.Error("expected bottom probes in red")
	}
	// One circle per probe, two arc segments each
	if got := strings.Count(out, "A0.50 0.50"); got != 4 {
		t.Errorf("expected 4 probe arc segments, got %d", got)
	}
}

func TestWriteValidationSVG_NoCopper(t *testing.T) {
	scene := buildTestScene()
	scene.Copper = nil

	var b strings.Builder
	WriteValidationSVG(&b, scene)
	out := b.String()

	if strings.Contains(out, "#b87333") {
		t.Error("expected no copper silhouette")
	}
	if !strings.Contains(out, "#2e7d32") {
		t.Error("expected probes to render without copper")
	}
}

func TestExportSVG_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.svg")

	if err := ExportSVG(path, buildTestSheet(t)); err != nil {
		t.Fatalf("ExportSVG returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("SVG file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("SVG file is empty")
	}
}

func TestExportSVG_EmptySheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.svg")

	if err := ExportSVG(path, &model.LayoutSheet{}); err == nil {
		t.Fatal("expected error for empty sheet, got nil")
	}
}

func TestExportValidationSVG_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validate.svg")

	if err := ExportValidationSVG(path, buildTestScene()); err != nil {
		t.Fatalf("ExportValidationSVG returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("SVG file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("SVG file is empty")
	}
}
