package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/JigCut/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.jigcut")

	proj := model.NewProject("demo_board")
	proj.BoardPath = "demo.kicad_pcb"
	proj.MirrorBottom = true
	proj.Hardware.MaterialThickness = 6.0
	proj.Laser.FeedRate = 450.0

	if err := Save(path, proj); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "demo_board" {
		t.Errorf("expected name demo_board, got %s", loaded.Name)
	}
	if loaded.ID != proj.ID {
		t.Errorf("expected ID %s, got %s", proj.ID, loaded.ID)
	}
	if len(loaded.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", loaded.ID)
	}
	if loaded.BoardPath != "demo.kicad_pcb" {
		t.Errorf("expected board path demo.kicad_pcb, got %s", loaded.BoardPath)
	}
	if !loaded.MirrorBottom {
		t.Error("expected MirrorBottom to survive the roundtrip")
	}
	if loaded.Hardware.MaterialThickness != 6.0 {
		t.Errorf("expected material thickness 6.0, got %f", loaded.Hardware.MaterialThickness)
	}
	if loaded.Laser.FeedRate != 450.0 {
		t.Errorf("expected feed rate 450.0, got %f", loaded.Laser.FeedRate)
	}
}

func TestLoadProjectMissingHardware(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.jigcut")
	if err := os.WriteFile(path, []byte(`{"name":"bare"}`), 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if proj.Hardware.MaterialThickness != 3.0 {
		t.Errorf("expected default material thickness 3.0, got %f", proj.Hardware.MaterialThickness)
	}
	if proj.Hardware.Segments != 20 {
		t.Errorf("expected default segments 20, got %d", proj.Hardware.Segments)
	}
	if proj.Laser.FeedRate != 600.0 {
		t.Errorf("expected default feed rate 600.0, got %f", proj.Laser.FeedRate)
	}
}

func TestLoadProjectMissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed.jigcut")
	if err := os.WriteFile(path, []byte(`{"mirror_bottom":true}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for project without a name")
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gone.jigcut"))
	if err == nil {
		t.Fatal("expected error for missing project file")
	}
}

func TestSaveProjectCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs", "bench", "demo.jigcut")

	if err := Save(path, model.NewProject("nested")); err != nil {
		t.Fatalf("Save should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("project file was not created")
	}
}

func TestNewProject(t *testing.T) {
	proj := model.NewProject("fresh")

	if proj.Name != "fresh" {
		t.Errorf("expected name fresh, got %s", proj.Name)
	}
	if len(proj.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", proj.ID)
	}
	if _, err := time.Parse(time.RFC3339, proj.CreatedAt); err != nil {
		t.Errorf("CreatedAt should be RFC3339, got %q: %v", proj.CreatedAt, err)
	}
	if proj.Hardware.ScrewDiameter != 3.0 {
		t.Errorf("expected default screw diameter 3.0, got %f", proj.Hardware.ScrewDiameter)
	}
	if proj.Laser.LaserProfile != "Grbl" {
		t.Errorf("expected default laser profile Grbl, got %s", proj.Laser.LaserProfile)
	}
}
