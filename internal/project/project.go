package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/JigCut/internal/model"
)

// Save persists a project to the given path as JSON.
// It creates any missing parent directories automatically.
func Save(path string, proj model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path. Hardware and laser blocks
// absent from the file keep their defaults.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}

	proj := model.Project{
		Hardware: model.DefaultHardware(),
		Laser:    model.DefaultLaserSettings(),
	}
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, err
	}
	if proj.Name == "" {
		return model.Project{}, errors.New("invalid project file: missing name")
	}
	return proj, nil
}
