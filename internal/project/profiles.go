package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/JigCut/internal/model"
)

// DefaultProfilesPath returns the default file path for custom hardware
// profiles, alongside the app config under ~/.jigcut/.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom hardware profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.HardwareProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom hardware profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.HardwareProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.HardwareProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.HardwareProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.HardwareProfile) error {
	return SaveCustomProfiles(DefaultProfilesPath(), profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.HardwareProfile, error) {
	return LoadCustomProfiles(DefaultProfilesPath())
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.HardwareProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.HardwareProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.HardwareProfile{}, err
	}

	var profile model.HardwareProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.HardwareProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.HardwareProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
