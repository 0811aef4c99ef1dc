package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default hardware applied to new projects
	DefaultMaterialThickness float64 `json:"default_material_thickness"`
	DefaultPCBThickness      float64 `json:"default_pcb_thickness"`
	DefaultKerf              float64 `json:"default_kerf"`
	DefaultLaserPad          float64 `json:"default_laser_pad"`
	DefaultHardwareProfile   string  `json:"default_hardware_profile"`

	// Default laser cut parameters
	DefaultFeedRate     float64 `json:"default_feed_rate"`
	DefaultPower        int     `json:"default_power"`
	DefaultLaserProfile string  `json:"default_laser_profile"`

	// Application preferences
	OutputDir      string   `json:"output_dir"` // default export directory, "" = alongside input
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultHardware() and DefaultLaserSettings().
func DefaultAppConfig() AppConfig {
	hw := DefaultHardware()
	laser := DefaultLaserSettings()
	return AppConfig{
		DefaultMaterialThickness: hw.MaterialThickness,
		DefaultPCBThickness:      hw.PCBThickness,
		DefaultKerf:              hw.Kerf,
		DefaultLaserPad:          hw.LaserPad,
		DefaultHardwareProfile:   "",
		DefaultFeedRate:          laser.FeedRate,
		DefaultPower:             laser.Power,
		DefaultLaserProfile:      laser.LaserProfile,
		OutputDir:                "",
		RecentProjects:           []string{},
		Theme:                    "system",
	}
}

// ApplyToHardware copies the default values from AppConfig into a
// HardwareSpec. Used when starting a run without an explicit profile so
// it inherits the user's saved defaults.
func (c AppConfig) ApplyToHardware(hw *HardwareSpec) {
	hw.MaterialThickness = c.DefaultMaterialThickness
	hw.PCBThickness = c.DefaultPCBThickness
	hw.Kerf = c.DefaultKerf
	hw.LaserPad = c.DefaultLaserPad
}

// ApplyToLaser copies the default cut parameters into a LaserSettings.
func (c AppConfig) ApplyToLaser(s *LaserSettings) {
	s.FeedRate = c.DefaultFeedRate
	s.Power = c.DefaultPower
	s.LaserProfile = c.DefaultLaserProfile
}

// maxRecentProjects caps the recent project list.
const maxRecentProjects = 10

// RememberProject moves path to the front of the recent list,
// deduplicated and capped.
func (c *AppConfig) RememberProject(path string) {
	recent := make([]string, 0, maxRecentProjects)
	recent = append(recent, path)
	for _, p := range c.RecentProjects {
		if p == path {
			continue
		}
		recent = append(recent, p)
		if len(recent) == maxRecentProjects {
			break
		}
	}
	c.RecentProjects = recent
}
