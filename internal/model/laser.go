package model

// LaserSettings holds the cut parameters for G-code generation.
type LaserSettings struct {
	FeedRate   float64 `json:"feed_rate"`   // Cutting feed rate mm/min
	TravelRate float64 `json:"travel_rate"` // Rapid travel rate mm/min
	Power      int     `json:"power"`       // Laser power, S word (0-1000 on GRBL)
	Passes     int     `json:"passes"`      // Repeats of the full cut program

	// Post-processor profile
	LaserProfile string `json:"laser_profile"` // Name of the LaserProfile to use
}

// DefaultLaserSettings returns parameters suitable for 3 mm plywood on
// a 40 W CO2 cutter.
func DefaultLaserSettings() LaserSettings {
	return LaserSettings{
		FeedRate:     600.0,
		TravelRate:   3000.0,
		Power:        850,
		Passes:       1,
		LaserProfile: "Grbl",
	}
}

// LaserProfile defines a post-processor configuration for different
// laser controllers.
type LaserProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"` // "mm" or "inches"

	// Startup codes
	StartCode  []string `json:"start_code"`  // Commands at start of file
	LaserStart string   `json:"laser_start"` // Laser on command (e.g., "M4 S%d")
	LaserStop  string   `json:"laser_stop"`  // Laser off command

	// Motion settings
	AbsoluteMode string `json:"absolute_mode"` // G90 or equivalent
	RapidMove    string `json:"rapid_move"`    // G0 or equivalent
	FeedMove     string `json:"feed_move"`     // G1 or equivalent

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")" for Fanuc)

	// Number formatting
	DecimalPlaces int `json:"decimal_places"` // Number of decimal places for coordinates
}

// Built-in laser profiles
var LaserProfiles = []LaserProfile{
	{
		Name:          "Grbl",
		Description:   "GRBL 1.1 in dynamic laser mode (M4 power compensation)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		LaserStart:    "M4 S%d",
		LaserStop:     "M5",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
	{
		Name:          "GrblConstant",
		Description:   "GRBL 1.1 constant power mode (M3, for engravers without $32)",
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		LaserStart:    "M3 S%d",
		LaserStop:     "M5",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserStart:    "M3 S%d",
		LaserStop:     "M5",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
	},
}

// GetLaserProfile returns a laser profile by name, or the Generic
// profile if not found.
func GetLaserProfile(name string) LaserProfile {
	for _, p := range LaserProfiles {
		if p.Name == name {
			return p
		}
	}
	return LaserProfiles[len(LaserProfiles)-1] // Return Generic (last one)
}

// GetLaserProfileNames returns a list of all available profile names.
func GetLaserProfileNames() []string {
	var names []string
	for _, p := range LaserProfiles {
		names = append(names, p.Name)
	}
	return names
}
