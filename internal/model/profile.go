package model

// HardwareProfile is a named hardware specification: one stock material
// and screw kit, reusable across boards.
type HardwareProfile struct {
	Name      string       `json:"name"`
	Hardware  HardwareSpec `json:"hardware"`
	IsBuiltIn bool         `json:"is_built_in,omitempty"`
}

// BuiltInHardwareProfiles returns the stock profiles. The ply kit is
// DefaultHardware; the acrylic variant thins the sheet and the beam.
func BuiltInHardwareProfiles() []HardwareProfile {
	acrylic := DefaultHardware()
	acrylic.MaterialThickness = 2.5
	acrylic.Kerf = 0.1

	return []HardwareProfile{
		{Name: "M3 3mm ply", Hardware: DefaultHardware(), IsBuiltIn: true},
		{Name: "M3 2.5mm acrylic", Hardware: acrylic, IsBuiltIn: true},
	}
}

// GetHardwareProfile finds a profile by name, custom profiles first so
// a user can shadow a built-in.
func GetHardwareProfile(name string, custom []HardwareProfile) (HardwareProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltInHardwareProfiles() {
		if p.Name == name {
			return p, true
		}
	}
	return HardwareProfile{}, false
}

// GetHardwareProfileNames lists built-in then custom profile names.
func GetHardwareProfileNames(custom []HardwareProfile) []string {
	builtIn := BuiltInHardwareProfiles()
	names := make([]string, 0, len(builtIn)+len(custom))
	for _, p := range builtIn {
		names = append(names, p.Name)
	}
	for _, p := range custom {
		names = append(names, p.Name)
	}
	return names
}
