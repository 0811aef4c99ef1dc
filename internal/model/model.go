package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/JigCut/internal/geometry"
)

// Side identifies which face of the PCB a test point is probed from.
type Side int

const (
	SideTop    Side = iota // Component side, probed by the head plates
	SideBottom             // Solder side, probed through the base deck
)

func (s Side) String() string {
	if s == SideBottom {
		return "Bottom"
	}
	return "Top"
}

// ParseSide maps the side spellings found in test-point files (column
// values, KiCad layer names) onto a Side. The second return is false
// for anything unrecognized.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t", "front", "f", "f.cu", "1":
		return SideTop, true
	case "bottom", "b", "back", "bot", "b.cu", "2":
		return SideBottom, true
	}
	return SideTop, false
}

// TestPoint is a single probe target in absolute board coordinates as
// imported. The normalizer converts these to the fixture frame.
type TestPoint struct {
	Position geometry.Point2 `json:"position"` // mm, absolute board coordinates
	Side     Side            `json:"side"`
}

// BoardGeometry describes the PCB to build a fixture for. Width and
// Height must agree with the outline bounding box within 0.5 mm;
// anything hanging outside the outline is informational only.
type BoardGeometry struct {
	Outline geometry.Polygon `json:"outline"`
	Width   float64          `json:"width"`  // mm
	Height  float64          `json:"height"` // mm
	Origin  geometry.Point2  `json:"origin"` // absolute position of the board's top-left corner
}

// HardwareSpec carries every physical dimension the synthesis depends
// on. All lengths in mm, angles in degrees.
type HardwareSpec struct {
	MaterialThickness      float64 `json:"material_thickness"` // sheet stock thickness
	PCBThickness           float64 `json:"pcb_thickness"`
	ScrewDiameter          float64 `json:"screw_diameter"`
	ScrewThreadLength      float64 `json:"screw_thread_length"`
	NutFlatToFlat          float64 `json:"nut_flat_to_flat"`
	NutCornerToCorner      float64 `json:"nut_corner_to_corner"`
	NutThickness           float64 `json:"nut_thickness"`
	WasherThickness        float64 `json:"washer_thickness"`
	PivotDiameter          float64 `json:"pivot_diameter"`
	Border                 float64 `json:"border"` // carrier retention lip
	PogoRadius             float64 `json:"pogo_radius"`
	PogoUncompressedLength float64 `json:"pogo_uncompressed_length"`
	PogoTargetCompression  float64 `json:"pogo_target_compression"`
	Kerf                   float64 `json:"kerf"` // laser beam width

	// Configuration rather than hardware, but it travels with the rest.
	MinContactAngle float64 `json:"min_contact_angle"` // degrees, head closed against the board
	Segments        int     `json:"segments"`          // circle tessellation, uniform everywhere
	LaserPad        float64 `json:"laser_pad"`         // gap between packed panels
}

// DefaultHardware returns the M3 defaults: 3 mm sheet stock, M3
// hardware, P75 style 16 mm pogo pins.
func DefaultHardware() HardwareSpec {
	return HardwareSpec{
		MaterialThickness:      3.0,
		PCBThickness:           1.6,
		ScrewDiameter:          3.0,
		ScrewThreadLength:      14.0,
		NutFlatToFlat:          5.45,
		NutCornerToCorner:      6.10,
		NutThickness:           2.4,
		WasherThickness:        1.0,
		PivotDiameter:          3.0,
		Border:                 0.8,
		PogoRadius:             0.5,
		PogoUncompressedLength: 16.0,
		PogoTargetCompression:  1.0,
		Kerf:                   0.125,
		MinContactAngle:        89.5,
		Segments:               20,
		LaserPad:               2.0,
	}
}

// Panel is one laser-cut plate. Name is unique within a sheet. The
// outline is in the panel's own frame; Placement moves it onto the
// sheet and is assigned exactly once, by the packer.
type Panel struct {
	Name      string              `json:"name"`
	Outline   geometry.Polygon    `json:"outline"`
	Placement geometry.Transform2 `json:"placement"`
}

// Placed returns the outline with the placement applied.
func (p Panel) Placed() geometry.Polygon {
	return p.Placement.ApplyPolygon(p.Outline)
}

// PlacedBounds returns the sheet-frame bounding box of the panel.
func (p Panel) PlacedBounds() geometry.Rect {
	return p.Placed().BoundingBox()
}

// LayoutSheet is the packed output of a synthesis run: every panel in
// generation order with its placement, plus any warnings the run
// accumulated.
type LayoutSheet struct {
	Panels   []Panel       `json:"panels"`
	Bounds   geometry.Rect `json:"bounds"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Find returns the named panel and whether it exists.
func (s *LayoutSheet) Find(name string) (Panel, bool) {
	for _, p := range s.Panels {
		if p.Name == name {
			return p, true
		}
	}
	return Panel{}, false
}

// Size returns the sheet extents in mm.
func (s *LayoutSheet) Size() (w, h float64) {
	return s.Bounds.Width(), s.Bounds.Height()
}

// ValidationScene is the read-only overlay for checking probe placement
// against the board artwork before committing to a cut.
type ValidationScene struct {
	Board        geometry.Polygon   `json:"board"`
	Copper       []geometry.Polygon `json:"copper,omitempty"`
	TopPoints    []geometry.Point2  `json:"top_points"`
	BottomPoints []geometry.Point2  `json:"bottom_points"`
	ProbeRadius  float64            `json:"probe_radius"` // mm
	Width        float64            `json:"width"`        // frame, mm
	Height       float64            `json:"height"`       // frame, mm
	Warnings     []string           `json:"warnings,omitempty"`
}

// Project ties one fixture job together for save/load.
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	BoardPath    string        `json:"board_path,omitempty"`
	Hardware     HardwareSpec  `json:"hardware"`
	Laser        LaserSettings `json:"laser"`
	MirrorBottom bool          `json:"mirror_bottom"`
	CreatedAt    string        `json:"created_at"`
}

// NewProject creates a project with a generated ID and default hardware.
func NewProject(name string) Project {
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Hardware:  DefaultHardware(),
		Laser:     DefaultLaserSettings(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
