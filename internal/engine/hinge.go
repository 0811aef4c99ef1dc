package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/JigCut/internal/geometry"
	"github.com/piwi3910/JigCut/internal/model"
)

// Envelope is the solved fixture geometry: the hinge back-offset plus
// every outer dimension the panel generator needs. All mm.
type Envelope struct {
	WorkX float64 // board bounding box
	WorkY float64

	TPMinY        float64 // nearest probe target to the hinge
	PivotSupportR float64 // radius of material kept around the pivot
	BackOffset    float64 // hinge distance behind the nearest probe, may be negative

	ActiveXOffset float64 // clearance margin left/right of the board
	FrontYOffset  float64 // clearance margin in front of the board
	HingeYOffset  float64 // board-frame Y of the work area inside the head plates

	HeadX float64
	HeadY float64
	HeadZ float64
	BaseX float64
	BaseY float64
	BaseZ float64
	DeckZ float64 // support rail height
}

// SolveEnvelope computes the hinge placement and panel envelope.
//
// The clamshell head swings onto the base; at the target compression c
// the probe's travel vector must subtend no more than 180° - θ from
// vertical, which places the hinge at least c²/(2·c·cosθ) behind the
// contact point. Subtracting the pivot support radius and the nearest
// probe's Y gives the extra back-offset required. A negative result
// means the probes are already far enough from the hinge; it passes
// through unclamped.
func SolveEnvelope(n *NormalizedInputs, hw model.HardwareSpec) (*Envelope, error) {
	c := hw.PogoTargetCompression
	if c <= 0 {
		return nil, fmt.Errorf("%w: pogo compression %.2f mm", ErrDegenerateConstraint, c)
	}
	cosTheta := math.Cos(hw.MinContactAngle * math.Pi / 180)
	if cosTheta <= geometry.Epsilon {
		return nil, fmt.Errorf("%w: contact angle %.2f°", ErrDegenerateConstraint, hw.MinContactAngle)
	}

	env := &Envelope{
		WorkX:         n.Width,
		WorkY:         n.Height,
		TPMinY:        n.TPMinY(),
		PivotSupportR: hw.NutCornerToCorner,
	}

	env.BackOffset = (c*c)/(2*c*cosTheta) - env.PivotSupportR - env.TPMinY

	env.ActiveXOffset = hw.NutCornerToCorner + hw.MaterialThickness
	env.FrontYOffset = hw.NutCornerToCorner + hw.MaterialThickness
	env.HingeYOffset = env.PivotSupportR + env.BackOffset

	env.HeadX = env.WorkX + 2*env.ActiveXOffset
	env.HeadY = env.HingeYOffset + env.WorkY + env.FrontYOffset
	env.HeadZ = hw.PogoUncompressedLength - hw.PogoTargetCompression - hw.PCBThickness

	env.BaseX = env.HeadX + 2*(hw.WasherThickness+hw.MaterialThickness)
	env.DeckZ = hw.NutCornerToCorner
	env.BaseY = env.HeadY + hw.NutCornerToCorner + 2*hw.MaterialThickness
	env.BaseZ = env.DeckZ + 2*hw.MaterialThickness + hw.PCBThickness +
		hw.PCBThickness + hw.MaterialThickness/2 + env.PivotSupportR

	return env, nil
}
