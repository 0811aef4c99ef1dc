// Package engine is the fixture geometry synthesis pipeline: it turns
// normalized test points, a board outline and a hardware spec into a
// packed sheet of named, hole-punched, jointed panels.
//
// Every stage is a pure function of its inputs. A run either completes
// or fails atomically; there is no partial output and no state between
// calls.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFingerCount is returned when a finger joint is requested
	// with an even or too-small finger count. Mating edges only
	// interlock at both ends when the count is odd and at least 3.
	ErrInvalidFingerCount = errors.New("engine: finger count must be odd and >= 3")

	// ErrDegenerateConstraint is returned by the hinge solver when the
	// compression/contact-angle combination is physically meaningless
	// (zero compression, or an angle at or beyond 90 degrees).
	ErrDegenerateConstraint = errors.New("engine: degenerate compression/angle constraint")

	// ErrNoTestPoints is returned when a run is started with nothing to
	// probe.
	ErrNoTestPoints = errors.New("engine: no test points to probe")
)

// PanelError reports a generated panel whose outline is unusable:
// self-intersecting, zero area, or a failed hole cut.
type PanelError struct {
	Name   string
	Reason string
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("engine: panel %s: %s", e.Name, e.Reason)
}

// SynthesisError wraps any stage failure with the stage name and, when
// known, the offending panel. It is the only error type Synthesize
// returns.
type SynthesisError struct {
	Stage string // "normalize", "solve", "joints", "panels", "layout", "testcut"
	Panel string // empty unless a specific panel failed
	Err   error
}

func (e *SynthesisError) Error() string {
	if e.Panel != "" {
		return fmt.Sprintf("engine: stage %s, panel %s: %v", e.Stage, e.Panel, e.Err)
	}
	return fmt.Sprintf("engine: stage %s: %v", e.Stage, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// stageErr wraps err in a SynthesisError, pulling the panel name out of
// a PanelError when there is one.
func stageErr(stage string, err error) error {
	var pe *PanelError
	if errors.As(err, &pe) {
		return &SynthesisError{Stage: stage, Panel: pe.Name, Err: err}
	}
	return &SynthesisError{Stage: stage, Err: err}
}
