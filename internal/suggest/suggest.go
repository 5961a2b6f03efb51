// Package suggest implements the component recommendation engine: it
// filters a catalog against hard safety-margin constraints and scores
// the survivors, returning a short ranked list with per-candidate
// justifications.
package suggest

import (
	"fmt"
	"math"
	"strings"

	"github.com/voltlab/powerbench/pkg/components"
)

// Requirement describes the electrical stress a component must satisfy.
// Which fields are consulted depends on the component class: MOSFETs
// use MaxVoltage and MaxCurrent, capacitors use MaxVoltage and
// Capacitance, inductors use MaxCurrent and Inductance.
type Requirement struct {
	MaxVoltage  float64 `json:"maxVoltage"`  // V
	MaxCurrent  float64 `json:"maxCurrent"`  // A
	Capacitance float64 `json:"capacitance"` // µF
	Inductance  float64 `json:"inductance"`  // µH

	// PreferredPackage, when set, annotates candidates whose package
	// name contains it. It never changes a score.
	PreferredPackage string `json:"preferredPackage,omitempty"`
}

// Suggestion is one scored candidate. Reasons is ordered: a margin
// summary first, then one phrase per triggered bonus in evaluation
// order.
type Suggestion struct {
	Part    components.Part `json:"part"`
	Score   float64         `json:"score"`
	Reasons []string        `json:"reasons"`
}

// Reason returns the justification as a single semicolon-joined string.
func (s Suggestion) Reason() string {
	return strings.Join(s.Reasons, "; ")
}

// ValidationError reports a requirement field that is not a positive
// finite number. Requirements are rejected before any filtering work.
type ValidationError struct {
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("suggest: requirement %s must be a positive finite number, got %g", e.Field, e.Value)
}

// validateFields checks the named requirement fields.
func validateFields(fields map[string]float64) error {
	for name, v := range fields {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Field: name, Value: v}
		}
	}
	return nil
}
