// Package sweep enumerates every combination of user-selected candidate
// components, simulates each one, and produces a totally ordered
// ranking by a weighted composite of the user's priority metrics.
package sweep

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voltlab/powerbench/internal/netlist"
	"github.com/voltlab/powerbench/internal/sim"
	"github.com/voltlab/powerbench/pkg/components"
)

// PriorityMetrics flags which performance metrics contribute to the
// composite score. All false is allowed: every combination then scores
// zero and the ranking degenerates to enumeration order.
type PriorityMetrics struct {
	Efficiency    bool `json:"efficiency"`
	PowerFactor   bool `json:"powerFactor"`
	THD           bool `json:"thd"`
	VoltageRipple bool `json:"voltageRipple"`
	CurrentRipple bool `json:"currentRipple"`
}

// Active returns the names of the flagged metrics in weight order.
func (p PriorityMetrics) Active() []string {
	names := make([]string, 0, 5)
	if p.Efficiency {
		names = append(names, "efficiency")
	}
	if p.PowerFactor {
		names = append(names, "powerFactor")
	}
	if p.THD {
		names = append(names, "thd")
	}
	if p.VoltageRipple {
		names = append(names, "voltageRipple")
	}
	if p.CurrentRipple {
		names = append(names, "currentRipple")
	}
	return names
}

// Config selects the candidate sets for one sweep, by part number, plus
// the priority metrics to rank by.
type Config struct {
	MOSFETs    []string        `json:"mosfets"`
	Capacitors []string        `json:"capacitors"`
	Inductors  []string        `json:"inductors"`
	Priorities PriorityMetrics `json:"priorities"`
}

// Combinations returns the size of the Cartesian product.
func (c Config) Combinations() int {
	return len(c.MOSFETs) * len(c.Capacitors) * len(c.Inductors)
}

// Result is the outcome for one simulated combination. Score and Rank
// are filled by the ranking step once all combinations are collected.
type Result struct {
	ID        string               `json:"id"`
	MOSFET    components.MOSFET    `json:"mosfet"`
	Capacitor components.Capacitor `json:"capacitor"`
	Inductor  components.Inductor  `json:"inductor"`
	Metrics   sim.Metrics          `json:"metrics"`
	Score     float64              `json:"score"`
	Rank      int                  `json:"rank"` // 1-based
}

// Report is the complete outcome of one sweep.
type Report struct {
	ID              string              `json:"id"`
	CircuitType     netlist.CircuitType `json:"circuitType"`
	Timestamp       time.Time           `json:"timestamp"`
	Permutations    []Result            `json:"permutations"`
	Best            *Result             `json:"bestPermutation,omitempty"`
	PriorityMetrics []string            `json:"priorityMetrics"`
}

// newReport stamps a fresh report envelope.
func newReport(ct netlist.CircuitType, priorities PriorityMetrics) *Report {
	return &Report{
		ID:              uuid.New().String(),
		CircuitType:     ct,
		Timestamp:       time.Now().UTC(),
		PriorityMetrics: priorities.Active(),
	}
}

// ProgressFunc is invoked once per combination, before its simulation
// completes. current is 1-based; id is the combination identifier.
type ProgressFunc func(current, total int, id string)

// ConfigError reports a selected part number that does not exist in the
// catalog. The UI layer should have caught this; the engine rejects it
// rather than producing a malformed combination id.
type ConfigError struct {
	Class      components.Class
	PartNumber string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sweep: %s %q not found in catalog", e.Class, e.PartNumber)
}

// SimulationError aborts the whole sweep: no partial ranking is exposed
// when any combination's metrics call fails.
type SimulationError struct {
	CombinationID string
	Err           error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("sweep: simulation failed for combination %s: %v", e.CombinationID, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }

// combinationID builds the deterministic key for one component triple.
func combinationID(m, c, l string) string {
	return m + "_" + c + "_" + l
}
