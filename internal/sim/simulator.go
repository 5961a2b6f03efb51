// Package sim defines the simulation collaborator contract: a netlist
// goes in, a performance-metrics vector comes out. The default
// implementation synthesizes plausible numbers deterministically from
// the netlist text; a real SPICE backend can be substituted behind the
// same interface.
package sim

import "context"

// Metrics is the performance vector produced for one simulated circuit.
type Metrics struct {
	Efficiency    float64 `json:"efficiency"`    // Fraction, 0..1
	PowerFactor   float64 `json:"powerFactor"`   // Fraction, 0..1
	THD           float64 `json:"thd"`           // Fraction, 0..1
	VoltageRipple float64 `json:"voltageRipple"` // Output ripple, % of nominal
	CurrentRipple float64 `json:"currentRipple"` // Inductor ripple, % of load
	PeakCurrent   float64 `json:"peakCurrent"`   // A
}

// Simulator runs one circuit simulation and reports its metrics.
type Simulator interface {
	// Simulate evaluates the given netlist. Identical netlist input
	// must yield identical metrics.
	Simulate(ctx context.Context, netlist string) (Metrics, error)
}
