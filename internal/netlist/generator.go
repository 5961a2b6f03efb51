// Package netlist renders SPICE-style netlist text for the supported
// converter topologies. Generation is a deterministic string template:
// the same inputs always produce byte-identical output, which the
// mocked simulator relies on for reproducible metrics.
package netlist

import (
	"fmt"
	"strings"

	"github.com/voltlab/powerbench/pkg/components"
)

// CircuitType selects the converter topology.
type CircuitType string

const (
	CircuitPFC  CircuitType = "PFC"
	CircuitBuck CircuitType = "BUCK"
)

// Valid reports whether ct names a supported topology.
func (ct CircuitType) Valid() bool {
	return ct == CircuitPFC || ct == CircuitBuck
}

// OperatingPoint holds the electrical operating conditions the netlist
// is generated for.
type OperatingPoint struct {
	InputVoltage  float64 `json:"inputVoltage"`  // V
	OutputVoltage float64 `json:"outputVoltage"` // V
	LoadCurrent   float64 `json:"loadCurrent"`   // A
	SwitchingFreq float64 `json:"switchingFreq"` // Hz
}

// ComponentValues are the calculated passive values placed in the netlist.
type ComponentValues struct {
	Inductance  float64 `json:"inductance"`  // H
	Capacitance float64 `json:"capacitance"` // F
}

// Parts is one concrete component selection for a simulated circuit.
type Parts struct {
	MOSFET    components.MOSFET
	Capacitor components.Capacitor
	Inductor  components.Inductor
}

// Generate renders the netlist for the given topology, operating point,
// calculated values, and selected parts.
func Generate(ct CircuitType, op OperatingPoint, vals ComponentValues, parts Parts) (string, error) {
	switch ct {
	case CircuitBuck:
		return buckNetlist(op, vals, parts), nil
	case CircuitPFC:
		return pfcNetlist(op, vals, parts), nil
	default:
		return "", fmt.Errorf("netlist: unsupported circuit type %q", ct)
	}
}

// buckNetlist models the MOSFET as a switched resistance equal to its
// RDS(on), the inductor with its winding DCR in series, and the output
// capacitor with its rated capacitance.
func buckNetlist(op OperatingPoint, vals ComponentValues, parts Parts) string {
	var b strings.Builder
	period := 1 / op.SwitchingFreq
	duty := op.OutputVoltage / op.InputVoltage
	rLoad := op.OutputVoltage / op.LoadCurrent

	fmt.Fprintf(&b, "* Buck converter - %s / %s / %s\n",
		parts.MOSFET.PartNumber, parts.Capacitor.PartNumber, parts.Inductor.PartNumber)
	fmt.Fprintf(&b, "VIN in 0 DC %s\n", spiceNum(op.InputVoltage))
	fmt.Fprintf(&b, "VG g 0 PULSE(0 10 0 10n 10n %s %s)\n",
		spiceNum(duty*period), spiceNum(period))
	fmt.Fprintf(&b, "SW in sw g 0 SWMOD\n")
	fmt.Fprintf(&b, ".model SWMOD SW(Ron=%s Roff=1Meg Vt=5)\n",
		spiceNum(parts.MOSFET.RDSOn*1e-3))
	fmt.Fprintf(&b, "D1 0 sw DFWD\n")
	fmt.Fprintf(&b, ".model DFWD D(Is=1e-14)\n")
	fmt.Fprintf(&b, "L1 sw lx %s\n", spiceNum(vals.Inductance))
	fmt.Fprintf(&b, "RL lx out %s\n", spiceNum(parts.Inductor.DCR*1e-3))
	fmt.Fprintf(&b, "C1 out 0 %s\n", spiceNum(parts.Capacitor.Capacitance*1e-6))
	fmt.Fprintf(&b, "RLOAD out 0 %s\n", spiceNum(rLoad))
	fmt.Fprintf(&b, ".tran 1u 2m uic\n")
	fmt.Fprintf(&b, ".end\n")
	return b.String()
}

// pfcNetlist is a boost stage fed from a rectified line source.
func pfcNetlist(op OperatingPoint, vals ComponentValues, parts Parts) string {
	var b strings.Builder
	period := 1 / op.SwitchingFreq
	duty := 1 - op.InputVoltage/op.OutputVoltage
	rLoad := op.OutputVoltage / op.LoadCurrent

	fmt.Fprintf(&b, "* PFC boost - %s / %s / %s\n",
		parts.MOSFET.PartNumber, parts.Capacitor.PartNumber, parts.Inductor.PartNumber)
	fmt.Fprintf(&b, "VIN in 0 SIN(0 %s 50)\n", spiceNum(op.InputVoltage*1.4142))
	fmt.Fprintf(&b, "DB1 in rect DRECT\n")
	fmt.Fprintf(&b, ".model DRECT D(Is=1e-14)\n")
	fmt.Fprintf(&b, "L1 rect lx %s\n", spiceNum(vals.Inductance))
	fmt.Fprintf(&b, "RL lx sw %s\n", spiceNum(parts.Inductor.DCR*1e-3))
	fmt.Fprintf(&b, "VG g 0 PULSE(0 10 0 10n 10n %s %s)\n",
		spiceNum(duty*period), spiceNum(period))
	fmt.Fprintf(&b, "SW sw 0 g 0 SWMOD\n")
	fmt.Fprintf(&b, ".model SWMOD SW(Ron=%s Roff=1Meg Vt=5)\n",
		spiceNum(parts.MOSFET.RDSOn*1e-3))
	fmt.Fprintf(&b, "DBOOST sw out DFWD\n")
	fmt.Fprintf(&b, ".model DFWD D(Is=1e-14)\n")
	fmt.Fprintf(&b, "C1 out 0 %s\n", spiceNum(parts.Capacitor.Capacitance*1e-6))
	fmt.Fprintf(&b, "RLOAD out 0 %s\n", spiceNum(rLoad))
	fmt.Fprintf(&b, ".tran 1u 40m uic\n")
	fmt.Fprintf(&b, ".end\n")
	return b.String()
}

// spiceNum formats a value the way SPICE decks usually carry them:
// compact, without exponent noise for common magnitudes.
func spiceNum(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
