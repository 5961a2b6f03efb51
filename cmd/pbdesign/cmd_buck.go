package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/voltlab/powerbench/internal/formula"
	"github.com/voltlab/powerbench/internal/netlist"
	"github.com/voltlab/powerbench/internal/report"
	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
	"github.com/voltlab/powerbench/pkg/catalog"
)

func runBuck(args []string) {
	fs := flag.NewFlagSet("buck", flag.ExitOnError)
	vinMin := fs.Float64("vin-min", 12, "minimum input voltage (V)")
	vinMax := fs.Float64("vin-max", 24, "maximum input voltage (V)")
	voutMin := fs.Float64("vout-min", 3.3, "minimum output voltage (V)")
	voutMax := fs.Float64("vout-max", 5, "maximum output voltage (V)")
	pout := fs.Float64("pout", 50, "maximum output power (W)")
	eff := fs.Float64("efficiency", 0.95, "target efficiency (0..1)")
	fsw := fs.Float64("fsw", 500000, "switching frequency (Hz)")
	vripple := fs.Float64("vripple", 0.05, "maximum output voltage ripple (V)")
	vinRipple := fs.Float64("vin-ripple", 0.1, "maximum input voltage ripple (V)")
	ioutRipple := fs.Float64("iout-ripple", 0.5, "inductor ripple current (A)")
	doSweep := fs.Bool("sweep", false, "sweep shortlisted combinations through the simulator")
	csvPath := fs.String("csv", "", "write the sweep ranking to a CSV file")
	prioritize := fs.String("prioritize", "efficiency,voltageRipple,currentRipple",
		"comma-separated priority metrics for sweep ranking")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	results, err := formula.CalculateBuck(formula.BuckInputs{
		VInMin: *vinMin, VInMax: *vinMax,
		VOutMin: *voutMin, VOutMax: *voutMax,
		POutMax: *pout, Efficiency: *eff,
		SwitchingFreq: *fsw, VRippleMax: *vripple,
		VInRipple: *vinRipple, IOutRipple: *ioutRipple,
	})
	if err != nil {
		fatal("buck calculation failed: %v", err)
	}

	fmt.Printf("Buck converter design\n")
	fmt.Printf("  Inductance:         %.2f uH\n", results.Inductance*1e6)
	fmt.Printf("  Output capacitance: %.2f uF\n", results.OutputCapacitance*1e6)
	fmt.Printf("  Input capacitance:  %.2f uF\n", results.InputCapacitance*1e6)
	fmt.Printf("  Max duty cycle:     %.3f\n", results.DutyCycleMax)
	fmt.Printf("  Max output current: %.2f A\n\n", results.IOutMax)

	cat := catalog.NewCatalog()
	engine := suggest.NewEngine(cat)

	mosfets, err := engine.SuggestMOSFETs(suggest.Requirement{
		MaxVoltage: *vinMax, MaxCurrent: results.IOutMax,
	})
	if err != nil {
		fatal("mosfet suggestions failed: %v", err)
	}
	capacitors, err := engine.SuggestCapacitors(suggest.Requirement{
		MaxVoltage: *voutMax, Capacitance: results.OutputCapacitance * 1e6,
	})
	if err != nil {
		fatal("capacitor suggestions failed: %v", err)
	}
	inductors, err := engine.SuggestInductors(suggest.Requirement{
		MaxCurrent: results.IOutMax, Inductance: results.Inductance * 1e6,
	})
	if err != nil {
		fatal("inductor suggestions failed: %v", err)
	}

	report.WriteSuggestions(os.Stdout, "MOSFETs", mosfets)
	report.WriteSuggestions(os.Stdout, "Capacitors", capacitors)
	report.WriteSuggestions(os.Stdout, "Inductors", inductors)

	if !*doSweep {
		return
	}
	if len(mosfets) == 0 || len(capacitors) == 0 || len(inductors) == 0 {
		fatal("cannot sweep: at least one component class has no candidates")
	}

	op := netlist.OperatingPoint{
		InputVoltage:  *vinMax,
		OutputVoltage: *voutMax,
		LoadCurrent:   results.IOutMax,
		SwitchingFreq: *fsw,
	}
	vals := netlist.ComponentValues{
		Inductance:  results.Inductance,
		Capacitance: results.OutputCapacitance,
	}
	runShortlistSweep(netlist.CircuitBuck, op, vals, cat, mosfets, capacitors, inductors, *prioritize, *csvPath)
}

// parsePriorities maps a comma-separated metric list to sweep flags.
// Unknown names are ignored.
func parsePriorities(s string) sweep.PriorityMetrics {
	var p sweep.PriorityMetrics
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "efficiency":
			p.Efficiency = true
		case "powerfactor":
			p.PowerFactor = true
		case "thd":
			p.THD = true
		case "voltageripple":
			p.VoltageRipple = true
		case "currentripple":
			p.CurrentRipple = true
		}
	}
	return p
}
