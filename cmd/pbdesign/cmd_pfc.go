package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/formula"
	"github.com/voltlab/powerbench/internal/netlist"
	"github.com/voltlab/powerbench/internal/report"
	"github.com/voltlab/powerbench/internal/sim"
	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
	"github.com/voltlab/powerbench/pkg/catalog"
)

func runPFC(args []string) {
	fs := flag.NewFlagSet("pfc", flag.ExitOnError)
	vinMin := fs.Float64("vin-min", 100, "minimum input voltage (V)")
	vinMax := fs.Float64("vin-max", 240, "maximum input voltage (V)")
	voutMin := fs.Float64("vout-min", 380, "minimum output voltage (V)")
	voutMax := fs.Float64("vout-max", 400, "maximum output voltage (V)")
	pout := fs.Float64("pout", 3000, "maximum output power (W)")
	eff := fs.Float64("efficiency", 0.98, "target efficiency (0..1)")
	fsw := fs.Float64("fsw", 65000, "switching frequency (Hz)")
	lineFreq := fs.Float64("line-freq", 50, "minimum line frequency (Hz)")
	vripple := fs.Float64("vripple", 20, "maximum output voltage ripple (V)")
	doSweep := fs.Bool("sweep", false, "sweep shortlisted combinations through the simulator")
	csvPath := fs.String("csv", "", "write the sweep ranking to a CSV file")
	prioritize := fs.String("prioritize", "efficiency,powerFactor,thd",
		"comma-separated priority metrics for sweep ranking")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	results, err := formula.CalculatePFC(formula.PFCInputs{
		VInMin: *vinMin, VInMax: *vinMax,
		VOutMin: *voutMin, VOutMax: *voutMax,
		POutMax: *pout, Efficiency: *eff,
		SwitchingFreq: *fsw, LineFreqMin: *lineFreq, VRippleMax: *vripple,
	})
	if err != nil {
		fatal("pfc calculation failed: %v", err)
	}

	fmt.Printf("PFC boost design\n")
	fmt.Printf("  Inductance:     %.2f mH\n", results.Inductance*1e3)
	fmt.Printf("  Capacitance:    %.2f uF\n", results.Capacitance*1e6)
	fmt.Printf("  Ripple current: %.2f A\n", results.RippleCurrent)
	fmt.Printf("  Peak input I:   %.2f A\n\n", results.IInMax)

	cat := catalog.NewCatalog()
	engine := suggest.NewEngine(cat)

	mosfets, err := engine.SuggestMOSFETs(suggest.Requirement{
		MaxVoltage: *voutMax, MaxCurrent: results.IInMax,
	})
	if err != nil {
		fatal("mosfet suggestions failed: %v", err)
	}
	capacitors, err := engine.SuggestCapacitors(suggest.Requirement{
		MaxVoltage: *voutMax, Capacitance: results.Capacitance * 1e6,
	})
	if err != nil {
		fatal("capacitor suggestions failed: %v", err)
	}
	inductors, err := engine.SuggestInductors(suggest.Requirement{
		MaxCurrent: results.IInMax, Inductance: results.Inductance * 1e6,
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
		InputVoltage:  *vinMin,
		OutputVoltage: *voutMin,
		LoadCurrent:   *pout / *voutMin,
		SwitchingFreq: *fsw,
	}
	vals := netlist.ComponentValues{
		Inductance:  results.Inductance,
		Capacitance: results.Capacitance,
	}
	runShortlistSweep(netlist.CircuitPFC, op, vals, cat, mosfets, capacitors, inductors, *prioritize, *csvPath)
}

// runShortlistSweep sweeps the suggestion shortlists through the mock
// simulator and renders the ranked result.
func runShortlistSweep(ct netlist.CircuitType, op netlist.OperatingPoint, vals netlist.ComponentValues,
	cat *catalog.Catalog, mosfets, capacitors, inductors []suggest.Suggestion, prioritize, csvPath string) {

	logger := zap.NewNop()
	engine := sweep.NewEngine(cat, sim.NewMockSimulator(), logger)

	cfg := sweep.Config{
		MOSFETs:    partNumbers(mosfets),
		Capacitors: partNumbers(capacitors),
		Inductors:  partNumbers(inductors),
		Priorities: parsePriorities(prioritize),
	}

	onProgress := func(current, total int, id string) {
		fmt.Fprintf(os.Stderr, "\rsimulating %d/%d: %s", current, total, id)
		if current == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	rep, err := engine.Run(context.Background(), ct, op, vals, cfg, onProgress)
	if err != nil {
		fatal("sweep failed: %v", err)
	}

	report.WriteSweep(os.Stdout, rep)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			fatal("create %s: %v", csvPath, err)
		}
		defer f.Close()
		if err := report.WriteSweepCSV(f, rep); err != nil {
			fatal("write csv: %v", err)
		}
		fmt.Printf("Ranking written to %s\n", csvPath)
	}
}

func partNumbers(suggestions []suggest.Suggestion) []string {
	pns := make([]string, len(suggestions))
	for i, s := range suggestions {
		pns[i] = s.Part.ID()
	}
	return pns
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
