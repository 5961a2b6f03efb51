package netlist

import (
	"strings"
	"testing"

	"github.com/voltlab/powerbench/internal/testutil"
)

func testParts() Parts {
	return Parts{
		MOSFET:    testutil.NewMOSFET("FET-X", testutil.WithRDSOn(2.5)),
		Capacitor: testutil.NewCapacitor("CAP-X", testutil.WithCapRating(330, 63)),
		Inductor:  testutil.NewInductor("IND-X", testutil.WithDCR(12)),
	}
}

var (
	buckOp   = OperatingPoint{InputVoltage: 24, OutputVoltage: 12, LoadCurrent: 4, SwitchingFreq: 500e3}
	buckVals = ComponentValues{Inductance: 22e-6, Capacitance: 100e-6}
)

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(CircuitBuck, buckOp, buckVals, testParts())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(CircuitBuck, buckOp, buckVals, testParts())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first != second {
		t.Error("identical inputs produced different netlists")
	}
}

func TestGenerate_Buck(t *testing.T) {
	got, err := Generate(CircuitBuck, buckOp, buckVals, testParts())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, want := range []string{
		"* Buck converter - FET-X / CAP-X / IND-X",
		"Ron=0.0025",   // RDSOn 2.5 mOhm
		"RL lx out 0.012", // DCR 12 mOhm
		"C1 out 0 0.00033", // 330 uF rated capacitance
		"RLOAD out 0 3", // 12 V / 4 A
		".tran",
		".end",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("buck netlist missing %q:\n%s", want, got)
		}
	}
}

func TestGenerate_PFC(t *testing.T) {
	op := OperatingPoint{InputVoltage: 100, OutputVoltage: 380, LoadCurrent: 7.9, SwitchingFreq: 65e3}
	vals := ComponentValues{Inductance: 185e-6, Capacitance: 1.25e-3}

	got, err := Generate(CircuitPFC, op, vals, testParts())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, want := range []string{
		"* PFC boost - FET-X / CAP-X / IND-X",
		"SIN(0 141.42 50)", // rectified line source at Vin*sqrt(2)
		"DBOOST sw out",
		".end",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pfc netlist missing %q:\n%s", want, got)
		}
	}
}

func TestGenerate_PartDependentOutput(t *testing.T) {
	base, err := Generate(CircuitBuck, buckOp, buckVals, testParts())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	other := testParts()
	other.MOSFET = testutil.NewMOSFET("FET-Y", testutil.WithRDSOn(9.9))
	swapped, err := Generate(CircuitBuck, buckOp, buckVals, other)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if base == swapped {
		t.Error("swapping the MOSFET did not change the netlist")
	}
}

func TestGenerate_UnsupportedType(t *testing.T) {
	if _, err := Generate(CircuitType("SEPIC"), buckOp, buckVals, testParts()); err == nil {
		t.Fatal("Generate() with unsupported circuit type should fail")
	}
}

func TestCircuitTypeValid(t *testing.T) {
	tests := []struct {
		ct   CircuitType
		want bool
	}{
		{CircuitPFC, true},
		{CircuitBuck, true},
		{CircuitType(""), false},
		{CircuitType("pfc"), false},
	}
	for _, tt := range tests {
		if got := tt.ct.Valid(); got != tt.want {
			t.Errorf("CircuitType(%q).Valid() = %v, want %v", tt.ct, got, tt.want)
		}
	}
}
