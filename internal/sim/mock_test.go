package sim

import (
	"context"
	"testing"
	"time"
)

const testNetlist = "* Buck converter - FET-1 / CAP-1 / IND-1\nVIN in 0 DC 24\n.end\n"

func TestMockSimulator_Deterministic(t *testing.T) {
	m := NewMockSimulator(WithLatency(0))

	first, err := m.Simulate(context.Background(), testNetlist)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	second, err := m.Simulate(context.Background(), testNetlist)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if first != second {
		t.Errorf("same netlist produced different metrics:\n  first  = %+v\n  second = %+v", first, second)
	}
}

func TestMockSimulator_DifferentNetlistsDiffer(t *testing.T) {
	m := NewMockSimulator(WithLatency(0))

	a, err := m.Simulate(context.Background(), testNetlist)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	b, err := m.Simulate(context.Background(), testNetlist+"* trailer\n")
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if a == b {
		t.Error("distinct netlists produced identical metrics")
	}
}

func TestMockSimulator_MetricsInRange(t *testing.T) {
	m := NewMockSimulator(WithLatency(0))

	netlists := []string{testNetlist, "alpha", "beta", "gamma", "delta"}
	for _, n := range netlists {
		got, err := m.Simulate(context.Background(), n)
		if err != nil {
			t.Fatalf("Simulate(%q) error = %v", n, err)
		}

		checks := []struct {
			name     string
			v        float64
			min, max float64
		}{
			{"efficiency", got.Efficiency, 0.90, 0.98},
			{"power factor", got.PowerFactor, 0.95, 0.995},
			{"thd", got.THD, 0.03, 0.12},
			{"voltage ripple", got.VoltageRipple, 0.5, 5.0},
			{"current ripple", got.CurrentRipple, 0.3, 3.5},
			{"peak current", got.PeakCurrent, 5, 25},
		}
		for _, c := range checks {
			if c.v < c.min || c.v > c.max {
				t.Errorf("netlist %q: %s = %g outside [%g, %g]", n, c.name, c.v, c.min, c.max)
			}
		}
	}
}

func TestMockSimulator_SeedFuncOverride(t *testing.T) {
	fixed := func(string) int64 { return 42 }
	m := NewMockSimulator(WithLatency(0), WithSeedFunc(fixed))

	a, err := m.Simulate(context.Background(), "one netlist")
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	b, err := m.Simulate(context.Background(), "a completely different netlist")
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if a != b {
		t.Error("pinned seed should produce identical metrics for any netlist")
	}
}

func TestMockSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMockSimulator(WithLatency(time.Second))
	if _, err := m.Simulate(ctx, testNetlist); err == nil {
		t.Fatal("Simulate() with cancelled context should fail")
	}

	m = NewMockSimulator(WithLatency(0))
	if _, err := m.Simulate(ctx, testNetlist); err == nil {
		t.Fatal("Simulate() with cancelled context and zero latency should fail")
	}
}

func TestNetlistSeed_Stable(t *testing.T) {
	if NetlistSeed(testNetlist) != NetlistSeed(testNetlist) {
		t.Error("NetlistSeed is not stable for identical input")
	}
	if NetlistSeed("a") == NetlistSeed("b") {
		t.Error("NetlistSeed collided on trivially different inputs")
	}
}
