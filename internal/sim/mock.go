package sim

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"
)

// SeedFunc derives the random seed for a simulation from its netlist.
type SeedFunc func(netlist string) int64

// NetlistSeed is the default SeedFunc: an FNV-1a hash of the netlist
// text, so the same netlist always produces the same metrics.
func NetlistSeed(netlist string) int64 {
	h := fnv.New64a()
	h.Write([]byte(netlist))
	return int64(h.Sum64())
}

// Compile-time interface guard.
var _ Simulator = (*MockSimulator)(nil)

// MockSimulator stands in for a real circuit solver. It draws every
// metric from a PRNG seeded by the netlist, so results are reproducible
// run-to-run, and sleeps briefly to mimic solver latency.
type MockSimulator struct {
	seed    SeedFunc
	latency time.Duration
}

// Option configures a MockSimulator.
type Option func(*MockSimulator)

// WithSeedFunc overrides the seed derivation, letting tests pin metrics.
func WithSeedFunc(f SeedFunc) Option {
	return func(m *MockSimulator) { m.seed = f }
}

// WithLatency sets the simulated per-run solver latency. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(m *MockSimulator) { m.latency = d }
}

// NewMockSimulator creates a mock simulator with netlist-hash seeding
// and a small default latency.
func NewMockSimulator(opts ...Option) *MockSimulator {
	m := &MockSimulator{
		seed:    NetlistSeed,
		latency: 10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Simulate synthesizes a metrics vector for the netlist. The ranges are
// chosen to look like a reasonable switching converter: efficiency in
// the low-to-high nineties, power factor near unity, single-digit THD.
func (m *MockSimulator) Simulate(ctx context.Context, netlist string) (Metrics, error) {
	if m.latency > 0 {
		t := time.NewTimer(m.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Metrics{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Metrics{}, err
	}

	rng := rand.New(rand.NewSource(m.seed(netlist)))

	peak := 5 + rng.Float64()*20
	return Metrics{
		Efficiency:    0.90 + rng.Float64()*0.08,
		PowerFactor:   0.95 + rng.Float64()*0.045,
		THD:           0.03 + rng.Float64()*0.09,
		VoltageRipple: 0.5 + rng.Float64()*4.5,
		CurrentRipple: 0.3 + rng.Float64()*3.2,
		PeakCurrent:   peak,
	}, nil
}
