package sweep

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/netlist"
	"github.com/voltlab/powerbench/internal/sim"
	"github.com/voltlab/powerbench/pkg/catalog"
	"github.com/voltlab/powerbench/pkg/components"
)

// Fixed weights for the composite score. THD and the two ripple metrics
// are inverted so that lower raw values score higher.
const (
	weightEfficiency    = 10.0
	weightPowerFactor   = 8.0
	weightTHD           = 6.0
	weightVoltageRipple = 5.0
	weightCurrentRipple = 5.0

	// Normalization spans for the ripple inversions: ripple at or
	// beyond the span contributes nothing.
	voltageRippleSpan = 10.0
	currentRippleSpan = 5.0
)

// Engine runs permutation sweeps against a catalog and a simulator.
type Engine struct {
	cat    *catalog.Catalog
	sim    sim.Simulator
	logger *zap.Logger
}

// NewEngine creates a sweep engine. The simulator is the collaborator
// that turns a netlist into a metrics vector.
func NewEngine(cat *catalog.Catalog, simulator sim.Simulator, logger *zap.Logger) *Engine {
	return &Engine{cat: cat, sim: simulator, logger: logger}
}

// Run enumerates every (MOSFET x Capacitor x Inductor) combination from
// cfg, simulates each, then scores and ranks the full set.
//
// The loop is strictly sequential: combinations are independent, but
// progress callbacks must arrive in enumeration order. Cancellation is
// checked between combinations; a cancelled sweep returns ctx.Err()
// with no report. If any simulation fails the whole sweep fails.
func (e *Engine) Run(ctx context.Context, ct netlist.CircuitType, op netlist.OperatingPoint,
	vals netlist.ComponentValues, cfg Config, onProgress ProgressFunc) (*Report, error) {

	if !ct.Valid() {
		return nil, fmt.Errorf("sweep: unsupported circuit type %q", ct)
	}

	mosfets, capacitors, inductors, err := e.resolve(cfg)
	if err != nil {
		return nil, err
	}

	report := newReport(ct, cfg.Priorities)

	total := len(mosfets) * len(capacitors) * len(inductors)
	if total == 0 {
		// Empty candidate set in some class: a valid, empty outcome.
		report.Permutations = []Result{}
		return report, nil
	}

	e.logger.Info("starting permutation sweep",
		zap.String("circuit_type", string(ct)),
		zap.Int("combinations", total),
		zap.Strings("priority_metrics", report.PriorityMetrics),
	)

	// Collection pass. Scoring is deliberately deferred until every
	// metrics vector is in hand.
	results := make([]Result, 0, total)
	idx := 0
	for _, m := range mosfets {
		for _, c := range capacitors {
			for _, l := range inductors {
				if err := ctx.Err(); err != nil {
					e.logger.Warn("sweep cancelled",
						zap.Int("completed", idx), zap.Int("total", total))
					return nil, fmt.Errorf("sweep: cancelled after %d of %d combinations: %w", idx, total, err)
				}

				idx++
				id := combinationID(m.PartNumber, c.PartNumber, l.PartNumber)
				if onProgress != nil {
					onProgress(idx, total, id)
				}

				text, err := netlist.Generate(ct, op, vals, netlist.Parts{
					MOSFET: m, Capacitor: c, Inductor: l,
				})
				if err != nil {
					return nil, &SimulationError{CombinationID: id, Err: err}
				}

				metrics, err := e.sim.Simulate(ctx, text)
				if err != nil {
					return nil, &SimulationError{CombinationID: id, Err: err}
				}

				e.logger.Debug("combination simulated",
					zap.String("id", id),
					zap.Int("index", idx),
					zap.Float64("efficiency", metrics.Efficiency),
				)

				results = append(results, Result{
					ID: id, MOSFET: m, Capacitor: c, Inductor: l, Metrics: metrics,
				})
			}
		}
	}

	scoreAndRank(results, cfg.Priorities)
	report.Permutations = results
	report.Best = &results[0]

	e.logger.Info("sweep complete",
		zap.String("report_id", report.ID),
		zap.String("best", report.Best.ID),
		zap.Float64("best_score", report.Best.Score),
	)
	return report, nil
}

// resolve maps the configured part numbers to catalog records,
// preserving the configured order.
func (e *Engine) resolve(cfg Config) ([]components.MOSFET, []components.Capacitor, []components.Inductor, error) {
	mosfets := make([]components.MOSFET, 0, len(cfg.MOSFETs))
	for _, pn := range cfg.MOSFETs {
		m, ok := e.cat.FindMOSFET(pn)
		if !ok {
			return nil, nil, nil, &ConfigError{Class: components.ClassMOSFET, PartNumber: pn}
		}
		mosfets = append(mosfets, m)
	}

	capacitors := make([]components.Capacitor, 0, len(cfg.Capacitors))
	for _, pn := range cfg.Capacitors {
		c, ok := e.cat.FindCapacitor(pn)
		if !ok {
			return nil, nil, nil, &ConfigError{Class: components.ClassCapacitor, PartNumber: pn}
		}
		capacitors = append(capacitors, c)
	}

	inductors := make([]components.Inductor, 0, len(cfg.Inductors))
	for _, pn := range cfg.Inductors {
		l, ok := e.cat.FindInductor(pn)
		if !ok {
			return nil, nil, nil, &ConfigError{Class: components.ClassInductor, PartNumber: pn}
		}
		inductors = append(inductors, l)
	}

	return mosfets, capacitors, inductors, nil
}

// scoreAndRank computes each result's composite score, then sorts the
// set descending (stable, so ties keep enumeration order) and assigns
// 1-based ranks.
func scoreAndRank(results []Result, priorities PriorityMetrics) {
	for i := range results {
		results[i].Score = compositeScore(results[i].Metrics, priorities)
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// compositeScore is the weighted mean over the flagged metrics. With no
// metric flagged every combination scores zero.
func compositeScore(m sim.Metrics, p PriorityMetrics) float64 {
	var sum, weights float64

	if p.Efficiency {
		sum += m.Efficiency * weightEfficiency
		weights += weightEfficiency
	}
	if p.PowerFactor {
		sum += m.PowerFactor * weightPowerFactor
		weights += weightPowerFactor
	}
	if p.THD {
		sum += (1 - m.THD) * weightTHD
		weights += weightTHD
	}
	if p.VoltageRipple {
		sum += (1 - math.Min(m.VoltageRipple/voltageRippleSpan, 1)) * weightVoltageRipple
		weights += weightVoltageRipple
	}
	if p.CurrentRipple {
		sum += (1 - math.Min(m.CurrentRipple/currentRippleSpan, 1)) * weightCurrentRipple
		weights += weightCurrentRipple
	}

	if weights == 0 {
		return 0
	}
	return sum / weights
}
