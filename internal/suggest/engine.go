package suggest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/voltlab/powerbench/pkg/catalog"
	"github.com/voltlab/powerbench/pkg/components"
)

// Safety margins applied during hard filtering. A candidate that misses
// any margin is excluded outright, never scored.
const (
	voltageMargin = 1.5
	currentMargin = 1.3
	satMargin     = 1.2
	capFloor      = 0.7
	indBandLow    = 0.8
	indBandHigh   = 1.2
)

// Scoring constants. Every survivor starts at baseScore; headroom
// bonuses grow linearly with the rating ratio past the margin and are
// capped independently.
const (
	baseScore     = 100.0
	headroomScale = 10.0

	maxSuggestions = 3
)

// Engine recommends catalog components for a requirement.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates a suggestion engine backed by the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Suggest dispatches to the class-specific recommendation pipeline.
func (e *Engine) Suggest(class components.Class, req Requirement) ([]Suggestion, error) {
	switch class {
	case components.ClassMOSFET:
		return e.SuggestMOSFETs(req)
	case components.ClassCapacitor:
		return e.SuggestCapacitors(req)
	case components.ClassInductor:
		return e.SuggestInductors(req)
	default:
		return nil, fmt.Errorf("suggest: unknown component class %q", class)
	}
}

// SuggestMOSFETs returns the top candidates for a switching FET.
// Hard constraints: VDS >= MaxVoltage*1.5 and ID >= MaxCurrent*1.3.
func (e *Engine) SuggestMOSFETs(req Requirement) ([]Suggestion, error) {
	if err := validateFields(map[string]float64{
		"maxVoltage": req.MaxVoltage,
		"maxCurrent": req.MaxCurrent,
	}); err != nil {
		return nil, err
	}

	pool, err := e.cat.MOSFETs()
	if err != nil {
		return nil, fmt.Errorf("suggest mosfets: %w", err)
	}

	// The RDS(on) quality tiers compare against the average of the
	// whole candidate pool, not just the survivors.
	avgRDSOn := averageMOSFETRDSOn(pool)

	suggestions := make([]Suggestion, 0, len(pool))
	for _, m := range pool {
		if m.VDS < req.MaxVoltage*voltageMargin {
			continue
		}
		if m.IDCont < req.MaxCurrent*currentMargin {
			continue
		}
		score, reasons := scoreMOSFET(m, req, avgRDSOn)
		suggestions = append(suggestions, Suggestion{Part: m, Score: score, Reasons: reasons})
	}

	return rank(suggestions), nil
}

// SuggestCapacitors returns the top candidates for the bulk capacitor.
// Hard constraints: voltage rating >= MaxVoltage*1.5 and capacitance >=
// Capacitance*0.7.
func (e *Engine) SuggestCapacitors(req Requirement) ([]Suggestion, error) {
	if err := validateFields(map[string]float64{
		"maxVoltage":  req.MaxVoltage,
		"capacitance": req.Capacitance,
	}); err != nil {
		return nil, err
	}

	pool, err := e.cat.Capacitors()
	if err != nil {
		return nil, fmt.Errorf("suggest capacitors: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(pool))
	for _, c := range pool {
		if c.Voltage < req.MaxVoltage*voltageMargin {
			continue
		}
		if c.Capacitance < req.Capacitance*capFloor {
			continue
		}
		score, reasons := scoreCapacitor(c, req)
		suggestions = append(suggestions, Suggestion{Part: c, Score: score, Reasons: reasons})
	}

	return rank(suggestions), nil
}

// SuggestInductors returns the top candidates for the power inductor.
// Hard constraints: current rating >= MaxCurrent*1.3, saturation
// current >= MaxCurrent*1.2, inductance within ±20% of the requirement.
func (e *Engine) SuggestInductors(req Requirement) ([]Suggestion, error) {
	if err := validateFields(map[string]float64{
		"maxCurrent": req.MaxCurrent,
		"inductance": req.Inductance,
	}); err != nil {
		return nil, err
	}

	pool, err := e.cat.Inductors()
	if err != nil {
		return nil, fmt.Errorf("suggest inductors: %w", err)
	}

	avgDCR := averageInductorDCR(pool)

	suggestions := make([]Suggestion, 0, len(pool))
	for _, l := range pool {
		if l.Current < req.MaxCurrent*currentMargin {
			continue
		}
		if l.SatCurrent < req.MaxCurrent*satMargin {
			continue
		}
		ratio := l.Inductance / req.Inductance
		if ratio < indBandLow || ratio > indBandHigh {
			continue
		}
		score, reasons := scoreInductor(l, req, avgDCR)
		suggestions = append(suggestions, Suggestion{Part: l, Score: score, Reasons: reasons})
	}

	return rank(suggestions), nil
}

// rank orders suggestions by descending score. The sort is stable so
// equal scores keep catalog encounter order, then the list is cut to
// the top three.
func rank(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].Score > suggestions[b].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func scoreMOSFET(m components.MOSFET, req Requirement, avgRDSOn float64) (float64, []string) {
	score := baseScore
	reasons := []string{fmt.Sprintf("voltage rating %d%% of requirement, current rating %d%% of requirement",
		pct(m.VDS/req.MaxVoltage), pct(m.IDCont/req.MaxCurrent))}

	if b := headroomBonus(m.VDS/req.MaxVoltage, voltageMargin, 20); b > 0 {
		score += b
		reasons = append(reasons, "comfortable voltage headroom")
	}
	if b := headroomBonus(m.IDCont/req.MaxCurrent, currentMargin, 15); b > 0 {
		score += b
		reasons = append(reasons, "comfortable current headroom")
	}

	switch {
	case avgRDSOn > 0 && m.RDSOn < avgRDSOn/2:
		score += 30
		reasons = append(reasons, "RDS(on) well below catalog average")
	case avgRDSOn > 0 && m.RDSOn < avgRDSOn:
		score += 15
		reasons = append(reasons, "RDS(on) below catalog average")
	}

	switch {
	case m.QG > 0 && m.QG < 30:
		score += 20
		reasons = append(reasons, "very low gate charge")
	case m.QG > 0 && m.QG < 50:
		score += 10
		reasons = append(reasons, "low gate charge")
	}

	if lo, ok := efficiencyFloor(m.EfficiencyRange); ok {
		switch {
		case lo >= 96:
			score += 25
			reasons = append(reasons, "rated efficiency floor 96% or better")
		case lo >= 94:
			score += 15
			reasons = append(reasons, "rated efficiency floor 94% or better")
		}
	}

	if packageMatches(m.Package, req.PreferredPackage) {
		reasons = append(reasons, fmt.Sprintf("%s package matches preference", m.Package))
	}

	return score, reasons
}

func scoreCapacitor(c components.Capacitor, req Requirement) (float64, []string) {
	score := baseScore
	reasons := []string{fmt.Sprintf("voltage rating %d%% of requirement, capacitance %d%% of requirement",
		pct(c.Voltage/req.MaxVoltage), pct(c.Capacitance/req.Capacitance))}

	if b := headroomBonus(c.Voltage/req.MaxVoltage, voltageMargin, 20); b > 0 {
		score += b
		reasons = append(reasons, "comfortable voltage headroom")
	}

	ratio := c.Capacitance / req.Capacitance
	switch {
	case ratio >= 0.9 && ratio <= 1.2:
		score += 30
		reasons = append(reasons, "capacitance closely matches requirement")
	case ratio >= 0.7 && ratio <= 1.5:
		score += 15
		reasons = append(reasons, "capacitance within usable range")
	}

	typ := strings.ToLower(c.Type)
	switch {
	case strings.Contains(typ, "polymer"):
		score += 20
		reasons = append(reasons, "polymer type, low ESR")
	case strings.Contains(typ, "mlcc"):
		score += 15
		reasons = append(reasons, "MLCC type, very low ESR")
	case strings.Contains(typ, "electrolytic"):
		reasons = append(reasons, "aluminum electrolytic, verify ripple current rating")
	}

	return score, reasons
}

func scoreInductor(l components.Inductor, req Requirement, avgDCR float64) (float64, []string) {
	score := baseScore
	reasons := []string{fmt.Sprintf("current rating %d%% of requirement, saturation current %d%% of requirement, inductance %d%% of requirement",
		pct(l.Current/req.MaxCurrent), pct(l.SatCurrent/req.MaxCurrent), pct(l.Inductance/req.Inductance))}

	if b := headroomBonus(l.Current/req.MaxCurrent, currentMargin, 20); b > 0 {
		score += b
		reasons = append(reasons, "comfortable current headroom")
	}
	if b := headroomBonus(l.SatCurrent/req.MaxCurrent, satMargin, 20); b > 0 {
		score += b
		reasons = append(reasons, "comfortable saturation margin")
	}

	switch {
	case avgDCR > 0 && l.DCR < avgDCR/2:
		score += 25
		reasons = append(reasons, "DCR well below catalog average")
	case avgDCR > 0 && l.DCR < avgDCR:
		score += 15
		reasons = append(reasons, "DCR below catalog average")
	}

	ratio := l.Inductance / req.Inductance
	switch {
	case ratio >= 0.95 && ratio <= 1.05:
		score += 30
		reasons = append(reasons, "inductance closely matches requirement")
	case ratio >= 0.8 && ratio <= 1.2:
		score += 15
		reasons = append(reasons, "inductance within tolerance band")
	}

	if packageMatches(l.Package, req.PreferredPackage) {
		reasons = append(reasons, fmt.Sprintf("%s package matches preference", l.Package))
	}

	return score, reasons
}

// headroomBonus rewards rating beyond the safety margin, capped so a
// grossly oversized part cannot run away with the score.
func headroomBonus(ratio, margin, limit float64) float64 {
	b := (ratio - margin) * headroomScale
	if b <= 0 {
		return 0
	}
	return math.Min(b, limit)
}

// averageMOSFETRDSOn is the mean RDS(on) over the full candidate pool.
func averageMOSFETRDSOn(pool []components.MOSFET) float64 {
	if len(pool) == 0 {
		return 0
	}
	var sum float64
	for _, m := range pool {
		sum += m.RDSOn
	}
	return sum / float64(len(pool))
}

// averageInductorDCR is the mean winding resistance over the full pool.
func averageInductorDCR(pool []components.Inductor) float64 {
	if len(pool) == 0 {
		return 0
	}
	var sum float64
	for _, l := range pool {
		sum += l.DCR
	}
	return sum / float64(len(pool))
}

// efficiencyFloor parses the lower bound of a range string like
// "96-98%". Returns false when the string carries no leading number.
func efficiencyFloor(rangeStr string) (float64, bool) {
	s := strings.TrimSpace(rangeStr)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	lo, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return lo, true
}

func packageMatches(pkg, preferred string) bool {
	if preferred == "" {
		return false
	}
	return strings.Contains(strings.ToLower(pkg), strings.ToLower(preferred))
}

// pct rounds a ratio to the nearest whole percentage.
func pct(ratio float64) int {
	return int(math.Round(ratio * 100))
}
