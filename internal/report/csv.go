package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/voltlab/powerbench/internal/sweep"
)

// csvHeaders returns the CSV column headers for a sweep export.
func csvHeaders() []string {
	return []string{
		"rank", "combination_id", "mosfet", "capacitor", "inductor",
		"score", "efficiency", "power_factor", "thd",
		"voltage_ripple_pct", "current_ripple_pct", "peak_current_a",
	}
}

// resultToCSVRow converts one ranked result to a CSV row (matching
// csvHeaders order).
func resultToCSVRow(r sweep.Result) []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.ID,
		r.MOSFET.PartNumber,
		r.Capacitor.PartNumber,
		r.Inductor.PartNumber,
		strconv.FormatFloat(r.Score, 'f', 4, 64),
		strconv.FormatFloat(r.Metrics.Efficiency, 'f', 4, 64),
		strconv.FormatFloat(r.Metrics.PowerFactor, 'f', 4, 64),
		strconv.FormatFloat(r.Metrics.THD, 'f', 4, 64),
		strconv.FormatFloat(r.Metrics.VoltageRipple, 'f', 2, 64),
		strconv.FormatFloat(r.Metrics.CurrentRipple, 'f', 2, 64),
		strconv.FormatFloat(r.Metrics.PeakCurrent, 'f', 2, 64),
	}
}

// WriteSweepCSV exports a sweep report in rank order.
func WriteSweepCSV(w io.Writer, r *sweep.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range r.Permutations {
		if err := cw.Write(resultToCSVRow(p)); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
