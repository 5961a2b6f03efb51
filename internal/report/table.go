// Package report renders suggestion shortlists and sweep rankings as
// fixed-width text tables, and exports sweep reports as CSV.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
)

// WriteSuggestions renders a scored suggestion shortlist.
func WriteSuggestions(w io.Writer, title string, suggestions []suggest.Suggestion) error {
	if len(suggestions) == 0 {
		_, err := fmt.Fprintf(w, "%s\n(no suitable components found)\n\n", title)
		return err
	}

	headers := []string{"#", "Part", "Score", "Reason"}
	rows := make([][]string, len(suggestions))
	for i, s := range suggestions {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			s.Part.ID(),
			fmt.Sprintf("%.1f", s.Score),
			s.Reason(),
		}
	}
	return writeTable(w, title, headers, rows)
}

// WriteSweep renders a ranked sweep report.
func WriteSweep(w io.Writer, r *sweep.Report) error {
	title := fmt.Sprintf("%s sweep %s (%d combinations, priorities: %s)",
		r.CircuitType, r.Timestamp.Format("2006-01-02 15:04:05"),
		len(r.Permutations), priorityList(r.PriorityMetrics))

	headers := []string{"Rank", "Combination", "Score", "Eff", "PF", "THD", "Vrip%", "Irip%", "Ipk"}
	rows := make([][]string, len(r.Permutations))
	for i, p := range r.Permutations {
		rows[i] = []string{
			fmt.Sprintf("%d", p.Rank),
			p.ID,
			fmt.Sprintf("%.4f", p.Score),
			fmt.Sprintf("%.3f", p.Metrics.Efficiency),
			fmt.Sprintf("%.3f", p.Metrics.PowerFactor),
			fmt.Sprintf("%.3f", p.Metrics.THD),
			fmt.Sprintf("%.2f", p.Metrics.VoltageRipple),
			fmt.Sprintf("%.2f", p.Metrics.CurrentRipple),
			fmt.Sprintf("%.2f", p.Metrics.PeakCurrent),
		}
	}
	return writeTable(w, title, headers, rows)
}

func priorityList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// writeTable prints a bordered table with column widths sized to the
// widest cell in each column.
func writeTable(w io.Writer, title string, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	var b strings.Builder
	line := func() {
		b.WriteString("+")
		for _, width := range widths {
			b.WriteString(strings.Repeat("-", width+2) + "+")
		}
		b.WriteString("\n")
	}

	b.WriteString(title + "\n")
	line()
	b.WriteString("|")
	for i, h := range headers {
		fmt.Fprintf(&b, " %-*s |", widths[i], h)
	}
	b.WriteString("\n")
	line()
	for _, row := range rows {
		b.WriteString("|")
		for j, cell := range row {
			fmt.Fprintf(&b, " %-*s |", widths[j], cell)
		}
		b.WriteString("\n")
	}
	line()
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
