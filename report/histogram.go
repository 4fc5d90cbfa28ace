// Package report turns measurement counts into something a person can read:
// a terminal histogram or a PNG bar chart. It only ever sees the counts.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theapemachine/grover"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	markedBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// HistogramOptions controls Histogram.
type HistogramOptions struct {
	Title    string
	Width    int             // width of the longest bar, in cells
	Limit    int             // max rows, 0 for all
	Marked   map[string]bool // outcomes drawn in the highlight style
	Unstyled bool
}

/*
Histogram renders one row per outcome, most frequent first:

	100 ████████████████████ 945 (94.5%)
*/
func Histogram(counts grover.Counts, opts HistogramOptions) string {
	if opts.Width <= 0 {
		opts.Width = 40
	}

	outcomes := counts.Sorted()
	if opts.Limit > 0 && len(outcomes) > opts.Limit {
		outcomes = outcomes[:opts.Limit]
	}

	render := func(style lipgloss.Style, s string) string {
		if opts.Unstyled {
			return s
		}
		return style.Render(s)
	}

	rows := make([]string, 0, len(outcomes)+1)
	if opts.Title != "" {
		rows = append(rows, render(titleStyle, opts.Title))
	}

	if len(outcomes) == 0 {
		rows = append(rows, render(countStyle, "no measurements"))
		return strings.Join(rows, "\n")
	}

	top := outcomes[0].Count
	for _, o := range outcomes {
		cells := 0
		if top > 0 {
			cells = o.Count * opts.Width / top
		}
		if cells == 0 && o.Count > 0 {
			cells = 1
		}

		style := barStyle
		if opts.Marked[o.Bits] {
			style = markedBarStyle
		}

		rows = append(rows, fmt.Sprintf(
			"%s %s %s",
			render(labelStyle, o.Bits),
			render(style, strings.Repeat("█", cells)),
			render(countStyle, fmt.Sprintf("%d (%.1f%%)", o.Count, o.Probability*100)),
		))
	}

	return strings.Join(rows, "\n")
}

/*
PerQubit renders per-qubit shot arrays, as returned by Solver.RunAndMeasure or
grover.PerQubitShots, one line per qubit. Lines stop at limit shots when
limit > 0.
*/
func PerQubit(shots map[int][]int, limit int) string {
	rows := make([]string, 0, len(shots))

	for q := 0; q < len(shots); q++ {
		bits := shots[q]
		if limit > 0 && len(bits) > limit {
			bits = bits[:limit]
		}

		var b strings.Builder
		for _, bit := range bits {
			b.WriteByte(byte('0' + bit))
		}
		rows = append(rows, fmt.Sprintf("q%d %s", q, b.String()))
	}

	return strings.Join(rows, "\n")
}

/*
Marginals renders the exact P(1) of every qubit next to a ten-cell gauge:

	q0 ██████████ 0.945
*/
func Marginals(qubits []grover.QubitProbability) string {
	rows := make([]string, 0, len(qubits))

	for q, p := range qubits {
		cells := min(10, int(p.Prob1*10+0.5))
		gauge := strings.Repeat("█", cells) + strings.Repeat(" ", 10-cells)
		rows = append(rows, fmt.Sprintf("q%d %s %.3f", q, gauge, p.Prob1))
	}

	return strings.Join(rows, "\n")
}
