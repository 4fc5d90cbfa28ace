package report

import (
	"fmt"
	"image/color"

	"github.com/theapemachine/grover"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

/*
BarChart builds a bar chart of counts over every n-bit outcome in basis order,
so a missing bar means the outcome was never drawn.
*/
func BarChart(counts grover.Counts, n int, title string) (*plot.Plot, error) {
	if n <= 0 || n > 10 {
		return nil, fmt.Errorf("chart of %d qubits: %w", n, grover.ErrInvalidDimension)
	}

	dense := counts.Dense(n)
	values := make(plotter.Values, 1<<uint(n))
	names := make([]string, 1<<uint(n))

	for i := range values {
		bits := grover.Bitstring(i, n)
		values[i] = float64(dense[bits])
		names[i] = bits
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "outcome"
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 0x7a, G: 0xa2, B: 0xf7, A: 0xff}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)

	return p, nil
}

// SavePNG writes the bar chart to path. The extension picks the format.
func SavePNG(counts grover.Counts, n int, title, path string) error {
	p, err := BarChart(counts, n, title)
	if err != nil {
		return err
	}

	width := vg.Length(max(4, (1<<uint(n))/4)) * vg.Inch
	return p.Save(width, 3*vg.Inch, path)
}
