// Package report renders finished runs for the terminal: the standard
// figures as ASCII graphs or SVG, the parameter table and run summaries.
package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gssem/internal/trajectory"
)

type Line struct {
	Name   string
	Values []float64
}

type Figure struct {
	Number int
	Title  string
	YLabel string
	Lines  []Line
	// Lower and Upper fix the y axis; equal values let it fit the data.
	Lower, Upper float64
}

var lineColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
}

// MinMaxScale maps values onto [0, 1]. A constant series maps to zeros.
func MinMaxScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return out
	}
	for k, v := range values {
		out[k] = (v - lo) / (hi - lo)
	}
	return out
}

func scaled(v []float64, factor float64) []float64 {
	out := make([]float64, len(v))
	floats.ScaleTo(out, factor, v)
	return out
}

// Figures builds figures 15 to 20 from a trajectory.
func Figures(traj *trajectory.Trajectory) ([]Figure, error) {
	col := func(name string) ([]float64, error) { return traj.Column(name) }
	ser := func(name string) ([]float64, error) { return traj.SeriesByName(name) }

	var err error
	get := func(fn func(string) ([]float64, error), name string) []float64 {
		if err != nil {
			return nil
		}
		var v []float64
		v, err = fn(name)
		return v
	}

	temp := get(ser, "temp")
	before := get(col, "cc")
	after := get(col, "ff")
	g1, g2, g3 := get(col, "gRPP1"), get(col, "gRPP2"), get(col, "gRPP3")
	p1, p2, p3 := get(ser, "P1"), get(ser, "P2"), get(ser, "P3")
	h1, h2, h3 := get(ser, "H1"), get(ser, "H2"), get(ser, "H3")
	c1, c2 := get(ser, "C1"), get(ser, "C2")
	rp, irp, erp := get(ser, "RP"), get(ser, "IRP"), get(ser, "ERP")
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	return []Figure{
		{
			Number: 15, Title: "Temperature and household mortality", YLabel: "°C / mortality x1000",
			Lines: []Line{
				{"temperature", temp},
				{"baseline", scaled(before, 1000)},
				{"warming", scaled(after, 1000)},
			},
		},
		{
			Number: 16, Title: "Temperature and plant growth factors", YLabel: "°C / growth x100",
			Lines: []Line{
				{"temperature", temp},
				{"gRPP1", scaled(g1, 100)},
				{"gRPP2", scaled(g2, 100)},
				{"gRPP3", scaled(g3, 100)},
			},
		},
		{
			Number: 17, Title: "Plants", YLabel: "scaled mass", Lower: -0.1, Upper: 1,
			Lines: []Line{{"P1", MinMaxScale(p1)}, {"P2", MinMaxScale(p2)}, {"P3", MinMaxScale(p3)}},
		},
		{
			Number: 18, Title: "Herbivores", YLabel: "scaled mass", Lower: -0.1, Upper: 1,
			Lines: []Line{{"H1", MinMaxScale(h1)}, {"H2", MinMaxScale(h2)}, {"H3", MinMaxScale(h3)}},
		},
		{
			Number: 19, Title: "Carnivores", YLabel: "scaled mass", Lower: -0.1, Upper: 1,
			Lines: []Line{{"C1", MinMaxScale(c1)}, {"C2", MinMaxScale(c2)}},
		},
		{
			Number: 20, Title: "Resource pools", YLabel: "scaled mass", Lower: -0.2, Upper: 1.3,
			Lines: []Line{{"RP", MinMaxScale(rp)}, {"IRP", MinMaxScale(irp)}, {"ERP", MinMaxScale(erp)}},
		},
	}, nil
}

// Caption is the figure's one-line heading.
func (f Figure) Caption() string {
	return fmt.Sprintf("Figure %d: %s (%s)", f.Number, f.Title, f.YLabel)
}

// Render draws the figure as an ASCII graph.
func Render(f Figure, width, height int, color bool) string {
	data := make([][]float64, 0, len(f.Lines))
	names := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		if len(l.Values) == 0 {
			continue
		}
		data = append(data, l.Values)
		names = append(names, l.Name)
	}
	if len(data) == 0 {
		return mutedStyle.Render(f.Caption() + ": no data")
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(f.Caption()),
		asciigraph.Precision(2),
	}
	if f.Upper > f.Lower {
		opts = append(opts, asciigraph.LowerBound(f.Lower), asciigraph.UpperBound(f.Upper))
	}
	if color {
		opts = append(opts,
			asciigraph.SeriesColors(lineColors[:len(data)]...),
			asciigraph.SeriesLegends(names...),
		)
	}
	return asciigraph.PlotMany(data, opts...)
}
