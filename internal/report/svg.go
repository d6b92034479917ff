package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

var svgColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e"}

// WriteSVG draws the figure as an SVG line chart with one path per line and
// a legend in the top left corner.
func WriteSVG(w io.Writer, f Figure, width, height int) error {
	n := 0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range f.Lines {
		n = max(n, len(l.Values))
		for _, v := range l.Values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if f.Upper > f.Lower {
		lo, hi = f.Lower, f.Upper
	}
	if n < 2 {
		return fmt.Errorf("report: figure %d has fewer than two points", f.Number)
	}
	rangeY := hi - lo
	if rangeY == 0 {
		rangeY = 1
	}
	// padding
	lo -= rangeY * 0.05
	rangeY *= 1.1

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%d" y="16" font-family="sans-serif" font-size="14" text-anchor="middle">%s</text>
`, width, height, width, height, width/2, f.Caption())

	for k, l := range f.Lines {
		if len(l.Values) < 2 {
			continue
		}
		color := svgColors[k%len(svgColors)]
		sb.WriteString(`<path fill="none" stroke="` + color + `" stroke-width="1.5" d="M`)
		for i, v := range l.Values {
			x := float64(i) / float64(n-1) * float64(width)
			y := float64(height) - (v-lo)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
		fmt.Fprintf(&sb, `<text x="8" y="%d" font-family="sans-serif" font-size="12" fill="%s">%s</text>
`, 36+14*k, color, l.Name)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
