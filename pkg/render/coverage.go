package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

const (
	plotLeft   = 60.0
	plotRight  = 20.0
	plotTop    = 70.0
	plotBottom = 50.0
	yMax       = 1.05
	xPad       = 5
)

// CoverageSVG draws the coverage curve as a line chart. The x axis is the
// number of components taken, the y axis the fraction of vertices covered.
// An empty curve yields a chart with axes and no line.
func CoverageSVG(coverage []float64, title string) []byte {
	const w, h = float64(CoverageWidth), float64(CoverageHeight)
	pw := w - plotLeft - plotRight
	ph := h - plotTop - plotBottom

	// x spans [-xPad, len(coverage)] so the first point is off the axis.
	xMin, xMax := -float64(xPad), float64(len(coverage))
	sx := func(x float64) float64 { return plotLeft + (x-xMin)/(xMax-xMin)*pw }
	sy := func(y float64) float64 { return plotTop + ph - y/yMax*ph }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	if title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="40" text-anchor="middle" font-family="sans-serif" font-size="26">%s</text>`+"\n",
			w/2, html.EscapeString(title))
	}

	// Axes.
	fmt.Fprintf(&buf, `  <g stroke="black" stroke-width="1"><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/></g>`+"\n",
		plotLeft, plotTop+ph, plotLeft+pw, plotTop+ph, plotLeft, plotTop, plotLeft, plotTop+ph)

	buf.WriteString(`  <g font-family="sans-serif" font-size="11" fill="#333">` + "\n")
	for i := 0; i <= 10; i++ {
		y := float64(i) / 10
		fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" text-anchor="end">%.1f</text>`+"\n", plotLeft-6, sy(y)+4, y)
	}
	for _, x := range xTicks(len(coverage)) {
		fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" text-anchor="middle">%d</text>`+"\n", sx(float64(x)), plotTop+ph+16, x)
	}
	buf.WriteString("  </g>\n")

	if len(coverage) > 0 {
		pts := make([]string, len(coverage))
		for i, c := range coverage {
			pts[i] = fmt.Sprintf("%.2f,%.2f", sx(float64(i)), sy(c))
		}
		fmt.Fprintf(&buf, `  <polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>`+"\n",
			LineColor.Hex(), strings.Join(pts, " "))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// xTicks returns about twenty evenly spaced integer ticks covering [0, n].
func xTicks(n int) []int {
	step := max(1, n/20)
	var ticks []int
	for x := 0; x <= n; x += step {
		ticks = append(ticks, x)
	}
	return ticks
}
