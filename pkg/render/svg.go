package render

import (
	"bytes"
	"fmt"
	"html"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/graph"
)

const (
	titleSize   = 28.0
	captionSize = 14.0
)

// ConnectivitySVG draws every node of l as a dot colored by component.
// Edges are drawn beneath the nodes, region outlines beneath both.
// Layout coordinates have y pointing up; the SVG is flipped to match.
func ConnectivitySVG(l graph.Layout, opts Options) []byte {
	opts = opts.withDefaults()
	bounds := l.Bounds()
	header := headerHeight(opts)
	width := l.Width + 2*opts.Margin
	height := l.Height + 2*opts.Margin + header

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	renderHeader(&buf, width, opts)

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", opts.Margin, opts.Margin+header)
	k := len(l.Regions)
	if opts.Regions {
		renderRegions(&buf, l.Regions, bounds, k)
	}
	if opts.Edges && len(l.Edges) > 0 {
		renderEdges(&buf, l, bounds)
	}
	buf.WriteString(`    <g class="nodes">` + "\n")
	for _, n := range l.Nodes {
		p := toCanvas(n.Pos(), bounds)
		fmt.Fprintf(&buf, `      <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			p.X, p.Y, opts.NodeRadius, Gradient(n.Component, k).Hex(), html.EscapeString(nodeTitle(n)))
	}
	buf.WriteString("    </g>\n  </g>\n</svg>\n")
	return buf.Bytes()
}

func headerHeight(opts Options) float64 {
	var h float64
	if opts.Title != "" {
		h += titleSize * 1.6
	}
	if opts.Caption != "" {
		h += captionSize * 1.8
	}
	return h
}

func renderHeader(buf *bytes.Buffer, width float64, opts Options) {
	y := opts.Margin
	if opts.Title != "" {
		y += titleSize
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
			width/2, y, titleSize, html.EscapeString(opts.Title))
		y += titleSize * 0.6
	}
	if opts.Caption != "" {
		y += captionSize
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="%.0f" fill="#444">%s</text>`+"\n",
			width/2, y, captionSize, html.EscapeString(opts.Caption))
	}
}

func renderRegions(buf *bytes.Buffer, regions []graph.Region, bounds r2.Box, k int) {
	buf.WriteString(`    <g class="regions" fill-opacity="0.06" stroke-opacity="0.5">` + "\n")
	for _, r := range regions {
		c := toCanvas(r.Center(), bounds)
		color := Gradient(r.Component, k).Hex()
		dash := ""
		if r.Fallback {
			dash = ` stroke-dasharray="6 4"`
		}
		fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s"%s/>`+"\n",
			c.X, c.Y, r.Radius, color, color, dash)
	}
	buf.WriteString("    </g>\n")
}

func renderEdges(buf *bytes.Buffer, l graph.Layout, bounds r2.Box) {
	idx := l.NodeIndex()
	fmt.Fprintf(buf, `    <g class="edges" stroke="%s" stroke-width="1">`+"\n", EdgeColor.Hex())
	for _, e := range l.Edges {
		from, okFrom := idx[e.From]
		to, okTo := idx[e.To]
		if !okFrom || !okTo {
			continue
		}
		a := toCanvas(l.Nodes[from].Pos(), bounds)
		b := toCanvas(l.Nodes[to].Pos(), bounds)
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", a.X, a.Y, b.X, b.Y)
	}
	buf.WriteString("    </g>\n")
}

// toCanvas maps layout coordinates into the SVG frame.
func toCanvas(p r2.Vec, bounds r2.Box) r2.Vec {
	return r2.Vec{X: p.X - bounds.Min.X, Y: bounds.Max.Y - p.Y}
}

func nodeTitle(n graph.Node) string {
	s := n.ID
	if n.Label != "" {
		s += ": " + n.Label
	}
	return fmt.Sprintf("%s (component %d)", s, n.Component)
}
