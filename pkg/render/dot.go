package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/graph"
)

// pointsPerInch converts canvas units, treated as points, to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT. Every node is pinned at its layout
// position so neato draws the layout as computed instead of re-arranging it.
// Regions become large unlabeled circles drawn before the vertices.
func ToDOT(l graph.Layout, opts Options) string {
	opts = opts.withDefaults()
	bounds := l.Bounds()
	k := len(l.Regions)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=white;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=t;\n  fontname=\"sans-serif\";\n  fontsize=28;\n", dotQuote(opts.Title))
	}
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, label=\"\", style=filled, penwidth=0, width=%.4f];\n",
		2*opts.NodeRadius/pointsPerInch)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=1];\n", EdgeColor.Hex())
	buf.WriteString("\n")

	if opts.Regions {
		for _, r := range l.Regions {
			c := r.Center()
			color := Gradient(r.Component, k).Hex()
			style := "filled"
			if r.Fallback {
				style = "filled,dashed"
			}
			fmt.Fprintf(&buf, "  r%d [pos=\"%.2f,%.2f!\", width=%.4f, style=%q, fillcolor=\"%s10\", color=\"%s80\", penwidth=1];\n",
				r.Component, c.X-bounds.Min.X, c.Y-bounds.Min.Y, 2*r.Radius/pointsPerInch, style, color, color)
		}
		buf.WriteString("\n")
	}

	for i, n := range l.Nodes {
		fmt.Fprintf(&buf, "  n%d [pos=\"%.2f,%.2f!\", fillcolor=%q, tooltip=%s];\n",
			i, n.X-bounds.Min.X, n.Y-bounds.Min.Y, Gradient(n.Component, k).Hex(), dotQuote(n.ID))
	}

	if opts.Edges && len(l.Edges) > 0 {
		buf.WriteString("\n")
		idx := l.NodeIndex()
		for _, e := range l.Edges {
			from, okFrom := idx[e.From]
			to, okTo := idx[e.To]
			if okFrom && okTo {
				fmt.Fprintf(&buf, "  n%d -- n%d;\n", from, to)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotQuote returns s as a DOT double-quoted string. DOT only escapes the
// quote itself; backslashes are doubled so escString attributes such as
// tooltip and label keep them literal.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// RenderDOT renders DOT source with Graphviz's neato engine. Supported
// formats are graphviz.SVG and graphviz.PNG.
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	if format != graphviz.SVG && format != graphviz.PNG {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graphviz format: %s", format)
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderPNG renders l to PNG through Graphviz.
func RenderPNG(ctx context.Context, l graph.Layout, opts Options) ([]byte, error) {
	return RenderDOT(ctx, ToDOT(l, opts), graphviz.PNG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// so the output scales like the hand-written SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="%s %s %.2f %.2f" width="%.0f" height="%.0f">`,
		match[1], match[2], w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
