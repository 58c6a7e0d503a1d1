package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		Width:  200,
		Height: 100,
		Regions: []graph.Region{
			{Component: 0, X: -50, Y: 0, Radius: 40, Share: 0.5},
			{Component: 1, X: 50, Y: 0, Radius: 40, Share: 0.5, Fallback: true},
		},
		Nodes: []graph.Node{
			{ID: "a", Label: "A & B", Component: 0, X: -60, Y: 10},
			{ID: "b", Component: 0, X: -40, Y: -10},
			{ID: "c", Component: 1, X: 50, Y: 20},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
}

func TestGradient(t *testing.T) {
	tests := []struct {
		name string
		i, k int
		want RGB
	}{
		{"Single", 0, 1, DarkBlue},
		{"Empty", 0, 0, DarkBlue},
		{"First", 0, 5, DarkBlue},
		{"Last", 4, 5, Teal},
		{"Middle", 1, 3, RGB{0, 64, 133}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Gradient(tt.i, tt.k); got != tt.want {
				t.Errorf("Gradient(%d, %d) = %v, want %v", tt.i, tt.k, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := DarkBlue.Hex(); got != "#00008b" {
		t.Errorf("Hex() = %s, want #00008b", got)
	}
}

func TestConnectivitySVG(t *testing.T) {
	opts := DefaultOptions()
	opts.Regions = true
	svg := string(ConnectivitySVG(testLayout(), opts))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not a complete svg document")
	}
	if got := strings.Count(svg, `r="5.0"`); got != 3 {
		t.Errorf("node circles = %d, want 3", got)
	}
	if got := strings.Count(svg, "<line "); got != 1 {
		t.Errorf("edge lines = %d, want 1", got)
	}
	if !strings.Contains(svg, `stroke-dasharray`) {
		t.Error("fallback region should be dashed")
	}
	if !strings.Contains(svg, "A &amp; B") {
		t.Error("labels should be escaped")
	}
	if !strings.Contains(svg, DefaultTitle) {
		t.Error("missing title")
	}
	// Node a at (-60, 10) maps to (40, 40) in a 200x100 frame with y flipped.
	if !strings.Contains(svg, `cx="40.00" cy="40.00"`) {
		t.Error("node a not at expected canvas position")
	}
}

func TestConnectivitySVGToggles(t *testing.T) {
	opts := Options{}
	svg := string(ConnectivitySVG(testLayout(), opts))
	if strings.Contains(svg, "<line ") {
		t.Error("edges drawn when disabled")
	}
	if strings.Contains(svg, `class="regions"`) {
		t.Error("regions drawn when disabled")
	}
	if strings.Contains(svg, "<text") {
		t.Error("header drawn without title or caption")
	}
}

func TestConnectivitySVGEmpty(t *testing.T) {
	l := graph.Layout{Width: 100, Height: 100}
	svg := ConnectivitySVG(l, DefaultOptions())
	if !bytes.Contains(svg, []byte(`<g class="nodes">`)) {
		t.Error("empty layout should still render a node group")
	}
}

func TestCoverageSVG(t *testing.T) {
	svg := string(CoverageSVG([]float64{0, 0.5, 0.8, 1}, CoverageTitle))
	if !strings.Contains(svg, "<polyline") {
		t.Fatal("missing curve")
	}
	i := strings.Index(svg, `points="`)
	pts := strings.Fields(svg[i+len(`points="`) : strings.Index(svg[i:], `"/>`)+i])
	if len(pts) != 4 {
		t.Errorf("curve points = %d, want 4", len(pts))
	}
	if !strings.Contains(svg, CoverageTitle) {
		t.Error("missing title")
	}

	empty := string(CoverageSVG(nil, ""))
	if strings.Contains(empty, "<polyline") {
		t.Error("empty curve should not draw a line")
	}
}

func TestXTicks(t *testing.T) {
	if got := xTicks(0); len(got) != 1 || got[0] != 0 {
		t.Errorf("xTicks(0) = %v", got)
	}
	if got := xTicks(100); len(got) != 21 || got[20] != 100 {
		t.Errorf("xTicks(100) = %v", got)
	}
}

func TestToDOT(t *testing.T) {
	opts := DefaultOptions()
	opts.Regions = true
	dot := ToDOT(testLayout(), opts)

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`n0 [pos="40.00,60.00!"`,
		"n0 -- n1;",
		`r1 [pos="150.00,50.00!"`,
		`style="filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}

	opts.Edges = false
	if strings.Contains(ToDOT(testLayout(), opts), "--") {
		t.Error("edges emitted when disabled")
	}
}

func TestToDOTQuoting(t *testing.T) {
	l := testLayout()
	l.Nodes[0].ID = `C:\refs\"quoted"`
	opts := DefaultOptions()
	opts.Title = `say "hi" \ bye`
	dot := ToDOT(l, opts)

	for _, want := range []string{
		`tooltip="C:\\refs\\\"quoted\""`,
		`label="say \"hi\" \\ bye";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
	if strings.Contains(dot, `\x`) || strings.Contains(dot, `\u`) {
		t.Error("DOT contains Go escape sequences")
	}
}

func TestDotQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a\b`, `"a\\b"`},
		{`a"b`, `"a\"b"`},
		{"tab\there", "\"tab\there\""},
		{"é", `"é"`},
	}
	for _, tt := range tests {
		if got := dotQuote(tt.in); got != tt.want {
			t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderDOTUnsupportedFormat(t *testing.T) {
	_, err := RenderDOT(context.Background(), "graph G {}", graphviz.Format("pdf"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}
	ctx := context.Background()
	svg, err := RenderDOT(ctx, ToDOT(testLayout(), DefaultOptions()), graphviz.SVG)
	if err != nil {
		t.Fatalf("RenderDOT(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output missing <svg> tag")
	}

	png, err := RenderPNG(ctx, testLayout(), DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderDOTInvalid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}
	if _, err := RenderDOT(context.Background(), "not valid DOT {{{", graphviz.SVG); err == nil {
		t.Error("RenderDOT() should return error for invalid DOT")
	}
}
