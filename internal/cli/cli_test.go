package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/graph"
)

const testNodes = `index,node_id,label,subject,features
0,a,paper-a,Theory,"[1,0]"
1,b,paper-b,Theory,"[0,1]"
2,c,paper-c,Theory,
3,d,paper-d,Neural_Networks,
4,e,paper-e,Neural_Networks,
5,f,paper-f,Theory,
`

const testEdges = `index,source,target
0,a,b
1,b,c
2,d,e
`

// writeDataset writes the test CSV pair to a temp dir and returns the paths.
func writeDataset(t *testing.T) (nodes, edges string) {
	t.Helper()
	dir := t.TempDir()
	nodes = filepath.Join(dir, "cites.nodes.csv")
	edges = filepath.Join(dir, "cites.edges.csv")
	if err := os.WriteFile(nodes, []byte(testNodes), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(edges, []byte(testEdges), 0o644); err != nil {
		t.Fatal(err)
	}
	return nodes, edges
}

// runCLI executes the root command with args and returns the command output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var buf, logs bytes.Buffer
	out = &buf
	t.Cleanup(func() { out = os.Stdout })

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	nodes, edges := writeDataset(t)
	got, err := runCLI(t, "analyze", "--nodes", nodes, "--edges", edges, "--no-cache")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{
		"components",
		"COMPONENT",
		"3 (50.0%)",
		"50% of papers lie in 1 components",
		"90% of papers lie in 3 components",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestAnalyzeCommandInputErrors(t *testing.T) {
	nodes, _ := writeDataset(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"analyze"}},
		{"nodes without edges", []string{"analyze", "--nodes", nodes}},
		{"flags and file", []string{"analyze", "--nodes", nodes, "--edges", nodes, "x.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "analyze", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	nodes, edges := writeDataset(t)
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "cites.layout.json")

	if _, err := runCLI(t, "layout", "--nodes", nodes, "--edges", edges, "--seed", "7", "-o", layoutPath); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if l.Seed != 7 || len(l.Nodes) != 6 || len(l.Regions) != 3 {
		t.Errorf("layout seed=%d nodes=%d regions=%d, want 7/6/3", l.Seed, len(l.Nodes), len(l.Regions))
	}

	outDir := filepath.Join(dir, "out")
	if _, err := runCLI(t, "visualize", layoutPath, "-f", "svg,dot", "-o", outDir); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	for _, name := range []string{"cites.svg", "cites.dot"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	nodes, edges := writeDataset(t)
	outDir := t.TempDir()
	got, err := runCLI(t, "render", "--nodes", nodes, "--edges", edges,
		"-f", "svg,coverage,json", "-o", outDir, "--title", "Test Map")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "cites.nodes.svg") {
		t.Errorf("output does not list the svg file:\n%s", got)
	}

	svg, err := os.ReadFile(filepath.Join(outDir, "cites.nodes.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("Test Map")) {
		t.Error("svg does not carry the --title")
	}
	for _, name := range []string{"cites.nodes.coverage.svg", "cites.nodes.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	nodes, edges := writeDataset(t)
	_, err := runCLI(t, "render", "--nodes", nodes, "--edges", edges, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("err = %v, want INVALID_OPTIONS", err)
	}
}

func TestSubjectsCommand(t *testing.T) {
	nodes, edges := writeDataset(t)
	outDir := t.TempDir()
	got, err := runCLI(t, "subjects", "--nodes", nodes, "--edges", edges, "-f", "svg", "-o", outDir)
	if err != nil {
		t.Fatalf("subjects: %v", err)
	}
	for _, want := range []string{"SUBJECT", "Theory", "Neural_Networks"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	for _, name := range []string{"cites.nodes-Theory.svg", "cites.nodes-Neural_Networks.svg"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestConfigFile(t *testing.T) {
	nodes, edges := writeDataset(t)
	dir := t.TempDir()

	cfg := filepath.Join(dir, "citemap.toml")
	if err := os.WriteFile(cfg, []byte("[pipeline]\nseed = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	layoutPath := filepath.Join(dir, "l.json")
	if _, err := runCLI(t, "--config", cfg, "layout", "--nodes", nodes, "--edges", edges, "-o", layoutPath); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if l.Seed != 99 {
		t.Errorf("seed = %d, want 99 from config", l.Seed)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[pipeline]\nsede = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = runCLI(t, "--config", bad, "analyze", "--nodes", nodes, "--edges", edges)
	if !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("err = %v, want INVALID_OPTIONS for unknown key", err)
	}
}

func TestCachePath(t *testing.T) {
	got, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), "citemap") {
		t.Errorf("cache path = %q, want .../citemap", got)
	}
}

func TestComponentsFor(t *testing.T) {
	curve := []float64{0, 0.5, 0.8333, 1}
	tests := []struct {
		share float64
		want  int
	}{
		{0, 0},
		{0.5, 1},
		{0.6, 2},
		{0.9, 3},
		{1, 3},
	}
	for _, tt := range tests {
		if got := componentsFor(curve, tt.share); got != tt.want {
			t.Errorf("componentsFor(%v) = %d, want %d", tt.share, got, tt.want)
		}
	}
	if got := componentsFor(nil, 0.5); got != -1 {
		t.Errorf("componentsFor(nil) = %d, want -1", got)
	}
}

func TestComponentRows(t *testing.T) {
	l := browserLayout()
	rows := componentRows(l, 0)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].component != 1 || rows[0].size != 2 || rows[0].rank != 1 {
		t.Errorf("rows[0] = %+v, want component 1 of size 2 ranked first", rows[0])
	}
	if got := componentRows(l, 1); len(got) != 1 {
		t.Errorf("componentRows(l, 1) has %d rows, want 1", len(got))
	}
}

func TestSubjectFileName(t *testing.T) {
	tests := []struct {
		subject, want string
	}{
		{"Theory", "cora-Theory"},
		{"", "cora-none"},
		{"Rule Learning/ML", "cora-Rule_Learning_ML"},
	}
	for _, tt := range tests {
		if got := subjectFileName("cora", tt.subject); got != tt.want {
			t.Errorf("subjectFileName(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	if got := baseName("data/cora.json"); got != "cora" {
		t.Errorf("baseName = %q, want cora", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"s", []string{"svg"}},
		{"svg,c", []string{"svg,coverage"}},
		{"svg,", []string{"svg,coverage", "svg,dot", "svg,json", "svg,png"}},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.in)
		if strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	got, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(got, "citemap") {
		t.Error("bash completion does not mention citemap")
	}
}
