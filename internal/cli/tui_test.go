package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/citemap/pkg/components"
	"github.com/matzehuels/citemap/pkg/graph"
)

func browserLayout() graph.Layout {
	return graph.Layout{
		Width:   100,
		Height:  100,
		Summary: components.Counts{1, 2}.Summary(),
		Counts:  []int{1, 2},
		Regions: []graph.Region{
			{Component: 0, X: -20, Y: 0, Radius: 5, Share: 1.0 / 3},
			{Component: 1, X: 20, Y: 0, Radius: 8, Share: 2.0 / 3, Fallback: true},
		},
		Nodes: []graph.Node{
			{ID: "p1", Label: "first", Subject: "Theory", Component: 0, X: -20},
			{ID: "p2", Label: "second", Subject: "Theory", Component: 1, X: 19},
			{ID: "p3", Label: "third", Subject: "Neural_Networks", Component: 1, X: 21},
		},
	}
}

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestComponentBrowserNavigation(t *testing.T) {
	m, _ := press(NewComponentBrowser(browserLayout()), keyDown, keyDown, keyUp)
	b := m.(ComponentBrowser)
	if b.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", b.Cursor)
	}

	m, _ = press(b, keyDown)
	if got := m.(ComponentBrowser).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1 (clamped at last row)", got)
	}
}

func TestComponentBrowserListView(t *testing.T) {
	view := NewComponentBrowser(browserLayout()).View()
	for _, want := range []string{"Components", "3 papers in 2 components", "overlaps", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
}

func TestComponentBrowserDetail(t *testing.T) {
	m, _ := press(NewComponentBrowser(browserLayout()), keyEnter)
	b := m.(ComponentBrowser)
	if b.Open != 0 {
		t.Fatalf("Open = %d, want 0", b.Open)
	}

	view := b.View()
	for _, want := range []string{"Component 1", "p2", "p3", "Neural_Networks 1 · Theory 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(b, keyEsc)
	if got := m.(ComponentBrowser).Open; got != -1 {
		t.Errorf("Open after esc = %d, want -1", got)
	}
}

func TestComponentBrowserQuit(t *testing.T) {
	_, cmd := press(NewComponentBrowser(browserLayout()), keyQuit)
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestComponentBrowserEmpty(t *testing.T) {
	m, _ := press(NewComponentBrowser(graph.Layout{}), keyEnter, keyDown)
	if got := m.(ComponentBrowser).Open; got != -1 {
		t.Errorf("Open = %d, want -1 with no components", got)
	}
}
