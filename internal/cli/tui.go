package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/citemap/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ComponentBrowser - Interactive component list
// =============================================================================

// ComponentBrowser is the bubbletea model behind "citemap browse". It lists
// components largest first; enter opens the papers of the selected one.
type ComponentBrowser struct {
	Layout graph.Layout
	Rows   []componentRow
	Cursor int
	Offset int
	Height int
	// Open is the index into Rows shown in detail, or -1 for the list.
	Open      int
	DetailTop int
	members   [][]int
}

// NewComponentBrowser creates a browser over l.
func NewComponentBrowser(l graph.Layout) ComponentBrowser {
	members := make([][]int, len(l.Regions))
	for i, n := range l.Nodes {
		members[n.Component] = append(members[n.Component], i)
	}
	return ComponentBrowser{
		Layout:  l,
		Rows:    componentRows(l, 0),
		Height:  15,
		Open:    -1,
		members: members,
	}
}

func (m ComponentBrowser) Init() tea.Cmd {
	return nil
}

func (m ComponentBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Open >= 0 {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ComponentBrowser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if len(m.Rows) > 0 {
			m.Open = m.Cursor
			m.DetailTop = 0
		}
	}
	return m, nil
}

func (m ComponentBrowser) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	papers := len(m.members[m.Rows[m.Open].component])
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.Open = -1
	case "up", "k":
		if m.DetailTop > 0 {
			m.DetailTop--
		}
	case "down", "j":
		if m.DetailTop < papers-m.Height {
			m.DetailTop++
		}
	}
	return m, nil
}

func (m ComponentBrowser) View() string {
	if m.Open >= 0 {
		return m.detailView()
	}
	return m.listView()
}

func (m ComponentBrowser) listView() string {
	var b strings.Builder

	s := m.Layout.Summary
	b.WriteString(StyleTitle.Render("Components"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d papers in %d components", s.Vertices, s.Components)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		flag := ""
		if r.fallback {
			flag = "overlaps"
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(r.rank),
			strconv.Itoa(r.component),
			strconv.Itoa(r.size),
			fmt.Sprintf("%.2f%%", 100*r.share),
			flag,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Component", "Papers", "Share", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			if idx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if m.Rows[idx].fallback && col == 5 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m ComponentBrowser) detailView() string {
	var b strings.Builder
	r := m.Rows[m.Open]
	reg := m.Layout.Regions[r.component]
	members := m.members[r.component]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Component %d", r.component)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  esc back  q quit"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  rank %s  papers %s  share %s\n",
		StyleNumber.Render(strconv.Itoa(r.rank)),
		StyleNumber.Render(strconv.Itoa(r.size)),
		StyleNumber.Render(fmt.Sprintf("%.2f%%", 100*r.share))))
	b.WriteString(fmt.Sprintf("  center (%.1f, %.1f)  radius %.1f\n", reg.X, reg.Y, reg.Radius))
	if subjects := subjectCounts(m.Layout, members); subjects != "" {
		b.WriteString("  " + listDimStyle.Render(subjects) + "\n")
	}
	b.WriteString("\n")

	end := min(m.DetailTop+m.Height, len(members))
	for _, i := range members[m.DetailTop:end] {
		n := m.Layout.Nodes[i]
		line := fmt.Sprintf("  %-16s %s", n.ID, n.Label)
		if n.Subject != "" {
			line += "  " + listDimStyle.Render(n.Subject)
		}
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}
	if len(members) > m.Height {
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("\n  %d-%d of %d", m.DetailTop+1, end, len(members))))
	}
	return b.String()
}

// subjectCounts summarizes the subjects of the given nodes, most common first.
func subjectCounts(l graph.Layout, members []int) string {
	counts := map[string]int{}
	for _, i := range members {
		if s := l.Nodes[i].Subject; s != "" {
			counts[s]++
		}
	}
	subjects := make([]string, 0, len(counts))
	for s := range counts {
		subjects = append(subjects, s)
	}
	slices.SortFunc(subjects, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	parts := make([]string, len(subjects))
	for i, s := range subjects {
		parts[i] = fmt.Sprintf("%s %d", s, counts[s])
	}
	return strings.Join(parts, " · ")
}
