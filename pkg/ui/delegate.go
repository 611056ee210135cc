package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// GroupDelegate renders a group as two rows: swatch, name, privacy badge
// and member count, then the friend list when there is one.
type GroupDelegate struct {
	Theme Theme
}

func (d GroupDelegate) Height() int {
	return 2
}

func (d GroupDelegate) Spacing() int {
	return 1
}

func (d GroupDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d GroupDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(GroupItem)
	if !ok {
		return
	}
	t := d.Theme
	g := i.Group
	selected := index == m.Index()

	prefix := "  "
	if selected {
		prefix = t.Renderer.NewStyle().Foreground(t.Primary).Render("▸ ")
	}

	swatch := RenderSwatch(t, g.AvatarColor)
	badge := RenderPrivacyBadge(t, g.Closed)
	members := t.Renderer.NewStyle().Foreground(t.Subtext).Render(fmt.Sprintf("%d members", g.MembersCount))

	// Fixed widths: prefix(2) + swatch(2) + badge(6) + members + gaps
	fixedWidth := 2 + 2 + 6 + lipgloss.Width(members) + 2*SpaceSM
	nameWidth := m.Width() - fixedWidth
	if nameWidth < 10 {
		nameWidth = 10
	}

	nameStyle := t.Base
	if selected {
		nameStyle = nameStyle.Foreground(t.Primary).Bold(true)
	}
	name := runewidth.Truncate(g.Name, nameWidth, "…")
	name = nameStyle.Render(runewidth.FillRight(name, nameWidth))

	gap := strings.Repeat(" ", SpaceSM)
	first := prefix + swatch + name + gap + badge + gap + members

	second := ""
	if g.HasFriends() {
		names := make([]string, len(g.Friends))
		for idx, f := range g.Friends {
			names[idx] = f.FullName()
		}
		line := fmt.Sprintf("Friends (%d): %s", len(g.Friends), strings.Join(names, ", "))
		line = runewidth.Truncate(line, max(m.Width()-6, 10), "…")
		second = "    " + t.Renderer.NewStyle().Foreground(t.Secondary).Render(line)
	}

	fmt.Fprint(w, first+"\n"+second)
}
