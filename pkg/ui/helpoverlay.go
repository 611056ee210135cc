package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// helpMarkdown is the keyboard reference shown by the help overlay
const helpMarkdown = `# Group List Help

## Filters

| Key | Action |
|-----|--------|
| p | Cycle privacy: all → open → closed |
| c | Pick avatar color |
| f | Toggle "has friends in group" |
| r | Reset all filters |

## Navigation

| Key | Action |
|-----|--------|
| j / ↓ | Move down |
| k / ↑ | Move up |
| g / G | Top / bottom |

## Other

| Key | Action |
|-----|--------|
| y | Copy group name |
| ? | Toggle this help |
| q | Quit |
`

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme

	rendered      string
	renderedWidth int
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.Hide()
	}

	return m, nil
}

func (m *HelpOverlayModel) contentWidth() int {
	w := m.width - 10
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// body renders the markdown once per width. A glamour failure falls back
// to the raw markdown.
func (m *HelpOverlayModel) body() string {
	width := m.contentWidth()
	if m.rendered != "" && m.renderedWidth == width {
		return m.rendered
	}

	out := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if s, err := r.Render(helpMarkdown); err == nil {
			out = strings.TrimSpace(s)
		}
	}

	m.rendered = out
	m.renderedWidth = width
	return out
}

// View renders the help overlay
func (m *HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.body())
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
