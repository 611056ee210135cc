package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// anyColorLabel is the "no constraint" choice, always listed first
const anyColorLabel = "Any"

// ColorSelectorModel is the overlay for picking the avatar color filter
type ColorSelectorModel struct {
	// Data
	allColors      []string // available colors, "" is Any
	filteredColors []string

	// UI State
	searchInput   textinput.Model
	selectedIndex int

	// Dimensions
	width  int
	height int
	theme  Theme

	// Selection result
	confirmed bool
	cancelled bool
	selected  string
}

// NewColorSelectorModel creates a selector over colors with current
// preselected ("" selects Any)
func NewColorSelectorModel(colors []string, current string, theme Theme) ColorSelectorModel {
	ti := textinput.New()
	ti.Placeholder = "Search colors..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 30

	all := make([]string, 0, len(colors)+1)
	all = append(all, "")
	all = append(all, colors...)

	m := ColorSelectorModel{
		allColors:      all,
		filteredColors: all,
		searchInput:    ti,
		theme:          theme,
		width:          60,
		height:         20,
	}
	for i, c := range all {
		if c == current {
			m.selectedIndex = i
			break
		}
	}
	return m
}

// SetSize updates the selector dimensions
func (m *ColorSelectorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles a key and reports whether it was consumed
func (m *ColorSelectorModel) Update(key string) (handled bool) {
	switch key {
	case "up", "ctrl+p":
		m.moveUp()
		return true
	case "down", "ctrl+n":
		m.moveDown()
		return true
	case "enter":
		if len(m.filteredColors) > 0 && m.selectedIndex < len(m.filteredColors) {
			m.selected = m.filteredColors[m.selectedIndex]
			m.confirmed = true
		}
		return true
	case "esc":
		m.cancelled = true
		m.confirmed = false
		return true
	case "backspace":
		if v := m.searchInput.Value(); len(v) > 0 {
			r := []rune(v)
			m.searchInput.SetValue(string(r[:len(r)-1]))
			m.filterColors()
		}
		return true
	default:
		if IsPrintableKey(key) {
			m.searchInput.SetValue(m.searchInput.Value() + key)
			m.filterColors()
			return true
		}
	}
	return false
}

func (m *ColorSelectorModel) moveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

func (m *ColorSelectorModel) moveDown() {
	if m.selectedIndex < len(m.filteredColors)-1 {
		m.selectedIndex++
	}
}

func (m *ColorSelectorModel) filterColors() {
	query := strings.TrimSpace(m.searchInput.Value())
	m.selectedIndex = 0
	if query == "" {
		m.filteredColors = m.allColors
		return
	}

	searchStrings := make([]string, len(m.allColors))
	for i, c := range m.allColors {
		if c == "" {
			searchStrings[i] = anyColorLabel
		} else {
			searchStrings[i] = c
		}
	}

	matches := fuzzy.Find(query, searchStrings)
	m.filteredColors = make([]string, 0, len(matches))
	for _, match := range matches {
		m.filteredColors = append(m.filteredColors, m.allColors[match.Index])
	}
}

// IsConfirmed returns true if the user picked a color
func (m *ColorSelectorModel) IsConfirmed() bool {
	return m.confirmed
}

// IsCancelled returns true if the user dismissed the selector
func (m *ColorSelectorModel) IsCancelled() bool {
	return m.cancelled
}

// Selected returns the confirmed color ("" for Any)
func (m *ColorSelectorModel) Selected() string {
	return m.selected
}

// SearchValue returns the current search input value
func (m *ColorSelectorModel) SearchValue() string {
	return m.searchInput.Value()
}

// Choices returns the colors currently listed, "" standing for Any
func (m *ColorSelectorModel) Choices() []string {
	return m.filteredColors
}

// View renders the selector overlay
func (m *ColorSelectorModel) View() string {
	t := m.theme

	boxWidth := 40
	if m.width > 0 && m.width < 50 {
		boxWidth = m.width - 10
	}
	if boxWidth < 24 {
		boxWidth = 24
	}
	contentWidth := boxWidth - 4

	var lines []string

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	lines = append(lines, titleStyle.Render("Avatar Color"))
	lines = append(lines, "")

	inputStyle := t.Renderer.NewStyle().
		Foreground(t.Base.GetForeground()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(contentWidth - 2)

	searchValue := m.searchInput.Value()
	if searchValue == "" {
		searchValue = t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.searchInput.Placeholder)
	}
	lines = append(lines, inputStyle.Render(searchValue))
	lines = append(lines, "")

	maxVisible := m.height - 12
	if maxVisible < 5 {
		maxVisible = 5
	}

	if len(m.filteredColors) == 0 {
		emptyStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
		lines = append(lines, emptyStyle.Render("  No matching colors"))
	} else {
		for i, c := range m.filteredColors {
			if i >= maxVisible {
				break
			}
			lines = append(lines, m.renderChoice(c, i == m.selectedIndex))
		}
		if len(m.filteredColors) > maxVisible {
			moreStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
			lines = append(lines, moreStyle.Render(
				"  ... and "+strconv.Itoa(len(m.filteredColors)-maxVisible)+" more"))
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)
	hint := "↑/↓ move • enter pick • esc back"
	if lipgloss.Width(hint) > contentWidth {
		hint = "enter • esc back"
	}
	lines = append(lines, footerStyle.Render(hint))

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(strings.Join(lines, "\n")),
	)
}

func (m *ColorSelectorModel) renderChoice(color string, isSelected bool) string {
	t := m.theme

	prefix := "  "
	if isSelected {
		prefix = "▸ "
	}

	nameStyle := t.Renderer.NewStyle().Foreground(t.Base.GetForeground())
	if isSelected {
		nameStyle = nameStyle.Foreground(t.Primary).Bold(true)
	}

	if color == "" {
		return prefix + "  " + nameStyle.Render(anyColorLabel)
	}
	return prefix + RenderSwatch(t, color) + nameStyle.Render(color)
}
