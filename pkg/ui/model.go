// Package ui implements the interactive group browser.
//
// The Model owns the loaded groups and the filter state. It moves through
// three render states: loading until the source settles, then error or
// content for the rest of the session.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kraitsura/groups_viewer/pkg/analysis"
	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/loader"
	"github.com/kraitsura/groups_viewer/pkg/logging"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

const (
	titleText   = "Group List"
	loadingText = "Loading..."
	errorText   = "Failed to load data."
)

// groupsLoadedMsg settles the load; err is nil on success
type groupsLoadedMsg struct {
	groups []model.Group
	err    error
}

// loadGroupsCmd runs the single load of the session
func loadGroupsCmd(source loader.Source) tea.Cmd {
	return func() tea.Msg {
		groups, err := source.LoadGroups(context.Background())
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

// Model is the top-level bubbletea model
type Model struct {
	source loader.Source
	logger *zap.Logger
	theme  Theme

	// Data
	state   model.LoadState
	groups  []model.Group
	colors  []string
	filter  filter.State
	visible []model.Group

	// Sub-views
	list          list.Model
	spinner       spinner.Model
	colorSelector ColorSelectorModel
	showColors    bool
	help          HelpOverlayModel

	width  int
	height int

	statusMsg     string
	statusIsError bool

	// For testing: override clipboard writes
	copyText func(string) error
}

// NewModel creates the browser for source. logger may be nil.
func NewModel(source loader.Source, logger *zap.Logger) Model {
	logger = logging.OrNop(logger)
	theme := DefaultTheme(nil)

	l := list.New(nil, GroupDelegate{Theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Renderer.NewStyle().Foreground(theme.Primary)

	return Model{
		source:   source,
		logger:   logger,
		theme:    theme,
		state:    model.LoadStateLoading,
		list:     l,
		spinner:  sp,
		help:     NewHelpOverlayModel(theme),
		copyText: clipboard.WriteAll,
	}
}

// Init starts the load and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadGroupsCmd(m.source))
}

// State returns the current render state
func (m Model) State() model.LoadState {
	return m.state
}

// FilterState returns the active criteria
func (m Model) FilterState() filter.State {
	return m.filter
}

// VisibleGroups returns the groups currently listed. It is nil until the
// load succeeds.
func (m Model) VisibleGroups() []model.Group {
	return m.visible
}

// AvailableColors returns the color choices offered by the color selector
func (m Model) AvailableColors() []string {
	return m.colors
}

// SetPrivacyFilter overwrites the privacy criterion
func (m *Model) SetPrivacyFilter(p filter.Privacy) {
	m.filter.SetPrivacy(p)
	m.refresh()
}

// SetColorFilter overwrites the color criterion; "" clears it
func (m *Model) SetColorFilter(color string) {
	m.filter.SetColor(color)
	m.refresh()
}

// SetFriendsFilter overwrites the friends-present toggle
func (m *Model) SetFriendsFilter(on bool) {
	m.filter.SetFriendsOnly(on)
	m.refresh()
}

// refresh derives VisibleGroups from the source collection
func (m *Model) refresh() {
	if m.state != model.LoadStateReady {
		return
	}
	m.visible = filter.Apply(m.groups, m.filter)

	items := make([]list.Item, len(m.visible))
	for i, g := range m.visible {
		items[i] = GroupItem{Group: g}
	}
	m.list.SetItems(items)
	m.list.Select(0)

	m.logger.Debug("filter applied",
		zap.String("filter", filter.Summary(m.filter)),
		zap.Int("visible", len(m.visible)),
		zap.Int("total", len(m.groups)))
}

func (m *Model) resize() {
	h := m.height - headerHeight - footerHeight
	if m.width < BreakpointNarrow {
		h -= 2
	}
	if h < MinContentHeight {
		h = MinContentHeight
	}
	m.list.SetSize(m.width, h)
	m.help.SetSize(m.width, m.height)
	m.colorSelector.SetSize(m.width, m.height)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.state != model.LoadStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case groupsLoadedMsg:
		return m.handleLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg groupsLoadedMsg) Model {
	// the collection is loaded once per session
	if m.state.Settled() {
		return m
	}

	if msg.err != nil {
		m.logger.Error("group load failed", zap.Error(msg.err))
		m.state = model.LoadStateFailed
		return m
	}

	m.logger.Info("groups loaded", zap.Int("count", len(msg.groups)))
	m.state = model.LoadStateReady
	m.groups = msg.groups
	m.colors = filter.AvailableColors(m.groups)
	m.refresh()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.help.IsVisible() {
		m.help, _ = m.help.Update(msg)
		return m, nil
	}

	if m.showColors {
		m.colorSelector.Update(key)
		switch {
		case m.colorSelector.IsConfirmed():
			m.showColors = false
			m.SetColorFilter(m.colorSelector.Selected())
		case m.colorSelector.IsCancelled():
			m.showColors = false
		}
		return m, nil
	}

	if key == "q" {
		return m, tea.Quit
	}

	// Filter controls exist only once content is shown
	if m.state != model.LoadStateReady {
		return m, nil
	}

	m.statusMsg = ""
	m.statusIsError = false

	switch key {
	case "p":
		m.SetPrivacyFilter(m.filter.Privacy.Next())
		return m, nil
	case "c":
		m.colorSelector = NewColorSelectorModel(m.colors, m.filter.Color, m.theme)
		m.colorSelector.SetSize(m.width, m.height)
		m.showColors = true
		return m, nil
	case "f":
		m.SetFriendsFilter(!m.filter.FriendsOnly)
		return m, nil
	case "r":
		m.filter = filter.State{}
		m.refresh()
		return m, nil
	case "y":
		m.copySelected()
		return m, nil
	case "?":
		m.help.Toggle()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedGroup returns the group under the cursor
func (m Model) SelectedGroup() (model.Group, bool) {
	item, ok := m.list.SelectedItem().(GroupItem)
	if !ok {
		return model.Group{}, false
	}
	return item.Group, true
}

func (m *Model) copySelected() {
	g, ok := m.SelectedGroup()
	if !ok {
		m.statusMsg = "Nothing to copy"
		m.statusIsError = true
		return
	}
	if err := m.copyText(g.Name); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.statusMsg = "Clipboard unavailable"
		m.statusIsError = true
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %q", g.Name)
}

// View renders the current state
func (m Model) View() string {
	t := m.theme
	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render(titleText)

	switch m.state {
	case model.LoadStateLoading:
		return title + "\n\n" + m.spinner.View() + " " + loadingText + "\n"
	case model.LoadStateFailed:
		msg := t.Renderer.NewStyle().Foreground(t.Danger).Render(errorText)
		hint := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).Render("q: quit")
		return title + "\n\n" + msg + "\n\n" + hint + "\n"
	}

	if m.help.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}
	if m.showColors {
		return m.colorSelector.View()
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(RenderDivider(t, m.width))
	b.WriteString("\n")
	if len(m.visible) == 0 {
		empty := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).Render("  No groups match the current filters")
		b.WriteString(empty)
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderFilterBar() string {
	t := m.theme
	label := t.Renderer.NewStyle().Foreground(t.Subtext)
	value := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)

	privacy := label.Render("[p] Privacy: ") + value.Render(m.filter.Privacy.Label())

	colorValue := anyColorLabel
	if m.filter.Color != "" {
		colorValue = strings.TrimSpace(RenderSwatch(t, m.filter.Color)) + " " + m.filter.Color
	}
	color := label.Render("[c] Avatar color: ") + value.Render(colorValue)

	box := "[ ]"
	if m.filter.FriendsOnly {
		box = "[x]"
	}
	friends := label.Render("[f] ") + value.Render(box) + label.Render(" Has friends in group")

	if m.width > 0 && m.width < BreakpointNarrow {
		return lipgloss.JoinVertical(lipgloss.Left, privacy, color, friends)
	}
	gap := strings.Repeat(" ", SpaceMD)
	return privacy + gap + color + gap + friends
}

func (m Model) renderStatusBar() string {
	t := m.theme
	stats := analysis.ComputeMemberStats(m.visible)

	left := fmt.Sprintf("%d of %d groups", len(m.visible), len(m.groups))
	if stats.Groups > 0 {
		left += fmt.Sprintf(" • members avg %.0f, median %.0f, max %d • %d with friends",
			stats.Mean, stats.Median, stats.Max, stats.WithFriends)
	}
	bar := t.Renderer.NewStyle().Foreground(t.Subtext).Render(left)

	if m.statusMsg != "" {
		color := t.Open
		if m.statusIsError {
			color = t.Danger
		}
		bar += "  " + t.Renderer.NewStyle().Foreground(color).Render(m.statusMsg)
	}

	hint := t.Renderer.NewStyle().Faint(true).Render("  ? help • q quit")
	return bar + hint
}
