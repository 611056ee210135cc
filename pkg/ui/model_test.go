package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/loader"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

type stubSource struct {
	groups []model.Group
	err    error
	calls  int
}

func (s *stubSource) LoadGroups(ctx context.Context) ([]model.Group, error) {
	s.calls++
	return s.groups, s.err
}

func fixtureGroups() []model.Group {
	return []model.Group{
		{ID: 1, Name: "Cats", AvatarColor: "red", MembersCount: 10,
			Friends: []model.Friend{{FirstName: "Ann", LastName: "Lee"}}},
		{ID: 2, Name: "Dogs", Closed: true, AvatarColor: "blue", MembersCount: 4},
		{ID: 3, Name: "Tea", MembersCount: 1, Friends: []model.Friend{}},
		{ID: 4, Name: "Chess", Closed: true, AvatarColor: "red", MembersCount: 7,
			Friends: []model.Friend{{FirstName: "Bo", LastName: "Kim"}}},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func loadedModel(t *testing.T, groups []model.Group) Model {
	t.Helper()
	m := NewModel(&stubSource{groups: groups}, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return update(t, m, groupsLoadedMsg{groups: groups})
}

func visibleIDs(m Model) []int {
	var out []int
	for _, g := range m.VisibleGroups() {
		out = append(out, g.ID)
	}
	return out
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewModel_StartsLoading(t *testing.T) {
	src := &stubSource{groups: fixtureGroups()}
	m := NewModel(src, nil)

	if m.State() != model.LoadStateLoading {
		t.Fatalf("Expected loading state, got %s", m.State())
	}
	if m.Init() == nil {
		t.Fatal("Expected Init to return the load command")
	}
	if !strings.Contains(m.View(), loadingText) {
		t.Errorf("Expected loading text in view, got:\n%s", m.View())
	}
}

func TestLoadGroupsCmd(t *testing.T) {
	src := &stubSource{groups: fixtureGroups()}
	msg := loadGroupsCmd(src)()

	loaded, ok := msg.(groupsLoadedMsg)
	if !ok {
		t.Fatalf("Expected groupsLoadedMsg, got %T", msg)
	}
	if loaded.err != nil || len(loaded.groups) != 4 {
		t.Errorf("Unexpected load result: %+v", loaded)
	}
	if src.calls != 1 {
		t.Errorf("Expected one load call, got %d", src.calls)
	}
}

func TestLoading_FilterKeysIgnored(t *testing.T) {
	m := NewModel(&stubSource{}, nil)

	for _, k := range []string{"p", "f", "c", "r"} {
		m = update(t, m, keyMsg(k))
	}

	if !m.FilterState().IsDefault() {
		t.Errorf("Expected default filter while loading, got %+v", m.FilterState())
	}
	if m.showColors {
		t.Error("Color selector must not open while loading")
	}
	if m.VisibleGroups() != nil {
		t.Error("Expected no visible groups while loading")
	}
}

func TestLoadFailure_ShowsError(t *testing.T) {
	m := NewModel(&stubSource{}, nil)
	err := &loader.LoadError{Source: "stub", Err: errors.New("connection refused")}
	m = update(t, m, groupsLoadedMsg{err: err})

	if m.State() != model.LoadStateFailed {
		t.Fatalf("Expected error state, got %s", m.State())
	}
	if m.VisibleGroups() != nil {
		t.Error("Visible groups must never be computed after a failed load")
	}

	view := m.View()
	if !strings.Contains(view, errorText) {
		t.Errorf("Expected error text, got:\n%s", view)
	}
	if strings.Contains(view, "connection refused") {
		t.Error("Error view must not show diagnostic detail")
	}

	m = update(t, m, keyMsg("p"))
	if m.State() != model.LoadStateFailed || !m.FilterState().IsDefault() {
		t.Error("Error state must ignore filter keys")
	}
}

func TestLoadSuccess_DefaultsShowAll(t *testing.T) {
	m := loadedModel(t, fixtureGroups())

	if m.State() != model.LoadStateReady {
		t.Fatalf("Expected ready state, got %s", m.State())
	}
	if !sameIDs(visibleIDs(m), []int{1, 2, 3, 4}) {
		t.Errorf("Expected all groups visible, got %v", visibleIDs(m))
	}
	colors := m.AvailableColors()
	if len(colors) != 2 || colors[0] != "red" || colors[1] != "blue" {
		t.Errorf("Expected [red blue], got %v", colors)
	}

	view := m.View()
	for _, want := range []string{titleText, "Cats", "Dogs", "Privacy", "Avatar color", "Has friends in group", "4 of 4 groups", "median 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
}

func TestSecondLoadMessageIgnored(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m = update(t, m, groupsLoadedMsg{err: errors.New("late failure")})

	if m.State() != model.LoadStateReady {
		t.Errorf("Expected state to stay ready, got %s", m.State())
	}
	if len(m.VisibleGroups()) != 4 {
		t.Errorf("Expected groups to be kept, got %d", len(m.VisibleGroups()))
	}
}

func TestPrivacyKeyCycles(t *testing.T) {
	m := loadedModel(t, fixtureGroups())

	m = update(t, m, keyMsg("p"))
	if m.FilterState().Privacy != filter.PrivacyOpen {
		t.Fatalf("Expected open, got %s", m.FilterState().Privacy)
	}
	if !sameIDs(visibleIDs(m), []int{1, 3}) {
		t.Errorf("Expected open groups [1 3], got %v", visibleIDs(m))
	}

	m = update(t, m, keyMsg("p"))
	if !sameIDs(visibleIDs(m), []int{2, 4}) {
		t.Errorf("Expected closed groups [2 4], got %v", visibleIDs(m))
	}

	m = update(t, m, keyMsg("p"))
	if len(m.VisibleGroups()) != 4 {
		t.Errorf("Expected all groups after full cycle, got %v", visibleIDs(m))
	}
}

func TestFriendsKeyToggles(t *testing.T) {
	m := loadedModel(t, fixtureGroups())

	m = update(t, m, keyMsg("f"))
	if !sameIDs(visibleIDs(m), []int{1, 4}) {
		t.Errorf("Expected groups with friends [1 4], got %v", visibleIDs(m))
	}
	if !strings.Contains(m.View(), "[x]") {
		t.Error("Expected checked friends box in view")
	}

	m = update(t, m, keyMsg("f"))
	if len(m.VisibleGroups()) != 4 {
		t.Errorf("Expected toggle off to show all, got %v", visibleIDs(m))
	}
}

func TestColorSelectorFlow(t *testing.T) {
	m := loadedModel(t, fixtureGroups())

	m = update(t, m, keyMsg("c"))
	if !m.showColors {
		t.Fatal("Expected color selector to open")
	}

	m = update(t, m, keyMsg("b"))
	m = update(t, m, keyMsg("l"))
	choices := m.colorSelector.Choices()
	if len(choices) != 1 || choices[0] != "blue" {
		t.Fatalf("Expected fuzzy match [blue], got %v", choices)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showColors {
		t.Error("Expected selector to close after enter")
	}
	if m.FilterState().Color != "blue" {
		t.Errorf("Expected color blue, got %q", m.FilterState().Color)
	}
	if !sameIDs(visibleIDs(m), []int{2}) {
		t.Errorf("Expected [2], got %v", visibleIDs(m))
	}

	// Any clears the constraint
	m = update(t, m, keyMsg("c"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.FilterState().Color != "" {
		t.Errorf("Expected Any to clear color, got %q", m.FilterState().Color)
	}
}

func TestColorSelectorEscKeepsFilter(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m.SetColorFilter("red")

	m = update(t, m, keyMsg("c"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.showColors {
		t.Error("Expected selector closed after esc")
	}
	if m.FilterState().Color != "red" {
		t.Errorf("Expected color to stay red, got %q", m.FilterState().Color)
	}
}

func TestUnknownColorYieldsEmptyList(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m.SetColorFilter("green")

	if len(m.VisibleGroups()) != 0 {
		t.Errorf("Expected no groups for unknown color, got %v", visibleIDs(m))
	}
	if !strings.Contains(m.View(), "No groups match") {
		t.Error("Expected empty-list message")
	}
}

func TestCombinedFiltersAndReset(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m.SetPrivacyFilter(filter.PrivacyClosed)
	m.SetColorFilter("red")
	m.SetFriendsFilter(true)

	if !sameIDs(visibleIDs(m), []int{4}) {
		t.Errorf("Expected [4], got %v", visibleIDs(m))
	}

	m = update(t, m, keyMsg("r"))
	if !m.FilterState().IsDefault() {
		t.Errorf("Expected reset filter, got %+v", m.FilterState())
	}
	if len(m.VisibleGroups()) != 4 {
		t.Errorf("Expected all groups after reset, got %v", visibleIDs(m))
	}
}

func TestFilteringNeverMutatesSource(t *testing.T) {
	groups := fixtureGroups()
	m := loadedModel(t, groups)
	m.SetPrivacyFilter(filter.PrivacyClosed)
	m.SetFriendsFilter(true)

	if len(m.groups) != 4 || m.groups[0].ID != 1 || m.groups[3].ID != 4 {
		t.Errorf("Source collection changed: %+v", m.groups)
	}
}

func TestCopySelected(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, keyMsg("y"))

	if copied != "Dogs" {
		t.Errorf("Expected Dogs copied, got %q", copied)
	}
	if !strings.Contains(m.statusMsg, "Dogs") || m.statusIsError {
		t.Errorf("Unexpected status %q (error=%v)", m.statusMsg, m.statusIsError)
	}
}

func TestCopyFailure(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m.copyText = func(string) error { return errors.New("no clipboard") }

	m = update(t, m, keyMsg("y"))
	if !m.statusIsError {
		t.Error("Expected error status on clipboard failure")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := loadedModel(t, fixtureGroups())

	m = update(t, m, keyMsg("?"))
	if !m.help.IsVisible() {
		t.Fatal("Expected help to be visible")
	}
	if !strings.Contains(m.View(), "Press any key to close") {
		t.Error("Expected help hint in view")
	}

	// any key closes help without acting on it
	m = update(t, m, keyMsg("f"))
	if m.help.IsVisible() {
		t.Error("Expected help closed")
	}
	if m.FilterState().FriendsOnly {
		t.Error("Key that closed help must not toggle the friends filter")
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(&stubSource{}, nil)
	for _, k := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("Expected quit command for %s", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %s", k.String())
		}
	}
}

func TestNarrowLayoutStacksFilters(t *testing.T) {
	m := loadedModel(t, fixtureGroups())
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	bar := m.renderFilterBar()
	if strings.Count(bar, "\n") != 2 {
		t.Errorf("Expected three stacked filter lines, got:\n%s", bar)
	}
}
