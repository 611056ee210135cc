package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

func ids(groups []model.Group) []int {
	out := make([]int, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.ID)
	}
	return out
}

func sampleGroups() []model.Group {
	return []model.Group{
		{ID: 1, Name: "open red friends", AvatarColor: "red", MembersCount: 10,
			Friends: []model.Friend{{FirstName: "A", LastName: "B"}}},
		{ID: 2, Name: "closed red", Closed: true, AvatarColor: "red", MembersCount: 3},
		{ID: 3, Name: "open no color", MembersCount: 0, Friends: []model.Friend{}},
		{ID: 4, Name: "closed blue friends", Closed: true, AvatarColor: "blue", MembersCount: 7,
			Friends: []model.Friend{{FirstName: "C", LastName: "D"}}},
		{ID: 5, Name: "open blue", AvatarColor: "blue", MembersCount: 99},
	}
}

func TestScenarioA_DefaultsShowEverything(t *testing.T) {
	groups := []model.Group{{ID: 1, Name: "A", Closed: false, MembersCount: 10}}
	assert.Equal(t, []int{1}, ids(Apply(groups, State{})))
}

func TestScenarioB_OpenHidesClosed(t *testing.T) {
	groups := []model.Group{{ID: 1, Name: "A", Closed: true}}
	var s State
	s.SetPrivacy(PrivacyOpen)
	assert.Empty(t, Apply(groups, s))
}

func TestScenarioC_ColorFilter(t *testing.T) {
	groups := []model.Group{
		{ID: 1, Name: "A", AvatarColor: "red"},
		{ID: 2, Name: "B", AvatarColor: "blue"},
	}
	var s State
	s.SetColor("red")
	assert.Equal(t, []int{1}, ids(Apply(groups, s)))
	assert.ElementsMatch(t, []string{"red", "blue"}, AvailableColors(groups))
}

func TestScenarioD_FriendsFilter(t *testing.T) {
	groups := []model.Group{
		{ID: 1, Name: "A", Friends: []model.Friend{}},
		{ID: 2, Name: "B", Friends: []model.Friend{{FirstName: "A", LastName: "B"}}},
	}
	var s State
	s.SetFriendsOnly(true)
	assert.Equal(t, []int{2}, ids(Apply(groups, s)))
}

func TestMatches_EveryCombination(t *testing.T) {
	groups := sampleGroups()
	privacies := []Privacy{PrivacyAll, PrivacyOpen, PrivacyClosed}
	colors := []string{"", "red", "blue", "green"}

	for _, p := range privacies {
		for _, c := range colors {
			for _, fr := range []bool{false, true} {
				s := State{Privacy: p, Color: c, FriendsOnly: fr}
				for _, g := range groups {
					want := true
					switch p {
					case PrivacyOpen:
						want = want && !g.Closed
					case PrivacyClosed:
						want = want && g.Closed
					}
					if c != "" {
						want = want && g.AvatarColor == c
					}
					if fr {
						want = want && len(g.Friends) > 0
					}
					assert.Equal(t, want, s.Matches(g), "state=%+v group=%d", s, g.ID)
				}
			}
		}
	}
}

func TestApply_OrderPreservingSubsequence(t *testing.T) {
	groups := sampleGroups()
	states := []State{
		{},
		{Privacy: PrivacyClosed},
		{Color: "blue"},
		{FriendsOnly: true},
		{Privacy: PrivacyOpen, Color: "red", FriendsOnly: true},
		{Color: "green"},
	}
	for _, s := range states {
		visible := Apply(groups, s)
		// every visible id appears in the source, in increasing source index
		last := -1
		for _, g := range visible {
			idx := -1
			for i := last + 1; i < len(groups); i++ {
				if groups[i].ID == g.ID {
					idx = i
					break
				}
			}
			require.NotEqual(t, -1, idx, "state %+v: group %d out of order or missing", s, g.ID)
			last = idx
		}
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	groups := sampleGroups()
	before := make([]model.Group, len(groups))
	for i, g := range groups {
		before[i] = g.Clone()
	}

	_ = Apply(groups, State{Privacy: PrivacyClosed, FriendsOnly: true})
	assert.Equal(t, before, groups)
}

func TestApply_ResultIsDetachedFromSource(t *testing.T) {
	groups := []model.Group{
		{ID: 1, Name: "A", Friends: []model.Friend{{FirstName: "Ann", LastName: "Lee"}}},
	}

	visible := Apply(groups, State{FriendsOnly: true})
	require.Len(t, visible, 1)
	visible[0].Friends[0].FirstName = "Changed"

	assert.Equal(t, "Ann", groups[0].Friends[0].FirstName)
}

func TestApply_NoColorNeverMatchesSpecificColor(t *testing.T) {
	groups := []model.Group{{ID: 1, Name: "plain"}}
	assert.Empty(t, Apply(groups, State{Color: "red"}))
	assert.Len(t, Apply(groups, State{}), 1)
}

func TestApply_UnknownColorYieldsEmpty(t *testing.T) {
	assert.Empty(t, Apply(sampleGroups(), State{Color: "purple"}))
}

func TestApply_NilFriendsNeverMatchToggle(t *testing.T) {
	groups := []model.Group{{ID: 1, Name: "nil friends"}}
	assert.Empty(t, Apply(groups, State{FriendsOnly: true}))
}

func TestAvailableColors(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		assert.Empty(t, AvailableColors(nil))
		assert.Empty(t, AvailableColors([]model.Group{}))
	})

	t.Run("dedup and drop empty", func(t *testing.T) {
		groups := []model.Group{
			{ID: 1, AvatarColor: "red"},
			{ID: 2},
			{ID: 3, AvatarColor: "blue"},
			{ID: 4, AvatarColor: "red"},
			{ID: 5, AvatarColor: ""},
		}
		assert.Equal(t, []string{"red", "blue"}, AvailableColors(groups))
	})
}

func TestParsePrivacy(t *testing.T) {
	tests := []struct {
		in      string
		want    Privacy
		wantErr bool
	}{
		{"", PrivacyAll, false},
		{"all", PrivacyAll, false},
		{"Open", PrivacyOpen, false},
		{" closed ", PrivacyClosed, false},
		{"private", PrivacyAll, true},
	}
	for _, tt := range tests {
		got, err := ParsePrivacy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) Privacy {
	t.Helper()
	p, err := ParsePrivacy(s)
	require.NoError(t, err)
	return p
}

func TestPrivacyNext(t *testing.T) {
	assert.Equal(t, PrivacyOpen, PrivacyAll.Next())
	assert.Equal(t, PrivacyClosed, PrivacyOpen.Next())
	assert.Equal(t, PrivacyAll, PrivacyClosed.Next())
}

func TestSettersAreIndependent(t *testing.T) {
	var s State
	s.SetColor("red")
	s.SetFriendsOnly(true)
	s.SetPrivacy(PrivacyClosed)
	assert.Equal(t, State{Privacy: PrivacyClosed, Color: "red", FriendsOnly: true}, s)

	s.SetColor("")
	assert.Equal(t, State{Privacy: PrivacyClosed, FriendsOnly: true}, s)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no filters", Summary(State{}))
	assert.Equal(t, "privacy=open color=red friends",
		Summary(State{Privacy: PrivacyOpen, Color: "red", FriendsOnly: true}))
}
