// Package filter holds the group filter criteria and derives the visible
// subset and the available color choices from a loaded collection.
package filter

import (
	"fmt"
	"strings"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// Privacy selects groups by their closed flag
type Privacy int

const (
	PrivacyAll Privacy = iota
	PrivacyOpen
	PrivacyClosed
)

var privacyNames = [...]string{"all", "open", "closed"}

// String returns the selector value: all, open or closed
func (p Privacy) String() string {
	if p < PrivacyAll || p > PrivacyClosed {
		return "all"
	}
	return privacyNames[p]
}

// Label returns the display label for the privacy selector
func (p Privacy) Label() string {
	switch p {
	case PrivacyOpen:
		return "Open"
	case PrivacyClosed:
		return "Closed"
	default:
		return "All"
	}
}

// Next cycles all -> open -> closed -> all
func (p Privacy) Next() Privacy {
	return (p + 1) % 3
}

// ParsePrivacy parses a selector value. Empty input means all.
func ParsePrivacy(s string) (Privacy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PrivacyAll, nil
	case "open":
		return PrivacyOpen, nil
	case "closed":
		return PrivacyClosed, nil
	}
	return PrivacyAll, fmt.Errorf("invalid privacy filter %q (want all, open or closed)", s)
}

// State is the set of active criteria. The zero value matches every group.
type State struct {
	Privacy     Privacy
	Color       string // "" means no constraint
	FriendsOnly bool
}

// SetPrivacy overwrites the privacy criterion
func (s *State) SetPrivacy(p Privacy) {
	s.Privacy = p
}

// SetColor overwrites the color criterion; "" clears it
func (s *State) SetColor(color string) {
	s.Color = color
}

// SetFriendsOnly overwrites the friends-present toggle
func (s *State) SetFriendsOnly(on bool) {
	s.FriendsOnly = on
}

// IsDefault returns true if no criterion narrows the list
func (s State) IsDefault() bool {
	return s == State{}
}

// Matches reports whether g satisfies all three criteria
func (s State) Matches(g model.Group) bool {
	privacyMatch := s.Privacy == PrivacyAll ||
		(s.Privacy == PrivacyOpen && !g.Closed) ||
		(s.Privacy == PrivacyClosed && g.Closed)

	colorMatch := s.Color == "" || g.AvatarColor == s.Color

	friendsMatch := !s.FriendsOnly || len(g.Friends) > 0

	return privacyMatch && colorMatch && friendsMatch
}

// Apply returns copies of the groups matching s in their original order.
// The input slice is never modified, and editing the result cannot reach it.
func Apply(groups []model.Group, s State) []model.Group {
	visible := make([]model.Group, 0, len(groups))
	for _, g := range groups {
		if s.Matches(g) {
			visible = append(visible, g.Clone())
		}
	}
	return visible
}

// AvailableColors returns the distinct non-empty avatar colors in
// first-seen order.
func AvailableColors(groups []model.Group) []string {
	seen := make(map[string]bool)
	colors := make([]string, 0)
	for _, g := range groups {
		if g.AvatarColor == "" || seen[g.AvatarColor] {
			continue
		}
		seen[g.AvatarColor] = true
		colors = append(colors, g.AvatarColor)
	}
	return colors
}

// Summary describes the active criteria, e.g. "privacy=open color=red friends".
func Summary(s State) string {
	if s.IsDefault() {
		return "no filters"
	}
	var parts []string
	if s.Privacy != PrivacyAll {
		parts = append(parts, "privacy="+s.Privacy.String())
	}
	if s.Color != "" {
		parts = append(parts, "color="+s.Color)
	}
	if s.FriendsOnly {
		parts = append(parts, "friends")
	}
	return strings.Join(parts, " ")
}
