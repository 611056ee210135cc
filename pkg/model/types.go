package model

import (
	"fmt"
	"strings"
)

// Group represents a community as returned by the groups endpoint
type Group struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Closed       bool     `json:"closed"`
	AvatarColor  string   `json:"avatar_color,omitempty"`
	MembersCount int      `json:"members_count"`
	Friends      []Friend `json:"friends,omitempty"`
}

// Friend is a known user who is also a member of a group. Display only.
type Friend struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name, skipping empty parts
func (f Friend) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// HasFriends returns true if at least one friend is a member
func (g Group) HasFriends() bool {
	return len(g.Friends) > 0
}

// HasAvatarColor returns true if the group carries a color tag
func (g Group) HasAvatarColor() bool {
	return g.AvatarColor != ""
}

// PrivacyLabel returns the user-facing privacy label
func (g Group) PrivacyLabel() string {
	if g.Closed {
		return PrivacyLabelClosed
	}
	return PrivacyLabelOpen
}

// Privacy labels shown next to each group
const (
	PrivacyLabelOpen   = "Open"
	PrivacyLabelClosed = "Closed"
)

// Clone creates a deep copy of the group
func (g Group) Clone() Group {
	clone := g
	if g.Friends != nil {
		clone.Friends = make([]Friend, len(g.Friends))
		copy(clone.Friends, g.Friends)
	}
	return clone
}

// Validate checks if the group data is logically valid.
// Loading never calls this; it backs the check command.
func (g *Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group %d: name cannot be empty", g.ID)
	}
	if g.MembersCount < 0 {
		return fmt.Errorf("group %d: members_count cannot be negative (%d)", g.ID, g.MembersCount)
	}
	for i, f := range g.Friends {
		if f.FullName() == "" {
			return fmt.Errorf("group %d: friend #%d has no name", g.ID, i)
		}
	}
	return nil
}

// Response result codes
const (
	ResultFailure = 0
	ResultSuccess = 1
)

// GetGroupsResponse is the envelope the groups endpoint answers with
type GetGroupsResponse struct {
	Result int     `json:"result"`
	Data   []Group `json:"data,omitempty"`
}

// OK returns true if the response signals success and carries data
func (r GetGroupsResponse) OK() bool {
	return r.Result == ResultSuccess && r.Data != nil
}

// LoadState is the lifecycle of a group collection: it starts loading and
// settles exactly once into failed or ready.
type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateFailed
	LoadStateReady
)

// String returns the state name
func (s LoadState) String() string {
	switch s {
	case LoadStateLoading:
		return "loading"
	case LoadStateFailed:
		return "error"
	case LoadStateReady:
		return "ready"
	}
	return "unknown"
}

// Settled returns true once loading has finished either way
func (s LoadState) Settled() bool {
	return s != LoadStateLoading
}
