// Package analysis computes summary figures over a set of groups.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// MemberStats summarises members_count and friend overlap for a set of groups
type MemberStats struct {
	Groups       int
	TotalMembers int
	Mean         float64
	Median       float64
	Max          int
	WithFriends  int
	FriendsTotal int
}

// ComputeMemberStats returns the stats for groups. An empty input yields
// the zero value.
func ComputeMemberStats(groups []model.Group) MemberStats {
	if len(groups) == 0 {
		return MemberStats{}
	}

	counts := make([]float64, len(groups))
	s := MemberStats{Groups: len(groups)}
	for i, g := range groups {
		counts[i] = float64(g.MembersCount)
		s.TotalMembers += g.MembersCount
		if g.HasFriends() {
			s.WithFriends++
			s.FriendsTotal += len(g.Friends)
		}
	}

	s.Mean = stat.Mean(counts, nil)
	s.Max = int(floats.Max(counts))

	// stat.Quantile needs sorted input
	sort.Float64s(counts)
	s.Median = stat.Quantile(0.5, stat.Empirical, counts, nil)
	return s
}

// ColorShare counts groups per avatar color, keyed by color tag.
// Groups without a color are counted under "".
func ColorShare(groups []model.Group) map[string]int {
	share := make(map[string]int)
	for _, g := range groups {
		share[g.AvatarColor]++
	}
	return share
}
