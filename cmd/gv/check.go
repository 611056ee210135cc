package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kraitsura/groups_viewer/pkg/analysis"
	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the source, report invalid groups and summarise the data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		groups, err := loadGroups(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		invalid := 0
		for i := range groups {
			if err := groups[i].Validate(); err != nil {
				invalid++
				fmt.Fprintf(out, "✗ group #%d (id %d): %v\n", i, groups[i].ID, err)
			}
		}
		writeSummary(out, groups)

		if invalid > 0 {
			return fmt.Errorf("%d of %d groups are invalid", invalid, len(groups))
		}
		fmt.Fprintf(out, "✓ %d groups OK (%s)\n", len(groups), cfg.Source)
		return nil
	},
}

// writeSummary prints member, friend and color figures for groups
func writeSummary(w io.Writer, groups []model.Group) {
	stats := analysis.ComputeMemberStats(groups)
	fmt.Fprintf(w, "  members: total %d, mean %.1f, median %.0f, max %d\n",
		stats.TotalMembers, stats.Mean, stats.Median, stats.Max)
	fmt.Fprintf(w, "  friends: %d across %d groups\n", stats.FriendsTotal, stats.WithFriends)

	share := analysis.ColorShare(groups)
	var parts []string
	for _, c := range filter.AvailableColors(groups) {
		parts = append(parts, fmt.Sprintf("%s %d", c, share[c]))
	}
	if n := share[""]; n > 0 {
		parts = append(parts, fmt.Sprintf("none %d", n))
	}
	fmt.Fprintf(w, "  colors: %s\n", strings.Join(parts, ", "))
}
