package main

import (
	"github.com/spf13/cobra"

	"github.com/kraitsura/groups_viewer/pkg/config"
	"github.com/kraitsura/groups_viewer/pkg/export"
)

// filter flags shared by list and export
var (
	flagPrivacy string
	flagColor   string
	flagFriends bool
	flagOutput  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered groups",
	Example: `  gv list --privacy closed --friends
  gv list --color red --output json
  gv list -s sqlite://groups.db`,
	Args: cobra.NoArgs,
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
		return export.Write(cmd.OutOrStdout(), flagOutput, groups, cfg.FilterState())
	},
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().StringVarP(&flagOutput, "output", "o", export.FormatTable, "output format: table or json")
}

func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagPrivacy, "privacy", "", "privacy filter: all, open or closed")
	f.StringVar(&flagColor, "color", "", "only groups with this avatar color")
	f.BoolVar(&flagFriends, "friends", false, "only groups where friends are members")
}

func applyFilterFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("privacy") {
		cfg.Filter.Privacy = flagPrivacy
	}
	if flags.Changed("color") {
		cfg.Filter.Color = flagColor
	}
	if flags.Changed("friends") {
		cfg.Filter.Friends = flagFriends
	}
}
