package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kraitsura/groups_viewer/pkg/export"
	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/loader"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

var (
	flagSVG    string
	flagSQLite string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered groups as SVG or into a SQLite database",
	Example: `  gv export --svg groups.svg --color red
  gv export --sqlite groups.db
  gv export --svg - | rsvg-convert > groups.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSVG == "" && flagSQLite == "" {
			return errors.New("nothing to export: pass --svg and/or --sqlite")
		}

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
		visible := filter.Apply(groups, cfg.FilterState())

		if flagSVG != "" {
			if err := writeSVGFile(cmd.OutOrStdout(), flagSVG, visible); err != nil {
				return err
			}
		}
		if flagSQLite != "" {
			if err := loader.SaveSQLite(cmd.Context(), flagSQLite, visible); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d groups to %s\n", len(visible), flagSQLite)
		}
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&flagSVG, "svg", "", "write an avatar sheet to this file (- for stdout)")
	exportCmd.Flags().StringVar(&flagSQLite, "sqlite", "", "write the groups into this SQLite database")
}

func writeSVGFile(stdout io.Writer, path string, groups []model.Group) error {
	if path == "-" {
		export.WriteSVG(stdout, groups)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	export.WriteSVG(f, groups)
	if err := f.Close(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
