package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kraitsura/groups_viewer/pkg/config"
	"github.com/kraitsura/groups_viewer/pkg/export"
	"github.com/kraitsura/groups_viewer/pkg/loader"
	"github.com/kraitsura/groups_viewer/pkg/logging"
	"github.com/kraitsura/groups_viewer/pkg/model"
	"github.com/kraitsura/groups_viewer/pkg/ui"
)

// global flags shared by every command
var (
	flagConfig   string
	flagSource   string
	flagDelay    time.Duration
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gv",
	Short: "Browse and filter groups",
	Long: `gv loads a collection of groups and lets you narrow it down by
privacy, avatar color and whether any of your friends are members.

Run without arguments for the interactive browser. When stdout is not a
terminal the filtered list is printed as a table instead.`,
	SilenceUsage: true,
	RunE:         runBrowser,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/gv/config.yaml)")
	pf.StringVarP(&flagSource, "source", "s", "", "group source: fixture:, a .json/.jsonc/.jsonl file, http(s)://… or sqlite://path")
	pf.DurationVar(&flagDelay, "delay", 0, "simulated latency of the fixture source (0 disables)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
	if flags.Changed("delay") {
		cfg.Delay = flagDelay
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	applyFilterFlags(cmd, &cfg)
	if flags.Changed("addr") {
		cfg.Addr = flagAddr
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger logs to the configured file when the TUI owns the terminal,
// otherwise to stderr.
func newLogger(cfg config.Config, interactive bool) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.LogLevel}
	if interactive {
		opts.File = cfg.LogFile
	}
	return logging.New(opts)
}

// loadGroups opens the configured source and runs the single load
func loadGroups(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]model.Group, error) {
	src, err := loader.Open(cfg.Source, cfg.LoaderOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("loading groups", zap.String("source", cfg.Source))

	groups, err := src.LoadGroups(ctx)
	if err != nil {
		logger.Error("group load failed", zap.Error(err))
		return nil, err
	}
	logger.Info("groups loaded", zap.Int("count", len(groups)))
	return groups, nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		logger, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		groups, err := loadGroups(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return export.WriteTable(cmd.OutOrStdout(), groups, cfg.FilterState())
	}

	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, err := loader.Open(cfg.Source, cfg.LoaderOptions())
	if err != nil {
		return err
	}

	m := ui.NewModel(src, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running group browser: %w", err)
	}
	return nil
}
