package main

import (
	"github.com/spf13/cobra"

	"github.com/kraitsura/groups_viewer/pkg/export"
	"github.com/kraitsura/groups_viewer/pkg/loader"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the group list as a web page",
	Long: `serve starts an HTTP server with the group list page. Groups are loaded
once in the background; until then the page shows a loading notice.
Filters are passed as query parameters (privacy, color, friends).`,
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

		src, err := loader.Open(cfg.Source, cfg.LoaderOptions())
		if err != nil {
			return err
		}

		srv := export.NewPageServer(src, cfg.Addr, logger)
		return srv.StartWithGracefulShutdown(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config, localhost:9000)")
}
