package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/coulomb/internal/injector"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI",
	Long: `Serve the interactive page, the JSON API (/api/controls, /api/field)
and one WebSocket session per browser tab on /ws.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Server.ListenAddr = serveListen
		}

		srv, cleanup, err := injector.InitializeServer(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address, e.g. :8080")
	rootCmd.AddCommand(serveCmd)
}
