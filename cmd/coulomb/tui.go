package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/injector"
	"github.com/zeusync/coulomb/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal UI",
	Long: `Draw the force diagram in the terminal.

Keys:
  up/down, j/k     select a control
  left/right, h/l  move it by one step
  home/end         jump to the minimum or maximum
  r                reset every control
  q, esc           quit

Logs go nowhere unless --log-file is set, so they cannot garble the screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		preset, err := cfg.ResolvePreset()
		if err != nil {
			return err
		}

		var logger log.Log = log.Nop()
		if cfg.Log.File != "" {
			l, cleanup, err := injector.InitializeLogger(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			logger = l
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err = screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		defer screen.Fini()

		app, err := tui.New(screen, preset, cfg.Render, logger)
		if err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
