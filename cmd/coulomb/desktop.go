package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/desktop"
	"github.com/zeusync/coulomb/internal/injector"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Open the force diagram in a window",
	Long: `Open a native window with the plot and a slider panel.

Drag a slider knob with the mouse, or select a control with the up/down keys
and move it with left/right. R resets, Esc closes the window.

The desktop preset is used unless --preset says otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("preset") {
			cfg.Preset = interaction.PresetDesktop
		}
		preset, err := cfg.ResolvePreset()
		if err != nil {
			return err
		}

		logger, cleanup, err := injector.InitializeLogger(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		game, err := desktop.New(ctx, preset, cfg.Render, logger)
		if err != nil {
			return err
		}
		return game.Run()
	},
}

func init() {
	rootCmd.AddCommand(desktopCmd)
}
