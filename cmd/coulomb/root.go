package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/coulomb/internal/config"
)

var rootFlags struct {
	configPath string
	preset     string
	logLevel   string
	logFile    string
}

var rootCmd = &cobra.Command{
	Use:   "coulomb",
	Short: "Interactive electric force visualizer for four fixed point charges",
	Long: `coulomb computes the Coulomb force that four fixed point charges at
(-1,-1), (1,-1), (1,1) and (-1,1) exert on a movable test charge, and draws
the individual forces and their resultant as arrows.

Front-ends:
  serve    - browser UI over HTTP and WebSocket
  tui      - terminal UI
  desktop  - native window
  compute  - print one frame as JSON

Configuration is read from --config (YAML), then .env and COULOMB_* variables,
then the flags below.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "path to a YAML config file")
	f.StringVar(&rootFlags.preset, "preset", "", "slider preset: web or desktop")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "debug, info, warn, error or silent")
	f.StringVar(&rootFlags.logFile, "log-file", "", "write logs to this file instead of stderr")
}

// loadConfig layers the persistent flags over the file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = rootFlags.preset
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rootFlags.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = rootFlags.logFile
	}
	return cfg, cfg.Validate()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
