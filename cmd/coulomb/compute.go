package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/coulomb/internal/core/field"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/scene"
	"github.com/zeusync/coulomb/internal/server"
)

var computeFlags struct {
	x, y    float64
	charges []float64
	raw     bool
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Print the forces for one configuration as JSON",
	Long: `Evaluate the field once and print the frame and its scene as JSON.

Values are snapped to the preset's slider grid unless --raw is given.
Charges are in microcoulombs, in source order q1..q4.

Example:
  coulomb compute --x 0.5 --y 0 --q 1,-1,1,-1`,
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

		state := preset.Defaults()
		flags := cmd.Flags()
		if flags.Changed("x") {
			state.Position[0] = computeFlags.x
		}
		if flags.Changed("y") {
			state.Position[1] = computeFlags.y
		}
		if flags.Changed("q") {
			if len(computeFlags.charges) != field.NumSources {
				return fmt.Errorf("%w: --q needs %d values, got %d",
					interaction.ErrInvalidValue, field.NumSources, len(computeFlags.charges))
			}
			copy(state.Charges[:], computeFlags.charges)
		}

		var frame interaction.Frame
		if computeFlags.raw {
			frame = interaction.Evaluate(state)
		} else if frame, err = interaction.New(preset, nil, nil).Apply(state); err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")
		return out.Encode(server.FieldResponse{Frame: frame, Scene: scene.Build(frame, cfg.Render)})
	},
}

func init() {
	f := computeCmd.Flags()
	f.Float64Var(&computeFlags.x, "x", 0, "test charge x")
	f.Float64Var(&computeFlags.y, "y", 0, "test charge y")
	f.Float64SliceVar(&computeFlags.charges, "q", nil, "source charges q1,q2,q3,q4 in µC")
	f.BoolVar(&computeFlags.raw, "raw", false, "skip snapping and clamping")
	rootCmd.AddCommand(computeCmd)
}
