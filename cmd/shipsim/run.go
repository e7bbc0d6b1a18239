package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/zeusync/behave/internal/core/control"
	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/systems/physics"
	"github.com/zeusync/behave/internal/injector"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless with a fixed input and print the final state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			steps, _ := cmd.Flags().GetInt("steps")
			x, _ := cmd.Flags().GetFloat64("stick-x")
			y, _ := cmd.Flags().GetFloat64("stick-y")
			primary, _ := cmd.Flags().GetBool("primary")
			secondary, _ := cmd.Flags().GetBool("secondary")
			accelerate, _ := cmd.Flags().GetBool("accelerate")

			app, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()

			app.Input.Set(control.Input{
				Stick:      physics.Vec2{X: x, Y: y},
				Primary:    primary,
				Secondary:  secondary,
				Accelerate: accelerate,
			})
			if err := app.World.RunSteps(steps); err != nil {
				return err
			}
			app.Logger.Info("run finished", log.Int("steps", steps))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app.World.Snapshot())
		},
	}
	cmd.Flags().IntP("steps", "n", 250, "Number of fixed steps to simulate")
	cmd.Flags().Float64("stick-x", 0, "Direction stick X")
	cmd.Flags().Float64("stick-y", 0, "Direction stick Y")
	cmd.Flags().Bool("primary", false, "Hold the primary attack")
	cmd.Flags().Bool("secondary", false, "Hold the secondary attack")
	cmd.Flags().Bool("accelerate", false, "Hold the throttle")
	return cmd
}
