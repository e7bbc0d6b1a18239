package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/behave/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shipsim",
		Short:         "Drive a ship with a data-driven behavior tree",
		Long:          `shipsim loads a behavior tree description, binds it to a simulated ship and runs it headless or as a server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")
	root.PersistentFlags().String("log-level", "", "Override the configured log level")
	root.PersistentFlags().String("tree", "", "Override the configured tree file")

	root.AddCommand(newValidateCmd(), newRunCmd(), newServeCmd(), newTypesCmd())
	return root
}

// loadConfig reads --config and applies the override flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if tree, _ := cmd.Flags().GetString("tree"); tree != "" {
		cfg.Tree.Path = tree
	}
	return cfg, cfg.Validate()
}
