package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/behave/internal/core/ship"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the node types a ship tree may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := ship.NewRegistry()
			if err != nil {
				return err
			}
			for _, name := range reg.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
