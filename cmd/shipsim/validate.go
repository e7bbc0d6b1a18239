package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/loader"
	"github.com/zeusync/behave/internal/core/ship"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse tree files and build them against the ship node types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			printShape, _ := cmd.Flags().GetBool("print")

			reg, err := ship.NewRegistry()
			if err != nil {
				return err
			}
			cache := loader.NewCache()
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				desc, err := parseFile(cache, path, format)
				if err == nil {
					// leaves bind the context at tick time, so no ship is needed to build
					_, err = bt.Build(desc, reg, (*ship.Context)(nil))
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", path)
				if printShape {
					fmt.Fprint(out, desc.String())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d trees invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "Tree format (text, yaml, json, hcl); by extension when empty")
	cmd.Flags().BoolP("print", "p", false, "Print the parsed tree")
	return cmd
}

func parseFile(cache *loader.Cache, path, format string) (*bt.Descriptor, error) {
	f, err := loader.Resolve(format, path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cache.Parse(f, src)
}
