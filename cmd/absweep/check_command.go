package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"absweep/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify server connectivity and local directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := colorEnabled(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			fmt.Fprintln(out, sectionTitle("Preflight", colorize))
			for _, result := range results {
				fmt.Fprintln(out, checkLine(result.Name, result.Passed, result.Detail, colorize))
			}

			if !preflight.Passed(results) {
				return fmt.Errorf("preflight checks failed")
			}
			return nil
		},
	}
}
