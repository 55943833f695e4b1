package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [tasks...]",
		Short: "Show the mappings tasks would produce without running them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := c.app.Plan(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, plan := range plans {
				_, _ = fmt.Fprintf(out, "%s: %d pairs (fingerprint %016x)\n", plan.Name, len(plan.Mapping), plan.Fingerprint)
				for _, pair := range plan.Mapping {
					_, _ = fmt.Fprintf(out, "  %s -> %s\n", pair.Source, pair.Target)
				}
				if len(plan.Targets) > 0 {
					_, _ = fmt.Fprintf(out, "  targets: %s\n", strings.Join(plan.Targets, ", "))
				}
				if len(plan.FileDep) > 0 {
					_, _ = fmt.Fprintf(out, "  deps: %s\n", strings.Join(plan.FileDep, ", "))
				}
			}
			return nil
		},
	}
}
