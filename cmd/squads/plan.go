package main

import (
	"fmt"

	"github.com/okian/squads/internal/adapters/ingest"
	"github.com/okian/squads/internal/domain/distribution"
	"github.com/spf13/cobra"
)

func newPlanCmd(c *cli) *cobra.Command {
	var (
		roster string
		people int
		size   int
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how many teams a roster yields for a size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			total := people
			if roster != "" {
				r, err := ingest.LoadFile(cmd.Context(), roster, ingest.WithDelimiter(c.cfg.Delimiter()))
				if err != nil {
					return fmt.Errorf("failed to load roster %s: %w", roster, err)
				}
				total = r.Len()
			}
			plan, err := distribution.PlanTeamCount(total, size)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "people: %d\nteam size: %d\nteams: %d\nremainder: %d\n",
				total, size, plan.TeamCount, plan.Remainder)
			return err
		},
	}
	cmd.Flags().StringVarP(&roster, "roster", "r", "", "Path to the roster file")
	cmd.Flags().IntVarP(&people, "people", "n", 0, "Roster size, when no roster file is given")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "Team size (required)")
	cmd.MarkFlagsOneRequired("roster", "people")
	cmd.MarkFlagsMutuallyExclusive("roster", "people")
	if err := cmd.MarkFlagRequired("size"); err != nil {
		panic(fmt.Sprintf("failed to mark size flag as required: %v", err))
	}
	return cmd
}
