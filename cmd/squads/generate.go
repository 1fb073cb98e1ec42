package main

import (
	"bytes"
	"fmt"

	"github.com/okian/squads/internal/adapters/ingest"
	"github.com/okian/squads/internal/smoke"
	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		count  int
		skills []string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random sample roster as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			r, err := smoke.GenerateRoster(cmd.Context(), count, skills)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := ingest.WriteCSV(&buf, r, c.cfg.Delimiter()); err != nil {
				return err
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of people")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Comma separated skill names (default: a game design class sheet)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
