package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/squads/internal/adapters/export"
	"github.com/okian/squads/internal/adapters/ingest"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/pkg/logger"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	roster string
	size   int
	sortBy string
	format string
	out    string
}

func newBuildCmd(c *cli) *cobra.Command {
	o := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build teams from a roster file",
		Long:  "Loads a roster (CSV or JSON), ranks it, drafts teams of the requested size and writes them in the chosen format.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBuild(cmd, o)
		},
	}
	cmd.Flags().StringVarP(&o.roster, "roster", "r", "", "Path to the roster file (required)")
	cmd.Flags().IntVarP(&o.size, "size", "s", 0, "Team size (required)")
	cmd.Flags().StringVar(&o.sortBy, "sort-by", "", `Ranking criterion: "average", a skill name or a skill index`)
	cmd.Flags().StringVarP(&o.format, "format", "f", export.FormatText, "Output format: html, csv, xlsx, json or text")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output file (default stdout)")

	for _, name := range []string{"roster", "size"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func (c *cli) runBuild(cmd *cobra.Command, o *buildOptions) error {
	ctx := cmd.Context()

	exp, err := export.ForFormat(o.format, c.cfg.Delimiter())
	if err != nil {
		return err
	}

	roster, err := ingest.LoadFile(ctx, o.roster, ingest.WithDelimiter(c.cfg.Delimiter()))
	if err != nil {
		return fmt.Errorf("failed to load roster %s: %w", o.roster, err)
	}

	svc := service.New(
		service.WithLogger(logger.Named("service")),
		service.WithDefaultSort(c.cfg.DefaultSort),
		service.WithTeamNames(c.cfg.TeamNames),
	)
	if err := svc.LoadRoster(ctx, roster); err != nil {
		return err
	}
	res, err := svc.Generate(ctx, service.Request{TeamSize: o.size, SortBy: o.sortBy})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	doc := export.Document{
		PlanID:      res.PlanID,
		GeneratedAt: res.GeneratedAt,
		TeamSize:    res.TeamSize,
		SortBy:      res.SortBy,
		Teams:       res.Teams,
	}
	if err := exp.Export(&buf, doc); err != nil {
		return fmt.Errorf("failed to export %s: %w", exp.Name(), err)
	}
	return writeOutput(cmd, o.out, buf.Bytes())
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
