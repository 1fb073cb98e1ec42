package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/squads/internal/smoke"
	"github.com/okian/squads/pkg/logger"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultPeople      = 8
	defaultMinSize     = 2
	defaultMaxSize     = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	cfg := &smoke.Config{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "End-to-end check of a running squads server",
		Long: `Uploads a generated roster, requests teams for every size in a range and
verifies that each answer places every person exactly once in the planned
number of teams. Sizes at or above the roster size must be refused.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if cfg.Verbose {
				level = "debug"
			}
			if err := logger.Init(); err != nil {
				return err
			}
			_ = logger.SetLevelString(level)

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()
			stats, err := smoke.Run(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verified %d plans, %d refused as expected, in %s\n",
				stats.PlansVerified, stats.PlansRejected, stats.Duration.Round(time.Millisecond))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	f.IntVar(&cfg.People, "people", defaultPeople, "Roster size to generate")
	f.StringSliceVar(&cfg.Skills, "skills", nil, "Skill names for the generated roster")
	f.IntVar(&cfg.MinSize, "min-size", defaultMinSize, "Smallest team size to request")
	f.IntVar(&cfg.MaxSize, "max-size", defaultMaxSize, "Largest team size to request")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Concurrent requests")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.StringVar(&cfg.OutputFile, "output", "", "Save the generated roster as CSV")
	f.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
