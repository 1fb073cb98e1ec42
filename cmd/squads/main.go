// Package main provides the squads command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/okian/squads/internal/config"
	"github.com/okian/squads/pkg/logger"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand.
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "squads",
		Short:         "Split a skill roster into balanced teams",
		Long:          "squads ranks a roster of people by their skill ratings and drafts them into teams with a serpentine sweep.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.AddCommand(
		newBuildCmd(c),
		newPlanCmd(c),
		newGenerateCmd(c),
		newServeCmd(c),
	)
	return root
}

// setup loads configuration and points logs at stderr so stdout stays free
// for exports.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	c.cfg = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
