package main

import (
	"github.com/okian/squads/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr, roster string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			if roster != "" {
				c.cfg.RosterPath = roster
			}
			return server.Run(cmd.Context(), c.cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVarP(&roster, "roster", "r", "", "Roster file loaded at startup (overrides config)")
	return cmd
}
