package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/julianshen/codexplain/internal/api"
	"github.com/julianshen/codexplain/internal/logger"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend is reachable and compatible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Initialize(debugFlag, verboseFlag)

			client := newClient(cfg)
			h, err := client.CheckHealth(commandContext(cmd))
			if err != nil && !errors.Is(err, api.ErrIncompatibleBackend) {
				return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "backend\t%s\n", client.BaseURL())
			fmt.Fprintf(w, "status\t%s\n", h.Status)
			fmt.Fprintf(w, "version\t%s\n", h.Version)
			fmt.Fprintf(w, "compatible\t%t\n", h.Compatible)
			if err := w.Flush(); err != nil {
				return err
			}
			return err
		},
	}
}
