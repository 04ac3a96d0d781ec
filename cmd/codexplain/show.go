package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/runner"
)

func showCmd() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a generated tutorial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Initialize(debugFlag, verboseFlag)

			result, err := runner.NewHeadlessRunner(newClient(cfg), nil).Show(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if err := printResult(cmd, cfg, outputFlag, result); err != nil {
				return err
			}
			if result.Error != "" {
				return fmt.Errorf("fetching tutorial %s: %s", args[0], result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "markdown", "output format: markdown, json, yaml")
	return cmd
}
