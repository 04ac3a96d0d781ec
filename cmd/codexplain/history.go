package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/julianshen/codexplain/internal/store"
)

func historyCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List tutorials generated from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := requireHistory()
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.Recent(limitFlag)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tutorials yet. Run codexplain generate --repo URL to create one.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tREPOSITORY\tLANGUAGE\tCREATED")
			for _, e := range entries {
				title := e.Title
				if title == "" {
					title = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, title, e.RepoURL, e.Language, e.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.AddCommand(historyRmCmd())
	return cmd
}

func historyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a tutorial from the local history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireHistory()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.Get(args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%s is not in the history", args[0])
				}
				return err
			}
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

// requireHistory opens the history store and fails when it is disabled.
func requireHistory() (*store.Store, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("history is disabled; set [history] enabled = true in the config")
	}
	return s, nil
}
