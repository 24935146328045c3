package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/finfluency/internal/screens/history"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "List recent learning activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := e.tracker.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("query activity: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activity recorded yet.")
				return nil
			}

			for _, a := range entries {
				fmt.Fprintf(out, "%s  %-8s  %s\n",
					a.Timestamp.Local().Format("2006-01-02 15:04:05"),
					shortID(a.SessionID),
					history.Describe(a),
				)
			}
			return nil
		},
	}
	c.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
	return c
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
