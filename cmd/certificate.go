package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/screens/certificate"
)

func newCertificateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "certificate",
		Short: "Print the course completion certificate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			d := e.tracker.Snapshot()
			if !progress.AllComplete(d.Progress) {
				return fmt.Errorf("complete all %d modules first (%d done)", progress.ModuleCount, d.Progress.CompletedCount())
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(certificate.Lines(d.User.Name, time.Now()), "\n"))
			return nil
		},
	}
}
