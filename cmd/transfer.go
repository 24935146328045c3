package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/finfluency/internal/progress"
)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export",
		Short: "Write progress to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			now := time.Now()
			raw, err := progress.Export(e.tracker.Snapshot(), version, now)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = progress.ExportFileName(now)
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(raw, '\n'))
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress exported to %s\n", out)
			return nil
		},
	}
	c.Flags().StringP("out", "o", "", "Output file, or - for stdout (default: finance_fluency_progress_<date>.json)")
	return c
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace progress with a previously exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			d, err := progress.Import(raw, version)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.tracker.Replace(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported progress for %s: %d/%d modules complete.\n",
				d.User.Name, d.Progress.CompletedCount(), progress.ModuleCount)
			return nil
		},
	}
}
