// Package cmd implements the finfluency command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// NewRootCmd builds the command tree. Running the root command starts the
// TUI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finfluency",
		Short:         "Learn accounting fundamentals in the terminal",
		Long:          "Finance Fluency teaches the accounting behind fintech and payments businesses through ten short modules.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides FINFLUENCY_DB_PATH)")
	pf.String("config", "", "Path to a config file (default: config.yaml in the user config dir)")
	pf.Bool("ephemeral", false, "Keep progress in memory for this run only")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	root.Flags().Bool("no-splash", false, "Skip the welcome animation")

	root.AddCommand(
		newPlayCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newRenameCmd(),
		newHistoryCmd(),
		newBreakevenCmd(),
		newCertificateCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

func newPlayCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "play",
		Short: "Start the interactive course (same as running with no command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}
	c.Flags().Bool("no-splash", false, "Skip the welcome animation")
	return c
}
