package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/finfluency/internal/app"
	"github.com/abhisek/finfluency/internal/llm"
	"github.com/abhisek/finfluency/internal/screens/dashboard"
	"github.com/abhisek/finfluency/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = os.TempDir()
	}
	skip, _ := cmd.Flags().GetBool("no-splash")

	opts := app.Options{
		Deps: dashboard.Deps{
			Catalog:    e.catalog,
			Tracker:    e.tracker,
			Tutor:      buildTutor(cmd, e),
			AppVersion: version,
			ExportDir:  exportDir,
		},
		Logger:      e.log,
		SkipWelcome: skip,
	}
	return app.Run(cmd.Context(), opts)
}

// buildTutor returns nil when the tutor is switched off. Without a usable
// model the tutor still runs its rules.
func buildTutor(cmd *cobra.Command, e *env) *tutor.Service {
	llmCfg, ok := e.cfg.Tutor.LLM()
	if !ok {
		if e.cfg.Tutor.Provider == "off" {
			e.log.Info("tutor disabled")
			return nil
		}
		e.log.Info("no LLM configured; tutor runs rules only")
		return tutor.NewService(nil, e.cfg.Tutor.Timeout, e.log)
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg, e.log)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "AI tutor not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Explanations will use built-in hints only.")
		e.log.Warn("llm provider", zap.Error(err))
		return tutor.NewService(nil, e.cfg.Tutor.Timeout, e.log)
	}
	e.log.Info("tutor ready", zap.String("provider", llmCfg.Provider), zap.String("model", provider.ModelID()))
	return tutor.NewService(provider, llmCfg.Timeout, e.log)
}
