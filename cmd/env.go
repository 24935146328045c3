package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/finfluency/internal/config"
	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/logger"
	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/store"
)

// env is what every command needs: configuration, a logger and a tracker
// over the learner's stored progress.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	catalog *content.Catalog
	tracker *progress.Tracker
	closers []io.Closer
}

// setup loads configuration and opens the progress store.
func setup(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e.log = log.With(zap.String("command", cmd.Name()))
	e.closers = append(e.closers, closer)

	catalog, err := content.Default()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load course content: %w", err)
	}
	e.catalog = catalog

	persist, err := e.openPersistence(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}

	tracker, err := progress.NewTracker(ctx, persist, catalog,
		progress.WithActivityLog(persist),
		progress.WithLogger(e.log),
	)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}
	e.tracker = tracker
	return e, nil
}

type persistence interface {
	progress.Persistence
	progress.ActivityLog
}

func (e *env) openPersistence(ctx context.Context) (persistence, error) {
	if e.cfg.DB.Ephemeral {
		e.log.Info("using in-memory progress")
		return progress.NewMemoryPersistence(), nil
	}

	dbPath, err := resolveDBPath(e.cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.closers = append(e.closers, st)
	e.log.Debug("store opened", zap.String("path", dbPath))

	if keep := e.cfg.History.Keep; keep > 0 {
		n, err := st.PruneActivity(ctx, keep)
		if err != nil {
			e.log.Warn("prune activity", zap.Error(err))
		} else if n > 0 {
			e.log.Info("pruned activity", zap.Int64("removed", n), zap.Int("kept", keep))
		}
	}
	return st, nil
}

// resolveDBPath returns the configured path, or the default XDG path.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
	e.closers = nil
}
