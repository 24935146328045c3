package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrUnknownModule is returned for a module id the catalog does not know.
	ErrUnknownModule = errors.New("unknown module")
	// ErrModuleLocked is returned when the previous module is incomplete.
	ErrModuleLocked = errors.New("module is locked")
	// ErrEmptyName is returned when renaming to a blank name.
	ErrEmptyName = errors.New("name must not be empty")
)

// Catalog supplies per-module completion requirements.
type Catalog interface {
	Requirements(moduleID int) (Requirements, bool)
}

// Change describes the effect of a mutation.
type Change struct {
	ModuleID       int
	NewlyCompleted bool
	// Unlocked is the module opened by this change, or 0.
	Unlocked int
}

// Tracker owns the learner state. Every mutation goes through it, is
// applied to a copy of the latest snapshot and only replaces the state
// once the copy has been saved.
type Tracker struct {
	mu        sync.Mutex
	store     Persistence
	catalog   Catalog
	activity  ActivityLog
	logger    *zap.Logger
	now       func() time.Time
	data      *Data
	sessionID string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithActivityLog records every mutation to log.
func WithActivityLog(log ActivityLog) Option {
	return func(t *Tracker) { t.activity = log }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker loads the stored state and returns a tracker for it.
func NewTracker(ctx context.Context, store Persistence, catalog Catalog, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:     store,
		catalog:   catalog,
		logger:    zap.NewNop(),
		now:       time.Now,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(t)
	}

	d, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	t.data = d
	return t, nil
}

// SessionID identifies this run in the activity log.
func (t *Tracker) SessionID() string { return t.sessionID }

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() *Data {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.Clone()
}

// Module returns a copy of one module's progress.
func (t *Tracker) Module(id int) ModuleProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.Progress.Module(id).Clone()
}

// IsLocked reports whether the module is locked in the current state.
func (t *Tracker) IsLocked(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return IsLocked(id, t.data.Progress)
}

// ToggleConcept marks a concept read or unread.
func (t *Tracker) ToggleConcept(ctx context.Context, moduleID int, conceptID string, read bool) (Change, error) {
	kind := ActivityConceptUnread
	if read {
		kind = ActivityConceptRead
	}
	return t.mutateModule(ctx, moduleID, kind, conceptID, func(mp *ModuleProgress) {
		has := slices.Contains(mp.ConceptsRead, conceptID)
		switch {
		case read && !has:
			mp.ConceptsRead = append(mp.ConceptsRead, conceptID)
		case !read && has:
			mp.ConceptsRead = slices.DeleteFunc(mp.ConceptsRead, func(id string) bool { return id == conceptID })
		}
	})
}

// CompleteExercise records that the module's exercise is done.
func (t *Tracker) CompleteExercise(ctx context.Context, moduleID int) (Change, error) {
	return t.mutateModule(ctx, moduleID, ActivityExerciseCompleted, "", func(mp *ModuleProgress) {
		mp.ExerciseCompleted = true
	})
}

// CompleteQuiz stores the latest quiz score, even if lower than before.
func (t *Tracker) CompleteQuiz(ctx context.Context, moduleID, score int) (Change, error) {
	return t.mutateModule(ctx, moduleID, ActivityQuizCompleted, fmt.Sprintf("%d%%", score), func(mp *ModuleProgress) {
		s := score
		mp.QuizScore = &s
	})
}

// Rename changes the learner's display name.
func (t *Tracker) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.data.Clone()
	next.User.Name = name
	if err := t.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	t.data = next
	t.record(ctx, ActivityRenamed, 0, name)
	return nil
}

// RecordSession adds time spent and stamps the last access time.
func (t *Tracker) RecordSession(ctx context.Context, spent time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.data.Clone()
	if spent > 0 {
		next.Stats.TotalTimeSpent += spent.Milliseconds()
	}
	next.Stats.LastAccessed = t.now().UnixMilli()
	if err := t.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	t.data = next
	return nil
}

// Replace swaps in imported state and persists it.
func (t *Tracker) Replace(ctx context.Context, d *Data) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := d.Clone()
	next.Progress.Backfill()
	if err := t.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save imported progress: %w", err)
	}
	t.data = next
	t.record(ctx, ActivityImported, 0, fmt.Sprintf("%d modules complete", next.Progress.CompletedCount()))
	return nil
}

// Reset wipes all stored state and starts over.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, err := t.store.Reset(ctx)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	t.data = d
	t.sessionID = uuid.NewString()
	t.record(ctx, ActivityReset, 0, "")
	return nil
}

// History returns recent activity, newest first.
func (t *Tracker) History(ctx context.Context, limit int) ([]Activity, error) {
	if t.activity == nil {
		return nil, nil
	}
	return t.activity.RecentActivity(ctx, limit)
}

// mutateModule applies fn to the latest state of a module, re-evaluates
// completion and writes the result through.
func (t *Tracker) mutateModule(ctx context.Context, moduleID int, kind ActivityKind, detail string, fn func(*ModuleProgress)) (Change, error) {
	change := Change{ModuleID: moduleID}

	req, ok := t.catalog.Requirements(moduleID)
	if !ok {
		return change, fmt.Errorf("module %d: %w", moduleID, ErrUnknownModule)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if IsLocked(moduleID, t.data.Progress) {
		return change, fmt.Errorf("module %d: %w", moduleID, ErrModuleLocked)
	}

	mp := t.data.Progress.Module(moduleID).Clone()
	fn(&mp)

	was := mp.Completed
	mp.Completed = was || CheckCompletion(mp.ConceptsRead, mp.ExerciseCompleted, mp.QuizScore, req)

	next := t.data.Clone()
	next.Progress[ModuleKey(moduleID)] = mp
	if err := t.store.Save(ctx, next); err != nil {
		return change, fmt.Errorf("save progress: %w", err)
	}
	t.data = next

	t.record(ctx, kind, moduleID, detail)
	if mp.Completed && !was {
		change.NewlyCompleted = true
		if moduleID < ModuleCount {
			change.Unlocked = moduleID + 1
		}
		t.record(ctx, ActivityModuleCompleted, moduleID, "")
		t.logger.Info("module completed",
			zap.Int("module", moduleID),
			zap.Int("completed_total", t.data.Progress.CompletedCount()))
	}
	return change, nil
}

func (t *Tracker) record(ctx context.Context, kind ActivityKind, moduleID int, detail string) {
	if t.activity == nil {
		return
	}
	a := Activity{
		SessionID: t.sessionID,
		Kind:      kind,
		ModuleID:  moduleID,
		Detail:    detail,
		Timestamp: t.now(),
	}
	if err := t.activity.AppendActivity(ctx, a); err != nil {
		t.logger.Warn("failed to record activity",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
