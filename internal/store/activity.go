package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/finfluency/internal/progress"
)

// AppendActivity implements progress.ActivityLog.
func (s *Store) AppendActivity(ctx context.Context, a progress.Activity) error {
	seq, err := s.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder.Insert(activityTable).
		Columns("sequence", "session_id", "kind", "module_id", "detail", "timestamp").
		Values(seq, a.SessionID, string(a.Kind), a.ModuleID, a.Detail, a.Timestamp.UnixMilli()).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// RecentActivity implements progress.ActivityLog, newest first. A limit of
// zero or less returns everything.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]progress.Activity, error) {
	sel := builder.Select("session_id", "kind", "module_id", "detail", "timestamp").
		From(entsql.Table(activityTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []progress.Activity
	for rows.Next() {
		var (
			a    progress.Activity
			kind string
			ms   int64
		)
		if err := rows.Scan(&a.SessionID, &kind, &a.ModuleID, &a.Detail, &ms); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind = progress.ActivityKind(kind)
		a.Timestamp = time.UnixMilli(ms)
		out = append(out, a)
	}
	return out, rows.Err()
}

// PruneActivity deletes all but the keep most recent activity entries.
func (s *Store) PruneActivity(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	// Find the sequence of the oldest entry to keep.
	query, args := builder.Select("sequence").
		From(entsql.Table(activityTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query activity for prune: %w", err)
	}
	var threshold int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return 0, err
		}
	}
	rows.Close()
	if !found {
		return 0, nil // fewer than keep entries exist
	}

	query, args = builder.Delete(activityTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	var res sql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return res.RowsAffected()
}
