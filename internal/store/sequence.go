package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequence numbers activity entries. The counter has its own table so
// numbering keeps climbing after a reset empties the activity log.
type sequence struct {
	db *sql.DB
}

func newSequence(ctx context.Context, db *sql.DB) (*sequence, error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS activity_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		n  INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	return &sequence{db: db}, nil
}

// Next returns the next number, starting at 1. The upsert increments and
// reads in one statement, so concurrent callers never share a number.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `INSERT INTO activity_sequence (id, n) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET n = activity_sequence.n + 1
		RETURNING n`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
