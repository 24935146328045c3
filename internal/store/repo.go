package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/finfluency/internal/progress"
)

var builder = entsql.Dialect(dialect.SQLite)

// Load implements progress.Persistence. On first run, or when the user
// record is unreadable, defaults are written and returned.
func (s *Store) Load(ctx context.Context) (*progress.Data, error) {
	recs, err := s.readRecords(ctx)
	if err != nil {
		return nil, err
	}

	d, fresh := progress.DecodeRecords(recs, s.now())
	if fresh {
		if err := s.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("write defaults: %w", err)
		}
	}
	return d, nil
}

// Save implements progress.Persistence. The three records are upserted in
// one transaction.
func (s *Store) Save(ctx context.Context, d *progress.Data) error {
	recs, err := progress.EncodeRecords(d)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := writeRecords(ctx, tx, recs, s.now()); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Reset implements progress.Persistence. Records and activity are cleared
// and defaults written in one transaction.
func (s *Store) Reset(ctx context.Context) (*progress.Data, error) {
	d := progress.NewData(s.now())
	recs, err := progress.EncodeRecords(d)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	for _, table := range []string{recordsTable, activityTable} {
		query, args := builder.Delete(table).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := writeRecords(ctx, tx, recs, s.now()); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reset: %w", err)
	}
	return d, nil
}

// Raw returns the stored JSON for a record key.
func (s *Store) Raw(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := builder.Select("value").
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("query record %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, err
	}
	return []byte(value), true, rows.Err()
}

// SetRaw overwrites the stored JSON for a record key.
func (s *Store) SetRaw(ctx context.Context, key string, value []byte) error {
	return writeRecords(ctx, s.drv, map[string][]byte{key: value}, s.now())
}

func (s *Store) readRecords(ctx context.Context) (map[string][]byte, error) {
	query, args := builder.Select("key", "value").
		From(entsql.Table(recordsTable)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	recs := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs[key] = []byte(value)
	}
	return recs, rows.Err()
}

func writeRecords(ctx context.Context, ex dialect.ExecQuerier, recs map[string][]byte, now time.Time) error {
	for key, value := range recs {
		query, args := builder.Insert(recordsTable).
			Columns("key", "value", "updated_at").
			Values(key, string(value), now.UnixMilli()).
			OnConflict(
				entsql.ConflictColumns("key"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := ex.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("write record %s: %w", key, err)
		}
	}
	return nil
}
