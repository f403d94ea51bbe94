package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var _ HookStore = (*SQLiteHookStore)(nil)

type SQLiteHookStore struct {
	db *sql.DB
}

func NewSQLiteHookStore(db *sql.DB) *SQLiteHookStore {
	return &SQLiteHookStore{db: db}
}

func (s *SQLiteHookStore) List(ctx context.Context) ([]HookRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, secret, created FROM jw_webhooks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list hook records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []HookRecord
	for rows.Next() {
		record, err := scanHookRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hook records: %w", err)
	}
	return records, nil
}

func (s *SQLiteHookStore) Get(ctx context.Context, id string) (HookRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, secret, created FROM jw_webhooks WHERE id = ?", id)

	record, err := scanHookRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return HookRecord{}, ErrNotFound
	}
	if err != nil {
		return HookRecord{}, err
	}
	return record, nil
}

func (s *SQLiteHookStore) Insert(ctx context.Context, record HookRecord) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO jw_webhooks (id, secret, created) VALUES (?, ?, ?)",
		record.ID, record.Secret, record.Created.Unix())
	if err != nil {
		return fmt.Errorf("insert hook record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert hook record: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *SQLiteHookStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM jw_webhooks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete hook record: %w", err)
	}
	return nil
}

// created is stored as unix seconds in sqlite.
func scanHookRecord(scan func(...any) error) (HookRecord, error) {
	var record HookRecord
	var created int64
	if err := scan(&record.ID, &record.Secret, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HookRecord{}, err
		}
		return HookRecord{}, fmt.Errorf("scan hook record: %w", err)
	}
	record.Created = time.Unix(created, 0).UTC()
	return record, nil
}
