package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ HookStore = (*PostgresHookStore)(nil)

type PostgresHookStore struct {
	pool *pgxpool.Pool
}

func NewPostgresHookStore(pool *pgxpool.Pool) *PostgresHookStore {
	return &PostgresHookStore{pool: pool}
}

func (s *PostgresHookStore) List(ctx context.Context) ([]HookRecord, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, secret, created FROM jw_webhooks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list hook records: %w", err)
	}
	defer rows.Close()

	var records []HookRecord
	for rows.Next() {
		var record HookRecord
		if err := rows.Scan(&record.ID, &record.Secret, &record.Created); err != nil {
			return nil, fmt.Errorf("scan hook record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hook records: %w", err)
	}
	return records, nil
}

func (s *PostgresHookStore) Get(ctx context.Context, id string) (HookRecord, error) {
	var record HookRecord
	err := s.pool.QueryRow(ctx,
		"SELECT id, secret, created FROM jw_webhooks WHERE id = $1", id).
		Scan(&record.ID, &record.Secret, &record.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return HookRecord{}, ErrNotFound
	}
	if err != nil {
		return HookRecord{}, fmt.Errorf("get hook record: %w", err)
	}
	return record, nil
}

func (s *PostgresHookStore) Insert(ctx context.Context, record HookRecord) error {
	tag, err := s.pool.Exec(ctx,
		"INSERT INTO jw_webhooks (id, secret, created) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		record.ID, record.Secret, record.Created)
	if err != nil {
		return fmt.Errorf("insert hook record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (s *PostgresHookStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM jw_webhooks WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete hook record: %w", err)
	}
	return nil
}
