package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresSnapshotStore struct {
	db *sql.DB
}

// NewPostgresSnapshotStore создаёт SnapshotStore поверх Postgres. Блобы
// лежат в одной таблице key -> data, по одной строке на ключ.
func NewPostgresSnapshotStore(db *sql.DB) SnapshotStore {
	return &postgresSnapshotStore{db: db}
}

// EnsureSchema создаёт таблицу снапшотов, если её ещё нет.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const query = `
		CREATE TABLE IF NOT EXISTS dataset_snapshots (
			key        TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure snapshot schema: %w", err)
	}
	return nil
}

func (s *postgresSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	const query = `
		INSERT INTO dataset_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("failed to save snapshot (key: %s): %w", key, err)
	}
	return nil
}

func (s *postgresSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT data FROM dataset_snapshots WHERE key = $1`
	var data []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot (key: %s): %w", key, err)
	}
	return data, nil
}
