package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps each named collection as one row in a snapshot
// table, the blob in a jsonb column.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore prepares the snapshot table and returns the store.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS campus_snapshots (
		name TEXT PRIMARY KEY,
		version INT NOT NULL,
		data JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("prepare snapshot table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Load reads the blob stored under name.
func (s *PostgresStore) Load(ctx context.Context, name string, dest interface{}) error {
	const query = `SELECT data FROM campus_snapshots WHERE name = $1`
	var blob []byte
	if err := s.db.GetContext(ctx, &blob, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return decode(blob, dest)
}

// Save overwrites the blob stored under name.
func (s *PostgresStore) Save(ctx context.Context, name string, value interface{}) error {
	blob, err := encode(value)
	if err != nil {
		return err
	}
	const query = `INSERT INTO campus_snapshots (name, version, data, saved_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE SET version = EXCLUDED.version, data = EXCLUDED.data, saved_at = now()`
	if _, err := s.db.ExecContext(ctx, query, name, SnapshotVersion, blob); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
