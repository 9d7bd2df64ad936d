package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/logging"
)

type stateRepo struct {
	db *sql.DB
}

// NewStateRepository creates a SQLite-backed state repository. The
// repository owns db and closes it on Close.
func NewStateRepository(db *sql.DB) repository.StateRepository {
	return &stateRepo{db: db}
}

// OpenStateRepository opens the database at path and wraps it.
func OpenStateRepository(ctx context.Context, path string) (repository.StateRepository, error) {
	db, err := NewConnection(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewStateRepository(db), nil
}

func (r *stateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *stateRepo) Save(ctx context.Context, key string, doc []byte) error {
	logging.FromContext(ctx).Debug().Str("key", key).Int("bytes", len(doc)).Msg("saving state document")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, unixepoch())
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(doc))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *stateRepo) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
