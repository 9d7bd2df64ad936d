package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/bnema/bezier/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func newMigrator(db *sql.DB) (*goose.Provider, error) {
	scripts, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, db, scripts)
}

// Migrate brings the state schema up to the newest embedded version.
func Migrate(ctx context.Context, db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	applied, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log := logging.FromContext(ctx)
	for _, r := range applied {
		log.Info().
			Int64("version", r.Source.Version).
			Dur("took", r.Duration).
			Msg("state schema migrated")
	}
	return nil
}

// SchemaVersion reports the newest migration applied to db.
func SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, err
	}
	return m.GetDBVersion(ctx)
}
