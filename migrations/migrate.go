package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies every pending migration from the embedded *.sql files.
// Both service binaries call it on startup, so the users and todos schema
// is in place before either server starts accepting requests; goose makes
// the second caller a no-op.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	// the sql.DB is opened through the pgx stdlib driver
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
