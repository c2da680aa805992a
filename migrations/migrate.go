// Package migrations applies the embedded schema migrations for the
// secwatch database. Migration files are kept per dialect because SQLite
// and PostgreSQL disagree on autoincrement column syntax.
//
// Running migrations is idempotent: goose tracks applied versions and every
// statement is guarded with IF NOT EXISTS, so calling Migrate on every
// process start is safe.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Dialect selects which embedded migration set is applied.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Migrate brings the database schema up to the latest version using the
// migration set matching dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	dir, err := dialectDir(dialect)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error reading embedded files: %w", err)
	}
	goose.SetBaseFS(sub)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func dialectDir(dialect Dialect) (string, error) {
	switch dialect {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("migration error: unknown dialect %q", dialect)
	}
}
