package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/migrations"
)

// DB is the shared database handle owned by the application context and
// passed to every repository by reference. It carries the dialect-specific
// pieces the repositories need: a squirrel statement builder configured with
// the right placeholder format, and an [ErrorClassificator] matching the
// driver.
//
// The embedded *sql.DB is safe for use from multiple logical callers within
// one process; SQLite contention is bounded by the busy-timeout DSN
// parameter rather than failing immediately. Operations after Close fail
// loudly through database/sql.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for the handle's dialect.
// Idempotent; safe to call on every startup.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Classify maps a raw driver error onto the handle's error taxonomy.
func (db *DB) Classify(err error) ErrorClassification {
	return db.errorClassificator.Classify(err)
}

// Builder returns the squirrel statement builder configured for the
// handle's placeholder format (? for SQLite, $N for PostgreSQL).
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}
