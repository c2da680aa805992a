package store

import (
	"context"
	"strings"

	"github.com/secopslab/secwatch/internal/config"
	"github.com/secopslab/secwatch/internal/logger"
)

// Storages bundles every repository over one shared [DB] handle. The handle
// is owned here and injected into each repository explicitly; nothing in the
// package keeps global connection state.
type Storages struct {
	DB *DB

	UserRepository     UserRepository
	IncidentRepository IncidentRepository
	TicketRepository   TicketRepository
	DatasetRepository  DatasetRepository
}

// NewStorages connects to the configured backend, applies migrations, and
// wires all repositories over the resulting handle.
//
// The backend is selected by the DSN: a "postgres://" (or "postgresql://")
// prefix opens PostgreSQL via pgx; anything else is treated as a SQLite
// file path.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := connect(ctx, cfg.DB, log)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("connection to database failed")
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("database migration failed")
		db.Close()
		return nil, err
	}

	return &Storages{
		DB:                 db,
		UserRepository:     NewUserRepository(db, log),
		IncidentRepository: NewIncidentRepository(db, log),
		TicketRepository:   NewTicketRepository(db, log),
		DatasetRepository:  NewDatasetRepository(db, log),
	}, nil
}

// Close releases the underlying connection. Repository calls made after
// Close fail loudly through database/sql.
func (s *Storages) Close() error {
	return s.DB.Close()
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}
