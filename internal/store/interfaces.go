package store

import (
	"context"

	"github.com/secopslab/secwatch/models"
)

// UserRepository persists credential records. Username uniqueness is
// enforced by the storage layer's unique constraint; CreateUser surfaces a
// violation as [ErrUsernameTaken].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	CreateUserIfAbsent(ctx context.Context, user models.User) (int64, bool, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	DeleteUserByUsername(ctx context.Context, username string) (bool, error)
}

// IncidentRepository is the typed CRUD surface over the cyber_incidents
// table. Insert signals a natural-key conflict with
// [ErrDuplicateNaturalKey]; InsertIgnore reports it as inserted=false
// without an error, using the statement's affected-row outcome rather than
// a separate existence pre-check.
type IncidentRepository interface {
	Insert(ctx context.Context, incident models.CyberIncident) (int64, error)
	InsertIgnore(ctx context.Context, incident models.CyberIncident) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (models.CyberIncident, error)
	GetByIncidentID(ctx context.Context, incidentID string) (models.CyberIncident, error)
	List(ctx context.Context, limit int) ([]models.CyberIncident, error)
	Update(ctx context.Context, update models.CyberIncidentUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByIncidentID(ctx context.Context, incidentID string) (bool, error)
}

// TicketRepository is the typed CRUD surface over the it_tickets table.
type TicketRepository interface {
	Insert(ctx context.Context, ticket models.ITTicket) (int64, error)
	InsertIgnore(ctx context.Context, ticket models.ITTicket) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (models.ITTicket, error)
	GetByTicketID(ctx context.Context, ticketID string) (models.ITTicket, error)
	List(ctx context.Context, limit int) ([]models.ITTicket, error)
	Update(ctx context.Context, update models.ITTicketUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByTicketID(ctx context.Context, ticketID string) (bool, error)
}

// DatasetRepository is the typed CRUD surface over the datasets_metadata table.
type DatasetRepository interface {
	Insert(ctx context.Context, meta models.DatasetMeta) (int64, error)
	InsertIgnore(ctx context.Context, meta models.DatasetMeta) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (models.DatasetMeta, error)
	GetByDatasetID(ctx context.Context, datasetID string) (models.DatasetMeta, error)
	List(ctx context.Context, limit int) ([]models.DatasetMeta, error)
	Update(ctx context.Context, update models.DatasetMetaUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByDatasetID(ctx context.Context, datasetID string) (bool, error)
}
