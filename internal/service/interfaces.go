package service

import (
	"context"

	"github.com/secopslab/secwatch/models"
)

// AuthService handles account registration and credential verification.
type AuthService interface {
	// Register validates the credentials, hashes the password, and persists
	// the account. Returns ErrUsernameTaken when the username exists and the
	// validator sentinels for malformed input.
	Register(ctx context.Context, username, password, role string) error

	// Login verifies the credentials and returns the stored role.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (models.Role, error)

	// RemoveUser deletes the account. Returns true iff an account was removed.
	RemoveUser(ctx context.Context, username string) (bool, error)
}

// IncidentService exposes CRUD over cybersecurity incidents.
type IncidentService interface {
	// Create stores the incident. A blank IncidentID gets a generated key.
	Create(ctx context.Context, incident models.CyberIncident) (models.CyberIncident, error)
	Get(ctx context.Context, id int64) (models.CyberIncident, error)
	List(ctx context.Context, limit int) ([]models.CyberIncident, error)
	// Update applies the patch. Returns false when nothing changed.
	Update(ctx context.Context, patch models.CyberIncidentUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TicketService exposes CRUD over IT support tickets.
type TicketService interface {
	Create(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error)
	Get(ctx context.Context, id int64) (models.ITTicket, error)
	List(ctx context.Context, limit int) ([]models.ITTicket, error)
	Update(ctx context.Context, patch models.ITTicketUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DatasetService exposes CRUD over dataset metadata records.
type DatasetService interface {
	Create(ctx context.Context, meta models.DatasetMeta) (models.DatasetMeta, error)
	Get(ctx context.Context, id int64) (models.DatasetMeta, error)
	List(ctx context.Context, limit int) ([]models.DatasetMeta, error)
	Update(ctx context.Context, patch models.DatasetMetaUpdate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
