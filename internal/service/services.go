package service

import (
	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/passhash"
	"github.com/secopslab/secwatch/internal/store"
)

// Services bundles the application services for wiring at startup.
type Services struct {
	AuthService     AuthService
	IncidentService IncidentService
	TicketService   TicketService
	DatasetService  DatasetService
}

// NewServices wires all services over the given storages.
func NewServices(storages *store.Storages, hasher passhash.Hasher, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, hasher, logger),
		IncidentService: NewIncidentService(storages.IncidentRepository, logger),
		TicketService:   NewTicketService(storages.TicketRepository, logger),
		DatasetService:  NewDatasetService(storages.DatasetRepository, logger),
	}
}
