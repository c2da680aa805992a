package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/store"
	"github.com/secopslab/secwatch/models"
)

// incidentService is the concrete implementation of IncidentService.
type incidentService struct {
	incidents store.IncidentRepository
	logger    *logger.Logger
}

// NewIncidentService constructs an IncidentService over the given repository.
func NewIncidentService(incidents store.IncidentRepository, logger *logger.Logger) IncidentService {
	return &incidentService{
		incidents: incidents,
		logger:    logger,
	}
}

// Create stores the incident and returns it with its surrogate ID set.
// A blank IncidentID gets a generated key; a supplied one is kept, and a
// collision on it returns store.ErrDuplicateNaturalKey.
func (s *incidentService) Create(ctx context.Context, incident models.CyberIncident) (models.CyberIncident, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(incident.IncidentID) == "" {
		incident.IncidentID = newNaturalKey(incidentKeyPrefix)
	}

	id, err := s.incidents.Insert(ctx, incident)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateNaturalKey) {
			return models.CyberIncident{}, err
		}

		log.Err(err).Str("func", "*incidentService.Create").Msg("error creating incident")
		return models.CyberIncident{}, fmt.Errorf("create incident: %w", err)
	}

	incident.ID = id
	log.Info().Str("func", "*incidentService.Create").Str("incident_id", incident.IncidentID).Msg("incident created")
	return incident, nil
}

// Get returns the incident with the given surrogate ID, or ErrNotFound.
func (s *incidentService) Get(ctx context.Context, id int64) (models.CyberIncident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.CyberIncident{}, ErrNotFound
		}
		return models.CyberIncident{}, fmt.Errorf("get incident: %w", err)
	}

	return incident, nil
}

// List returns incidents newest-first. A non-positive limit means all.
func (s *incidentService) List(ctx context.Context, limit int) ([]models.CyberIncident, error) {
	incidents, err := s.incidents.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	return incidents, nil
}

// Update applies the patch to the stored incident. Fields left nil keep
// their current values. Returns false when the patch is empty or no record
// matched.
func (s *incidentService) Update(ctx context.Context, patch models.CyberIncidentUpdate) (bool, error) {
	updated, err := s.incidents.Update(ctx, patch)
	if err != nil {
		return false, fmt.Errorf("update incident: %w", err)
	}

	return updated, nil
}

// Delete removes the incident. Returns true iff a record was removed.
func (s *incidentService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.incidents.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete incident: %w", err)
	}

	return deleted, nil
}
