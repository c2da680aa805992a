// Package ingest moves batches of external records into the relational
// store. Loads are idempotent: records whose natural key is already present
// are counted as skipped, not errors, so a seed run can be repeated safely.
package ingest

import (
	"context"
	"strings"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/store"
	"github.com/secopslab/secwatch/models"
)

// Result summarizes one batch load.
type Result struct {
	Inserted int // records written to the store
	Skipped  int // records whose natural key was already present
	Dropped  int // records rejected before reaching the store
}

// Loader writes record batches through the store repositories.
type Loader struct {
	incidents store.IncidentRepository
	tickets   store.TicketRepository
	datasets  store.DatasetRepository
	logger    *logger.Logger
}

// NewLoader constructs a [Loader] over the given repositories.
func NewLoader(incidents store.IncidentRepository, tickets store.TicketRepository, datasets store.DatasetRepository, logger *logger.Logger) *Loader {
	return &Loader{
		incidents: incidents,
		tickets:   tickets,
		datasets:  datasets,
		logger:    logger,
	}
}

// LoadIncidents inserts the batch, skipping incidents whose incident_id is
// already stored and dropping those with a blank incident_id. A nil or
// empty batch returns a zero [Result] and no error.
func (l *Loader) LoadIncidents(ctx context.Context, batch []models.CyberIncident) (Result, error) {
	log := logger.FromContext(ctx)

	var res Result
	for _, incident := range batch {
		if strings.TrimSpace(incident.IncidentID) == "" {
			log.Warn().Str("func", "*Loader.LoadIncidents").Msg("dropping incident with blank incident_id")
			res.Dropped++
			continue
		}

		_, inserted, err := l.incidents.InsertIgnore(ctx, incident)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}

	log.Info().
		Str("func", "*Loader.LoadIncidents").
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Int("dropped", res.Dropped).
		Msg("incident batch loaded")
	return res, nil
}

// LoadTickets inserts the batch, skipping tickets whose ticket_id is
// already stored and dropping those with a blank ticket_id.
func (l *Loader) LoadTickets(ctx context.Context, batch []models.ITTicket) (Result, error) {
	log := logger.FromContext(ctx)

	var res Result
	for _, ticket := range batch {
		if strings.TrimSpace(ticket.TicketID) == "" {
			log.Warn().Str("func", "*Loader.LoadTickets").Msg("dropping ticket with blank ticket_id")
			res.Dropped++
			continue
		}

		_, inserted, err := l.tickets.InsertIgnore(ctx, ticket)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}

	log.Info().
		Str("func", "*Loader.LoadTickets").
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Int("dropped", res.Dropped).
		Msg("ticket batch loaded")
	return res, nil
}

// LoadDatasets inserts the batch, skipping records whose dataset_id is
// already stored and dropping those with a blank dataset_id.
func (l *Loader) LoadDatasets(ctx context.Context, batch []models.DatasetMeta) (Result, error) {
	log := logger.FromContext(ctx)

	var res Result
	for _, meta := range batch {
		if strings.TrimSpace(meta.DatasetID) == "" {
			log.Warn().Str("func", "*Loader.LoadDatasets").Msg("dropping dataset metadata with blank dataset_id")
			res.Dropped++
			continue
		}

		_, inserted, err := l.datasets.InsertIgnore(ctx, meta)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}

	log.Info().
		Str("func", "*Loader.LoadDatasets").
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Int("dropped", res.Dropped).
		Msg("dataset metadata batch loaded")
	return res, nil
}
