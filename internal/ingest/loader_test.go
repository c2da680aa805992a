package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/mock"
	"github.com/secopslab/secwatch/models"
)

func newTestLoader(ctrl *gomock.Controller) (*Loader, *mock.MockIncidentRepository, *mock.MockTicketRepository, *mock.MockDatasetRepository) {
	incidents := mock.NewMockIncidentRepository(ctrl)
	tickets := mock.NewMockTicketRepository(ctrl)
	datasets := mock.NewMockDatasetRepository(ctrl)
	return NewLoader(incidents, tickets, datasets, logger.Nop()), incidents, tickets, datasets
}

func TestLoadIncidents_MixedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, incidents, _, _ := newTestLoader(ctrl)
	ctx := context.Background()

	fresh := models.CyberIncident{IncidentID: "INC-1001", Severity: "High"}
	duplicate := models.CyberIncident{IncidentID: "INC-1002", Severity: "Low"}
	blank := models.CyberIncident{IncidentID: "   "}

	incidents.EXPECT().InsertIgnore(ctx, fresh).Return(int64(1), true, nil)
	incidents.EXPECT().InsertIgnore(ctx, duplicate).Return(int64(0), false, nil)

	res, err := loader.LoadIncidents(ctx, []models.CyberIncident{fresh, duplicate, blank})
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Skipped: 1, Dropped: 1}, res)
}

func TestLoadIncidents_NilBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, _, _, _ := newTestLoader(ctrl)

	res, err := loader.LoadIncidents(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestLoadIncidents_Rerun_AllSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, incidents, _, _ := newTestLoader(ctrl)
	ctx := context.Background()

	batch := []models.CyberIncident{
		{IncidentID: "INC-1001"},
		{IncidentID: "INC-1002"},
	}
	for _, incident := range batch {
		incidents.EXPECT().InsertIgnore(ctx, incident).Return(int64(0), false, nil)
	}

	res, err := loader.LoadIncidents(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res)
}

func TestLoadIncidents_StoreErrorStopsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, incidents, _, _ := newTestLoader(ctrl)
	ctx := context.Background()

	first := models.CyberIncident{IncidentID: "INC-1001"}
	second := models.CyberIncident{IncidentID: "INC-1002"}

	incidents.EXPECT().InsertIgnore(ctx, first).Return(int64(1), true, nil)
	incidents.EXPECT().InsertIgnore(ctx, second).Return(int64(0), false, errors.New("db gone"))

	res, err := loader.LoadIncidents(ctx, []models.CyberIncident{first, second})
	require.Error(t, err)
	assert.Equal(t, 1, res.Inserted)
}

func TestLoadTickets_MixedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, _, tickets, _ := newTestLoader(ctrl)
	ctx := context.Background()

	fresh := models.ITTicket{TicketID: "TKT-2001", Priority: "P1"}
	blank := models.ITTicket{TicketID: ""}

	tickets.EXPECT().InsertIgnore(ctx, fresh).Return(int64(1), true, nil)

	res, err := loader.LoadTickets(ctx, []models.ITTicket{fresh, blank})
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Dropped: 1}, res)
}

func TestLoadDatasets_MixedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader, _, _, datasets := newTestLoader(ctrl)
	ctx := context.Background()

	fresh := models.DatasetMeta{DatasetID: "DS-3001", Name: "phishing-urls"}
	duplicate := models.DatasetMeta{DatasetID: "DS-3002", Name: "botnet-ips"}

	datasets.EXPECT().InsertIgnore(ctx, fresh).Return(int64(1), true, nil)
	datasets.EXPECT().InsertIgnore(ctx, duplicate).Return(int64(0), false, nil)

	res, err := loader.LoadDatasets(ctx, []models.DatasetMeta{fresh, duplicate})
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Skipped: 1}, res)
}
