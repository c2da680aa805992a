// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

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

// datasetService is the concrete implementation of DatasetService.
type datasetService struct {
	datasets store.DatasetRepository
	logger   *logger.Logger
}

// NewDatasetService constructs a DatasetService over the given repository.
func NewDatasetService(datasets store.DatasetRepository, logger *logger.Logger) DatasetService {
	return &datasetService{
		datasets: datasets,
		logger:   logger,
	}
}

// Create stores the metadata record and returns it with its surrogate ID
// set. A blank DatasetID gets a generated key.
func (s *datasetService) Create(ctx context.Context, meta models.DatasetMeta) (models.DatasetMeta, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(meta.DatasetID) == "" {
		meta.DatasetID = newNaturalKey(datasetKeyPrefix)
	}

	id, err := s.datasets.Insert(ctx, meta)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateNaturalKey) {
			return models.DatasetMeta{}, err
		}

		log.Err(err).Str("func", "*datasetService.Create").Msg("error creating dataset metadata")
		return models.DatasetMeta{}, fmt.Errorf("create dataset metadata: %w", err)
	}

	meta.ID = id
	log.Info().Str("func", "*datasetService.Create").Str("dataset_id", meta.DatasetID).Msg("dataset metadata created")
	return meta, nil
}

// Get returns the metadata record with the given surrogate ID, or ErrNotFound.
func (s *datasetService) Get(ctx context.Context, id int64) (models.DatasetMeta, error) {
	meta, err := s.datasets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DatasetMeta{}, ErrNotFound
		}
		return models.DatasetMeta{}, fmt.Errorf("get dataset metadata: %w", err)
	}

	return meta, nil
}

// List returns metadata records newest-first. A non-positive limit means all.
func (s *datasetService) List(ctx context.Context, limit int) ([]models.DatasetMeta, error) {
	metas, err := s.datasets.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list dataset metadata: %w", err)
	}

	return metas, nil
}

// Update applies the patch to the stored record. Returns false when the
// patch is empty or no record matched.
func (s *datasetService) Update(ctx context.Context, patch models.DatasetMetaUpdate) (bool, error) {
	updated, err := s.datasets.Update(ctx, patch)
	if err != nil {
		return false, fmt.Errorf("update dataset metadata: %w", err)
	}

	return updated, nil
}

// Delete removes the metadata record. Returns true iff a record was removed.
func (s *datasetService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.datasets.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete dataset metadata: %w", err)
	}

	return deleted, nil
}