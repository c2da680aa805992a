// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/models"
)

const datasetsTable = "datasets_metadata"

var datasetColumns = []string{"id", "dataset_id", "name", "rows", "columns", "uploaded_by", "upload_date"}

// datasetRepository is the SQL-backed implementation of [DatasetRepository].
type datasetRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database handle and logger.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists new dataset metadata and returns its surrogate ID.
// A unique violation on dataset_id maps to [ErrDuplicateNaturalKey].
func (r *datasetRepository) Insert(ctx context.Context, meta models.DatasetMeta) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(datasetsTable).
		Columns(datasetColumns[1:]...).
		Values(meta.DatasetID, meta.Name, meta.Rows, meta.Columns, meta.UploadedBy, meta.UploadDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Insert").Msg("error building insert query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.Classify(err) == UniqueViolation {
			log.Debug().Str("func", "*datasetRepository.Insert").Str("dataset_id", meta.DatasetID).Msg("dataset already exists")
			return 0, ErrDuplicateNaturalKey
		}

		log.Err(err).Str("func", "*datasetRepository.Insert").Msg("error inserting dataset metadata")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// InsertIgnore persists the metadata unless a record with the same
// dataset_id already exists. Returns (id, true, nil) on a fresh insert and
// (0, false, nil) on a duplicate.
func (r *datasetRepository) InsertIgnore(ctx context.Context, meta models.DatasetMeta) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(datasetsTable).
		Columns(datasetColumns[1:]...).
		Values(meta.DatasetID, meta.Name, meta.Rows, meta.Columns, meta.UploadedBy, meta.UploadDate).
		Suffix("ON CONFLICT (dataset_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.InsertIgnore").Msg("error building insert query")
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		log.Err(err).Str("func", "*datasetRepository.InsertIgnore").Msg("error inserting dataset metadata")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, true, nil
}

// GetByID retrieves one metadata record by surrogate ID.
// Returns [ErrNotFound] when no record matches.
func (r *datasetRepository) GetByID(ctx context.Context, id int64) (models.DatasetMeta, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "*datasetRepository.GetByID")
}

// GetByDatasetID retrieves one metadata record by its natural key.
// Returns [ErrNotFound] when no record matches.
func (r *datasetRepository) GetByDatasetID(ctx context.Context, datasetID string) (models.DatasetMeta, error) {
	return r.getOne(ctx, sq.Eq{"dataset_id": datasetID}, "*datasetRepository.GetByDatasetID")
}

func (r *datasetRepository) getOne(ctx context.Context, where sq.Eq, funcName string) (models.DatasetMeta, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(datasetColumns...).
		From(datasetsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building select query")
		return models.DatasetMeta{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var meta models.DatasetMeta
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&meta.ID, &meta.DatasetID, &meta.Name, &meta.Rows, &meta.Columns, &meta.UploadedBy, &meta.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DatasetMeta{}, ErrNotFound
		}

		log.Err(err).Str("func", funcName).Msg("error scanning dataset row")
		return models.DatasetMeta{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return meta, nil
}

// List returns metadata records in newest-first order. A non-positive
// limit means no limit.
func (r *datasetRepository) List(ctx context.Context, limit int) ([]models.DatasetMeta, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select(datasetColumns...).
		From(datasetsTable).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("error querying datasets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var metas []models.DatasetMeta
	for rows.Next() {
		var meta models.DatasetMeta
		err = rows.Scan(&meta.ID, &meta.DatasetID, &meta.Name, &meta.Rows, &meta.Columns, &meta.UploadedBy, &meta.UploadDate)
		if err != nil {
			log.Err(err).Str("func", "*datasetRepository.List").Msg("error scanning dataset rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return metas, nil
}

// Update applies the non-nil fields of patch to the metadata record
// identified by patch.ID. Returns (false, nil) both when the patch carries
// no fields and when no row matched.
func (r *datasetRepository) Update(ctx context.Context, patch models.DatasetMetaUpdate) (bool, error) {
	log := logger.FromContext(ctx)

	if patch.Empty() {
		return false, nil
	}

	builder := r.db.Builder().Update(datasetsTable)
	builder = setIfPresent(builder, "name", patch.Name)
	builder = setIfPresent(builder, "rows", patch.Rows)
	builder = setIfPresent(builder, "columns", patch.Columns)
	builder = setIfPresent(builder, "uploaded_by", patch.UploadedBy)
	builder = setIfPresent(builder, "upload_date", patch.UploadDate)

	query, args, err := builder.Where(sq.Eq{"id": patch.ID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Update").Msg("error building update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Update").Msg("error updating dataset metadata")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// Delete removes the metadata record with the given surrogate ID.
// Returns true iff a row was removed.
func (r *datasetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"id": id}, "*datasetRepository.Delete")
}

// DeleteByDatasetID removes the metadata record with the given natural
// key. Returns true iff a row was removed.
func (r *datasetRepository) DeleteByDatasetID(ctx context.Context, datasetID string) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"dataset_id": datasetID}, "*datasetRepository.DeleteByDatasetID")
}

func (r *datasetRepository) deleteWhere(ctx context.Context, where sq.Eq, funcName string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(datasetsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting dataset metadata")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}