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

const incidentsTable = "cyber_incidents"

var incidentColumns = []string{"id", "incident_id", "timestamp", "severity", "category", "status", "description"}

// incidentRepository is the SQL-backed implementation of [IncidentRepository].
type incidentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewIncidentRepository constructs an [IncidentRepository] backed by the
// provided database handle and logger.
func NewIncidentRepository(db *DB, logger *logger.Logger) IncidentRepository {
	logger.Debug().Msg("creating incident repository")
	return &incidentRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new incident and returns its surrogate ID.
// A unique violation on incident_id maps to [ErrDuplicateNaturalKey].
func (r *incidentRepository) Insert(ctx context.Context, incident models.CyberIncident) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(incidentsTable).
		Columns(incidentColumns[1:]...).
		Values(incident.IncidentID, incident.Timestamp, incident.Severity, incident.Category, incident.Status, incident.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.Insert").Msg("error building insert query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.Classify(err) == UniqueViolation {
			log.Debug().Str("func", "*incidentRepository.Insert").Str("incident_id", incident.IncidentID).Msg("incident already exists")
			return 0, ErrDuplicateNaturalKey
		}

		log.Err(err).Str("func", "*incidentRepository.Insert").Msg("error inserting incident")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// InsertIgnore persists the incident unless one with the same incident_id
// already exists. The duplicate case is read off the statement outcome
// itself, so bulk loads stay idempotent without an existence pre-check.
//
// Returns (id, true, nil) on a fresh insert and (0, false, nil) on a
// duplicate.
func (r *incidentRepository) InsertIgnore(ctx context.Context, incident models.CyberIncident) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(incidentsTable).
		Columns(incidentColumns[1:]...).
		Values(incident.IncidentID, incident.Timestamp, incident.Severity, incident.Category, incident.Status, incident.Description).
		Suffix("ON CONFLICT (incident_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.InsertIgnore").Msg("error building insert query")
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		log.Err(err).Str("func", "*incidentRepository.InsertIgnore").Msg("error inserting incident")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, true, nil
}

// GetByID retrieves one incident by surrogate ID.
// Returns [ErrNotFound] when no record matches.
func (r *incidentRepository) GetByID(ctx context.Context, id int64) (models.CyberIncident, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "*incidentRepository.GetByID")
}

// GetByIncidentID retrieves one incident by its natural key.
// Returns [ErrNotFound] when no record matches.
func (r *incidentRepository) GetByIncidentID(ctx context.Context, incidentID string) (models.CyberIncident, error) {
	return r.getOne(ctx, sq.Eq{"incident_id": incidentID}, "*incidentRepository.GetByIncidentID")
}

func (r *incidentRepository) getOne(ctx context.Context, where sq.Eq, funcName string) (models.CyberIncident, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(incidentColumns...).
		From(incidentsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building select query")
		return models.CyberIncident{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var incident models.CyberIncident
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&incident.ID, &incident.IncidentID, &incident.Timestamp, &incident.Severity, &incident.Category, &incident.Status, &incident.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CyberIncident{}, ErrNotFound
		}

		log.Err(err).Str("func", funcName).Msg("error scanning incident row")
		return models.CyberIncident{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return incident, nil
}

// List returns incidents in newest-first order. A non-positive limit means
// no limit.
func (r *incidentRepository) List(ctx context.Context, limit int) ([]models.CyberIncident, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select(incidentColumns...).
		From(incidentsTable).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.List").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.List").Msg("error querying incidents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var incidents []models.CyberIncident
	for rows.Next() {
		var incident models.CyberIncident
		err = rows.Scan(&incident.ID, &incident.IncidentID, &incident.Timestamp, &incident.Severity, &incident.Category, &incident.Status, &incident.Description)
		if err != nil {
			log.Err(err).Str("func", "*incidentRepository.List").Msg("error scanning incident rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return incidents, nil
}

// Update applies the non-nil fields of patch to the incident identified by
// patch.ID. Absent fields keep their stored values. Returns (false, nil)
// both when the patch carries no fields and when no row matched.
func (r *incidentRepository) Update(ctx context.Context, patch models.CyberIncidentUpdate) (bool, error) {
	log := logger.FromContext(ctx)

	if patch.Empty() {
		return false, nil
	}

	builder := r.db.Builder().Update(incidentsTable)
	builder = setIfPresent(builder, "timestamp", patch.Timestamp)
	builder = setIfPresent(builder, "severity", patch.Severity)
	builder = setIfPresent(builder, "category", patch.Category)
	builder = setIfPresent(builder, "status", patch.Status)
	builder = setIfPresent(builder, "description", patch.Description)

	query, args, err := builder.Where(sq.Eq{"id": patch.ID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.Update").Msg("error building update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.Update").Msg("error updating incident")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// Delete removes the incident with the given surrogate ID.
// Returns true iff a row was removed.
func (r *incidentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"id": id}, "*incidentRepository.Delete")
}

// DeleteByIncidentID removes the incident with the given natural key.
// Returns true iff a row was removed.
func (r *incidentRepository) DeleteByIncidentID(ctx context.Context, incidentID string) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"incident_id": incidentID}, "*incidentRepository.DeleteByIncidentID")
}

func (r *incidentRepository) deleteWhere(ctx context.Context, where sq.Eq, funcName string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(incidentsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting incident")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}
