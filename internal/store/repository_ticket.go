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

const ticketsTable = "it_tickets"

var ticketColumns = []string{"id", "ticket_id", "priority", "description", "status", "assigned_to", "created_at", "resolution_time_hours"}

// ticketRepository is the SQL-backed implementation of [TicketRepository].
type ticketRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTicketRepository constructs a [TicketRepository] backed by the
// provided database handle and logger.
func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new ticket and returns its surrogate ID.
// A unique violation on ticket_id maps to [ErrDuplicateNaturalKey].
func (r *ticketRepository) Insert(ctx context.Context, ticket models.ITTicket) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(ticketsTable).
		Columns(ticketColumns[1:]...).
		Values(ticket.TicketID, ticket.Priority, ticket.Description, ticket.Status, ticket.AssignedTo, ticket.CreatedAt, ticket.ResolutionTimeHours).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Insert").Msg("error building insert query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.Classify(err) == UniqueViolation {
			log.Debug().Str("func", "*ticketRepository.Insert").Str("ticket_id", ticket.TicketID).Msg("ticket already exists")
			return 0, ErrDuplicateNaturalKey
		}

		log.Err(err).Str("func", "*ticketRepository.Insert").Msg("error inserting ticket")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// InsertIgnore persists the ticket unless one with the same ticket_id
// already exists. Returns (id, true, nil) on a fresh insert and
// (0, false, nil) on a duplicate.
func (r *ticketRepository) InsertIgnore(ctx context.Context, ticket models.ITTicket) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(ticketsTable).
		Columns(ticketColumns[1:]...).
		Values(ticket.TicketID, ticket.Priority, ticket.Description, ticket.Status, ticket.AssignedTo, ticket.CreatedAt, ticket.ResolutionTimeHours).
		Suffix("ON CONFLICT (ticket_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.InsertIgnore").Msg("error building insert query")
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		log.Err(err).Str("func", "*ticketRepository.InsertIgnore").Msg("error inserting ticket")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, true, nil
}

// GetByID retrieves one ticket by surrogate ID.
// Returns [ErrNotFound] when no record matches.
func (r *ticketRepository) GetByID(ctx context.Context, id int64) (models.ITTicket, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "*ticketRepository.GetByID")
}

// GetByTicketID retrieves one ticket by its natural key.
// Returns [ErrNotFound] when no record matches.
func (r *ticketRepository) GetByTicketID(ctx context.Context, ticketID string) (models.ITTicket, error) {
	return r.getOne(ctx, sq.Eq{"ticket_id": ticketID}, "*ticketRepository.GetByTicketID")
}

func (r *ticketRepository) getOne(ctx context.Context, where sq.Eq, funcName string) (models.ITTicket, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(ticketColumns...).
		From(ticketsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building select query")
		return models.ITTicket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var ticket models.ITTicket
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&ticket.ID, &ticket.TicketID, &ticket.Priority, &ticket.Description, &ticket.Status, &ticket.AssignedTo, &ticket.CreatedAt, &ticket.ResolutionTimeHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ITTicket{}, ErrNotFound
		}

		log.Err(err).Str("func", funcName).Msg("error scanning ticket row")
		return models.ITTicket{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return ticket, nil
}

// List returns tickets in newest-first order. A non-positive limit means
// no limit.
func (r *ticketRepository) List(ctx context.Context, limit int) ([]models.ITTicket, error) {
	log := logger.FromContext(ctx)

	builder := r.db.Builder().
		Select(ticketColumns...).
		From(ticketsTable).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.List").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.List").Msg("error querying tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var tickets []models.ITTicket
	for rows.Next() {
		var ticket models.ITTicket
		err = rows.Scan(&ticket.ID, &ticket.TicketID, &ticket.Priority, &ticket.Description, &ticket.Status, &ticket.AssignedTo, &ticket.CreatedAt, &ticket.ResolutionTimeHours)
		if err != nil {
			log.Err(err).Str("func", "*ticketRepository.List").Msg("error scanning ticket rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tickets, nil
}

// Update applies the non-nil fields of patch to the ticket identified by
// patch.ID. Returns (false, nil) both when the patch carries no fields and
// when no row matched.
func (r *ticketRepository) Update(ctx context.Context, patch models.ITTicketUpdate) (bool, error) {
	log := logger.FromContext(ctx)

	if patch.Empty() {
		return false, nil
	}

	builder := r.db.Builder().Update(ticketsTable)
	builder = setIfPresent(builder, "priority", patch.Priority)
	builder = setIfPresent(builder, "description", patch.Description)
	builder = setIfPresent(builder, "status", patch.Status)
	builder = setIfPresent(builder, "assigned_to", patch.AssignedTo)
	builder = setIfPresent(builder, "created_at", patch.CreatedAt)
	builder = setIfPresent(builder, "resolution_time_hours", patch.ResolutionTimeHours)

	query, args, err := builder.Where(sq.Eq{"id": patch.ID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Update").Msg("error building update query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Update").Msg("error updating ticket")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// Delete removes the ticket with the given surrogate ID.
// Returns true iff a row was removed.
func (r *ticketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"id": id}, "*ticketRepository.Delete")
}

// DeleteByTicketID removes the ticket with the given natural key.
// Returns true iff a row was removed.
func (r *ticketRepository) DeleteByTicketID(ctx context.Context, ticketID string) (bool, error) {
	return r.deleteWhere(ctx, sq.Eq{"ticket_id": ticketID}, "*ticketRepository.DeleteByTicketID")
}

func (r *ticketRepository) deleteWhere(ctx context.Context, where sq.Eq, funcName string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(ticketsTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting ticket")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}
