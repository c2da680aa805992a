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

// ticketService is the concrete implementation of TicketService.
type ticketService struct {
	tickets store.TicketRepository
	logger  *logger.Logger
}

// NewTicketService constructs a TicketService over the given repository.
func NewTicketService(tickets store.TicketRepository, logger *logger.Logger) TicketService {
	return &ticketService{
		tickets: tickets,
		logger:  logger,
	}
}

// Create stores the ticket and returns it with its surrogate ID set.
// A blank TicketID gets a generated key.
func (s *ticketService) Create(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(ticket.TicketID) == "" {
		ticket.TicketID = newNaturalKey(ticketKeyPrefix)
	}

	id, err := s.tickets.Insert(ctx, ticket)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateNaturalKey) {
			return models.ITTicket{}, err
		}

		log.Err(err).Str("func", "*ticketService.Create").Msg("error creating ticket")
		return models.ITTicket{}, fmt.Errorf("create ticket: %w", err)
	}

	ticket.ID = id
	log.Info().Str("func", "*ticketService.Create").Str("ticket_id", ticket.TicketID).Msg("ticket created")
	return ticket, nil
}

// Get returns the ticket with the given surrogate ID, or ErrNotFound.
func (s *ticketService) Get(ctx context.Context, id int64) (models.ITTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ITTicket{}, ErrNotFound
		}
		return models.ITTicket{}, fmt.Errorf("get ticket: %w", err)
	}

	return ticket, nil
}

// List returns tickets newest-first. A non-positive limit means all.
func (s *ticketService) List(ctx context.Context, limit int) ([]models.ITTicket, error) {
	tickets, err := s.tickets.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}

// Update applies the patch to the stored ticket. Returns false when the
// patch is empty or no record matched.
func (s *ticketService) Update(ctx context.Context, patch models.ITTicketUpdate) (bool, error) {
	updated, err := s.tickets.Update(ctx, patch)
	if err != nil {
		return false, fmt.Errorf("update ticket: %w", err)
	}

	return updated, nil
}

// Delete removes the ticket. Returns true iff a record was removed.
func (s *ticketService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete ticket: %w", err)
	}

	return deleted, nil
}