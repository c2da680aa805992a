// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package models

// ITTicket is a single IT operations ticket record.
//
// TicketID is the external natural key (unique, idempotent ingestion);
// ID is the internal surrogate key.
type ITTicket struct {
	ID                  int64   `json:"id"`
	TicketID            string  `json:"ticket_id"`
	Priority            string  `json:"priority"`
	Description         string  `json:"description"`
	Status              string  `json:"status"`
	AssignedTo          string  `json:"assigned_to"`
	CreatedAt           string  `json:"created_at"`
	ResolutionTimeHours float64 `json:"resolution_time_hours"`
}

// TableName returns the name of the database table
// associated with the ITTicket model.
func (t ITTicket) TableName() string {
	return "it_tickets"
}

// ITTicketUpdate is a partial-update descriptor for an IT ticket.
// A nil field means "keep the current value".
type ITTicketUpdate struct {
	ID                  int64
	Priority            *string
	Description         *string
	Status              *string
	AssignedTo          *string
	CreatedAt           *string
	ResolutionTimeHours *float64
}

// Empty reports whether the update carries no field changes at all.
func (u ITTicketUpdate) Empty() bool {
	return u.Priority == nil && u.Description == nil && u.Status == nil &&
		u.AssignedTo == nil && u.CreatedAt == nil && u.ResolutionTimeHours == nil
}