// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/secopslab/secwatch/models"
)

// Seed file names expected under the configured data directory.
const (
	IncidentsCSV = "cyber_incidents.csv"
	TicketsCSV   = "it_tickets.csv"
	DatasetsCSV  = "datasets_metadata.csv"
)

// header maps column names from a CSV header row to their positions.
// Lookups are case-insensitive.
type header map[string]int

func readHeader(reader *csv.Reader) (header, error) {
	record, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

func (h header) field(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ReadIncidentsCSV parses incident records from r. The first row must be a
// header naming at least incident_id; unknown columns are ignored and
// missing optional columns yield empty fields.
func ReadIncidentsCSV(r io.Reader) ([]models.CyberIncident, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	if _, ok := h["incident_id"]; !ok {
		return nil, fmt.Errorf("incidents CSV: missing incident_id column")
	}

	var incidents []models.CyberIncident
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read incidents CSV: %w", err)
		}

		incidents = append(incidents, models.CyberIncident{
			IncidentID:  h.field(record, "incident_id"),
			Timestamp:   h.field(record, "timestamp"),
			Severity:    h.field(record, "severity"),
			Category:    h.field(record, "category"),
			Status:      h.field(record, "status"),
			Description: h.field(record, "description"),
		})
	}

	return incidents, nil
}

// ReadTicketsCSV parses ticket records from r. The first row must be a
// header naming at least ticket_id. An unparsable resolution_time_hours
// value is treated as zero rather than failing the whole batch.
func ReadTicketsCSV(r io.Reader) ([]models.ITTicket, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	if _, ok := h["ticket_id"]; !ok {
		return nil, fmt.Errorf("tickets CSV: missing ticket_id column")
	}

	var tickets []models.ITTicket
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tickets CSV: %w", err)
		}

		hours, _ := strconv.ParseFloat(h.field(record, "resolution_time_hours"), 64)

		tickets = append(tickets, models.ITTicket{
			TicketID:            h.field(record, "ticket_id"),
			Priority:            h.field(record, "priority"),
			Description:         h.field(record, "description"),
			Status:              h.field(record, "status"),
			AssignedTo:          h.field(record, "assigned_to"),
			CreatedAt:           h.field(record, "created_at"),
			ResolutionTimeHours: hours,
		})
	}

	return tickets, nil
}

// ReadDatasetsCSV parses dataset metadata records from r. The first row
// must be a header naming at least dataset_id. Unparsable row and column
// counts are treated as zero.
func ReadDatasetsCSV(r io.Reader) ([]models.DatasetMeta, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	h, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	if _, ok := h["dataset_id"]; !ok {
		return nil, fmt.Errorf("datasets CSV: missing dataset_id column")
	}

	var metas []models.DatasetMeta
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read datasets CSV: %w", err)
		}

		rows, _ := strconv.ParseInt(h.field(record, "rows"), 10, 64)
		columns, _ := strconv.ParseInt(h.field(record, "columns"), 10, 64)

		metas = append(metas, models.DatasetMeta{
			DatasetID:  h.field(record, "dataset_id"),
			Name:       h.field(record, "name"),
			Rows:       rows,
			Columns:    columns,
			UploadedBy: h.field(record, "uploaded_by"),
			UploadDate: h.field(record, "upload_date"),
		})
	}

	return metas, nil
}