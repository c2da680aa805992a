package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIncidentsCSV(t *testing.T) {
	input := `incident_id,timestamp,severity,category,status,description
INC-1001,2026-08-01 10:15:00,High,Phishing,Open,"credential harvesting, multi-stage"
INC-1002,2026-08-02 09:00:00,Low,Malware,Closed,quarantined
`
	incidents, err := ReadIncidentsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "INC-1001", incidents[0].IncidentID)
	assert.Equal(t, "credential harvesting, multi-stage", incidents[0].Description)
	assert.Equal(t, "Closed", incidents[1].Status)
}

func TestReadIncidentsCSV_ReorderedAndExtraColumns(t *testing.T) {
	input := `severity,incident_id,analyst,status
High,INC-1001,jdoe,Open
`
	incidents, err := ReadIncidentsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "INC-1001", incidents[0].IncidentID)
	assert.Equal(t, "High", incidents[0].Severity)
	assert.Empty(t, incidents[0].Category)
}

func TestReadIncidentsCSV_MissingNaturalKeyColumn(t *testing.T) {
	input := "severity,status\nHigh,Open\n"

	_, err := ReadIncidentsCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incident_id")
}

func TestReadTicketsCSV(t *testing.T) {
	input := `ticket_id,priority,description,status,assigned_to,created_at,resolution_time_hours
TKT-2001,P1,email down,Resolved,helpdesk,2026-08-03 08:30:00,4.5
TKT-2002,P3,printer jam,Open,onsite,2026-08-03 11:00:00,not-a-number
`
	tickets, err := ReadTicketsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, 4.5, tickets[0].ResolutionTimeHours)
	assert.Zero(t, tickets[1].ResolutionTimeHours)
}

func TestReadDatasetsCSV(t *testing.T) {
	input := `dataset_id,name,rows,columns,uploaded_by,upload_date
DS-3001,phishing-urls,120000,8,alice,2026-07-15
`
	metas, err := ReadDatasetsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, int64(120000), metas[0].Rows)
	assert.Equal(t, int64(8), metas[0].Columns)
	assert.Equal(t, "alice", metas[0].UploadedBy)
}

func TestReadDatasetsCSV_EmptyBody(t *testing.T) {
	input := "dataset_id,name\n"

	metas, err := ReadDatasetsCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, metas)
}
