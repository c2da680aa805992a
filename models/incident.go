package models

// CyberIncident is a single security incident record.
//
// IncidentID is the external natural key: unique per table and used for
// idempotent re-ingestion. ID is the internal surrogate key used for
// update/delete addressing. Timestamps are kept as text, matching the
// ingested source data.
type CyberIncident struct {
	ID          int64  `json:"id"`
	IncidentID  string `json:"incident_id"`
	Timestamp   string `json:"timestamp"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the CyberIncident model.
func (i CyberIncident) TableName() string {
	return "cyber_incidents"
}

// CyberIncidentUpdate is a partial-update descriptor for a cyber incident.
// A nil field means "keep the current value"; only non-nil fields are
// written. The surrogate ID addresses the row and is never updated itself.
type CyberIncidentUpdate struct {
	ID          int64
	Timestamp   *string
	Severity    *string
	Category    *string
	Status      *string
	Description *string
}

// Empty reports whether the update carries no field changes at all.
func (u CyberIncidentUpdate) Empty() bool {
	return u.Timestamp == nil && u.Severity == nil && u.Category == nil &&
		u.Status == nil && u.Description == nil
}
