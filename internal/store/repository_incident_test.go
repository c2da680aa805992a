package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/secopslab/secwatch/models"
)

func newTestIncidentRepo(t *testing.T) (*incidentRepository, sqlmock.Sqlmock, *sql.DB) {
	testDB, mock, db := newTestDB(t)
	repo := &incidentRepository{
		db:     testDB,
		logger: testDB.logger,
	}
	return repo, mock, db
}

func testIncident() models.CyberIncident {
	return models.CyberIncident{
		IncidentID:  "INC-1001",
		Timestamp:   "2026-08-01 10:15:00",
		Severity:    "High",
		Category:    "Phishing",
		Status:      "Open",
		Description: "credential harvesting campaign",
	}
}

func TestIncidentInsert_Success(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()
	incident := testIncident()

	mock.ExpectQuery("INSERT INTO cyber_incidents").
		WithArgs(incident.IncidentID, incident.Timestamp, incident.Severity, incident.Category, incident.Status, incident.Description).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.Insert(ctx, incident)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected id=42, got %d", id)
	}
}

func TestIncidentInsert_DuplicateNaturalKey(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO cyber_incidents").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Insert(ctx, testIncident())
	if !errors.Is(err, ErrDuplicateNaturalKey) {
		t.Fatalf("expected ErrDuplicateNaturalKey, got %v", err)
	}
}

func TestIncidentInsertIgnore_Inserted(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO cyber_incidents").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, inserted, err := repo.InsertIgnore(ctx, testIncident())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted || id != 5 {
		t.Errorf("expected (5, true), got (%d, %v)", id, inserted)
	}
}

func TestIncidentInsertIgnore_Duplicate(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO cyber_incidents").
		WillReturnError(sql.ErrNoRows)

	id, inserted, err := repo.InsertIgnore(ctx, testIncident())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted || id != 0 {
		t.Errorf("expected (0, false) for duplicate, got (%d, %v)", id, inserted)
	}
}

func TestIncidentGetByIncidentID_Success(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows(incidentColumns).
		AddRow(1, "INC-1001", "2026-08-01 10:15:00", "High", "Phishing", "Open", "credential harvesting campaign")

	mock.ExpectQuery("SELECT id, incident_id, timestamp, severity, category, status, description FROM cyber_incidents").
		WithArgs("INC-1001").
		WillReturnRows(rows)

	incident, err := repo.GetByIncidentID(ctx, "INC-1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if incident.Severity != "High" {
		t.Errorf("expected severity High, got %s", incident.Severity)
	}
}

func TestIncidentGetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, incident_id, timestamp, severity, category, status, description FROM cyber_incidents").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(ctx, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIncidentList_NewestFirstWithLimit(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows(incidentColumns).
		AddRow(2, "INC-1002", "2026-08-02 09:00:00", "Low", "Malware", "Closed", "quarantined").
		AddRow(1, "INC-1001", "2026-08-01 10:15:00", "High", "Phishing", "Open", "campaign")

	mock.ExpectQuery("SELECT id, incident_id, timestamp, severity, category, status, description FROM cyber_incidents ORDER BY id DESC LIMIT 2").
		WillReturnRows(rows)

	incidents, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(incidents) != 2 {
		t.Fatalf("expected 2 incidents, got %d", len(incidents))
	}
	if incidents[0].IncidentID != "INC-1002" {
		t.Errorf("expected newest incident first, got %s", incidents[0].IncidentID)
	}
}

func TestIncidentList_QueryError(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, incident_id, timestamp, severity, category, status, description FROM cyber_incidents").
		WillReturnError(errors.New("db failure"))

	_, err := repo.List(ctx, 0)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestIncidentUpdate_PartialFields(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()
	status := "Resolved"
	severity := "Medium"

	// only the two supplied columns appear in the statement
	mock.ExpectExec("UPDATE cyber_incidents SET severity = .+, status = .+ WHERE id = .+").
		WithArgs("Medium", "Resolved", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(ctx, models.CyberIncidentUpdate{
		ID:       4,
		Severity: &severity,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected updated=true")
	}
}

func TestIncidentUpdate_EmptyPatchIsNoOp(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	// no expectations registered: the repo must not touch the DB
	updated, err := repo.Update(ctx, models.CyberIncidentUpdate{ID: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("expected updated=false for empty patch")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected DB interaction: %v", err)
	}
}

func TestIncidentUpdate_NoRowMatched(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()
	status := "Resolved"

	mock.ExpectExec("UPDATE cyber_incidents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.Update(ctx, models.CyberIncidentUpdate{ID: 99, Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("expected updated=false when no row matched")
	}
}

func TestIncidentDelete_Deleted(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM cyber_incidents").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(ctx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}
}

func TestIncidentDeleteByIncidentID_NoRow(t *testing.T) {
	repo, mock, db := newTestIncidentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM cyber_incidents").
		WithArgs("INC-9999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByIncidentID(ctx, "INC-9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false when no row matched")
	}
}
