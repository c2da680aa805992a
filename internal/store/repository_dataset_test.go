package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/secopslab/secwatch/models"
)

func newTestDatasetRepo(t *testing.T) (*datasetRepository, sqlmock.Sqlmock, *sql.DB) {
	testDB, mock, db := newTestDB(t)
	repo := &datasetRepository{
		db:     testDB,
		logger: testDB.logger,
	}
	return repo, mock, db
}

func TestDatasetInsertIgnore_Inserted(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()
	meta := models.DatasetMeta{
		DatasetID:  "DS-301",
		Name:       "phishing_urls",
		Rows:       120000,
		Columns:    14,
		UploadedBy: "analyst1",
		UploadDate: "2026-08-10",
	}

	mock.ExpectQuery("INSERT INTO datasets_metadata").
		WithArgs(meta.DatasetID, meta.Name, meta.Rows, meta.Columns, meta.UploadedBy, meta.UploadDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, inserted, err := repo.InsertIgnore(ctx, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted || id != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", id, inserted)
	}
}

func TestDatasetInsertIgnore_Duplicate(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO datasets_metadata").
		WillReturnError(sql.ErrNoRows)

	_, inserted, err := repo.InsertIgnore(ctx, models.DatasetMeta{DatasetID: "DS-301"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Error("expected inserted=false for duplicate dataset_id")
	}
}

func TestDatasetUpdate_Counts(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()
	rows := int64(150000)

	mock.ExpectExec("UPDATE datasets_metadata SET rows = .+ WHERE id = .+").
		WithArgs(int64(150000), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(ctx, models.DatasetMetaUpdate{ID: 7, Rows: &rows})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected updated=true")
	}
}

func TestDatasetGetByDatasetID_NotFound(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, dataset_id, name, rows, columns, uploaded_by, upload_date FROM datasets_metadata").
		WithArgs("DS-9999").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDatasetID(ctx, "DS-9999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDatasetList_NewestFirst(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, dataset_id, name, rows, columns, uploaded_by, upload_date FROM datasets_metadata ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "dataset_id", "name", "rows", "columns", "uploaded_by", "upload_date"}).
			AddRow(8, "DS-302", "malware_hashes", 5000, 3, "analyst2", "2026-08-11").
			AddRow(7, "DS-301", "phishing_urls", 120000, 14, "analyst1", "2026-08-10"))

	metas, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 records, got %d", len(metas))
	}
	if metas[0].DatasetID != "DS-302" || metas[1].DatasetID != "DS-301" {
		t.Errorf("expected newest-first order, got %q then %q", metas[0].DatasetID, metas[1].DatasetID)
	}
}

func TestDatasetDeleteByDatasetID_Absent(t *testing.T) {
	repo, mock, db := newTestDatasetRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM datasets_metadata").
		WithArgs("DS-9999").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByDatasetID(ctx, "DS-9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false when no row matched")
	}
}
