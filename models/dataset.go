// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package models

// DatasetMeta describes a dataset that was uploaded into the analytics
// layer: its natural key, shape, and upload provenance.
type DatasetMeta struct {
	ID         int64  `json:"id"`
	DatasetID  string `json:"dataset_id"`
	Name       string `json:"name"`
	Rows       int64  `json:"rows"`
	Columns    int64  `json:"columns"`
	UploadedBy string `json:"uploaded_by"`
	UploadDate string `json:"upload_date"`
}

// TableName returns the name of the database table
// associated with the DatasetMeta model.
func (d DatasetMeta) TableName() string {
	return "datasets_metadata"
}

// DatasetMetaUpdate is a partial-update descriptor for dataset metadata.
// A nil field means "keep the current value".
type DatasetMetaUpdate struct {
	ID         int64
	Name       *string
	Rows       *int64
	Columns    *int64
	UploadedBy *string
	UploadDate *string
}

// Empty reports whether the update carries no field changes at all.
func (u DatasetMetaUpdate) Empty() bool {
	return u.Name == nil && u.Rows == nil && u.Columns == nil &&
		u.UploadedBy == nil && u.UploadDate == nil
}