// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package store

import (
	sq "github.com/Masterminds/squirrel"
)

// setIfPresent adds a SET clause for column only when value is non-nil.
// Patch structs use nil pointers to mean "keep the stored value", so a
// column absent from the patch never appears in the generated UPDATE.
func setIfPresent[T any](builder sq.UpdateBuilder, column string, value *T) sq.UpdateBuilder {
	if value == nil {
		return builder
	}
	return builder.Set(column, *value)
}