// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package service

import (
	"fmt"

	"github.com/google/uuid"
)

// Natural key prefixes for records created interactively. Bulk-ingested
// records keep the keys their source assigned.
const (
	incidentKeyPrefix = "INC"
	ticketKeyPrefix   = "TKT"
	datasetKeyPrefix  = "DS"
)

// newNaturalKey produces a "<prefix>-<uuid>" key. UUIDv7 keeps generated
// keys roughly time-ordered; v4 is the fallback when the entropy source
// fails.
func newNaturalKey(prefix string) string {
	v7, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
	}

	return fmt.Sprintf("%s-%s", prefix, v7.String())
}