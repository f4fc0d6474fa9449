// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// UUIDGenerator issues correlation ids for directory searches. Version 7
// ids sort by creation time, which keeps logs of one session readable.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new v7 id, falling back to a random v4 id when the
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsCorrelationID reports whether s parses as a UUID. Feedback frames with
// other ids belong to requests not issued by the synchronizer.
func IsCorrelationID(s string) bool {
	return uuid.Validate(s) == nil
}
