// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package correlator

import "errors"

var (
	// ErrDuplicateCorrelation is returned by BeginOperation when the
	// correlation id is already in flight.
	ErrDuplicateCorrelation = errors.New("correlation id already in flight")
	// ErrUnknownCorrelation is returned by AcceptPage when no operation is
	// tracked for the correlation id, e.g. after it was cancelled or
	// completed. The page is dropped.
	ErrUnknownCorrelation = errors.New("unknown correlation id")
	// ErrNoTarget is returned by BeginOperation when no target folder is
	// given.
	ErrNoTarget = errors.New("search operation needs a target folder")
)
