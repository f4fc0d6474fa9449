// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrUnknownScope is returned for a scope the synchronizer has never seen.
	ErrUnknownScope = errors.New("unknown directory scope")
	// ErrUnknownFolder is returned when a folder id is not in the scope's tree.
	ErrUnknownFolder = errors.New("unknown directory folder")
)
