// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrAlreadyInProgress is returned by Populate when the scope is already
	// being populated and force was not requested.
	ErrAlreadyInProgress = errors.New("directory population already in progress")
	// ErrEmptyScope is returned when an operation is given an empty scope.
	ErrEmptyScope = errors.New("directory scope must not be empty")
	// ErrNoQuerySender is returned by NewDirectorySynchronizer without an
	// outbound query collaborator.
	ErrNoQuerySender = errors.New("no query sender configured")
	// ErrSendQuery wraps failures of the outbound query collaborator.
	ErrSendQuery = errors.New("send directory query")
)
