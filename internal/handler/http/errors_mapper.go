// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/codec-directory/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrEmptyScope:        http.StatusBadRequest,
	service.ErrAlreadyInProgress: http.StatusConflict,
	service.ErrSendQuery:         http.StatusBadGateway,

	ErrUnknownScope:  http.StatusNotFound,
	ErrUnknownFolder: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
