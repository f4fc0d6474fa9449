// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidDeviceConfigs indicates a websocket transport without a
	// device URL.
	ErrInvalidDeviceConfigs = errors.New("invalid device configuration")
	// ErrInvalidDirectoryConfigs indicates an unknown transport or paging
	// mode, a non-positive page limit, no scopes, or an HTTP transport
	// without a service URL.
	ErrInvalidDirectoryConfigs = errors.New("invalid directory configuration")
	// ErrInvalidServerConfigs indicates a missing diagnostics API address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive search timeout or
	// sweep interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
