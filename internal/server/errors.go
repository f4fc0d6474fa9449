// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoDiagnosticsServer is returned when there is no HTTP handler or
// listen address for the diagnostics API.
var errNoDiagnosticsServer = errors.New("diagnostics server needs an HTTP handler and a listen address")
