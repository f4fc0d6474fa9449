// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the diagnostics HTTP server and shuts it down
// gracefully when its context is cancelled.
package server
