// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background loops of the daemon (the
// codec session, the search expiry job, the diagnostics server) under one
// context.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails; returning nil after cancellation is a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a function to Worker.
type Func func(ctx context.Context) error

// Run calls f(ctx).
func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
