// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/stretchr/testify/assert"
)

func blockUntilDone(started *atomic.Int32) Func {
	return func(ctx context.Context) error {
		started.Add(1)
		<-ctx.Done()
		return nil
	}
}

func TestWorkers_RunUntilCancelled(t *testing.T) {
	var started atomic.Int32
	ws := NewWorkers(logger.Nop()).
		Add("a", blockUntilDone(&started)).
		Add("b", blockUntilDone(&started)).
		Add("nil", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	assert.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestWorkers_FailureCancelsOthers(t *testing.T) {
	var started atomic.Int32
	boom := errors.New("listen: address in use")

	ws := NewWorkers(logger.Nop()).
		Add("session", blockUntilDone(&started)).
		Add("server", Func(func(context.Context) error { return boom }))

	err := ws.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "server")
}

func TestWorkers_RunEmpty(t *testing.T) {
	assert.NoError(t, NewWorkers(logger.Nop()).Run(context.Background()))
}
