// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package event

import (
	"testing"

	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_EmitInSubscriptionOrder(t *testing.T) {
	e := New[int]("test", logger.Nop())
	var got []string

	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })
	e.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEvent_Unsubscribe(t *testing.T) {
	var e Event[string]
	calls := 0

	sub := e.Subscribe(func(string) { calls++ })
	require.NotZero(t, sub)

	assert.True(t, e.Unsubscribe(sub))
	assert.False(t, e.Unsubscribe(sub), "second unsubscribe is a no-op")
	e.Emit("x")

	assert.Zero(t, calls)
	assert.Zero(t, e.Len())
}

func TestEvent_NilListenerIgnored(t *testing.T) {
	var e Event[int]
	assert.Zero(t, e.Subscribe(nil))
	assert.False(t, e.Unsubscribe(0))
	assert.Zero(t, e.Len())
}

func TestEvent_PanickingListenerDoesNotStopOthers(t *testing.T) {
	e := New[int]("panics", logger.Nop())
	reached := false

	e.Subscribe(func(int) { panic("boom") })
	e.Subscribe(func(int) { reached = true })

	assert.NotPanics(t, func() { e.Emit(7) })
	assert.True(t, reached)
}

func TestEvent_UnsubscribeFromInsideListener(t *testing.T) {
	var e Event[int]
	calls := 0

	var sub Subscription
	sub = e.Subscribe(func(int) {
		calls++
		e.Unsubscribe(sub)
	})

	e.Emit(1)
	e.Emit(2)

	assert.Equal(t, 1, calls)
}

func TestEvent_SubscribeDuringEmitNotDeliveredThisRound(t *testing.T) {
	var e Event[int]
	late := 0

	e.Subscribe(func(int) {
		e.Subscribe(func(int) { late++ })
	})

	e.Emit(1)
	assert.Zero(t, late)

	e.Emit(2)
	assert.Equal(t, 1, late)
}
