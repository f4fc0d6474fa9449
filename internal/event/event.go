// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package event provides a small typed multicast used for change
// notifications across the directory packages.
//
// Listeners are invoked synchronously by Emit, in subscription order, after
// the listener list has been copied and the internal lock released. A
// listener may therefore subscribe or unsubscribe (itself or others) from
// inside its callback. A panicking listener is recovered and logged; the
// remaining listeners still run.
package event

import (
	"sync"

	"github.com/MKhiriev/codec-directory/internal/logger"
)

// Subscription identifies a registered listener. The zero value is never
// handed out and is safe to pass to Unsubscribe.
type Subscription uint64

type listener[T any] struct {
	id Subscription
	fn func(T)
}

// Event is a multicast of values of type T. The zero value is ready to use
// and discards listener panics silently; use New to attach a logger.
type Event[T any] struct {
	mu        sync.Mutex
	last      Subscription
	listeners []listener[T]

	name   string
	logger *logger.Logger
}

// New returns an Event whose recovered listener panics are logged under
// the given event name.
func New[T any](name string, log *logger.Logger) *Event[T] {
	return &Event[T]{name: name, logger: log}
}

// Subscribe registers fn and returns a handle for Unsubscribe. A nil fn is
// ignored and yields the zero Subscription.
func (e *Event[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.last++
	e.listeners = append(e.listeners, listener[T]{id: e.last, fn: fn})
	return e.last
}

// Unsubscribe removes the listener registered under sub. It reports whether
// a listener was removed.
func (e *Event[T]) Unsubscribe(sub Subscription) bool {
	if sub == 0 {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, l := range e.listeners {
		if l.id == sub {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Emit delivers v to every listener registered at the time of the call.
func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		e.invoke(l, v)
	}
}

func (e *Event[T]) invoke(l listener[T], v T) {
	defer func() {
		if r := recover(); r != nil && e.logger != nil {
			e.logger.Error().
				Str("event", e.name).
				Uint64("subscription", uint64(l.id)).
				Interface("panic", r).
				Msg("event listener panicked")
		}
	}()
	l.fn(v)
}
