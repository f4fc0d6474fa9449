// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package router dispatches decoded codec feedback to subscribers by exact
// path.
//
// A subscriber registered at Status/SIP is never notified of
// Status/SIP/Registration/Status and vice versa: every leaf must be
// subscribed explicitly. Dispatch to a path nobody subscribed to is a silent
// no-op because codecs emit many categories no component cares about.
package router

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/MKhiriev/codec-directory/internal/logger"
)

// Handler receives the payload dispatched at the path it was registered
// on. Handlers are kept in a set keyed by identity, so implementations
// must be comparable (pointer receivers are the usual choice); others are
// rejected by Register.
type Handler interface {
	Handle(path Path, payload any)
}

// Callback adapts a plain function to Handler. Each *Callback has its own
// identity, so the same *Callback can be registered and unregistered
// idempotently.
type Callback struct {
	fn func(path Path, payload any)
}

// NewCallback wraps fn into a Handler with pointer identity.
func NewCallback(fn func(path Path, payload any)) *Callback {
	return &Callback{fn: fn}
}

// Handle implements Handler.
func (c *Callback) Handle(path Path, payload any) {
	if c.fn != nil {
		c.fn(path, payload)
	}
}

// Router is the path-addressed subscription registry for one device
// session. It is safe for concurrent use.
type Router struct {
	mu   sync.RWMutex
	trie *pathTrie

	logger *logger.Logger
}

// NewRouter constructs an empty Router.
func NewRouter(log *logger.Logger) *Router {
	return &Router{
		trie:   newPathTrie(),
		logger: log.WithComponent("router"),
	}
}

// hashable reports whether h can be used as a subscriber key. Func and
// map typed handlers cannot.
func hashable(h Handler) bool {
	return h != nil && reflect.ValueOf(h).Comparable()
}

// Register subscribes h at path. Registering the same handler at the same
// path twice is a no-op. An empty path registers at the root. Handlers
// without identity (func or map types) are logged and ignored.
func (r *Router) Register(path Path, h Handler) {
	if h == nil {
		return
	}
	if !hashable(h) {
		r.logger.Warn().
			Str("path", path.String()).
			Str("handler", fmt.Sprintf("%T", h)).
			Msg("handler is not comparable, wrap it with NewCallback")
		return
	}

	r.mu.Lock()
	added := r.trie.insert(path, h)
	r.mu.Unlock()

	if added {
		r.logger.Debug().Str("path", path.String()).Msg("handler registered")
	}
}

// Unregister removes h from path. Unknown paths or handlers are ignored.
func (r *Router) Unregister(path Path, h Handler) {
	if !hashable(h) {
		return
	}

	r.mu.Lock()
	removed := r.trie.remove(path, h)
	r.mu.Unlock()

	if removed {
		r.logger.Debug().Str("path", path.String()).Msg("handler unregistered")
	}
}

// Dispatch invokes every handler registered at exactly path with payload.
// Handlers run synchronously on the caller's goroutine after the lock is
// released, so they may call Register or Unregister. A panicking handler is
// recovered and logged without affecting its siblings.
func (r *Router) Dispatch(path Path, payload any) {
	r.mu.RLock()
	n := r.trie.lookup(path)
	if n == nil || len(n.subscribers) == 0 {
		r.mu.RUnlock()
		return
	}
	handlers := make([]Handler, 0, len(n.subscribers))
	for h := range n.subscribers {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		r.invoke(h, path, payload)
	}
}

func (r *Router) invoke(h Handler, path Path, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("path", path.String()).
				Interface("panic", rec).
				Msg("feedback handler panicked")
		}
	}()
	h.Handle(path, payload)
}

// SubscriberCount returns the number of handlers registered at exactly path.
func (r *Router) SubscriberCount(path Path) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.trie.lookup(path)
	if n == nil {
		return 0
	}
	return len(n.subscribers)
}

// EnumerateSubscribedPaths returns every path with at least one direct
// subscriber, depth first. Intended for diagnostics.
func (r *Router) EnumerateSubscribedPaths() []Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var paths []Path
	r.trie.walk(func(path Path, _ *trieNode) {
		paths = append(paths, path)
	})
	return paths
}
