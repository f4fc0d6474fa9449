// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	// ErrNotConnected is returned by the websocket session when a query is
	// sent while no connection is established.
	ErrNotConnected = errors.New("codec session not connected")
	// ErrNoPageSink is returned when a transport has nowhere to deliver
	// results.
	ErrNoPageSink = errors.New("no page sink configured")
	// ErrRemoteSearch wraps an error reported by the remote directory.
	ErrRemoteSearch = errors.New("remote directory search failed")
	// ErrMalformedFrame is returned by the decoder for unparseable input.
	ErrMalformedFrame = errors.New("malformed frame")

	ErrBadRequest   = errors.New("bad request")
	ErrUnknownScope = errors.New("unknown directory scope")
	ErrUnavailable  = errors.New("directory service unavailable")
)
