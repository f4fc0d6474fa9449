// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the diagnostics API of the daemon.
//
// It exposes the feedback paths currently subscribed on the router, the
// state and contents of every directory scope, and endpoints to start or
// clear a directory search. Request tracing, access logging and response
// compression are handled here before requests reach the service layer.
package http
