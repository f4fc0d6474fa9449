// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Transports understood by Directory.Transport.
const (
	// TransportWebsocket sends searches over the device xAPI websocket.
	TransportWebsocket = "websocket"
	// TransportHTTP sends searches to a REST directory service.
	TransportHTTP = "http"
)

// Paging modes understood by Directory.Paging.
const (
	// PagingOffset requests each follow-up page explicitly.
	PagingOffset = "offset"
	// PagingSingle issues one request; the remote side pushes every page.
	PagingSingle = "single"
)

// StructuredConfig is the top-level configuration container for the
// codec directory daemon.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Device describes the xAPI websocket of the video endpoint.
	Device Device `envPrefix:"DEVICE_"`

	// Directory controls how phonebook searches are issued and paged.
	Directory Directory `envPrefix:"DIRECTORY_"`

	// Server holds the diagnostics HTTP API settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Device holds the connection settings of the endpoint's xAPI websocket.
type Device struct {
	// URL is the websocket endpoint (e.g. "wss://10.0.0.5/ws").
	// Env: DEVICE_URL
	URL string `env:"URL"`

	// Username and Password are sent as HTTP basic auth on the upgrade
	// request when set.
	// Env: DEVICE_USERNAME, DEVICE_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// HandshakeTimeout bounds the websocket upgrade.
	// Env: DEVICE_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`

	// ReconnectInterval is the pause between connection attempts.
	// Env: DEVICE_RECONNECT_INTERVAL
	ReconnectInterval time.Duration `env:"RECONNECT_INTERVAL"`

	// Feedback lists the xAPI paths subscribed on every connect
	// (e.g. "Status/Call,Event/CallDisconnect").
	// Env: DEVICE_FEEDBACK
	Feedback []string `env:"FEEDBACK" envSeparator:","`
}

// Directory holds phonebook search settings.
type Directory struct {
	// Transport selects where searches go: TransportWebsocket or
	// TransportHTTP.
	// Env: DIRECTORY_TRANSPORT
	Transport string `env:"TRANSPORT"`

	// ServiceURL is the base URL of the REST directory service used with
	// TransportHTTP.
	// Env: DIRECTORY_SERVICE_URL
	ServiceURL string `env:"SERVICE_URL"`

	// PageLimit is the number of records requested per page.
	// Env: DIRECTORY_PAGE_LIMIT
	PageLimit int `env:"PAGE_LIMIT"`

	// Paging is PagingOffset or PagingSingle.
	// Env: DIRECTORY_PAGING
	Paging string `env:"PAGING"`

	// RequestTimeout caps one search request on TransportHTTP.
	// Env: DIRECTORY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Scopes are the phonebook types created at startup
	// (e.g. "Local,Corporate").
	// Env: DIRECTORY_SCOPES
	Scopes []string `env:"SCOPES" envSeparator:","`
}

// Server holds network settings for the diagnostics API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SearchTimeout is the age after which an unanswered search is
	// abandoned.
	// Env: WORKERS_SEARCH_TIMEOUT
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT"`

	// SweepInterval is how often searches are checked for expiry.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Defaults returns the values used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Device: Device{
			HandshakeTimeout:  10 * time.Second,
			ReconnectInterval: 5 * time.Second,
		},
		Directory: Directory{
			Transport:      TransportWebsocket,
			PageLimit:      100,
			Paging:         PagingOffset,
			RequestTimeout: 10 * time.Second,
			Scopes:         []string{"Local", "Corporate"},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Workers: Workers{
			SearchTimeout: time.Minute,
			SweepInterval: 10 * time.Second,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from environment variables, command-line flags, the
// optional JSON file and the defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(ParseFlags()).
		withJSON().
		withDefaults().
		build()
}
