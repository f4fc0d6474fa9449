// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/correlator"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/utils"
	"github.com/MKhiriev/codec-directory/models"
)

const searchPath = "/api/directory/search"

// HTTPDirectory sends searches to a REST directory service. Each SendQuery
// returns immediately; the answer is delivered to the PageSink from a
// separate goroutine.
type HTTPDirectory struct {
	client *utils.HTTPClient

	mu   sync.RWMutex
	sink PageSink

	inFlight sync.WaitGroup

	logger *logger.Logger
}

// NewHTTPDirectory constructs a client for cfg.ServiceURL.
//
// Returns an error if cfg.ServiceURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPDirectory(cfg config.Directory, log *logger.Logger) (*HTTPDirectory, error) {
	baseURL, err := normalizeBaseURL(cfg.ServiceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory service url: %w", err)
	}

	return &HTTPDirectory{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: log.WithComponent("http_directory"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetPageSink sets where search results go.
func (h *HTTPDirectory) SetPageSink(sink PageSink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = sink
}

// SendQuery implements QuerySender. The request outlives ctx cancellation
// but keeps its values.
func (h *HTTPDirectory) SendQuery(ctx context.Context, q models.Query) error {
	h.mu.RLock()
	sink := h.sink
	h.mu.RUnlock()
	if sink == nil {
		return ErrNoPageSink
	}

	reqCtx := context.WithoutCancel(ctx)

	h.inFlight.Add(1)
	go func() {
		defer h.inFlight.Done()
		h.search(reqCtx, sink, q)
	}()

	return nil
}

func (h *HTTPDirectory) search(ctx context.Context, sink PageSink, q models.Query) {
	var page models.Page

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(q).
		SetResult(&page).
		Post(searchPath)
	if err != nil {
		sink.HandleSearchFailure(ctx, q.CorrelationID, fmt.Errorf("%w: %w", ErrRemoteSearch, err))
		return
	}
	if err = mapHTTPError(resp); err != nil {
		sink.HandleSearchFailure(ctx, q.CorrelationID, err)
		return
	}

	h.logger.Debug().
		Str("correlation_id", q.CorrelationID).
		Int("records", page.Len()).
		Int("total", page.TotalRows).
		Msg("search result received")
	err = sink.HandleIncomingPage(ctx, q.CorrelationID, page.Folders, page.Contacts, page.TotalRows)
	switch {
	case errors.Is(err, correlator.ErrUnknownCorrelation):
		h.logger.Debug().Str("correlation_id", q.CorrelationID).Msg("late search result ignored")
	case err != nil:
		h.logger.Error().Err(err).Str("correlation_id", q.CorrelationID).Msg("search result not applied")
	}
}

// Wait blocks until every request issued so far has been delivered.
func (h *HTTPDirectory) Wait() {
	h.inFlight.Wait()
}
