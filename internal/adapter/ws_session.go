// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/correlator"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/internal/utils"
	"github.com/MKhiriev/codec-directory/models"
	"github.com/gorilla/websocket"
)

const (
	methodPhonebookSearch   = "xCommand/Phonebook/Search"
	methodFeedbackSubscribe = "xFeedback/Subscribe"

	defaultReconnectInterval = 5 * time.Second
	writeTimeout             = 10 * time.Second
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type phonebookSearchParams struct {
	PhonebookType string `json:"PhonebookType"`
	FolderID      string `json:"FolderId,omitempty"`
	Offset        int    `json:"Offset"`
	Limit         int    `json:"Limit"`
}

type feedbackSubscribeParams struct {
	Query              []string `json:"Query"`
	NotifyCurrentValue bool     `json:"NotifyCurrentValue"`
}

// WSSession is a JSON-RPC session with one codec over its xAPI websocket.
// It decodes feedback for a FeedbackDispatcher, delivers search results to
// a PageSink and sends directory searches as a QuerySender.
type WSSession struct {
	cfg      config.Device
	dialer   *websocket.Dialer
	feedback FeedbackDispatcher

	mu   sync.RWMutex
	conn *websocket.Conn
	sink PageSink

	// writeMu serializes writers; gorilla connections allow one at a time.
	writeMu sync.Mutex

	requestSeq atomic.Uint64

	logger *logger.Logger
}

// NewWSSession creates a session for the codec at cfg.URL. Nothing is
// dialled until Run.
func NewWSSession(cfg config.Device, feedback FeedbackDispatcher, log *logger.Logger) *WSSession {
	return &WSSession{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		feedback: feedback,
		logger:   log.WithComponent("ws_session"),
	}
}

// SetPageSink sets where decoded search results go. It is called once the
// synchronizer built on top of this session exists.
func (s *WSSession) SetPageSink(sink PageSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Connected reports whether a websocket is currently open.
func (s *WSSession) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

// Run keeps the session connected until ctx is cancelled, redialling
// after cfg.ReconnectInterval whenever the connection drops.
func (s *WSSession) Run(ctx context.Context) error {
	interval := s.cfg.ReconnectInterval
	if interval <= 0 {
		interval = defaultReconnectInterval
	}

	for {
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn().Err(err).Dur("retry_in", interval).Msg("codec connection lost")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (s *WSSession) runOnce(ctx context.Context) error {
	header := utils.BasicAuthHeader(s.cfg.Username, s.cfg.Password)

	conn, resp, err := s.dialer.DialContext(ctx, s.cfg.URL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.cfg.URL, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.logger.Info().Str("url", s.cfg.URL).Msg("codec connected")

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		stop()
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		conn.Close()
	}()

	for _, p := range s.cfg.Feedback {
		if err = s.subscribe(ctx, router.ParsePath(p)); err != nil {
			return err
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		s.handleFrame(ctx, data)
	}
}

func (s *WSSession) subscribe(ctx context.Context, path router.Path) error {
	id := "feedback-" + strconv.FormatUint(s.requestSeq.Add(1), 10)
	err := s.write(ctx, rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  methodFeedbackSubscribe,
		Params:  feedbackSubscribeParams{Query: path, NotifyCurrentValue: true},
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path.String()).Str("id", id).Msg("feedback subscribed")
	return nil
}

// SendQuery implements QuerySender.
func (s *WSSession) SendQuery(ctx context.Context, q models.Query) error {
	return s.write(ctx, rpcRequest{
		JSONRPC: "2.0",
		ID:      q.CorrelationID,
		Method:  methodPhonebookSearch,
		Params: phonebookSearchParams{
			PhonebookType: q.Scope,
			FolderID:      q.FolderID,
			Offset:        q.Offset,
			Limit:         q.Limit,
		},
	})
}

func (s *WSSession) write(ctx context.Context, req rpcRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s: %w", req.Method, err)
	}

	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err = conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("write %s: %w", req.Method, err)
	}
	if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write %s: %w", req.Method, err)
	}
	return nil
}

func (s *WSSession) handleFrame(ctx context.Context, data []byte) {
	frame, err := DecodeFrame(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("dropping undecodable frame")
		return
	}

	switch frame.Kind {
	case FrameFeedback:
		if s.feedback == nil {
			return
		}
		for _, item := range frame.Feedback {
			s.feedback.Dispatch(item.Path, item.Payload)
		}

	case FramePage:
		sink := s.pageSink()
		if sink == nil {
			s.logger.Warn().Err(ErrNoPageSink).Str("id", frame.ID).Msg("dropping search result")
			return
		}
		s.logger.Debug().Str("id", frame.ID).Int("records", frame.Page.Len()).Int("total", frame.Page.TotalRows).Msg("search result received")
		err = sink.HandleIncomingPage(ctx, frame.ID, frame.Page.Folders, frame.Page.Contacts, frame.Page.TotalRows)
		switch {
		case errors.Is(err, correlator.ErrUnknownCorrelation):
			s.logger.Debug().Str("id", frame.ID).Msg("late search result ignored")
		case err != nil:
			s.logger.Error().Err(err).Str("id", frame.ID).Msg("search result not applied")
		}

	case FrameError:
		if !utils.IsCorrelationID(frame.ID) {
			s.logger.Warn().Err(frame.Err).Str("id", frame.ID).Msg("codec request failed")
			return
		}
		if sink := s.pageSink(); sink != nil {
			sink.HandleSearchFailure(ctx, frame.ID, frame.Err)
		}

	case FrameAck:
		s.logger.Debug().Str("id", frame.ID).Msg("codec acknowledged request")
	}
}

func (s *WSSession) pageSink() PageSink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sink
}
