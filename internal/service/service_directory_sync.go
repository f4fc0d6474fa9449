// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/codec-directory/internal/adapter"
	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/correlator"
	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/event"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/utils"
	"github.com/MKhiriev/codec-directory/models"
)

const defaultPageLimit = 100

type idGenerator interface {
	Generate() string
}

type scopeState struct {
	tree          *directory.Tree
	state         State
	correlationID string
}

type directorySynchronizer struct {
	sender     adapter.QuerySender
	correlator *correlator.Correlator
	ids        idGenerator

	pageLimit  int
	offsetPage bool

	mu     sync.Mutex
	scopes map[string]*scopeState

	onResultMerged *event.Event[MergedPage]
	onCleared      *event.Event[string]

	logger *logger.Logger
}

// NewDirectorySynchronizer builds a synchronizer issuing searches through
// sender. With cfg.Paging set to config.PagingOffset (the default) follow-up
// pages are requested explicitly; with config.PagingSingle the remote side
// is expected to push every page on its own.
func NewDirectorySynchronizer(sender adapter.QuerySender, cfg config.Directory, log *logger.Logger) (DirectorySynchronizer, error) {
	if sender == nil {
		return nil, ErrNoQuerySender
	}

	l := log.WithComponent("directory_sync")

	limit := cfg.PageLimit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	s := &directorySynchronizer{
		sender:         sender,
		correlator:     correlator.New(l),
		ids:            utils.NewUUIDGenerator(),
		pageLimit:      limit,
		offsetPage:     cfg.Paging != config.PagingSingle,
		scopes:         map[string]*scopeState{},
		onResultMerged: event.New[MergedPage]("directory.result_merged", l),
		onCleared:      event.New[string]("directory.cleared", l),
		logger:         l,
	}

	for _, scope := range cfg.Scopes {
		if scope != "" {
			s.GetRoot(scope)
		}
	}

	return s, nil
}

func (s *directorySynchronizer) scopeLocked(scope string) *scopeState {
	st, ok := s.scopes[scope]
	if !ok {
		st = &scopeState{tree: directory.NewTree(scope, s.logger), state: StateEmpty}
		s.scopes[scope] = st
	}
	return st
}

// settleLocked picks the resting state of a scope whose search ended
// without completing.
func settleLocked(st *scopeState) {
	st.correlationID = ""
	if st.tree.Root().ChildCount() > 0 {
		st.state = StatePopulated
		return
	}
	st.state = StateEmpty
}

func (s *directorySynchronizer) GetRoot(scope string) *directory.Folder {
	return s.Tree(scope).Root()
}

func (s *directorySynchronizer) Tree(scope string) *directory.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scopeLocked(scope).tree
}

func (s *directorySynchronizer) State(scope string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.scopes[scope]; ok {
		return st.state
	}
	return StateEmpty
}

func (s *directorySynchronizer) Scopes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

func (s *directorySynchronizer) Populate(ctx context.Context, scope string, force bool) error {
	if scope == "" {
		return ErrEmptyScope
	}

	s.mu.Lock()
	st := s.scopeLocked(scope)
	if st.state == StatePopulating {
		if !force {
			s.mu.Unlock()
			return fmt.Errorf("populate %q: %w", scope, ErrAlreadyInProgress)
		}
		s.correlator.CancelOperation(st.correlationID)
		s.logger.Info().
			Str("scope", scope).
			Str("correlation_id", st.correlationID).
			Msg("forced repopulation cancelled running search")
	}

	id := s.ids.Generate()
	op, err := s.correlator.BeginOperation(id, scope, 0, s.pageLimit, st.tree.Root())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("populate %q: %w", scope, err)
	}
	st.state = StatePopulating
	st.correlationID = id
	s.mu.Unlock()

	q := models.Query{CorrelationID: id, Scope: scope, Offset: op.Offset, Limit: op.Limit}
	if err = s.sender.SendQuery(ctx, q); err != nil {
		s.abandon(id)
		return fmt.Errorf("populate %q: %w: %w", scope, ErrSendQuery, err)
	}

	ev := s.logger.Info().Str("scope", scope).Str("correlation_id", id)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		ev = ev.Str("trace_id", traceID)
	}
	ev.Msg("directory search issued")
	return nil
}

func (s *directorySynchronizer) HandleIncomingPage(ctx context.Context, correlationID string, folders []models.FolderRecord, contacts []models.ContactRecord, reportedTotal int) error {
	res, err := s.correlator.AcceptPage(correlationID, folders, contacts, reportedTotal)
	if err != nil {
		return err
	}
	op := res.Operation
	pageLen := len(folders) + len(contacts)

	// A page without records cannot advance the offset; treat the search as
	// exhausted instead of asking for the same page forever.
	stalled := !res.Complete && s.offsetPage && pageLen == 0
	if stalled {
		s.correlator.CancelOperation(correlationID)
		s.logger.Warn().
			Str("scope", op.Scope).
			Str("correlation_id", correlationID).
			Int("received", op.ReceivedCount).
			Int("total", op.TotalExpected).
			Msg("empty page before reported total, ending search")
	}

	s.mu.Lock()
	st, ok := s.scopes[op.Scope]
	current := ok && st.correlationID == correlationID
	if current && (res.Complete || stalled) {
		st.state = StatePopulated
		st.correlationID = ""
	}
	followUp := current && !res.Complete && !stalled && s.offsetPage
	s.mu.Unlock()

	res.Merge.Notify()
	s.onResultMerged.Emit(MergedPage{
		Scope:         op.Scope,
		CorrelationID: correlationID,
		Folders:       folders,
		Contacts:      contacts,
		Complete:      res.Complete || stalled,
	})

	if !followUp {
		return nil
	}

	next := models.Query{
		CorrelationID: correlationID,
		Scope:         op.Scope,
		FolderID:      op.Target.ID(),
		Offset:        op.NextOffset(),
		Limit:         op.Limit,
	}
	if err = s.sender.SendQuery(ctx, next); err != nil {
		s.abandon(correlationID)
		return fmt.Errorf("next page of %q: %w: %w", op.Scope, ErrSendQuery, err)
	}
	return nil
}

func (s *directorySynchronizer) HandleSearchFailure(_ context.Context, correlationID string, cause error) {
	s.logger.Error().Err(cause).Str("correlation_id", correlationID).Msg("directory search failed")
	s.abandon(correlationID)
}

// abandon cancels correlationID and settles its scope if it still owns it.
func (s *directorySynchronizer) abandon(correlationID string) {
	op, tracked := s.correlator.Lookup(correlationID)
	s.correlator.CancelOperation(correlationID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tracked {
		if st, ok := s.scopes[op.Scope]; ok && st.correlationID == correlationID {
			settleLocked(st)
		}
		return
	}
	for _, st := range s.scopes {
		if st.correlationID == correlationID {
			settleLocked(st)
		}
	}
}

func (s *directorySynchronizer) Clear(scope string) {
	s.mu.Lock()
	st := s.scopeLocked(scope)
	cancelled := s.correlator.CancelScope(scope)
	st.state = StateEmpty
	st.correlationID = ""
	res := st.tree.Clear()
	s.mu.Unlock()

	res.Notify()

	s.logger.Info().Str("scope", scope).Strs("cancelled", cancelled).Msg("directory cleared")
	s.onCleared.Emit(scope)
}

func (s *directorySynchronizer) ExpireSearches(maxAge time.Duration) []string {
	var ids []string
	for _, op := range s.correlator.Expired(maxAge) {
		s.logger.Warn().
			Str("scope", op.Scope).
			Str("correlation_id", op.CorrelationID).
			Time("started_at", op.StartedAt).
			Msg("directory search timed out")
		s.abandon(op.CorrelationID)
		ids = append(ids, op.CorrelationID)
	}
	return ids
}

func (s *directorySynchronizer) OnResultMerged() *event.Event[MergedPage] {
	return s.onResultMerged
}

func (s *directorySynchronizer) OnCleared() *event.Event[string] {
	return s.onCleared
}

// IsUnknownCorrelation reports whether err means a page arrived for a
// search that is no longer tracked. Such pages are expected after Clear or
// a forced repopulation and are safe to ignore.
func IsUnknownCorrelation(err error) bool {
	return errors.Is(err, correlator.ErrUnknownCorrelation)
}
