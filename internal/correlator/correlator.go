// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package correlator tracks in-flight paginated directory searches keyed by
// correlation id and folds arriving pages into the searched folder.
//
// Pages for one correlation id are expected to arrive serialised by the
// owning transport. The correlator has no timeout of its own; callers that
// want one use Expired and CancelOperation.
package correlator

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/models"
)

// Operation is a snapshot of one in-flight search.
type Operation struct {
	CorrelationID string
	Scope         string
	Offset        int
	Limit         int
	// TotalExpected is the last total reported by the remote service; it
	// is meaningful only when TotalKnown is set.
	TotalExpected int
	TotalKnown    bool
	ReceivedCount int
	Target        *directory.Folder
	StartedAt     time.Time
	Pages         int
}

// NextOffset is the offset a follow-up page request should use.
func (o Operation) NextOffset() int {
	return o.Offset + o.ReceivedCount
}

// PageResult is returned by AcceptPage.
type PageResult struct {
	Operation Operation
	Complete  bool
	Merge     directory.MergeResult
}

// Correlator tracks search operations. It is safe for concurrent use.
type Correlator struct {
	mu       sync.Mutex
	inFlight map[string]*Operation
	now      func() time.Time

	logger *logger.Logger
}

// New returns an empty Correlator.
func New(log *logger.Logger) *Correlator {
	return &Correlator{
		inFlight: map[string]*Operation{},
		now:      time.Now,
		logger:   log.WithComponent("correlator"),
	}
}

// BeginOperation starts tracking a search answering into target.
func (c *Correlator) BeginOperation(correlationID, scope string, offset, limit int, target *directory.Folder) (Operation, error) {
	if target == nil {
		return Operation{}, ErrNoTarget
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inFlight[correlationID]; ok {
		return Operation{}, fmt.Errorf("begin %q: %w", correlationID, ErrDuplicateCorrelation)
	}

	op := &Operation{
		CorrelationID: correlationID,
		Scope:         scope,
		Offset:        offset,
		Limit:         limit,
		Target:        target,
		StartedAt:     c.now(),
	}
	c.inFlight[correlationID] = op

	c.logger.Debug().
		Str("correlation_id", correlationID).
		Str("scope", scope).
		Int("offset", offset).
		Int("limit", limit).
		Msg("search operation started")

	return *op, nil
}

// AcceptPage merges one page into the operation's target folder.
//
// ReceivedCount grows by the number of records in the page and
// TotalExpected takes the reported total of the latest page. The operation
// completes, and stops being tracked, once ReceivedCount reaches
// TotalExpected. The caller must Notify the returned merge result.
func (c *Correlator) AcceptPage(correlationID string, folders []models.FolderRecord, contacts []models.ContactRecord, reportedTotal int) (PageResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	op, ok := c.inFlight[correlationID]
	if !ok {
		c.logger.Warn().
			Str("correlation_id", correlationID).
			Int("records", len(folders)+len(contacts)).
			Msg("dropping page for unknown search")
		return PageResult{}, fmt.Errorf("accept page %q: %w", correlationID, ErrUnknownCorrelation)
	}

	tree := op.Target.Tree()
	merge := tree.Merge(op.Target, folders, contacts)

	op.ReceivedCount += len(folders) + len(contacts)
	op.TotalExpected = reportedTotal
	op.TotalKnown = true
	op.Pages++

	complete := op.ReceivedCount >= op.TotalExpected
	if complete {
		delete(c.inFlight, correlationID)
	}

	c.logger.Debug().
		Str("correlation_id", correlationID).
		Int("received", op.ReceivedCount).
		Int("total", op.TotalExpected).
		Bool("complete", complete).
		Msg("search page merged")

	return PageResult{Operation: *op, Complete: complete, Merge: merge}, nil
}

// CancelOperation stops tracking correlationID without completing it. It
// reports whether an operation was removed.
func (c *Correlator) CancelOperation(correlationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inFlight[correlationID]; !ok {
		return false
	}
	delete(c.inFlight, correlationID)
	c.logger.Debug().Str("correlation_id", correlationID).Msg("search operation cancelled")
	return true
}

// CancelScope cancels every operation of scope and returns their ids.
func (c *Correlator) CancelScope(scope string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ids []string
	for id, op := range c.inFlight {
		if op.Scope == scope {
			delete(c.inFlight, id)
			ids = append(ids, id)
		}
	}
	return ids
}

// Lookup returns a snapshot of the operation tracked under correlationID.
func (c *Correlator) Lookup(correlationID string) (Operation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	op, ok := c.inFlight[correlationID]
	if !ok {
		return Operation{}, false
	}
	return *op, true
}

// InFlight returns snapshots of all tracked operations.
func (c *Correlator) InFlight() []Operation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Operation, 0, len(c.inFlight))
	for _, op := range c.inFlight {
		out = append(out, *op)
	}
	return out
}

// Expired returns snapshots of operations started before now-maxAge. It
// does not cancel them.
func (c *Correlator) Expired(maxAge time.Duration) []Operation {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := c.now().Add(-maxAge)
	var out []Operation
	for _, op := range c.inFlight {
		if op.StartedAt.Before(deadline) {
			out = append(out, *op)
		}
	}
	return out
}
