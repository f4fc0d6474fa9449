// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package correlator

import (
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contacts(prefix string, n int) []models.ContactRecord {
	out := make([]models.ContactRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ContactRecord{ID: fmt.Sprintf("%s-%d", prefix, i), Name: "Contact"})
	}
	return out
}

func newTestCorrelator(t *testing.T) (*Correlator, *directory.Tree) {
	t.Helper()
	return New(logger.Nop()), directory.NewTree("Corporate", logger.Nop())
}

// ── BeginOperation ───────────────────────────────────────────────────────────

func TestCorrelator_BeginOperation(t *testing.T) {
	c, tree := newTestCorrelator(t)

	op, err := c.BeginOperation("req-1", "Corporate", 0, 50, tree.Root())

	require.NoError(t, err)
	assert.Equal(t, "req-1", op.CorrelationID)
	assert.False(t, op.TotalKnown)
	assert.Zero(t, op.ReceivedCount)
	assert.Same(t, tree.Root(), op.Target)
	assert.Len(t, c.InFlight(), 1)
}

func TestCorrelator_BeginOperation_Duplicate(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 50, tree.Root())
	require.NoError(t, err)

	_, err = c.BeginOperation("req-1", "Corporate", 0, 50, tree.Root())

	assert.ErrorIs(t, err, ErrDuplicateCorrelation)
}

func TestCorrelator_BeginOperation_NoTarget(t *testing.T) {
	c, _ := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 50, nil)
	assert.ErrorIs(t, err, ErrNoTarget)
}

// ── AcceptPage ───────────────────────────────────────────────────────────────

func TestCorrelator_PaginationCompletesOnLastPage(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 15, tree.Root())
	require.NoError(t, err)

	first, err := c.AcceptPage("req-1", nil, contacts("a", 15), 21)
	require.NoError(t, err)
	assert.False(t, first.Complete)
	assert.Equal(t, 15, first.Operation.ReceivedCount)
	assert.Equal(t, 15, first.Operation.NextOffset())
	_, tracked := c.Lookup("req-1")
	assert.True(t, tracked)

	second, err := c.AcceptPage("req-1", nil, contacts("b", 6), 21)
	require.NoError(t, err)
	assert.True(t, second.Complete)
	assert.Equal(t, 21, second.Operation.ReceivedCount)
	assert.Equal(t, 2, second.Operation.Pages)

	assert.Empty(t, c.InFlight())
	assert.Equal(t, 21, tree.Root().ChildCount())
}

func TestCorrelator_CancelBeforeCompletion_LatePageUnknown(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 15, tree.Root())
	require.NoError(t, err)
	_, err = c.AcceptPage("req-1", nil, contacts("a", 15), 21)
	require.NoError(t, err)

	assert.True(t, c.CancelOperation("req-1"))

	_, err = c.AcceptPage("req-1", nil, contacts("b", 6), 21)
	assert.ErrorIs(t, err, ErrUnknownCorrelation)
	assert.Equal(t, 15, tree.Root().ChildCount(), "late page is dropped")
}

func TestCorrelator_AcceptPage_Unknown(t *testing.T) {
	c, _ := newTestCorrelator(t)
	_, err := c.AcceptPage("never-started", nil, nil, 0)
	assert.ErrorIs(t, err, ErrUnknownCorrelation)
}

func TestCorrelator_ReportedTotalLastWriteWins(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 10, tree.Root())
	require.NoError(t, err)

	res, err := c.AcceptPage("req-1", nil, contacts("a", 10), 100)
	require.NoError(t, err)
	assert.False(t, res.Complete)

	res, err = c.AcceptPage("req-1", nil, contacts("b", 2), 12)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 12, res.Operation.TotalExpected)
}

func TestCorrelator_EmptyResultCompletesImmediately(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 10, tree.Root())
	require.NoError(t, err)

	res, err := c.AcceptPage("req-1", nil, nil, 0)

	require.NoError(t, err)
	assert.True(t, res.Complete)
}

func TestCorrelator_FoldersCountTowardsTotal(t *testing.T) {
	c, tree := newTestCorrelator(t)
	_, err := c.BeginOperation("req-1", "Corporate", 0, 50, tree.Root())
	require.NoError(t, err)

	res, err := c.AcceptPage("req-1",
		[]models.FolderRecord{{ID: "f1"}, {ID: "f2"}},
		contacts("c", 1),
		3,
	)

	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, []*directory.Folder{tree.Root()}, res.Merge.Changed())
}

// ── Cancel / Expired ─────────────────────────────────────────────────────────

func TestCorrelator_CancelUnknownIsNoop(t *testing.T) {
	c, _ := newTestCorrelator(t)
	assert.False(t, c.CancelOperation("nope"))
}

func TestCorrelator_CancelScope(t *testing.T) {
	c, tree := newTestCorrelator(t)
	other := directory.NewTree("Local", logger.Nop())
	_, _ = c.BeginOperation("a", "Corporate", 0, 10, tree.Root())
	_, _ = c.BeginOperation("b", "Corporate", 0, 10, tree.Root())
	_, _ = c.BeginOperation("c", "Local", 0, 10, other.Root())

	ids := c.CancelScope("Corporate")

	assert.ElementsMatch(t, []string{"a", "b"}, ids)
	require.Len(t, c.InFlight(), 1)
	assert.Equal(t, "c", c.InFlight()[0].CorrelationID)
}

func TestCorrelator_Expired(t *testing.T) {
	c, tree := newTestCorrelator(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, _ = c.BeginOperation("old", "Corporate", 0, 10, tree.Root())
	now = now.Add(time.Minute)
	_, _ = c.BeginOperation("fresh", "Corporate", 0, 10, tree.Root())
	now = now.Add(10 * time.Second)

	expired := c.Expired(30 * time.Second)

	require.Len(t, expired, 1)
	assert.Equal(t, "old", expired[0].CorrelationID)
	assert.Len(t, c.InFlight(), 2, "Expired does not cancel")
}
