// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/event"
	"github.com/MKhiriev/codec-directory/models"
)

// State is the population state of one directory scope.
type State int

const (
	// StateEmpty means the scope holds no search results.
	StateEmpty State = iota
	// StatePopulating means a search is in flight.
	StatePopulating
	// StatePopulated means the last search completed.
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulating:
		return "populating"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MergedPage describes one page folded into a scope.
type MergedPage struct {
	Scope         string
	CorrelationID string
	Folders       []models.FolderRecord
	Contacts      []models.ContactRecord
	Complete      bool
}

// DirectorySynchronizer rebuilds remote phonebooks into per-scope trees.
// It also implements adapter.PageSink.
type DirectorySynchronizer interface {
	// GetRoot returns the root folder of scope, creating the scope on first
	// use. The same scope always yields the same folder.
	GetRoot(scope string) *directory.Folder

	// Tree returns the tree of scope, creating the scope on first use.
	Tree(scope string) *directory.Tree

	// State returns the population state of scope.
	State(scope string) State

	// Scopes lists the scopes created so far, sorted.
	Scopes() []string

	// Populate requests the first page of scope from the remote directory
	// and returns without waiting for results. It fails with
	// ErrAlreadyInProgress while a search for scope is in flight unless
	// force is set, in which case the prior search is cancelled first.
	Populate(ctx context.Context, scope string, force bool) error

	// HandleIncomingPage folds a page answering correlationID into its
	// scope, raises OnResultMerged and, for offset paging, requests the
	// next page while the search is incomplete.
	HandleIncomingPage(ctx context.Context, correlationID string, folders []models.FolderRecord, contacts []models.ContactRecord, reportedTotal int) error

	// HandleSearchFailure abandons the search correlationID.
	HandleSearchFailure(ctx context.Context, correlationID string, cause error)

	// Clear cancels any in-flight search of scope, detaches every child of
	// its root and raises OnCleared. The root folder itself survives.
	Clear(scope string)

	// ExpireSearches cancels searches started more than maxAge ago and
	// returns their correlation ids.
	ExpireSearches(maxAge time.Duration) []string

	// OnResultMerged is raised after every merged page.
	OnResultMerged() *event.Event[MergedPage]

	// OnCleared is raised with the scope name after Clear.
	OnCleared() *event.Event[string]
}

// DirectoryBrowser is a navigation cursor over one directory tree. It never
// mutates the tree.
type DirectoryBrowser interface {
	// GetCurrentFolder returns the folder on top of the navigation stack.
	GetCurrentFolder() *directory.Folder

	// Path returns the navigation stack, root first.
	Path() []*directory.Folder

	// EnterFolder pushes folder and makes it current. Nil or the current
	// folder are ignored. Ancestry is not validated.
	EnterFolder(folder *directory.Folder)

	// GoUp pops the current folder; at the root it re-navigates to root.
	GoUp()

	// GoToRoot resets the stack to the root.
	GoToRoot()

	// OnPathChanged is raised with the new current folder after every
	// navigation.
	OnPathChanged() *event.Event[*directory.Folder]

	// OnPathContentsChanged is raised when a child is added to or removed
	// from the current folder.
	OnPathContentsChanged() *event.Event[*directory.Folder]

	// Close releases every subscription held by the browser.
	Close()
}

// SearchExpiryJob periodically abandons searches the remote side never
// finished answering.
type SearchExpiryJob interface {
	// Start launches the background goroutine checking every interval for
	// searches older than maxAge. A running job is stopped first.
	Start(ctx context.Context, interval, maxAge time.Duration)

	// Stop signals the goroutine to exit and waits for it.
	Stop()
}
