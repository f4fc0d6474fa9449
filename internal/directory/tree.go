// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package directory models the folder/contact tree reconstructed from a
// remote phonebook and the merge rules used to grow it page by page.
//
// A Tree is created once per directory scope and owns its root folder for
// its whole lifetime. Folders are indexed by id so replayed or out-of-order
// records merge into the existing node instead of duplicating it. A record
// whose declared parent is unknown is attached to the root rather than
// dropped.
package directory

import (
	"sync"

	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/models"
)

// Tree is the directory of one scope.
type Tree struct {
	scope string

	mu           sync.RWMutex
	root         *Folder
	folders      map[string]*Folder
	contactOwner map[string]*Folder

	logger *logger.Logger
}

// NewTree returns an empty tree for scope.
func NewTree(scope string, log *logger.Logger) *Tree {
	l := log.WithComponent("directory")
	l.Logger = l.With().Str("scope", scope).Logger()

	t := &Tree{
		scope:        scope,
		folders:      map[string]*Folder{},
		contactOwner: map[string]*Folder{},
		logger:       l,
	}
	t.root = newFolder(t, "", scope)
	return t
}

// Scope returns the scope name.
func (t *Tree) Scope() string {
	return t.scope
}

// Root returns the root folder. Its identity never changes.
func (t *Tree) Root() *Folder {
	return t.root
}

// Lookup returns the folder with id anywhere in the tree. The empty id
// resolves to the root.
func (t *Tree) Lookup(id string) (*Folder, bool) {
	if id == "" {
		return t.root, true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.folders[id]
	return f, ok
}

// Counts returns the number of folders and contacts in the tree, root
// excluded.
func (t *Tree) Counts() (folders, contacts int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.folders), len(t.contactOwner)
}

// Merge folds one page of records into the tree beneath target (the root
// when target is nil or not part of this tree).
//
// Folder records are applied first. A record with an empty parent id goes
// under target; a record whose parent arrives later in the same page is
// deferred until its parent exists; a record whose parent is still unknown
// after the whole page is attached to the root. Contacts follow the same
// rules keyed by their folder id. Records already present (same id) are
// updated in place, and moved when their declared parent is now known and
// differs from the current one.
//
// The returned result must be Notify'd by the caller once it holds no
// locks, so listeners may call back into the directory freely.
func (t *Tree) Merge(target *Folder, folders []models.FolderRecord, contacts []models.ContactRecord) MergeResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	if target == nil || target.tree != t || !t.attachedLocked(target) {
		target = t.root
	}

	res := MergeResult{}

	pending := folders
	for len(pending) > 0 {
		var deferred []models.FolderRecord
		for _, rec := range pending {
			if rec.ID == "" || rec.ID == rec.ParentID {
				t.logger.Warn().Str("folder_id", rec.ID).Msg("skipping folder record with invalid id")
				continue
			}
			parent, ok := t.resolveLocked(rec.ParentID, target)
			if !ok {
				deferred = append(deferred, rec)
				continue
			}
			t.upsertFolderLocked(rec, parent, false, &res)
		}

		if len(deferred) == len(pending) {
			for _, rec := range deferred {
				t.logger.Warn().
					Str("folder_id", rec.ID).
					Str("parent_id", rec.ParentID).
					Msg("unknown parent folder, attaching to root")
				res.Misplaced++
				t.upsertFolderLocked(rec, t.root, true, &res)
			}
			break
		}
		pending = deferred
	}

	for _, rec := range contacts {
		if rec.ID == "" {
			t.logger.Warn().Msg("skipping contact record without id")
			continue
		}
		folder, ok := t.resolveLocked(rec.FolderID, target)
		if !ok {
			t.logger.Warn().
				Str("contact_id", rec.ID).
				Str("folder_id", rec.FolderID).
				Msg("unknown contact folder, attaching to root")
			res.Misplaced++
			folder = t.root
		}
		t.upsertContactLocked(rec, folder, !ok, &res)
	}

	return res
}

// Clear detaches every child of the root and forgets all indexed nodes.
// Detached folders keep their own children but lose their parent link.
func (t *Tree) Clear() MergeResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	res := MergeResult{}
	if len(t.root.folders) == 0 && len(t.root.contacts) == 0 {
		return res
	}

	for _, id := range append([]string(nil), t.root.folderIDs...) {
		t.root.detachFolder(t.root.folders[id])
	}
	t.root.contacts = map[string]Contact{}
	t.root.contactIDs = nil

	t.folders = map[string]*Folder{}
	t.contactOwner = map[string]*Folder{}

	res.changes.mark(t.root)
	return res
}

// Snapshot returns a deep copy of the subtree rooted at f (the root when f
// is nil).
func (t *Tree) Snapshot(f *Folder) FolderView {
	if f == nil {
		f = t.root
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return snapshotLocked(f)
}

// FolderView is a read-only copy of a folder and its descendants.
type FolderView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Folders  []FolderView `json:"folders,omitempty"`
	Contacts []Contact    `json:"contacts,omitempty"`
}

func snapshotLocked(f *Folder) FolderView {
	view := FolderView{ID: f.id, Name: f.name}
	for _, id := range f.folderIDs {
		view.Folders = append(view.Folders, snapshotLocked(f.folders[id]))
	}
	for _, id := range f.contactIDs {
		view.Contacts = append(view.Contacts, f.contacts[id].clone())
	}
	return view
}

func (t *Tree) attachedLocked(f *Folder) bool {
	if f == t.root {
		return true
	}
	indexed, ok := t.folders[f.id]
	return ok && indexed == f
}

// resolveLocked maps a declared parent id to a folder. The empty id means
// the search target.
func (t *Tree) resolveLocked(parentID string, target *Folder) (*Folder, bool) {
	switch {
	case parentID == "":
		return target, true
	case parentID == target.id:
		return target, true
	}
	f, ok := t.folders[parentID]
	return f, ok
}

func (t *Tree) upsertFolderLocked(rec models.FolderRecord, parent *Folder, fallback bool, res *MergeResult) {
	existing, ok := t.folders[rec.ID]
	if !ok {
		f := newFolder(t, rec.ID, rec.Name)
		parent.attachFolder(f)
		t.folders[rec.ID] = f
		res.FoldersAdded++
		res.changes.mark(parent)
		return
	}

	existing.name = rec.Name
	res.FoldersUpdated++

	if fallback || existing.parent == parent || existing.isAncestorOf(parent) {
		return
	}
	if old := existing.parent; old != nil {
		old.detachFolder(existing)
		res.changes.mark(old)
	}
	parent.attachFolder(existing)
	res.changes.mark(parent)
}

func (t *Tree) upsertContactLocked(rec models.ContactRecord, folder *Folder, fallback bool, res *MergeResult) {
	c := contactFromRecord(rec, folder.id)

	owner, ok := t.contactOwner[rec.ID]
	if !ok {
		folder.putContact(c)
		t.contactOwner[rec.ID] = folder
		res.ContactsAdded++
		res.changes.mark(folder)
		return
	}

	res.ContactsUpdated++
	if fallback || owner == folder {
		owner.putContact(c)
		return
	}

	owner.dropContact(rec.ID)
	res.changes.mark(owner)
	folder.putContact(c)
	t.contactOwner[rec.ID] = folder
	res.changes.mark(folder)
}
