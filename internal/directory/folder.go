// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package directory

import (
	"slices"

	"github.com/MKhiriev/codec-directory/internal/event"
	"github.com/MKhiriev/codec-directory/models"
)

// Contact is a leaf of the directory tree. Contacts are values: the tree
// keeps one entry per ID and replaces it on update.
type Contact struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	FolderID    string              `json:"folder_id,omitempty"`
	DialMethods []models.DialMethod `json:"dial_methods,omitempty"`
}

func contactFromRecord(rec models.ContactRecord, folderID string) Contact {
	return Contact{
		ID:          rec.ID,
		Name:        rec.Name,
		FolderID:    folderID,
		DialMethods: slices.Clone(rec.DialMethods),
	}
}

func (c Contact) clone() Contact {
	c.DialMethods = slices.Clone(c.DialMethods)
	return c
}

// Folder is a node of the directory tree. A folder's identity is its ID;
// the owning Tree guarantees a single *Folder per ID. All accessors are
// safe for concurrent use; mutation happens only through the Tree.
type Folder struct {
	id   string
	tree *Tree

	// guarded by tree.mu
	name       string
	parent     *Folder
	folders    map[string]*Folder
	folderIDs  []string
	contacts   map[string]Contact
	contactIDs []string

	contentsChanged *event.Event[*Folder]
}

func newFolder(tree *Tree, id, name string) *Folder {
	return &Folder{
		id:              id,
		tree:            tree,
		name:            name,
		folders:         map[string]*Folder{},
		contacts:        map[string]Contact{},
		contentsChanged: event.New[*Folder]("folder.contents_changed", tree.logger),
	}
}

// ID returns the folder id. The root folder of a scope has an empty id.
func (f *Folder) ID() string {
	return f.id
}

// Scope returns the directory scope the folder belongs to.
func (f *Folder) Scope() string {
	return f.tree.scope
}

// IsRoot reports whether f is the root folder of its tree.
func (f *Folder) IsRoot() bool {
	return f == f.tree.root
}

// Name returns the display name.
func (f *Folder) Name() string {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()
	return f.name
}

// Parent returns the parent folder, or nil for the root and for folders
// detached by Clear.
func (f *Folder) Parent() *Folder {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()
	return f.parent
}

// Folders returns the direct child folders in arrival order.
func (f *Folder) Folders() []*Folder {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()

	out := make([]*Folder, 0, len(f.folderIDs))
	for _, id := range f.folderIDs {
		out = append(out, f.folders[id])
	}
	return out
}

// Folder returns the direct child folder with the given id.
func (f *Folder) Folder(id string) (*Folder, bool) {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()
	child, ok := f.folders[id]
	return child, ok
}

// Contacts returns copies of the direct child contacts in arrival order.
func (f *Folder) Contacts() []Contact {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()

	out := make([]Contact, 0, len(f.contactIDs))
	for _, id := range f.contactIDs {
		out = append(out, f.contacts[id].clone())
	}
	return out
}

// Contact returns the direct child contact with the given id.
func (f *Folder) Contact(id string) (Contact, bool) {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()
	c, ok := f.contacts[id]
	return c.clone(), ok
}

// ChildCount returns the number of direct child folders plus contacts.
func (f *Folder) ChildCount() int {
	f.tree.mu.RLock()
	defer f.tree.mu.RUnlock()
	return len(f.folders) + len(f.contacts)
}

// ContentsChanged is raised, after the tree lock is released, whenever a
// direct child folder or contact is added to or removed from f. In-place
// updates of existing children do not raise it.
func (f *Folder) ContentsChanged() *event.Event[*Folder] {
	return f.contentsChanged
}

// The helpers below require tree.mu to be held for writing.

func (f *Folder) attachFolder(child *Folder) {
	child.parent = f
	f.folders[child.id] = child
	f.folderIDs = append(f.folderIDs, child.id)
}

func (f *Folder) detachFolder(child *Folder) {
	delete(f.folders, child.id)
	f.folderIDs = removeID(f.folderIDs, child.id)
	child.parent = nil
}

func (f *Folder) putContact(c Contact) (added bool) {
	if _, ok := f.contacts[c.ID]; !ok {
		f.contactIDs = append(f.contactIDs, c.ID)
		added = true
	}
	c.FolderID = f.id
	f.contacts[c.ID] = c
	return added
}

func (f *Folder) dropContact(id string) {
	delete(f.contacts, id)
	f.contactIDs = removeID(f.contactIDs, id)
}

// isAncestorOf reports whether f is other or one of other's ancestors.
func (f *Folder) isAncestorOf(other *Folder) bool {
	for n := other; n != nil; n = n.parent {
		if n == f {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

// Tree returns the tree owning f.
func (f *Folder) Tree() *Tree {
	return f.tree
}
