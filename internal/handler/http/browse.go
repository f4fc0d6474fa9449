// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/service"
	"github.com/MKhiriev/codec-directory/internal/utils"
	"github.com/go-chi/chi/v5"
)

type folderEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children int    `json:"children"`
}

// browseView is the browser position: breadcrumbs root first and the
// direct children of the current folder.
type browseView struct {
	Scope    string              `json:"scope"`
	Path     []folderEntry       `json:"path"`
	Folders  []folderEntry       `json:"folders"`
	Contacts []directory.Contact `json:"contacts"`
}

func newFolderEntry(f *directory.Folder) folderEntry {
	return folderEntry{ID: f.ID(), Name: f.Name(), Children: f.ChildCount()}
}

func newBrowseView(scope string, b service.DirectoryBrowser) browseView {
	view := browseView{Scope: scope}
	for _, f := range b.Path() {
		view.Path = append(view.Path, newFolderEntry(f))
	}

	current := b.GetCurrentFolder()
	children := current.Folders()
	view.Folders = make([]folderEntry, 0, len(children))
	for _, f := range children {
		view.Folders = append(view.Folders, newFolderEntry(f))
	}
	view.Contacts = current.Contacts()
	return view
}

// browser resolves the scope URL parameter to its browser, writing 404 for
// scopes the synchronizer does not know.
func (h *Handler) browser(w http.ResponseWriter, r *http.Request) (string, service.DirectoryBrowser, bool) {
	scope := chi.URLParam(r, "scope")
	if !h.knownScope(scope) {
		h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownScope, scope))
		return "", nil, false
	}
	return scope, h.services.Browser(scope), true
}

func (h *Handler) getBrowser(w http.ResponseWriter, r *http.Request) {
	scope, b, ok := h.browser(w, r)
	if !ok {
		return
	}
	_, _ = utils.WriteJSON(w, newBrowseView(scope, b), http.StatusOK)
}

func (h *Handler) enterFolder(w http.ResponseWriter, r *http.Request) {
	scope, b, ok := h.browser(w, r)
	if !ok {
		return
	}

	folderID := chi.URLParam(r, "folderID")
	folder, found := h.services.Synchronizer.Tree(scope).Lookup(folderID)
	if !found {
		h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownFolder, folderID))
		return
	}

	b.EnterFolder(folder)
	_, _ = utils.WriteJSON(w, newBrowseView(scope, b), http.StatusOK)
}

func (h *Handler) goUp(w http.ResponseWriter, r *http.Request) {
	scope, b, ok := h.browser(w, r)
	if !ok {
		return
	}

	b.GoUp()
	_, _ = utils.WriteJSON(w, newBrowseView(scope, b), http.StatusOK)
}

func (h *Handler) goToRoot(w http.ResponseWriter, r *http.Request) {
	scope, b, ok := h.browser(w, r)
	if !ok {
		return
	}

	b.GoToRoot()
	_, _ = utils.WriteJSON(w, newBrowseView(scope, b), http.StatusOK)
}
