// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/service"
	"github.com/MKhiriev/codec-directory/internal/utils"
	"github.com/go-chi/chi/v5"
)

type scopeSummary struct {
	Scope    string        `json:"scope"`
	State    service.State `json:"state"`
	Folders  int           `json:"folders"`
	Contacts int           `json:"contacts"`
}

type scopeDetails struct {
	scopeSummary
	Tree directory.FolderView `json:"tree"`
}

func (h *Handler) summary(scope string) scopeSummary {
	sync := h.services.Synchronizer
	folders, contacts := sync.Tree(scope).Counts()
	return scopeSummary{
		Scope:    scope,
		State:    sync.State(scope),
		Folders:  folders,
		Contacts: contacts,
	}
}

func (h *Handler) knownScope(scope string) bool {
	return slices.Contains(h.services.Synchronizer.Scopes(), scope)
}

func (h *Handler) listScopes(w http.ResponseWriter, r *http.Request) {
	scopes := h.services.Synchronizer.Scopes()

	out := make([]scopeSummary, 0, len(scopes))
	for _, scope := range scopes {
		out = append(out, h.summary(scope))
	}

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) getScope(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if !h.knownScope(scope) {
		h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownScope, scope))
		return
	}

	_, _ = utils.WriteJSON(w, scopeDetails{
		scopeSummary: h.summary(scope),
		Tree:         h.services.Synchronizer.Tree(scope).Snapshot(nil),
	}, http.StatusOK)
}

func (h *Handler) populateScope(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	if err := h.services.Synchronizer.Populate(r.Context(), scope, force); err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, h.summary(scope), http.StatusAccepted)
}

func (h *Handler) clearScope(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if !h.knownScope(scope) {
		h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownScope, scope))
		return
	}

	h.services.Synchronizer.Clear(scope)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	utils.WriteError(w, err.Error(), status)
}
