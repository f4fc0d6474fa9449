// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/internal/utils"
)

type subscribedPath struct {
	Path        string `json:"path"`
	Subscribers int    `json:"subscribers"`
}

func (h *Handler) getSubscribedPaths(w http.ResponseWriter, r *http.Request) {
	paths := h.services.Feedback.EnumerateSubscribedPaths()

	out := make([]subscribedPath, 0, len(paths))
	for _, p := range paths {
		out = append(out, subscribedPath{
			Path:        displayPath(p),
			Subscribers: h.services.Feedback.SubscriberCount(p),
		})
	}

	_, _ = utils.WriteJSON(w, out, http.StatusOK)
}

func displayPath(p router.Path) string {
	if len(p) == 0 {
		return "/"
	}
	return p.String()
}
