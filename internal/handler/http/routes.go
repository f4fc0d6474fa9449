// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version", h.getVersion)
	router.Get("/api/router/paths", h.getSubscribedPaths)

	router.Route("/api/directory", func(r chi.Router) {
		r.Get("/", h.listScopes)
		r.Get("/{scope}", h.getScope)
		r.Delete("/{scope}", h.clearScope)
		r.Post("/{scope}/populate", h.populateScope)

		r.Get("/{scope}/browse", h.getBrowser)
		r.Post("/{scope}/browse/enter/{folderID}", h.enterFolder)
		r.Post("/{scope}/browse/up", h.goUp)
		r.Post("/{scope}/browse/root", h.goToRoot)
	})

	return router
}
