// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the directory synchronizer, the directory browser
// and the background jobs built around them.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/codec-directory/internal/adapter"
	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/models"
)

// Services aggregates everything one device session exposes to the
// handlers and workers. It is built once per session and passed down
// explicitly.
type Services struct {
	Feedback     *router.Router
	Synchronizer DirectorySynchronizer
	ExpiryJob    SearchExpiryJob
	BuildInfo    models.AppBuildInfo

	workersCfg config.Workers

	browsersMu sync.Mutex
	browsers   map[string]DirectoryBrowser

	logger *logger.Logger
}

// NewServices wires the synchronizer to sender and the expiry job to the
// synchronizer.
func NewServices(feedback *router.Router, sender adapter.QuerySender, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*Services, error) {
	log.Info().Msg("creating services...")

	synchronizer, err := NewDirectorySynchronizer(sender, cfg.Directory, log)
	if err != nil {
		return nil, fmt.Errorf("create directory synchronizer: %w", err)
	}

	s := &Services{
		Feedback:     feedback,
		Synchronizer: synchronizer,
		ExpiryJob:    NewSearchExpiryJob(synchronizer, log),
		BuildInfo:    buildInfo,
		workersCfg:   cfg.Workers,
		logger:       log,
	}
	for _, scope := range synchronizer.Scopes() {
		s.Browser(scope)
	}

	return s, nil
}

// Browser returns the navigation cursor of scope, creating it on first use.
// Every scope has exactly one browser; it returns to the root when the
// scope is cleared.
func (s *Services) Browser(scope string) DirectoryBrowser {
	s.browsersMu.Lock()
	defer s.browsersMu.Unlock()

	if b, ok := s.browsers[scope]; ok {
		return b
	}
	if s.browsers == nil {
		s.browsers = map[string]DirectoryBrowser{}
	}

	b := NewScopeBrowser(s.Synchronizer, scope, s.logger)
	l := s.logger.WithComponent("directory_browser")
	b.OnPathChanged().Subscribe(func(f *directory.Folder) {
		l.Debug().Str("scope", scope).Str("folder_id", f.ID()).Str("folder", f.Name()).Msg("browser moved")
	})
	b.OnPathContentsChanged().Subscribe(func(f *directory.Folder) {
		l.Debug().Str("scope", scope).Str("folder_id", f.ID()).Int("children", f.ChildCount()).Msg("current folder changed")
	})

	s.browsers[scope] = b
	return b
}

// Close detaches every browser from the trees and the synchronizer.
func (s *Services) Close() {
	s.browsersMu.Lock()
	defer s.browsersMu.Unlock()

	for scope, b := range s.browsers {
		b.Close()
		delete(s.browsers, scope)
	}
}

// RunExpiryJob runs the search expiry job with the configured cadence until
// ctx is cancelled. It satisfies workers.Worker through workers.Func.
func (s *Services) RunExpiryJob(ctx context.Context) error {
	s.ExpiryJob.Start(ctx, s.workersCfg.SweepInterval, s.workersCfg.SearchTimeout)
	<-ctx.Done()
	s.ExpiryJob.Stop()
	return nil
}
