// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app composes the daemon: feedback router, codec session or
// directory service client, synchronizer, background jobs and diagnostics
// server, all built explicitly from one configuration.
package app

import (
	"context"
	"fmt"

	"github.com/MKhiriev/codec-directory/internal/adapter"
	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/handler"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/internal/server"
	"github.com/MKhiriev/codec-directory/internal/service"
	"github.com/MKhiriev/codec-directory/internal/workers"
	"github.com/MKhiriev/codec-directory/models"
)

type pageSinkSetter interface {
	SetPageSink(sink adapter.PageSink)
}

type App struct {
	feedback  *router.Router
	services  *service.Services
	session   *adapter.WSSession
	directory *adapter.HTTPDirectory
	workers   *workers.Workers

	logger *logger.Logger
}

// NewApp builds every component described by cfg. Nothing runs until Run.
func NewApp(cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	a := &App{
		feedback: router.NewRouter(log),
		logger:   log,
	}

	if cfg.Device.URL != "" {
		a.session = adapter.NewWSSession(cfg.Device, a.feedback, log)
	}

	var (
		sender adapter.QuerySender
		sinks  pageSinkSetter
	)
	switch cfg.Directory.Transport {
	case config.TransportHTTP:
		d, err := adapter.NewHTTPDirectory(cfg.Directory, log)
		if err != nil {
			return nil, fmt.Errorf("create directory client: %w", err)
		}
		a.directory = d
		sender, sinks = d, d
	default:
		if a.session == nil {
			return nil, fmt.Errorf("%w: no device url", config.ErrInvalidDeviceConfigs)
		}
		sender, sinks = a.session, a.session
	}

	services, err := service.NewServices(a.feedback, sender, cfg, buildInfo, log)
	if err != nil {
		return nil, err
	}
	sinks.SetPageSink(services.Synchronizer)
	a.services = services

	a.watchFeedback(cfg.Device.Feedback)
	a.watchDirectory()

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}
	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	a.workers = workers.NewWorkers(log).
		Add("search_expiry", workers.Func(services.RunExpiryJob)).
		Add("http_server", workers.Func(srv.RunServer))
	if a.session != nil {
		a.workers.Add("codec_session", workers.Func(a.session.Run))
	}

	return a, nil
}

// watchFeedback logs every notification on the subscribed paths so the
// router always has a consumer for what the codec is asked to send.
func (a *App) watchFeedback(paths []string) {
	l := a.logger.WithComponent("feedback")
	trace := router.NewCallback(func(path router.Path, payload any) {
		l.Debug().Str("path", path.String()).Interface("payload", payload).Msg("feedback")
	})

	for _, p := range paths {
		a.feedback.Register(router.ParsePath(p), trace)
	}
}

// watchDirectory logs every merged search page.
func (a *App) watchDirectory() {
	l := a.logger.WithComponent("directory")
	a.services.Synchronizer.OnResultMerged().Subscribe(func(p service.MergedPage) {
		l.Info().
			Str("scope", p.Scope).
			Str("correlation_id", p.CorrelationID).
			Int("folders", len(p.Folders)).
			Int("contacts", len(p.Contacts)).
			Bool("complete", p.Complete).
			Msg("directory page merged")
	})
}

// Feedback returns the router codec notifications are dispatched to.
func (a *App) Feedback() *router.Router {
	return a.feedback
}

// Services returns the service aggregate.
func (a *App) Services() *service.Services {
	return a.services
}

// Run blocks until ctx is cancelled or a worker fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("starting codec directory daemon")

	err := a.workers.Run(ctx)
	if a.directory != nil {
		a.directory.Wait()
	}
	a.services.Close()

	a.logger.Info().Msg("codec directory daemon stopped")
	return err
}
