// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/codec-directory/internal/app"
	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("codecd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("device_url", cfg.Device.URL).
		Str("transport", cfg.Directory.Transport).
		Str("paging", cfg.Directory.Paging).
		Strs("scopes", cfg.Directory.Scopes).
		Str("http_address", cfg.Server.HTTPAddress).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a, err := app.NewApp(cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating app")
	}

	if err = a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("app stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
