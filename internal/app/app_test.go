// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/internal/service"
	"github.com/MKhiriev/codec-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.StructuredConfig {
	cfg := config.Defaults()
	cfg.Device.URL = "ws://127.0.0.1:1/ws"
	cfg.Device.ReconnectInterval = 10 * time.Millisecond
	cfg.Device.Feedback = []string{"Status/Call", "Event/CallDisconnect"}
	cfg.Server.HTTPAddress = "127.0.0.1:0"
	return cfg
}

func TestNewApp_Websocket(t *testing.T) {
	a, err := NewApp(testConfig(), models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, a.session)
	assert.Nil(t, a.directory)
	assert.Equal(t, []router.Path{{"Event", "CallDisconnect"}, {"Status", "Call"}}, a.Feedback().EnumerateSubscribedPaths())
	assert.Equal(t, []string{"Corporate", "Local"}, a.Services().Synchronizer.Scopes())
	assert.Equal(t, 1, a.Services().Synchronizer.OnResultMerged().Len())
	assert.Equal(t, 2, a.Services().Synchronizer.OnCleared().Len())
}

func TestNewApp_HTTPDirectory(t *testing.T) {
	cfg := testConfig()
	cfg.Device.URL = ""
	cfg.Directory.Transport = config.TransportHTTP
	cfg.Directory.ServiceURL = "http://directory.local"

	a, err := NewApp(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Nil(t, a.session)
	assert.NotNil(t, a.directory)
}

func TestNewApp_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.Device.URL = ""
	_, err := NewApp(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidDeviceConfigs)

	cfg = testConfig()
	cfg.Directory.Transport = config.TransportHTTP
	_, err = NewApp(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Server.HTTPAddress = ""
	_, err = NewApp(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a, err := NewApp(testConfig(), models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, service.StateEmpty, a.Services().Synchronizer.State("Local"))
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Zero(t, a.Services().Synchronizer.OnCleared().Len())
}
