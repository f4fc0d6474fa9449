// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/codec-directory/internal/config"
	"github.com/MKhiriev/codec-directory/internal/logger"
	"github.com/MKhiriev/codec-directory/internal/mock"
	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServices(t *testing.T) (*Services, *mock.MockQuerySender) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sender := mock.NewMockQuerySender(ctrl)

	cfg := config.Defaults()
	cfg.Directory.Scopes = []string{"Local", "Corporate"}

	s, err := NewServices(router.NewRouter(logger.Nop()), sender, cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, sender
}

func TestNewServices_NilSender(t *testing.T) {
	_, err := NewServices(router.NewRouter(logger.Nop()), nil, config.Defaults(), models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.ErrorIs(t, err, ErrNoQuerySender)
}

func TestServices_BrowserPerScope(t *testing.T) {
	s, _ := newTestServices(t)

	local := s.Browser("Local")
	assert.Same(t, local, s.Browser("Local"))
	assert.NotSame(t, local, s.Browser("Corporate"))
	assert.Same(t, s.Synchronizer.GetRoot("Local"), local.GetCurrentFolder())
	assert.Len(t, s.browsers, 2)
}

func TestServices_BrowserReturnsToRootOnClear(t *testing.T) {
	s, sender := newTestServices(t)
	ctx := context.Background()

	issued := make(chan string, 1)
	sender.EXPECT().SendQuery(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q models.Query) error {
			issued <- q.CorrelationID
			return nil
		})

	require.NoError(t, s.Synchronizer.Populate(ctx, "Local", false))
	require.NoError(t, s.Synchronizer.HandleIncomingPage(ctx, <-issued, pageFolders(1, 3), nil, 3))

	b := s.Browser("Local")
	group, ok := s.Synchronizer.Tree("Local").Lookup("localGroupId-2")
	require.True(t, ok)
	b.EnterFolder(group)
	require.Same(t, group, b.GetCurrentFolder())

	s.Synchronizer.Clear("Local")

	assert.Same(t, s.Synchronizer.GetRoot("Local"), b.GetCurrentFolder())
	assert.Len(t, b.Path(), 1)
}

func TestServices_CloseDetachesBrowsers(t *testing.T) {
	s, _ := newTestServices(t)
	b := s.Browser("Local")

	s.Close()

	assert.Empty(t, s.browsers)
	assert.Zero(t, s.Synchronizer.OnCleared().Len())
	assert.Zero(t, s.Synchronizer.GetRoot("Local").ContentsChanged().Len())
	assert.NotSame(t, b, s.Browser("Local"))
}
