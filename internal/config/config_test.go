// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg, map[string]string{
		"DEVICE_URL":                "wss://10.0.0.5/ws",
		"DEVICE_FEEDBACK":           "Status/Call,Event/CallDisconnect",
		"DEVICE_RECONNECT_INTERVAL": "2s",
		"DIRECTORY_PAGE_LIMIT":      "15",
		"DIRECTORY_PAGING":          "single",
		"DIRECTORY_SCOPES":          "Local",
		"SERVER_ADDRESS":            ":9000",
		"WORKERS_SEARCH_TIMEOUT":    "30s",
		"CONFIG":                    "/etc/codecd.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "wss://10.0.0.5/ws", cfg.Device.URL)
	assert.Equal(t, []string{"Status/Call", "Event/CallDisconnect"}, cfg.Device.Feedback)
	assert.Equal(t, 2*time.Second, cfg.Device.ReconnectInterval)
	assert.Equal(t, 15, cfg.Directory.PageLimit)
	assert.Equal(t, PagingSingle, cfg.Directory.Paging)
	assert.Equal(t, []string{"Local"}, cfg.Directory.Scopes)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Workers.SearchTimeout)
	assert.Equal(t, "/etc/codecd.json", cfg.JSONFilePath)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	err := parseEnv(&StructuredConfig{}, map[string]string{"DIRECTORY_PAGE_LIMIT": "many"})
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags("codecd", []string{
		"-a", "127.0.0.1:8081",
		"-device-url", "ws://codec/ws",
		"-feedback", "Status/Call, Event/CallDisconnect,",
		"-transport", "http",
		"-directory-url", "http://directory.local",
		"-page-limit", "50",
		"-scopes", "Corporate",
		"-search-timeout", "45s",
		"-config", "cfg.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "ws://codec/ws", cfg.Device.URL)
	assert.Equal(t, []string{"Status/Call", "Event/CallDisconnect"}, cfg.Device.Feedback)
	assert.Equal(t, TransportHTTP, cfg.Directory.Transport)
	assert.Equal(t, "http://directory.local", cfg.Directory.ServiceURL)
	assert.Equal(t, 50, cfg.Directory.PageLimit)
	assert.Equal(t, []string{"Corporate"}, cfg.Directory.Scopes)
	assert.Equal(t, 45*time.Second, cfg.Workers.SearchTimeout)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags("codecd", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Nil(t, cfg.Device.Feedback)
	assert.Nil(t, cfg.Directory.Scopes)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := parseFlags("codecd", []string{"-a", "not-an-address"})
	assert.Error(t, err)
}

func TestNetAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "any host", input: ":8080", want: ":8080"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "port zero", input: "localhost:0", wantErr: true},
		{name: "port too big", input: "localhost:70000", wantErr: true},
		{name: "bad host", input: "codec.example:80", wantErr: true},
		{name: "port not a number", input: "localhost:http", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}

	var empty NetAddress
	assert.Empty(t, empty.String())
}

func TestParseJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
		"device": {"url": "wss://codec/ws", "handshake_timeout": "3s", "feedback": ["Status/Call"]},
		"directory": {"transport": "websocket", "page_limit": 25, "paging": "offset", "request_timeout": 2000000000, "scopes": ["Local"]},
		"server": {"http_address": "localhost:8082", "shutdown_timeout": "1s"},
		"workers": {"search_timeout": "2m", "sweep_interval": "15s"}
	}`), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "wss://codec/ws", cfg.Device.URL)
	assert.Equal(t, 3*time.Second, cfg.Device.HandshakeTimeout)
	assert.Equal(t, []string{"Status/Call"}, cfg.Device.Feedback)
	assert.Equal(t, 25, cfg.Directory.PageLimit)
	assert.Equal(t, 2*time.Second, cfg.Directory.RequestTimeout)
	assert.Equal(t, "localhost:8082", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SearchTimeout)
	assert.Equal(t, 15*time.Second, cfg.Workers.SweepInterval)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"workers": {"search_timeout": "soon"}}`), 0o600))
	_, err = parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestConfigBuilder_EarlierLayersWin(t *testing.T) {
	first := &StructuredConfig{Device: Device{URL: "ws://env/ws"}}
	second := &StructuredConfig{
		Device:    Device{URL: "ws://flags/ws"},
		Directory: Directory{PageLimit: 7},
	}

	cfg, err := newConfigBuilder().with(first).with(second).withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "ws://env/ws", cfg.Device.URL)
	assert.Equal(t, 7, cfg.Directory.PageLimit)
	assert.Equal(t, PagingOffset, cfg.Directory.Paging)
	assert.Equal(t, []string{"Local", "Corporate"}, cfg.Directory.Scopes)
	assert.Equal(t, time.Minute, cfg.Workers.SearchTimeout)
}

func TestConfigBuilder_JSONLayer(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"device": {"url": "ws://json/ws"}, "directory": {"page_limit": 30}}`), 0o600))

	cfg, err := newConfigBuilder().
		with(&StructuredConfig{Directory: Directory{PageLimit: 10}, JSONFilePath: p}).
		withJSON().
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "ws://json/ws", cfg.Device.URL)
	assert.Equal(t, 10, cfg.Directory.PageLimit)
}

func TestConfigBuilder_CollectsErrors(t *testing.T) {
	_, err := newConfigBuilder().
		withFlags(nil, assert.AnError).
		with(&StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "missing.json")}).
		withJSON().
		build()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := Defaults()
		cfg.Device.URL = "ws://codec/ws"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*StructuredConfig)
		want   error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "no device url", mutate: func(c *StructuredConfig) { c.Device.URL = "" }, want: ErrInvalidDeviceConfigs},
		{name: "http without service url", mutate: func(c *StructuredConfig) { c.Directory.Transport = TransportHTTP }, want: ErrInvalidDirectoryConfigs},
		{name: "http with service url", mutate: func(c *StructuredConfig) {
			c.Directory.Transport = TransportHTTP
			c.Directory.ServiceURL = "http://directory"
			c.Device.URL = ""
		}},
		{name: "unknown transport", mutate: func(c *StructuredConfig) { c.Directory.Transport = "smtp" }, want: ErrInvalidDirectoryConfigs},
		{name: "unknown paging", mutate: func(c *StructuredConfig) { c.Directory.Paging = "cursor" }, want: ErrInvalidDirectoryConfigs},
		{name: "zero page limit", mutate: func(c *StructuredConfig) { c.Directory.PageLimit = 0 }, want: ErrInvalidDirectoryConfigs},
		{name: "no scopes", mutate: func(c *StructuredConfig) { c.Directory.Scopes = nil }, want: ErrInvalidDirectoryConfigs},
		{name: "no address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, want: ErrInvalidServerConfigs},
		{name: "no sweep", mutate: func(c *StructuredConfig) { c.Workers.SweepInterval = 0 }, want: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
