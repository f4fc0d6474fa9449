// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors StructuredConfig with JSON-friendly
// durations.
type StructuredJSONConfig struct {
	Device struct {
		URL               string   `json:"url"`
		Username          string   `json:"username"`
		Password          string   `json:"password"`
		HandshakeTimeout  Duration `json:"handshake_timeout"`
		ReconnectInterval Duration `json:"reconnect_interval"`
		Feedback          []string `json:"feedback"`
	} `json:"device,omitempty"`

	Directory struct {
		Transport      string   `json:"transport"`
		ServiceURL     string   `json:"service_url"`
		PageLimit      int      `json:"page_limit"`
		Paging         string   `json:"paging"`
		RequestTimeout Duration `json:"request_timeout"`
		Scopes         []string `json:"scopes"`
	} `json:"directory,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SearchTimeout Duration `json:"search_timeout"`
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Device: Device{
			URL:               jsonCfg.Device.URL,
			Username:          jsonCfg.Device.Username,
			Password:          jsonCfg.Device.Password,
			HandshakeTimeout:  time.Duration(jsonCfg.Device.HandshakeTimeout),
			ReconnectInterval: time.Duration(jsonCfg.Device.ReconnectInterval),
			Feedback:          jsonCfg.Device.Feedback,
		},
		Directory: Directory{
			Transport:      jsonCfg.Directory.Transport,
			ServiceURL:     jsonCfg.Directory.ServiceURL,
			PageLimit:      jsonCfg.Directory.PageLimit,
			Paging:         jsonCfg.Directory.Paging,
			RequestTimeout: time.Duration(jsonCfg.Directory.RequestTimeout),
			Scopes:         jsonCfg.Directory.Scopes,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			SearchTimeout: time.Duration(jsonCfg.Workers.SearchTimeout),
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
