// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] is usable at
// startup. All failing groups are reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Directory.Transport {
	case TransportWebsocket:
		if cfg.Device.URL == "" {
			errs = append(errs, fmt.Errorf("%w: device url is required for %s transport", ErrInvalidDeviceConfigs, TransportWebsocket))
		}
	case TransportHTTP:
		if cfg.Directory.ServiceURL == "" {
			errs = append(errs, fmt.Errorf("%w: service url is required for %s transport", ErrInvalidDirectoryConfigs, TransportHTTP))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown transport %q", ErrInvalidDirectoryConfigs, cfg.Directory.Transport))
	}

	if cfg.Directory.Paging != PagingOffset && cfg.Directory.Paging != PagingSingle {
		errs = append(errs, fmt.Errorf("%w: unknown paging %q", ErrInvalidDirectoryConfigs, cfg.Directory.Paging))
	}
	if cfg.Directory.PageLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: page limit must be positive", ErrInvalidDirectoryConfigs))
	}
	if len(cfg.Directory.Scopes) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one scope is required", ErrInvalidDirectoryConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Workers.SearchTimeout <= 0 || cfg.Workers.SweepInterval <= 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
