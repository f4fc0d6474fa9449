// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/codec-directory/internal/logger"
)

const (
	defaultExpiryInterval = 10 * time.Second
	defaultSearchTimeout  = time.Minute
)

type searchExpiryJob struct {
	synchronizer DirectorySynchronizer

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSearchExpiryJob creates a job that calls ExpireSearches on a ticker.
// The job is idle until Start is called.
func NewSearchExpiryJob(synchronizer DirectorySynchronizer, log *logger.Logger) SearchExpiryJob {
	return &searchExpiryJob{synchronizer: synchronizer, logger: log.WithComponent("search_expiry")}
}

// Start implements SearchExpiryJob. Non-positive interval and maxAge fall
// back to 10 seconds and one minute.
func (j *searchExpiryJob) Start(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	if maxAge <= 0 {
		maxAge = defaultSearchTimeout
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if ids := j.synchronizer.ExpireSearches(maxAge); len(ids) > 0 {
					j.logger.Info().Strs("correlation_ids", ids).Msg("expired directory searches")
				}
			}
		}
	}()
}

// Stop implements SearchExpiryJob. Safe to call when not running.
func (j *searchExpiryJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
