// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/codec-directory/internal/logger"
)

type named struct {
	name   string
	worker Worker
}

type Workers struct {
	workers []named

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger.WithComponent("workers")}
}

// Add registers w under name. Nil workers are ignored.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, named{name: name, worker: worker})
	}
	return w
}

// Run starts every worker concurrently and waits for all of them. The
// first worker to fail cancels the others; all failures are returned
// joined.
func (w *Workers) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, nw := range w.workers {
		nw := nw
		wg.Add(1)
		go func() {
			defer wg.Done()

			w.logger.Info().Str("worker", nw.name).Msg("worker started")
			err := nw.worker.Run(ctx)
			if err == nil {
				w.logger.Info().Str("worker", nw.name).Msg("worker stopped")
				return
			}

			w.logger.Error().Err(err).Str("worker", nw.name).Msg("worker failed")
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", nw.name, err))
			mu.Unlock()
			cancel()
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}
