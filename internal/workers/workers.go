package workers

import (
	"context"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
)

// Workers is an ordered group of workers.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil entries are skipped.
func NewWorkers(ws ...Worker) *Workers {
	out := make([]Worker, 0, len(ws))
	for _, w := range ws {
		if w != nil {
			out = append(out, w)
		}
	}
	return &Workers{workers: out}
}

// NewClientWorkers returns the background workers of a client session.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers) *Workers {
	return NewWorkers(
		NewTokenRefreshWorker(services.RefreshJob, cfg.TokenRefreshInterval),
	)
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// tokenRefreshWorker adapts a [service.TokenRefreshJob] to [Worker].
type tokenRefreshWorker struct {
	job      service.TokenRefreshJob
	interval time.Duration
}

// NewTokenRefreshWorker runs job every interval. A nil job yields nil.
func NewTokenRefreshWorker(job service.TokenRefreshJob, interval time.Duration) Worker {
	if job == nil {
		return nil
	}
	return &tokenRefreshWorker{job: job, interval: interval}
}

func (w *tokenRefreshWorker) Start(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w *tokenRefreshWorker) Stop() {
	w.job.Stop()
}
