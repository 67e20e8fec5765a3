// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
)

// recordingWorker appends its id to a shared event log.
type recordingWorker struct {
	id     string
	events *[]string
}

func (r *recordingWorker) Start(context.Context) {
	*r.events = append(*r.events, "start:"+r.id)
}

func (r *recordingWorker) Stop() {
	*r.events = append(*r.events, "stop:"+r.id)
}

type fakeRefreshJob struct {
	interval time.Duration
	ctx      context.Context
	starts   int
	stops    int
}

func (f *fakeRefreshJob) Start(ctx context.Context, interval time.Duration) {
	f.ctx = ctx
	f.interval = interval
	f.starts++
}

func (f *fakeRefreshJob) Stop() {
	f.stops++
}

func TestWorkers_StartInOrderStopInReverse(t *testing.T) {
	var events []string
	ws := NewWorkers(
		&recordingWorker{id: "a", events: &events},
		nil,
		&recordingWorker{id: "b", events: &events},
	)

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"start:a", "start:b", "stop:b", "stop:a"}, events)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()
	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})

	var zero Workers
	assert.NotPanics(t, zero.Stop)
}

func TestTokenRefreshWorker(t *testing.T) {
	job := &fakeRefreshJob{}
	w := NewTokenRefreshWorker(job, 30*time.Second)
	require.NotNil(t, w)

	ctx := context.WithValue(context.Background(), struct{}{}, "session")
	w.Start(ctx)
	w.Stop()

	assert.Equal(t, 1, job.starts)
	assert.Equal(t, 1, job.stops)
	assert.Equal(t, 30*time.Second, job.interval)
	assert.Equal(t, ctx, job.ctx)

	assert.Nil(t, NewTokenRefreshWorker(nil, time.Second))
}

func TestNewClientWorkers(t *testing.T) {
	job := &fakeRefreshJob{}
	ws := NewClientWorkers(&service.ClientServices{RefreshJob: job}, config.ClientWorkers{TokenRefreshInterval: time.Minute})

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, time.Minute, job.interval)
	assert.Equal(t, 1, job.starts)
	assert.Equal(t, 1, job.stops)

	none := NewClientWorkers(&service.ClientServices{}, config.ClientWorkers{})
	assert.Empty(t, none.workers)
}
