package service

import (
	"context"
	"sync"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
)

const (
	defaultRefreshInterval = time.Minute
	// DefaultRefreshWindow is how long before expiry the access token is
	// refreshed.
	DefaultRefreshWindow = 2 * time.Minute
)

type tokenRefreshJob struct {
	session SessionService
	window  time.Duration
	now     func() time.Time
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTokenRefreshJob creates a [TokenRefreshJob] over session. The job is
// idle until Start is called.
func NewTokenRefreshJob(session SessionService, logger *logger.Logger) TokenRefreshJob {
	return &tokenRefreshJob{
		session: session,
		window:  DefaultRefreshWindow,
		now:     time.Now,
		logger:  logger,
	}
}

// Start implements [TokenRefreshJob]. If interval is zero or negative it
// defaults to one minute. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *tokenRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
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
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop implements [TokenRefreshJob]. Safe to call when the job is not
// running.
func (j *tokenRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *tokenRefreshJob) tick(ctx context.Context) {
	token := j.session.Current().AccessToken
	if token == "" {
		return
	}

	exp, err := utils.TokenExpiry(token)
	if err != nil {
		j.logger.Debug().Err(err).Str("func", "tokenRefreshJob.tick").Msg("access token expiry unknown")
		return
	}
	if exp.Sub(j.now()) > j.window {
		return
	}

	if err = j.session.Refresh(ctx); err != nil {
		j.logger.Warn().Err(err).Str("func", "tokenRefreshJob.tick").Msg("background token refresh failed")
	}
}
