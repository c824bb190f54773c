// ABOUTME: Background refresh scheduler built on robfig/cron
// ABOUTME: Periodically refreshes all feeds, skipping runs while one is still in progress

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/news"
	"newsdesk-api/pkg/featureflags"
)

// Refresher is the part of news.Service the scheduler drives
type Refresher interface {
	Refresh(ctx context.Context, force bool) (*news.State, error)
}

// Config controls the schedule
type Config struct {
	// Interval between runs; values under one second are rounded up by cron
	Interval time.Duration

	// Timeout bounds a single run. Zero uses the interval.
	Timeout time.Duration
}

// Scheduler runs refreshes on a fixed interval
type Scheduler struct {
	refresher Refresher
	flags     featureflags.Manager
	logger    interfaces.Logger
	cfg       Config

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// New creates a scheduler. It does nothing until Start is called.
func New(refresher Refresher, flags featureflags.Manager, logger interfaces.Logger, cfg Config) *Scheduler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &Scheduler{
		refresher: refresher,
		flags:     flags,
		logger:    logger,
		cfg:       cfg,
	}
}

// Start schedules the refresh job. It returns false when the scheduled
// refresh feature is disabled.
func (s *Scheduler) Start() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return true, nil
	}
	if s.cfg.Interval <= 0 {
		return false, errors.New("scheduler interval must be positive")
	}
	if !s.enabled(context.Background()) {
		s.logger.Info("Scheduled refresh disabled", nil)
		return false, nil
	}

	cronLogger := &cronLogger{logger: s.logger}
	c := cron.New(cron.WithLogger(cronLogger), cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	schedule := fmt.Sprintf("@every %s", s.cfg.Interval)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	ctx := s.ctx
	if _, err := c.AddFunc(schedule, func() { s.run(ctx) }); err != nil {
		s.cancel()
		return false, fmt.Errorf("schedule refresh: %w", err)
	}

	c.Start()
	s.cron = c
	s.running = true

	s.logger.Info("Scheduled refresh started", map[string]interface{}{
		"interval": s.cfg.Interval.String(),
		"timeout":  s.cfg.Timeout.String(),
	})
	return true, nil
}

// Stop cancels a running refresh and waits for it to return or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	done := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single scheduled refresh
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.enabled(ctx) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	state, err := s.refresher.Refresh(ctx, false)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"duration": time.Since(start).String()}
	if state != nil {
		fields["items"] = len(state.Items)
		fields["feed_errors"] = len(state.FeedErrors)
	}
	s.logger.Info("Scheduled refresh complete", fields)
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Scheduled refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Scheduler) enabled(ctx context.Context) bool {
	return s.flags == nil || s.flags.IsEnabled(ctx, featureflags.ScheduledRefresh)
}

// cronLogger adapts interfaces.Logger to cron.Logger
type cronLogger struct {
	logger interfaces.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, pairs(keysAndValues))
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := pairs(keysAndValues)
	fields["error"] = err.Error()
	l.logger.Error("cron: "+msg, fields)
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
