// internal/scheduler/reminder.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/notify"
	"hydroflow-bot/internal/repository"
)

const (
	DefaultTick     = time.Minute
	DefaultInterval = 2 * time.Hour
)

// Config holds the reminder cadence.
type Config struct {
	Tick     time.Duration // how often profiles are inspected
	Interval time.Duration // minimum spacing between reminders to one user
}

// ReminderScheduler periodically reminds users who have not heard from the bot
// for longer than the configured interval.
type ReminderScheduler struct {
	states   repository.StateRepository
	notifier notify.Notifier
	logger   *zap.Logger
	tick     time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewReminderScheduler creates a ReminderScheduler. Zero durations fall back to the defaults.
func NewReminderScheduler(
	states repository.StateRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
	cfg Config,
) *ReminderScheduler {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &ReminderScheduler{
		states:   states,
		notifier: notifier,
		logger:   logger,
		tick:     cfg.Tick,
		interval: cfg.Interval,
		now:      time.Now,
	}
}

// Run sweeps every tick until ctx is cancelled. Cancellation is checked before
// each sweep and after each wait. A sweep that has started is not cancelled,
// but it is bounded by one tick so a stalled notifier cannot hold up shutdown.
func (s *ReminderScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started",
		zap.Duration("tick", s.tick),
		zap.Duration("interval", s.interval),
	)

	for {
		if ctx.Err() != nil {
			break
		}

		sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.tick)
		if sent, err := s.Sweep(sweepCtx, s.now()); err != nil {
			s.logger.Warn("reminder sweep aborted", zap.Error(err))
		} else if sent > 0 {
			s.logger.Debug("reminder sweep finished", zap.Int("sent", sent))
		}
		cancel()

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	s.logger.Info("reminder scheduler stopped")
	return nil
}

// Sweep reminds every due user once and returns how many reminders went out.
// A failure for one user is logged and the sweep moves on.
func (s *ReminderScheduler) Sweep(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.states.ProfileUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	sent := 0
	for _, userID := range ids {
		ok, err := s.EvaluateAndNotify(ctx, userID, now)
		if err != nil {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}
			s.logger.Warn("failed to remind user", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// EvaluateAndNotify sends the user a GoalAlreadyMet or ReminderDue
// notification if they are due, and moves LastReminderAt to now. Nothing is
// changed when delivery fails, so the user stays due for the next tick.
func (s *ReminderScheduler) EvaluateAndNotify(ctx context.Context, userID int64, now time.Time) (bool, error) {
	sent := false
	err := s.states.Update(ctx, userID, func(st *domain.UserState) error {
		p := st.Profile
		if p == nil || !p.ReminderDue(now, s.interval) {
			return nil
		}

		if err := s.notifier.Notify(ctx, userID, domain.NewReminder(p)); err != nil {
			return err
		}
		at := now.UTC()
		p.LastReminderAt = &at
		sent = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("remind user %d: %w", userID, err)
	}
	return sent, nil
}
