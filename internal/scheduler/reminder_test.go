// internal/scheduler/reminder_test.go
package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/repository"
	"hydroflow-bot/internal/repository/memory"
)

// MockNotifier is a mock implementation of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, n domain.Notification) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

var sweepAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// seed stores a 70 kg / 25 y profile (2.31 L goal) with the given last reminder and intake.
func seed(t *testing.T, states repository.StateRepository, userID int64, lastReminder *time.Time, intake string) {
	t.Helper()
	err := states.Update(context.Background(), userID, func(st *domain.UserState) error {
		p := domain.NewUserProfile(userID, 70, 25, sweepAt.Add(-24*time.Hour))
		p.LastReminderAt = lastReminder
		p.DailyIntake = decimal.RequireFromString(intake)
		st.Profile = p
		return nil
	})
	require.NoError(t, err)
}

func ago(d time.Duration) *time.Time {
	t := sweepAt.Add(-d)
	return &t
}

func newTestScheduler(notifier *MockNotifier) (*ReminderScheduler, repository.StateRepository) {
	states := memory.NewStateStore()
	return NewReminderScheduler(states, notifier, zap.NewNop(), Config{Interval: 2 * time.Hour}), states
}

func TestEvaluateAndNotify_RespectsInterval(t *testing.T) {
	ctx := context.Background()

	t.Run("RecentlyRemindedIsSkipped", func(t *testing.T) {
		notifier := new(MockNotifier)
		s, states := newTestScheduler(notifier)
		seed(t, states, 1, ago(30*time.Minute), "0")

		sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
		require.NoError(t, err)
		assert.False(t, sent)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExactlyIntervalIsNotDue", func(t *testing.T) {
		notifier := new(MockNotifier)
		s, states := newTestScheduler(notifier)
		seed(t, states, 1, ago(2*time.Hour), "0")

		sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("OverdueIsRemindedAndStamped", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Notify", ctx, int64(1), mock.MatchedBy(func(n domain.Notification) bool {
			return n.Kind == domain.KindReminderDue && n.Progress != nil && !n.Progress.GoalReached
		})).Return(nil).Once()
		s, states := newTestScheduler(notifier)
		seed(t, states, 1, ago(3*time.Hour), "1")

		sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
		require.NoError(t, err)
		assert.True(t, sent)

		st, err := states.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, st.Profile.LastReminderAt)
		assert.Equal(t, sweepAt, *st.Profile.LastReminderAt)
		notifier.AssertExpectations(t)
	})

	t.Run("NeverRemindedIsDue", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Notify", ctx, int64(1), mock.Anything).Return(nil).Once()
		s, states := newTestScheduler(notifier)
		seed(t, states, 1, nil, "0")

		sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
		require.NoError(t, err)
		assert.True(t, sent)
	})

	t.Run("GoalMetSendsGoalAlreadyMet", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Notify", ctx, int64(1), mock.MatchedBy(func(n domain.Notification) bool {
			return n.Kind == domain.KindGoalAlreadyMet
		})).Return(nil).Once()
		s, states := newTestScheduler(notifier)
		seed(t, states, 1, ago(3*time.Hour), "2.5")

		sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
		require.NoError(t, err)
		assert.True(t, sent)

		st, err := states.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, sweepAt, *st.Profile.LastReminderAt)
		notifier.AssertExpectations(t)
	})

	t.Run("UserWithoutProfileIsIgnored", func(t *testing.T) {
		notifier := new(MockNotifier)
		s, _ := newTestScheduler(notifier)

		sent, err := s.EvaluateAndNotify(ctx, 99, sweepAt)
		require.NoError(t, err)
		assert.False(t, sent)
	})
}

func TestEvaluateAndNotify_FailedDeliveryKeepsUserDue(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, int64(1), mock.Anything).Return(errors.New("outbox down")).Once()
	s, states := newTestScheduler(notifier)
	last := ago(3 * time.Hour)
	seed(t, states, 1, last, "0")

	sent, err := s.EvaluateAndNotify(ctx, 1, sweepAt)
	assert.ErrorContains(t, err, "outbox down")
	assert.False(t, sent)

	st, err := states.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *last, *st.Profile.LastReminderAt)
}

func TestSweep_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, int64(2), mock.Anything).Return(errors.New("blocked by user")).Once()
	notifier.On("Notify", ctx, mock.Anything, mock.Anything).Return(nil)
	s, states := newTestScheduler(notifier)
	for _, id := range []int64{1, 2, 3} {
		seed(t, states, id, ago(3*time.Hour), "0")
	}
	seed(t, states, 4, ago(10*time.Minute), "0")

	sent, err := s.Sweep(ctx, sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	notifier.AssertNumberOfCalls(t, "Notify", 3)

	// A second sweep at the same instant only retries the failed user.
	sent, err = s.Sweep(ctx, sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSweep_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := newTestScheduler(new(MockNotifier))

	_, err := s.Sweep(ctx, sweepAt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SweepsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminded := make(chan struct{}, 1)
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, int64(1), mock.Anything).Return(nil).Run(func(mock.Arguments) {
		select {
		case reminded <- struct{}{}:
		default:
		}
	})
	states := memory.NewStateStore()
	s := NewReminderScheduler(states, notifier, zap.NewNop(), Config{Tick: 10 * time.Millisecond, Interval: time.Hour})
	s.now = func() time.Time { return sweepAt }
	seed(t, states, 1, nil, "0")

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-reminded:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not send the first reminder")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	// The clock is frozen, so the user is reminded exactly once.
	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestNewReminderScheduler_Defaults(t *testing.T) {
	s := NewReminderScheduler(memory.NewStateStore(), new(MockNotifier), zap.NewNop(), Config{})
	assert.Equal(t, DefaultTick, s.tick)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestRun_StalledNotifierDoesNotBlockShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entered := make(chan struct{}, 1)
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, int64(1), mock.Anything).Return(context.DeadlineExceeded).Run(func(args mock.Arguments) {
		select {
		case entered <- struct{}{}:
		default:
		}
		// Hangs until the sweep's own deadline, like a stuck outbox push.
		<-args.Get(0).(context.Context).Done()
	})
	states := memory.NewStateStore()
	s := NewReminderScheduler(states, notifier, zap.NewNop(), Config{Tick: 50 * time.Millisecond, Interval: time.Hour})
	s.now = func() time.Time { return sweepAt }
	seed(t, states, 1, nil, "0")

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not try to remind the user")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler shutdown blocked on a stalled notifier")
	}

	st, err := states.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, st.Profile.LastReminderAt)
}
