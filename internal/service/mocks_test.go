// internal/service/mocks_test.go
package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hydroflow-bot/internal/domain"
)

// MockIntakeJournal is a mock implementation of repository.IntakeJournal.
type MockIntakeJournal struct {
	mock.Mock
}

func (m *MockIntakeJournal) Append(ctx context.Context, event domain.IntakeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockIntakeJournal) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.IntakeEvent), args.Get(1).(int64), args.Error(2)
}

// MockNotifier is a mock implementation of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int64, n domain.Notification) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

// kinds extracts the message kinds for compact assertions.
func kinds(ns []domain.Notification) []domain.MessageKind {
	out := make([]domain.MessageKind, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Kind)
	}
	return out
}
