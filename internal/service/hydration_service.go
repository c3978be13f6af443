// internal/service/hydration_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/repository"
	"hydroflow-bot/internal/util"
)

// DefaultHistoryLimit is the page size used when a caller passes a non-positive limit.
const DefaultHistoryLimit = 10

// HydrationService defines the hydration-tracking business logic.
type HydrationService interface {
	// StartOnboarding opens (or restarts) the weight/age dialog for a user without a profile.
	StartOnboarding(ctx context.Context, userID int64) (domain.Notification, error)
	// SubmitOnboardingAnswer feeds one answer into the user's onboarding session.
	// Invalid answers return the re-prompt together with a validation error.
	SubmitOnboardingAnswer(ctx context.Context, userID int64, text string) (domain.Notification, error)
	// RecordIntake adds amountMl milliliters to the user's ledger.
	RecordIntake(ctx context.Context, userID int64, amountMl string) (*domain.IntakeResult, error)
	// GetProgress returns the user's intake against their goal.
	GetProgress(ctx context.Context, userID int64) (*domain.Progress, error)
	// GetIntakeHistory returns a page of journaled intake events, newest first.
	GetIntakeHistory(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error)
	// GetState returns a snapshot of the user's state.
	GetState(ctx context.Context, userID int64) (domain.UserState, error)
}

// hydrationService implements the HydrationService interface.
type hydrationService struct {
	states  repository.StateRepository
	journal repository.IntakeJournal
	now     func() time.Time
}

// NewHydrationService creates a new instance of HydrationService.
// A nil clock defaults to time.Now.
func NewHydrationService(
	states repository.StateRepository,
	journal repository.IntakeJournal,
	now func() time.Time,
) HydrationService {
	if now == nil {
		now = time.Now
	}
	return &hydrationService{
		states:  states,
		journal: journal,
		now:     now,
	}
}

func (s *hydrationService) StartOnboarding(ctx context.Context, userID int64) (domain.Notification, error) {
	var out domain.Notification
	err := s.states.Update(ctx, userID, func(st *domain.UserState) error {
		next, n, err := domain.StartOnboarding(*st, s.now())
		if err != nil {
			return err
		}
		*st = next
		out = n
		return nil
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("start onboarding for user %d: %w", userID, err)
	}
	return out, nil
}

func (s *hydrationService) SubmitOnboardingAnswer(ctx context.Context, userID int64, text string) (domain.Notification, error) {
	var (
		out        domain.Notification
		invalidErr error
	)
	err := s.states.Update(ctx, userID, func(st *domain.UserState) error {
		next, n, err := domain.AdvanceOnboarding(*st, text, s.now())
		if err != nil && !util.IsError(err, util.ErrInvalidInput) {
			return err
		}
		// A rejected answer leaves next equal to the current state.
		*st = next
		out = n
		invalidErr = err
		return nil
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("onboarding answer for user %d: %w", userID, err)
	}
	return out, invalidErr
}

func (s *hydrationService) RecordIntake(ctx context.Context, userID int64, amountMl string) (*domain.IntakeResult, error) {
	var result domain.IntakeResult
	err := s.states.Update(ctx, userID, func(st *domain.UserState) error {
		if st.Profile == nil {
			if st.Session != nil {
				return util.ErrOnboardingInProgress
			}
			return util.ErrNoProfile
		}

		res, err := domain.RecordIntake(st.Profile, amountMl, s.now())
		if err != nil {
			return err
		}
		// The ledger change is only committed once the journal accepted the event.
		if err := s.journal.Append(ctx, res.Event); err != nil {
			return fmt.Errorf("journal intake: %w", err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record intake for user %d: %w", userID, err)
	}
	return &result, nil
}

func (s *hydrationService) GetProgress(ctx context.Context, userID int64) (*domain.Progress, error) {
	st, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress for user %d: %w", userID, err)
	}
	if st.Profile == nil {
		return nil, util.ErrNoProfile
	}
	progress := st.Profile.Progress()
	return &progress, nil
}

func (s *hydrationService) GetIntakeHistory(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	st, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("get intake history for user %d: %w", userID, err)
	}
	if st.Profile == nil {
		return nil, 0, util.ErrNoProfile
	}

	events, total, err := s.journal.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve intake history: %w", err)
	}
	return events, total, nil
}

func (s *hydrationService) GetState(ctx context.Context, userID int64) (domain.UserState, error) {
	return s.states.Get(ctx, userID)
}
