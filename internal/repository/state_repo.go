// internal/repository/state_repo.go
package repository

import (
	"context"

	"hydroflow-bot/internal/domain"
)

// UpdateFunc mutates a private copy of a user's state. Returning an error
// discards every change made by the function.
type UpdateFunc func(st *domain.UserState) error

// StateRepository is the concurrent per-user store of onboarding sessions and
// hydration profiles.
type StateRepository interface {
	// Update runs fn with exclusive access to the user's entry and commits the
	// result only when fn returns nil. Unknown users start out idle.
	Update(ctx context.Context, userID int64, fn UpdateFunc) error
	// Get returns a snapshot of the user's state.
	Get(ctx context.Context, userID int64) (domain.UserState, error)
	// ProfileUserIDs lists the users that currently hold a profile.
	ProfileUserIDs(ctx context.Context) ([]int64, error)
}
