// internal/repository/journal_repo.go
package repository

import (
	"context"

	"hydroflow-bot/internal/domain"
)

// IntakeJournal keeps an append-only record of accepted intake events.
type IntakeJournal interface {
	// Append records one intake event.
	Append(ctx context.Context, event domain.IntakeEvent) error
	// ListByUser returns a page of the user's events, newest first, and the total count.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error)
}
