// internal/repository/memory/journal.go
package memory

import (
	"context"
	"sync"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/repository"
)

// IntakeJournal is the default in-process journal used when no database is configured.
type IntakeJournal struct {
	mu     sync.RWMutex
	events map[int64][]domain.IntakeEvent
}

// NewIntakeJournal creates an empty in-memory journal.
func NewIntakeJournal() repository.IntakeJournal {
	return &IntakeJournal{events: make(map[int64][]domain.IntakeEvent)}
}

func (j *IntakeJournal) Append(ctx context.Context, event domain.IntakeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events[event.UserID] = append(j.events[event.UserID], event)
	return nil
}

func (j *IntakeJournal) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		offset = 0
	}
	j.mu.RLock()
	defer j.mu.RUnlock()

	all := j.events[userID]
	total := int64(len(all))

	page := []domain.IntakeEvent{}
	// Stored oldest first; pages are served newest first.
	for i := len(all) - 1 - offset; i >= 0 && len(page) < limit; i-- {
		page = append(page, all[i])
	}
	return page, total, nil
}
