// internal/repository/memory/state_store.go
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/repository"
)

// errBothHalves guards the session/profile exclusivity of a user entry.
var errBothHalves = errors.New("state store: user entry cannot hold both a session and a profile")

type entry struct {
	mu      sync.Mutex
	state   domain.UserState
	removed bool // dropped from the map; writers must look the user up again
}

// StateStore implements repository.StateRepository in memory.
// The map lock only guards membership; each user entry has its own mutex, so a
// scheduler sweep never blocks writers of unrelated users.
type StateStore struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewStateStore creates an empty StateStore.
func NewStateStore() repository.StateRepository {
	return &StateStore{entries: make(map[int64]*entry)}
}

func (s *StateStore) lookup(userID int64, create bool) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok || !create {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{state: domain.UserState{UserID: userID}}
	s.entries[userID] = e
	return e
}

// Update runs fn against a copy of the user's state and swaps the copy in on success.
// Entries left idle are dropped, so failed updates for unknown users leave nothing behind.
func (s *StateStore) Update(ctx context.Context, userID int64, fn repository.UpdateFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := s.lookup(userID, true)
		e.mu.Lock()
		if e.removed {
			e.mu.Unlock()
			continue
		}
		err := s.apply(e, userID, fn)
		e.mu.Unlock()
		return err
	}
}

// apply must be called with e.mu held.
func (s *StateStore) apply(e *entry, userID int64, fn repository.UpdateFunc) error {
	draft := e.state.Clone()
	err := fn(&draft)
	if err == nil && draft.Session != nil && draft.Profile != nil {
		err = errBothHalves
	}
	if err == nil {
		draft.UserID = userID
		e.state = draft
	}

	if e.state.Phase() == domain.PhaseIdle {
		s.mu.Lock()
		if s.entries[userID] == e {
			delete(s.entries, userID)
		}
		s.mu.Unlock()
		e.removed = true
	}
	return err
}

// Get returns a copy of the user's state; unknown users are idle.
func (s *StateStore) Get(ctx context.Context, userID int64) (domain.UserState, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserState{}, err
	}

	e := s.lookup(userID, false)
	if e == nil {
		return domain.UserState{UserID: userID}, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

// ProfileUserIDs returns the ids of users holding a profile, in ascending order.
func (s *StateStore) ProfileUserIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	candidates := make(map[int64]*entry, len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.RUnlock()

	ids := make([]int64, 0, len(candidates))
	for id, e := range candidates {
		e.mu.Lock()
		hasProfile := e.state.Profile != nil
		e.mu.Unlock()
		if hasProfile {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
