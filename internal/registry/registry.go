package registry

import (
	"sync"

	"mergington-api/internal/domain"
)

// Store holds the activity registry: a mapping of activity name to its
// record. Activities are seeded once at construction and never created,
// renamed, or deleted afterwards; only participant rosters change.
//
// The HTTP layer serves requests concurrently, so every membership check
// and its following mutation run under one lock. The mutex covers the
// whole map, which is stronger than the per-activity atomicity the
// operations need, but the registry is small enough that finer locking
// would buy nothing.
type Store struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewStore creates a registry populated with the seed activity set.
func NewStore() *Store {
	return &Store{activities: domain.SeedActivities()}
}

// List returns a deep copy of every activity keyed by name. Callers may
// mutate the result without affecting the registry.
func (s *Store) List() map[string]*domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.Activity, len(s.activities))
	for name, activity := range s.activities {
		out[name] = activity.Clone()
	}
	return out
}

// SignUp appends email to the activity's roster. It fails with
// domain.ErrActivityNotFound when the name matches no registry key and
// with domain.ErrAlreadyRegistered when the email is already on the
// roster. On failure the registry is left unchanged.
//
// Capacity is intentionally not checked: max_participants is advisory.
func (s *Store) SignUp(activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}

	for _, participant := range activity.Participants {
		if participant == email {
			return domain.ErrAlreadyRegistered
		}
	}

	activity.Participants = append(activity.Participants, email)
	return nil
}

// Unregister removes email from the activity's roster. It fails with
// domain.ErrActivityNotFound when the name matches no registry key and
// with domain.ErrNotRegistered when the email is not on the roster. The
// order of the remaining participants is preserved.
func (s *Store) Unregister(activityName, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[activityName]
	if !ok {
		return domain.ErrActivityNotFound
	}

	for i, participant := range activity.Participants {
		if participant == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			return nil
		}
	}

	return domain.ErrNotRegistered
}

// Reset restores the registry to its seed state. Used by tests to get a
// clean roster between cases.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = domain.SeedActivities()
}
