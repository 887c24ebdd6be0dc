package inmemory

import (
	"context"
	"sync"
	"time"

	userdomain "people-monitor-go/internal/domain/user"
)

// ProfileStore keeps profiles in process memory for the memory store driver.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]userdomain.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]userdomain.Profile)}
}

func (s *ProfileStore) UpsertProfile(_ context.Context, profile *userdomain.Profile) error {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.profiles[profile.UserID]
	if !ok {
		stored = userdomain.Profile{UserID: profile.UserID, CreatedAt: now}
	}
	if profile.Email != nil {
		stored.Email = cloneString(profile.Email)
	}
	if profile.DisplayName != nil {
		stored.DisplayName = cloneString(profile.DisplayName)
	}
	if profile.AvatarURL != nil {
		stored.AvatarURL = cloneString(profile.AvatarURL)
	}
	stored.UpdatedAt = now

	s.profiles[profile.UserID] = stored
	return nil
}

func (s *ProfileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}
