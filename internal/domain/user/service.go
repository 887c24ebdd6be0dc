package user

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

// UpsertProfile records the caller's identity. Empty fields leave the stored
// value untouched.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, name, avatarURL string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUser
	}

	profile := Profile{
		UserID:      userID,
		Email:       optional(email),
		DisplayName: optional(name),
		AvatarURL:   optional(avatarURL),
	}

	if cached, ok := s.cache.GetByUserID(userID); ok && cached.sameAs(&profile) {
		return nil
	}

	if err := s.repo.UpsertProfile(ctx, &profile); err != nil {
		s.cache.DeleteByUserID(userID)
		return err
	}

	s.cache.SetByUserID(userID, &profile, s.cacheTTL)
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
