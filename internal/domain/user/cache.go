package user

import "time"

// Cache remembers recently saved profiles so repeated requests from the same
// caller skip the upsert.
type Cache interface {
	GetByUserID(userID string) (*Profile, bool)
	SetByUserID(userID string, profile *Profile, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCache struct{}

func (noopCache) GetByUserID(string) (*Profile, bool) {
	return nil, false
}

func (noopCache) SetByUserID(string, *Profile, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}
