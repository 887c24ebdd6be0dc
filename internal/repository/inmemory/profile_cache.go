package inmemory

import (
	"sync"
	"time"

	userdomain "people-monitor-go/internal/domain/user"
)

// ProfileCache is a TTL map of recently saved profiles, keyed by user id.
type ProfileCache struct {
	mu    sync.RWMutex
	items map[string]profileItem
	now   func() time.Time
}

type profileItem struct {
	value     userdomain.Profile
	expiresAt time.Time
}

func NewProfileCache() *ProfileCache {
	return &ProfileCache{
		items: make(map[string]profileItem),
		now:   time.Now,
	}
}

func (c *ProfileCache) GetByUserID(userID string) (*userdomain.Profile, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := cloneProfile(item.value)
	return &value, true
}

func (c *ProfileCache) SetByUserID(userID string, profile *userdomain.Profile, ttl time.Duration) {
	if profile == nil || ttl <= 0 {
		c.DeleteByUserID(userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = profileItem{
		value:     cloneProfile(*profile),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *ProfileCache) DeleteByUserID(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}

func cloneProfile(profile userdomain.Profile) userdomain.Profile {
	profile.Email = cloneString(profile.Email)
	profile.DisplayName = cloneString(profile.DisplayName)
	profile.AvatarURL = cloneString(profile.AvatarURL)
	return profile
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
