package user

import "time"

// Profile mirrors the identity provider's view of an event owner. Owner ids on
// events are profile user ids.
type Profile struct {
	UserID      string    `gorm:"type:text;primaryKey"`
	Email       *string   `gorm:"type:text"`
	DisplayName *string   `gorm:"type:text"`
	AvatarURL   *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (p *Profile) sameAs(other *Profile) bool {
	return p.UserID == other.UserID &&
		equalOptional(p.Email, other.Email) &&
		equalOptional(p.DisplayName, other.DisplayName) &&
		equalOptional(p.AvatarURL, other.AvatarURL)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
