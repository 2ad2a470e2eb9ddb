package models

import (
	"time"
)

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Genre{},
		&Manga{},
		&Chapter{},
		&Rating{},
		&Favorite{},
		&RefreshToken{},
	}
}
