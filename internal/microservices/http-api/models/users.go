package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole is stored as an integer column; readers are the default.
type UserRole int

const (
	RoleReader UserRole = iota
	RoleAdmin
)

func (r UserRole) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "reader"
	}
}

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordDigest string    `gorm:"column:password_digest;not null" json:"-"` // bcrypt hash, never serialized
	Role           UserRole  `gorm:"not null;default:0" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
