package models

import "time"

type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_user_manga" json:"user_id"`
	MangaID   int64     `gorm:"not null;uniqueIndex:idx_favorites_user_manga;index" json:"manga_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Manga *Manga `gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE;" json:"manga,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
