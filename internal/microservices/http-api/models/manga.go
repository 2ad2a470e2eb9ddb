package models

import "time"

const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusHiatus    = "hiatus"
	StatusCancelled = "cancelled"
)

// Manga is the catalog entry. Rating and TotalVotes are derived from the
// ratings table by the Rating persistence hooks and must not be written directly.
type Manga struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	CoverImage      string    `json:"cover_image"`
	Author          string    `json:"author"`
	Artist          *string   `json:"artist,omitempty"`
	Status          string    `json:"status" gorm:"not null;default:ongoing"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	TranslationTeam *string   `json:"translation_team,omitempty"`
	ViewCount       int64     `json:"view_count" gorm:"not null;default:0"`
	Rating          float64   `json:"rating" gorm:"not null;default:0"`
	TotalVotes      int64     `json:"total_votes" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// associations
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:manga_genres;constraint:OnDelete:CASCADE;"`
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE;"`
}

func (Manga) TableName() string {
	return "manga"
}

// Chapter is one numbered installment. Number is fractional so specials like 12.5 sort in place.
type Chapter struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MangaID   int64     `json:"manga_id" gorm:"not null;index"`
	Number    float64   `json:"number" gorm:"not null"`
	Title     string    `json:"title"`
	ViewCount *int64    `json:"view_count,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
