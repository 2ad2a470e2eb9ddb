package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating is one user's score for one manga. The (user_id, manga_id) pair is unique.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_ratings_user_manga"`
	MangaID   int64     `json:"manga_id" gorm:"not null;uniqueIndex:idx_ratings_user_manga;index"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Manga *Manga `json:"-" gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}

// ValidationErrors maps a field name to its failure messages.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, strings.Join(v[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) add(field, msg string) {
	v[field] = append(v[field], msg)
}

// ValidateRatingValue checks a raw submitted value; nil means the field was absent.
func ValidateRatingValue(value *int) error {
	errs := ValidationErrors{}
	switch {
	case value == nil:
		errs.add("value", "can't be blank")
	case *value < MinRatingValue || *value > MaxRatingValue:
		errs.add("value", fmt.Sprintf("must be between %d and %d", MinRatingValue, MaxRatingValue))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AfterSave keeps the manga aggregates in step on create and update.
func (r *Rating) AfterSave(tx *gorm.DB) error {
	return RefreshMangaAggregates(tx, r.MangaID)
}

func (r *Rating) AfterDelete(tx *gorm.DB) error {
	return RefreshMangaAggregates(tx, r.MangaID)
}

// RefreshMangaAggregates recomputes manga.rating and manga.total_votes from the ratings table.
func RefreshMangaAggregates(tx *gorm.DB, mangaID int64) error {
	err := tx.Exec(`UPDATE manga SET
		rating = (SELECT COALESCE(AVG(value), 0) FROM ratings WHERE manga_id = ?),
		total_votes = (SELECT COUNT(*) FROM ratings WHERE manga_id = ?)
		WHERE id = ?`, mangaID, mangaID, mangaID).Error
	if err != nil {
		return fmt.Errorf("refresh manga aggregates: %w", err)
	}
	return nil
}
