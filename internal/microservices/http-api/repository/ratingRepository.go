package repository

import (
	"context"
	"fmt"

	"mangareader/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	UpdateValue(ctx context.Context, rating *models.Rating, value int) error
	Delete(ctx context.Context, rating *models.Rating) error
	GetByUserAndManga(ctx context.Context, userID string, mangaID int64) (*models.Rating, error)
	RecalculateAll(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or, when the user already rated this manga, overwrites its value.
// Hooks on models.Rating refresh the manga aggregates in the same transaction.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "manga_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) UpdateValue(ctx context.Context, rating *models.Rating, value int) error {
	if err := r.db.WithContext(ctx).Model(rating).Update("value", value).Error; err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// Delete removes a loaded rating so the delete hook sees its manga id.
func (r *ratingRepository) Delete(ctx context.Context, rating *models.Rating) error {
	result := r.db.WithContext(ctx).Delete(rating)
	if result.Error != nil {
		return fmt.Errorf("delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUserAndManga retrieves a user's rating for a specific manga
func (r *ratingRepository) GetByUserAndManga(ctx context.Context, userID string, mangaID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// RecalculateAll rebuilds rating and total_votes for every manga from the ratings table.
func (r *ratingRepository) RecalculateAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`UPDATE manga SET
		rating = (SELECT COALESCE(AVG(ratings.value), 0) FROM ratings WHERE ratings.manga_id = manga.id),
		total_votes = (SELECT COUNT(*) FROM ratings WHERE ratings.manga_id = manga.id)`)
	if result.Error != nil {
		return 0, fmt.Errorf("recalculate manga aggregates: %w", result.Error)
	}
	return result.RowsAffected, nil
}
