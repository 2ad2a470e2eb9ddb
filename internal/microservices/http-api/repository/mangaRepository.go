package repository

import (
	"context"
	"fmt"

	"mangareader/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MangaRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Manga, error)
	GetAggregates(ctx context.Context, id int64) (*models.Manga, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type MangaRepo struct {
	db *gorm.DB
}

func NewMangaRepo(db *gorm.DB) *MangaRepo {
	return &MangaRepo{db: db}
}

func (r *MangaRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error) {
	var list []models.Manga
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Manga{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count manga: %w", err)
	}

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Order("created_at desc").
		Order("id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list manga: %w", err)
	}

	return list, total, nil
}

// GetByID loads one manga with genres and chapters. Chapters come back in
// storage order; callers sort for display.
func (r *MangaRepo) GetByID(ctx context.Context, id int64) (*models.Manga, error) {
	var m models.Manga
	if err := r.db.WithContext(ctx).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Preload("Chapters").
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetAggregates reloads only the derived rating columns.
func (r *MangaRepo) GetAggregates(ctx context.Context, id int64) (*models.Manga, error) {
	var m models.Manga
	if err := r.db.WithContext(ctx).
		Select("id", "rating", "total_votes").
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MangaRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Manga{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
