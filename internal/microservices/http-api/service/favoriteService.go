package service

import (
	"context"
	"errors"

	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type FavoriteService interface {
	IsFavorite(ctx context.Context, userID string, mangaID int64) (bool, error)
	Toggle(ctx context.Context, userID string, mangaID int64) (bool, error)
	List(ctx context.Context, userID string) ([]models.Favorite, error)
}

type favoriteService struct {
	repo      repository.FavoriteRepository
	mangaRepo repository.MangaRepository
}

func NewFavoriteService(repo repository.FavoriteRepository, mangaRepo repository.MangaRepository) FavoriteService {
	return &favoriteService{
		repo:      repo,
		mangaRepo: mangaRepo,
	}
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID string, mangaID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, mangaID)
}

// Toggle flips the favorite state and returns the new one.
func (s *favoriteService) Toggle(ctx context.Context, userID string, mangaID int64) (bool, error) {
	exists, err := s.mangaRepo.Exists(ctx, mangaID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrMangaNotFound
	}

	removed, err := s.repo.Remove(ctx, userID, mangaID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.repo.Add(ctx, userID, mangaID); err != nil {
		// a concurrent toggle already added it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.repo.List(ctx, userID)
}
