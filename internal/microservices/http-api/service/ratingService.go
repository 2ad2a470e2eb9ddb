package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mangareader/internal/cache"
	"mangareader/internal/microservices/http-api/dto"
	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// RatingService manages a user's single rating per manga. Every mutation
// answers with the manga's aggregates as reloaded after the write.
type RatingService interface {
	Create(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error)
	Update(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error)
	Destroy(ctx context.Context, userID string, mangaID int64) (*dto.AggregateResponse, error)
	GetUserRating(ctx context.Context, userID string, mangaID int64) (*dto.UserRatingResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	mangaRepo  repository.MangaRepository
	cache      cache.MangaCache
	log        *slog.Logger
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	mangaRepo repository.MangaRepository,
	c cache.MangaCache,
	log *slog.Logger,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		mangaRepo:  mangaRepo,
		cache:      c,
		log:        log,
	}
}

func validateValue(value *int) error {
	if err := models.ValidateRatingValue(value); err != nil {
		var fields models.ValidationErrors
		if errors.As(err, &fields) {
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

func (s *ratingService) ensureManga(ctx context.Context, mangaID int64) error {
	ok, err := s.mangaRepo.Exists(ctx, mangaID)
	if err != nil {
		return fmt.Errorf("check manga %d: %w", mangaID, err)
	}
	if !ok {
		return ErrMangaNotFound
	}
	return nil
}

func (s *ratingService) findOwn(ctx context.Context, userID string, mangaID int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByUserAndManga(ctx, userID, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("load rating: %w", err)
	}
	return rating, nil
}

// Create finds or initializes the caller's rating and sets its value.
func (s *ratingService) Create(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error) {
	if err := s.ensureManga(ctx, mangaID); err != nil {
		return nil, err
	}
	if err := validateValue(value); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		UserID:  userID,
		MangaID: mangaID,
		Value:   *value,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	return s.aggregates(ctx, mangaID)
}

// Update changes the value of the caller's existing rating.
func (s *ratingService) Update(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error) {
	if err := s.ensureManga(ctx, mangaID); err != nil {
		return nil, err
	}
	rating, err := s.findOwn(ctx, userID, mangaID)
	if err != nil {
		return nil, err
	}
	if err := validateValue(value); err != nil {
		return nil, err
	}

	if err := s.ratingRepo.UpdateValue(ctx, rating, *value); err != nil {
		return nil, err
	}

	return s.aggregates(ctx, mangaID)
}

func (s *ratingService) Destroy(ctx context.Context, userID string, mangaID int64) (*dto.AggregateResponse, error) {
	if err := s.ensureManga(ctx, mangaID); err != nil {
		return nil, err
	}
	rating, err := s.findOwn(ctx, userID, mangaID)
	if err != nil {
		return nil, err
	}

	if err := s.ratingRepo.Delete(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	return s.aggregates(ctx, mangaID)
}

// GetUserRating retrieves a user's rating for a specific manga
func (s *ratingService) GetUserRating(ctx context.Context, userID string, mangaID int64) (*dto.UserRatingResponse, error) {
	if err := s.ensureManga(ctx, mangaID); err != nil {
		return nil, err
	}
	rating, err := s.findOwn(ctx, userID, mangaID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserRatingResponse(rating), nil
}

// aggregates drops the cached detail and reloads the derived columns.
func (s *ratingService) aggregates(ctx context.Context, mangaID int64) (*dto.AggregateResponse, error) {
	if err := s.cache.Invalidate(ctx, mangaID); err != nil {
		s.log.Warn("manga cache invalidation failed", "manga_id", mangaID, "error", err)
	}

	m, err := s.mangaRepo.GetAggregates(ctx, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, fmt.Errorf("reload manga %d: %w", mangaID, err)
	}
	return &dto.AggregateResponse{Rating: m.Rating, TotalVotes: m.TotalVotes}, nil
}
