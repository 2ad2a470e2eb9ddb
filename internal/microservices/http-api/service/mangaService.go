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

type MangaService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error)
	GetDetail(ctx context.Context, id int64) (*dto.MangaDetailResponse, error)
}

type mangaService struct {
	repo  repository.MangaRepository
	cache cache.MangaCache
	log   *slog.Logger
}

func NewMangaService(repo repository.MangaRepository, c cache.MangaCache, log *slog.Logger) MangaService {
	return &mangaService{repo: repo, cache: c, log: log}
}

func (s *mangaService) GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error) {
	return s.repo.GetAll(ctx, page, pageSize)
}

// GetDetail serves from the cache when it can and fills it on a miss.
// Cache failures are logged and never fail the request.
func (s *mangaService) GetDetail(ctx context.Context, id int64) (*dto.MangaDetailResponse, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("manga cache read failed", "manga_id", id, "error", err)
	}

	// taken before the load so a rating written meanwhile voids our Set
	version, verr := s.cache.Version(ctx, id)
	if verr != nil {
		s.log.Warn("manga cache read failed", "manga_id", id, "error", verr)
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, fmt.Errorf("load manga %d: %w", id, err)
	}

	detail := dto.FromModelToDetailResponse(*m)
	if verr != nil {
		return &detail, nil
	}
	if err := s.cache.Set(ctx, &detail, version); err != nil {
		s.log.Warn("manga cache write failed", "manga_id", id, "error", err)
	}
	return &detail, nil
}
