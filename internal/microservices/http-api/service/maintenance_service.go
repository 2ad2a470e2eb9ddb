package service

import (
	"context"
	"log/slog"
	"time"

	"mangareader/internal/microservices/http-api/repository"
)

// MaintenanceService holds the periodic housekeeping tasks run by the scheduler
// and the admin endpoint.
type MaintenanceService interface {
	PurgeRefreshTokens(ctx context.Context) (int64, error)
	ReconcileRatings(ctx context.Context) (int64, error)
}

type maintenanceService struct {
	ratingRepo       repository.RatingRepository
	refreshTokenRepo repository.RefreshTokenRepository
	log              *slog.Logger
}

func NewMaintenanceService(
	ratingRepo repository.RatingRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	log *slog.Logger,
) MaintenanceService {
	return &maintenanceService{
		ratingRepo:       ratingRepo,
		refreshTokenRepo: refreshTokenRepo,
		log:              log,
	}
}

func (s *maintenanceService) PurgeRefreshTokens(ctx context.Context) (int64, error) {
	n, err := s.refreshTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	s.log.Info("purged refresh tokens", "count", n)
	return n, nil
}

// ReconcileRatings recomputes every manga's rating and total_votes. The
// persistence hooks keep them current; this repairs rows written around them.
func (s *maintenanceService) ReconcileRatings(ctx context.Context) (int64, error) {
	n, err := s.ratingRepo.RecalculateAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("reconciled manga ratings", "manga", n)
	return n, nil
}
