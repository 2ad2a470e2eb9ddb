// Package httpapi assembles the JSON API: repositories, services, handlers
// and the gin engine that serves them under /api/v1.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"mangareader/internal/cache"
	"mangareader/internal/config"
	"mangareader/internal/logger"
	"mangareader/internal/microservices/http-api/handler"
	"mangareader/internal/microservices/http-api/middleware"
	"mangareader/internal/microservices/http-api/repository"
	"mangareader/internal/microservices/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services bundles everything the router and the scheduler share.
type Services struct {
	Auth        service.AuthService
	Manga       service.MangaService
	Rating      service.RatingService
	Favorite    service.FavoriteService
	Maintenance service.MaintenanceService
}

// NewServices wires repositories into services.
func NewServices(db *gorm.DB, cfg *config.Config, mangaCache cache.MangaCache, log *slog.Logger) *Services {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	mangaRepo := repository.NewMangaRepo(db)
	ratingRepo := repository.NewRatingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	return &Services{
		Auth:        service.NewAuthService(userRepo, tokenRepo, cfg),
		Manga:       service.NewMangaService(mangaRepo, mangaCache, log),
		Rating:      service.NewRatingService(ratingRepo, mangaRepo, mangaCache, log),
		Favorite:    service.NewFavoriteService(favoriteRepo, mangaRepo),
		Maintenance: service.NewMaintenanceService(ratingRepo, tokenRepo, log),
	}
}

// NewRouter builds the gin engine. The rate limiter is returned to the caller
// so its idle buckets can be swept on a schedule.
func NewRouter(cfg *config.Config, svcs *Services, log *slog.Logger) (*gin.Engine, *middleware.RateLimiter) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", limiter.Middleware())
	requireAuth := middleware.AuthMiddleware(svcs.Auth)

	handler.NewAuthHandler(svcs.Auth).RegisterRoutes(api.Group("/auth"))
	handler.NewMangaHandler(svcs.Manga).RegisterRoutes(api.Group("/mangas"))
	handler.NewRatingHandler(svcs.Rating).RegisterRoutes(api.Group("/mangas", requireAuth))
	handler.NewFavoriteHandler(svcs.Favorite).RegisterRoutes(api.Group("/users/favorites", requireAuth))
	handler.NewMaintenanceHandler(svcs.Maintenance).RegisterRoutes(api.Group("/admin", requireAuth, middleware.RequireAdmin()))

	return r, limiter
}
