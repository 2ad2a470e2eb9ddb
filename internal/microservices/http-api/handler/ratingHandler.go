package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"mangareader/internal/microservices/http-api/dto"
	"mangareader/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating routes; the group must already be behind AuthMiddleware.
// The :id segment is accepted for compatibility, lookups go by (user, manga).
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/:manga_id/ratings")
	{
		ratings.POST("", h.Create)
		ratings.GET("/me", h.GetUserRating)
		ratings.PUT("/:id", h.Update)
		ratings.PATCH("/:id", h.Update)
		ratings.DELETE("/:id", h.Destroy)
	}
}

// bindValue reads {"rating": {"rating": N}}. A missing outer key is a 400;
// a missing inner value reaches validation as blank.
func bindValue(c *gin.Context) (*int, bool) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return nil, false
	}
	if req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "param is missing or the value is empty: rating"})
		return nil, false
	}
	return req.Rating.Rating, true
}

// Create sets the caller's rating for a manga
// POST /api/v1/mangas/:manga_id/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mangaID, ok := mangaIDParam(c)
	if !ok {
		return
	}
	value, ok := bindValue(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	agg, err := h.ratingService.Create(ctx, userID, mangaID, value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// Update changes the caller's existing rating
// PUT|PATCH /api/v1/mangas/:manga_id/ratings/:id
func (h *RatingHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mangaID, ok := mangaIDParam(c)
	if !ok {
		return
	}
	value, ok := bindValue(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	agg, err := h.ratingService.Update(ctx, userID, mangaID, value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// Destroy removes the caller's rating
// DELETE /api/v1/mangas/:manga_id/ratings/:id
func (h *RatingHandler) Destroy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mangaID, ok := mangaIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	agg, err := h.ratingService.Destroy(ctx, userID, mangaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// GetUserRating retrieves the current user's rating for a manga
// GET /api/v1/mangas/:manga_id/ratings/me
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mangaID, ok := mangaIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rating, err := h.ratingService.GetUserRating(ctx, userID, mangaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}
