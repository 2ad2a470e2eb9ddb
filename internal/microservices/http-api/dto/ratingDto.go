package dto

import (
	"time"

	"mangareader/internal/microservices/http-api/models"
)

// RatingRequest wraps the submitted value under a "rating" key:
// {"rating": {"rating": 4}}. Value is a pointer so an absent field
// reaches validation as blank instead of zero.
type RatingRequest struct {
	Rating *RatingParams `json:"rating"`
}

type RatingParams struct {
	Rating *int `json:"rating"`
}

// AggregateResponse is what every rating mutation returns.
type AggregateResponse struct {
	Rating     float64 `json:"rating"`
	TotalVotes int64   `json:"totalVotes"`
}

// UserRatingResponse for returning user's own rating
type UserRatingResponse struct {
	ID        int64     `json:"id"`
	MangaID   int64     `json:"mangaId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModelToUserRatingResponse(r *models.Rating) *UserRatingResponse {
	return &UserRatingResponse{
		ID:        r.ID,
		MangaID:   r.MangaID,
		Rating:    r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
