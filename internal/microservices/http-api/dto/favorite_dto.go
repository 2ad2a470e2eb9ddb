package dto

import (
	"time"

	"mangareader/internal/microservices/http-api/models"
)

// FavoriteStatusResponse answers check and toggle.
type FavoriteStatusResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// FavoriteResponse: response for a favorite item
type FavoriteResponse struct {
	MangaID int64              `json:"mangaId"`
	Manga   MangaBasicResponse `json:"manga"`
	AddedAt time.Time          `json:"addedAt"`
}

// FavoriteListResponse: list of favorite items
type FavoriteListResponse struct {
	Items []FavoriteResponse `json:"items"`
	Total int                `json:"total"`
}

func FromModelsToFavoriteList(favorites []models.Favorite) FavoriteListResponse {
	items := make([]FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		item := FavoriteResponse{MangaID: f.MangaID, AddedAt: f.CreatedAt}
		if f.Manga != nil {
			item.Manga = FromModelToBasicResponse(*f.Manga)
		}
		items = append(items, item)
	}
	return FavoriteListResponse{Items: items, Total: len(items)}
}
