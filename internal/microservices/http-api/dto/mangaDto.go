package dto

import (
	"time"

	"mangareader/internal/microservices/http-api/models"
)

// MangaBasicResponse is the list-view shape of a manga.
type MangaBasicResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	CoverImage string   `json:"coverImage"`
	Author     string   `json:"author"`
	Status     string   `json:"status"`
	ViewCount  int64    `json:"viewCount"`
	Rating     float64  `json:"rating"`
	TotalVotes int64    `json:"totalVotes"`
	Genres     []string `json:"genres"`
}

// ChapterResponse is one row of the detail chapter list.
type ChapterResponse struct {
	ID        int64     `json:"id"`
	Number    float64   `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount *int64    `json:"viewCount,omitempty"`
}

// MangaDetailResponse is served by GET /mangas/:manga_id and cached as-is.
type MangaDetailResponse struct {
	ID              int64             `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	CoverImage      string            `json:"coverImage"`
	Author          string            `json:"author"`
	Artist          *string           `json:"artist,omitempty"`
	Status          string            `json:"status"`
	ReleaseYear     *int              `json:"releaseYear,omitempty"`
	TranslationTeam *string           `json:"translationTeam,omitempty"`
	Genres          []string          `json:"genres"`
	Chapters        []ChapterResponse `json:"chapters"`
	ViewCount       int64             `json:"viewCount"`
	Rating          float64           `json:"rating"`
	TotalVotes      int64             `json:"totalVotes"`
}

func genreNames(genres []models.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

// Converters
func FromModelToBasicResponse(m models.Manga) MangaBasicResponse {
	return MangaBasicResponse{
		ID:         m.ID,
		Title:      m.Title,
		CoverImage: m.CoverImage,
		Author:     m.Author,
		Status:     m.Status,
		ViewCount:  m.ViewCount,
		Rating:     m.Rating,
		TotalVotes: m.TotalVotes,
		Genres:     genreNames(m.Genres),
	}
}

func FromModelToDetailResponse(m models.Manga) MangaDetailResponse {
	chapters := make([]ChapterResponse, 0, len(m.Chapters))
	for _, ch := range m.Chapters {
		chapters = append(chapters, ChapterResponse{
			ID:        ch.ID,
			Number:    ch.Number,
			Title:     ch.Title,
			CreatedAt: ch.CreatedAt,
			ViewCount: ch.ViewCount,
		})
	}

	return MangaDetailResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		CoverImage:      m.CoverImage,
		Author:          m.Author,
		Artist:          m.Artist,
		Status:          m.Status,
		ReleaseYear:     m.ReleaseYear,
		TranslationTeam: m.TranslationTeam,
		Genres:          genreNames(m.Genres),
		Chapters:        chapters,
		ViewCount:       m.ViewCount,
		Rating:          m.Rating,
		TotalVotes:      m.TotalVotes,
	}
}
