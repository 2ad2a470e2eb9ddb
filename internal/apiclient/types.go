package apiclient

import "time"

// Chapter mirrors one element of the detail chapters array.
type Chapter struct {
	ID        int64     `json:"id"`
	Number    float64   `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount *int64    `json:"viewCount,omitempty"`
}

// Manga is the detail payload. Genres stay untyped because the page accepts
// strings, numbers, objects and nulls there.
type Manga struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CoverImage      string    `json:"coverImage"`
	Author          string    `json:"author"`
	Artist          *string   `json:"artist,omitempty"`
	Status          string    `json:"status"`
	ReleaseYear     *int      `json:"releaseYear,omitempty"`
	TranslationTeam *string   `json:"translationTeam,omitempty"`
	Genres          []any     `json:"genres"`
	Chapters        []Chapter `json:"chapters"`
	ViewCount       *int64    `json:"viewCount,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	TotalVotes      *int64    `json:"totalVotes,omitempty"`
}

type MangaSummary struct {
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

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type MangaPage struct {
	Data       []MangaSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type Aggregate struct {
	Rating     float64 `json:"rating"`
	TotalVotes int64   `json:"totalVotes"`
}

type UserRating struct {
	ID        int64     `json:"id"`
	MangaID   int64     `json:"mangaId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type Refreshed struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type FavoriteItem struct {
	MangaID int64        `json:"mangaId"`
	Manga   MangaSummary `json:"manga"`
	AddedAt time.Time    `json:"addedAt"`
}

type FavoriteList struct {
	Items []FavoriteItem `json:"items"`
	Total int            `json:"total"`
}
