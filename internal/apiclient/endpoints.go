package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func ratingBody(value int) map[string]any {
	return map[string]any{"rating": map[string]int{"rating": value}}
}

func (c *Client) Signup(ctx context.Context, email, username, password string) error {
	body := map[string]string{"email": email, "username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/signup", "", body, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Refreshed, error) {
	var r Refreshed
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListMangas(ctx context.Context, page, pageSize int) (*MangaPage, error) {
	var p MangaPage
	path := fmt.Sprintf("/mangas?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetManga(ctx context.Context, id string) (*Manga, error) {
	var m Manga
	if err := c.do(ctx, http.MethodGet, "/mangas/"+url.PathEscape(id), "", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) CheckFavorite(ctx context.Context, token, mangaID string) (bool, error) {
	var out struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/favorites/"+url.PathEscape(mangaID), token, nil, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *Client) ToggleFavorite(ctx context.Context, token, mangaID string) (bool, error) {
	var out struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/favorites/"+url.PathEscape(mangaID)+"/toggle", token, nil, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *Client) ListFavorites(ctx context.Context, token string) (*FavoriteList, error) {
	var out FavoriteList
	if err := c.do(ctx, http.MethodGet, "/users/favorites", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRating(ctx context.Context, token, mangaID string, value int) (*Aggregate, error) {
	var agg Aggregate
	if err := c.do(ctx, http.MethodPost, "/mangas/"+url.PathEscape(mangaID)+"/ratings", token, ratingBody(value), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// UpdateRating targets the caller's rating; the id segment is required by the route but not used.
func (c *Client) UpdateRating(ctx context.Context, token, mangaID string, value int) (*Aggregate, error) {
	var agg Aggregate
	if err := c.do(ctx, http.MethodPut, "/mangas/"+url.PathEscape(mangaID)+"/ratings/me", token, ratingBody(value), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

func (c *Client) DeleteRating(ctx context.Context, token, mangaID string) (*Aggregate, error) {
	var agg Aggregate
	if err := c.do(ctx, http.MethodDelete, "/mangas/"+url.PathEscape(mangaID)+"/ratings/me", token, nil, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

func (c *Client) MyRating(ctx context.Context, token, mangaID string) (*UserRating, error) {
	var r UserRating
	if err := c.do(ctx, http.MethodGet, "/mangas/"+url.PathEscape(mangaID)+"/ratings/me", token, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
