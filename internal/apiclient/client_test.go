package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1/", time.Second)
}

func TestGetManga_DecodesMixedGenres(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/mangas/7", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 7, "title": "One Piece", "status": "ongoing",
			"genres": ["Action", 42, {"name": "Super Power"}, null],
			"chapters": [{"id": 1, "number": 1088, "title": "x", "createdAt": "2023-08-10T00:00:00Z"}],
			"viewCount": 15000000, "rating": 4.5, "totalVotes": 2
		}`))
	})

	m, err := c.GetManga(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "One Piece", m.Title)
	require.Len(t, m.Genres, 4)
	assert.Equal(t, "Action", m.Genres[0])
	assert.Equal(t, float64(42), m.Genres[1])
	assert.Nil(t, m.Genres[3])
	assert.Equal(t, int64(15000000), *m.ViewCount)
	assert.Nil(t, m.Artist)
}

func TestRatingCalls_SendNestedBodyAndToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 4, body["rating"]["rating"])
		_, _ = w.Write([]byte(`{"rating": 4, "totalVotes": 1}`))
	})

	agg, err := c.CreateRating(context.Background(), "tok", "7", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), agg.TotalVotes)
}

func TestAPIError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors": {"value": ["must be between 1 and 5"]}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "manga not found"}`))
	})

	_, err := c.GetManga(context.Background(), "404")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "manga not found", apiErr.Message)

	_, err = c.CreateRating(context.Background(), "tok", "1", 9)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"must be between 1 and 5"}, apiErr.Fields["value"])
	assert.Contains(t, err.Error(), "value must be between 1 and 5")
}

func TestToggleFavorite(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/favorites/3/toggle", r.URL.Path)
		_, _ = w.Write([]byte(`{"isFavorite": true}`))
	})

	fav, err := c.ToggleFavorite(context.Background(), "tok", "3")
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.GetManga(context.Background(), "1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
