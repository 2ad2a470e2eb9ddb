package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mangareader/internal/microservices/http-api/handler"
	"mangareader/internal/microservices/http-api/middleware"
	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFavoriteRouter(svc *MockFavoriteService) http.Handler {
	router := setupRouter()
	group := router.Group("/api/v1/users/favorites", middleware.AuthMiddleware(new(MockAuthService)))
	handler.NewFavoriteHandler(svc).RegisterRoutes(group)
	return router
}

func authed(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer user:u1")
	return req
}

func TestFavoriteHandler_CheckAndToggle(t *testing.T) {
	svc := new(MockFavoriteService)
	svc.On("IsFavorite", "u1", int64(5)).Return(true, nil)
	svc.On("Toggle", "u1", int64(5)).Return(false, nil)
	svc.On("Toggle", "u1", int64(6)).Return(false, service.ErrMangaNotFound)
	router := newFavoriteRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authed(http.MethodGet, "/api/v1/users/favorites/5"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isFavorite":true}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authed(http.MethodPost, "/api/v1/users/favorites/5/toggle"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isFavorite":false}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authed(http.MethodPost, "/api/v1/users/favorites/6/toggle"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteHandler_List(t *testing.T) {
	svc := new(MockFavoriteService)
	added := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.On("List", "u1").Return([]models.Favorite{
		{MangaID: 5, CreatedAt: added, Manga: &models.Manga{ID: 5, Title: "Naruto"}},
	}, nil)

	w := httptest.NewRecorder()
	newFavoriteRouter(svc).ServeHTTP(w, authed(http.MethodGet, "/api/v1/users/favorites"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Naruto"`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestFavoriteHandler_RequiresAuth(t *testing.T) {
	svc := new(MockFavoriteService)
	w := httptest.NewRecorder()
	newFavoriteRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users/favorites/5/toggle", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
}
