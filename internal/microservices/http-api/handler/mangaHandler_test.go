package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mangareader/internal/microservices/http-api/dto"
	"mangareader/internal/microservices/http-api/handler"
	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMangaRouter(svc *MockMangaService) http.Handler {
	router := setupRouter()
	handler.NewMangaHandler(svc).RegisterRoutes(router.Group("/api/v1/mangas"))
	return router
}

func TestMangaHandler_List(t *testing.T) {
	svc := new(MockMangaService)
	svc.On("GetAll", 2, 10).Return([]models.Manga{
		{ID: 1, Title: "One Piece", Genres: []models.Genre{{Name: "Action"}}},
	}, int64(11), nil)

	w := httptest.NewRecorder()
	newMangaRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas?page=2&page_size=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data       []dto.MangaBasicResponse `json:"data"`
		Pagination map[string]int64         `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, []string{"Action"}, body.Data[0].Genres)
	assert.Equal(t, int64(2), body.Pagination["total_pages"])
}

func TestMangaHandler_ListClampsPageSize(t *testing.T) {
	svc := new(MockMangaService)
	svc.On("GetAll", 1, 20).Return([]models.Manga{}, int64(0), nil)

	w := httptest.NewRecorder()
	newMangaRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas?page=-1&page_size=1000", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMangaHandler_Get(t *testing.T) {
	svc := new(MockMangaService)
	team := "Nhóm dịch A"
	svc.On("GetDetail", int64(1)).Return(&dto.MangaDetailResponse{
		ID:              1,
		Title:           "One Piece",
		TranslationTeam: &team,
		Genres:          []string{"Action"},
		Chapters:        []dto.ChapterResponse{{ID: 10, Number: 1088, Title: "Final"}},
		Rating:          4.5,
		TotalVotes:      2,
	}, nil)
	svc.On("GetDetail", int64(2)).Return(nil, service.ErrMangaNotFound)
	svc.On("GetDetail", int64(3)).Return(nil, errors.New("db down"))

	router := newMangaRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Nhóm dịch A", detail["translationTeam"])
	assert.Equal(t, float64(2), detail["totalVotes"])
	assert.NotContains(t, detail, "artist")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas/2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas/3", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/mangas/xyz", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
