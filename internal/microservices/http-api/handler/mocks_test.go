package handler_test

import (
	"context"
	"errors"
	"strings"

	"mangareader/internal/microservices/http-api/dto"
	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	args := m.Called(email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.TokenPair, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, int64, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

// ValidateToken accepts "Bearer user:<id>" style tokens so routes can be
// exercised through the real AuthMiddleware.
func (m *MockAuthService) ValidateToken(tokenString string) (*service.AccessClaims, error) {
	if id, ok := strings.CutPrefix(tokenString, "user:"); ok {
		return &service.AccessClaims{UserID: id, Username: id, Role: "reader"}, nil
	}
	return nil, errors.New("invalid token")
}

type MockMangaService struct {
	mock.Mock
}

func (m *MockMangaService) GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Manga), args.Get(1).(int64), args.Error(2)
}

func (m *MockMangaService) GetDetail(ctx context.Context, id int64) (*dto.MangaDetailResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MangaDetailResponse), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Create(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error) {
	args := m.Called(userID, mangaID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AggregateResponse), args.Error(1)
}

func (m *MockRatingService) Update(ctx context.Context, userID string, mangaID int64, value *int) (*dto.AggregateResponse, error) {
	args := m.Called(userID, mangaID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AggregateResponse), args.Error(1)
}

func (m *MockRatingService) Destroy(ctx context.Context, userID string, mangaID int64) (*dto.AggregateResponse, error) {
	args := m.Called(userID, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AggregateResponse), args.Error(1)
}

func (m *MockRatingService) GetUserRating(ctx context.Context, userID string, mangaID int64) (*dto.UserRatingResponse, error) {
	args := m.Called(userID, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserRatingResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, userID string, mangaID int64) (bool, error) {
	args := m.Called(userID, mangaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID string, mangaID int64) (bool, error) {
	args := m.Called(userID, mangaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Favorite), args.Error(1)
}

// --- SETUP ---

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func intPtr(v int) *int { return &v }
