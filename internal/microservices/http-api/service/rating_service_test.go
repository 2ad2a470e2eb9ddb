package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"mangareader/database"
	"mangareader/internal/cache"
	"mangareader/internal/microservices/http-api/dto"
	"mangareader/internal/microservices/http-api/models"
	"mangareader/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

// spyCache records invalidations so tests can see the detail payload is dropped.
type spyCache struct {
	mock.Mock
}

func (c *spyCache) Get(ctx context.Context, id int64) (*dto.MangaDetailResponse, error) {
	return nil, cache.ErrMiss
}

func (c *spyCache) Version(ctx context.Context, id int64) (int64, error) { return 0, nil }

func (c *spyCache) Set(ctx context.Context, d *dto.MangaDetailResponse, version int64) error {
	return nil
}

func (c *spyCache) Invalidate(ctx context.Context, id int64) error {
	args := c.Called(id)
	return args.Error(0)
}

type RatingServiceSuite struct {
	suite.Suite
	db    *gorm.DB
	cache *spyCache
	svc   RatingService
	manga models.Manga
	ctx   context.Context
}

func (s *RatingServiceSuite) SetupTest() {
	db, err := database.Open(":memory:", discardLogger(), false)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db
	s.ctx = context.Background()

	for _, name := range []string{"alice", "bob"} {
		s.Require().NoError(db.Create(&models.User{
			Email:          name + "@example.com",
			Username:       name,
			PasswordDigest: "x",
		}).Error)
	}
	s.manga = models.Manga{Title: "One Piece", Author: "Eiichiro Oda"}
	s.Require().NoError(db.Create(&s.manga).Error)

	s.cache = &spyCache{}
	s.cache.On("Invalidate", mock.Anything).Return(nil)

	s.svc = NewRatingService(
		repository.NewRatingRepository(db),
		repository.NewMangaRepo(db),
		s.cache,
		discardLogger(),
	)
}

func (s *RatingServiceSuite) TearDownTest() {
	database.Close(s.db)
}

func (s *RatingServiceSuite) userID(name string) string {
	var u models.User
	s.Require().NoError(s.db.Where("username = ?", name).First(&u).Error)
	return u.ID
}

func (s *RatingServiceSuite) reloadManga() models.Manga {
	var m models.Manga
	s.Require().NoError(s.db.First(&m, s.manga.ID).Error)
	return m
}

func (s *RatingServiceSuite) TestCreateIncrementsVotes() {
	agg, err := s.svc.Create(s.ctx, s.userID("alice"), s.manga.ID, intPtr(4))
	s.Require().NoError(err)
	s.Equal(4.0, agg.Rating)
	s.Equal(int64(1), agg.TotalVotes)

	agg, err = s.svc.Create(s.ctx, s.userID("bob"), s.manga.ID, intPtr(5))
	s.Require().NoError(err)
	s.InDelta(4.5, agg.Rating, 0.0001)
	s.Equal(int64(2), agg.TotalVotes)

	m := s.reloadManga()
	s.InDelta(4.5, m.Rating, 0.0001)
	s.Equal(int64(2), m.TotalVotes)
	s.cache.AssertNumberOfCalls(s.T(), "Invalidate", 2)
}

func (s *RatingServiceSuite) TestCreateTwiceKeepsOneRow() {
	alice := s.userID("alice")
	_, err := s.svc.Create(s.ctx, alice, s.manga.ID, intPtr(2))
	s.Require().NoError(err)

	agg, err := s.svc.Create(s.ctx, alice, s.manga.ID, intPtr(5))
	s.Require().NoError(err)
	s.Equal(5.0, agg.Rating)
	s.Equal(int64(1), agg.TotalVotes)

	var count int64
	s.db.Model(&models.Rating{}).Where("user_id = ?", alice).Count(&count)
	s.Equal(int64(1), count)
}

func (s *RatingServiceSuite) TestRepeatedUpdateKeepsVotes() {
	alice := s.userID("alice")
	_, err := s.svc.Create(s.ctx, alice, s.manga.ID, intPtr(1))
	s.Require().NoError(err)

	for _, v := range []int{3, 5, 2} {
		agg, err := s.svc.Update(s.ctx, alice, s.manga.ID, intPtr(v))
		s.Require().NoError(err)
		s.Equal(float64(v), agg.Rating)
		s.Equal(int64(1), agg.TotalVotes)
	}
}

func (s *RatingServiceSuite) TestDestroyDecrementsVotes() {
	alice, bob := s.userID("alice"), s.userID("bob")
	_, err := s.svc.Create(s.ctx, alice, s.manga.ID, intPtr(2))
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, bob, s.manga.ID, intPtr(4))
	s.Require().NoError(err)

	agg, err := s.svc.Destroy(s.ctx, alice, s.manga.ID)
	s.Require().NoError(err)
	s.Equal(4.0, agg.Rating)
	s.Equal(int64(1), agg.TotalVotes)

	agg, err = s.svc.Destroy(s.ctx, bob, s.manga.ID)
	s.Require().NoError(err)
	s.Equal(0.0, agg.Rating)
	s.Equal(int64(0), agg.TotalVotes)

	var rows int64
	s.Require().NoError(s.db.Model(&models.Rating{}).Where("manga_id = ?", s.manga.ID).Count(&rows).Error)
	s.Equal(int64(0), rows)
}

func (s *RatingServiceSuite) TestUpdateAndDestroyWithoutRating() {
	alice := s.userID("alice")

	_, err := s.svc.Update(s.ctx, alice, s.manga.ID, intPtr(3))
	s.ErrorIs(err, ErrRatingNotFound)

	_, err = s.svc.Destroy(s.ctx, alice, s.manga.ID)
	s.ErrorIs(err, ErrRatingNotFound)

	_, err = s.svc.GetUserRating(s.ctx, alice, s.manga.ID)
	s.ErrorIs(err, ErrRatingNotFound)
}

func (s *RatingServiceSuite) TestMissingManga() {
	_, err := s.svc.Create(s.ctx, s.userID("alice"), 9999, intPtr(3))
	s.ErrorIs(err, ErrMangaNotFound)
}

func (s *RatingServiceSuite) TestInvalidValues() {
	alice := s.userID("alice")
	cases := map[string]*int{
		"blank":    nil,
		"too low":  intPtr(0),
		"too high": intPtr(6),
		"negative": intPtr(-3),
	}
	for name, v := range cases {
		s.Run(name, func() {
			_, err := s.svc.Create(s.ctx, alice, s.manga.ID, v)
			var verr *ValidationError
			s.Require().ErrorAs(err, &verr)
			s.Contains(verr.Fields, "value")
		})
	}

	m := s.reloadManga()
	s.Equal(int64(0), m.TotalVotes)
}

func (s *RatingServiceSuite) TestGetUserRating() {
	alice := s.userID("alice")
	_, err := s.svc.Create(s.ctx, alice, s.manga.ID, intPtr(3))
	s.Require().NoError(err)

	r, err := s.svc.GetUserRating(s.ctx, alice, s.manga.ID)
	s.Require().NoError(err)
	s.Equal(3, r.Rating)
	s.Equal(s.manga.ID, r.MangaID)
}

func TestRatingServiceSuite(t *testing.T) {
	suite.Run(t, new(RatingServiceSuite))
}

func TestValidateValueMessages(t *testing.T) {
	err := validateValue(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"can't be blank"}, verr.Fields["value"])

	err = validateValue(intPtr(9))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"must be between 1 and 5"}, verr.Fields["value"])

	assert.NoError(t, validateValue(intPtr(5)))
}
