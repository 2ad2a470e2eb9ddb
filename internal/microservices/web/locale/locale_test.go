package locale

import (
	"net/http"
	"net/http/httptest"
	"io/fs"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("vi")
	require.NoError(t, err)
	return c
}

func TestNewCatalog_DefaultFirst(t *testing.T) {
	c := newCatalog(t)

	langs := c.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, language.Vietnamese, langs[0])
	assert.Equal(t, language.English, langs[1])
}

func TestNewCatalog_EachDefault(t *testing.T) {
	for _, lang := range []string{"vi", "en"} {
		c, err := NewCatalog(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, "Synopsis:", c.Localizer("en").T("Synopsis"))
		assert.Equal(t, "Mô tả:", c.Localizer("vi").T("Synopsis"))
	}
}

// go-i18n treats these top-level keys as message fields and refuses files
// that mix them with message ids.
func TestTranslationFiles_NoReservedIDs(t *testing.T) {
	reserved := []string{"ID", "Hash", "Description", "LeftDelim", "RightDelim",
		"Zero", "One", "Two", "Few", "Many", "Other"}

	files, err := fs.Glob(translationFS, "translation/*.toml")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, path := range files {
		data, err := fs.ReadFile(translationFS, path)
		require.NoError(t, err)

		var messages map[string]any
		require.NoError(t, toml.Unmarshal(data, &messages), path)
		for _, key := range reserved {
			assert.NotContains(t, messages, key, "%s uses reserved id %s", path, key)
		}
	}
}

func TestNewCatalog_BadDefault(t *testing.T) {
	_, err := NewCatalog("not a tag!")
	assert.Error(t, err)
}

func TestLocalizer_Selection(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name  string
		prefs []string
		want  language.Tag
	}{
		{"no preference", nil, language.Vietnamese},
		{"accept language", []string{"en-US,en;q=0.9"}, language.English},
		{"cookie wins", []string{"vi", "en-US"}, language.Vietnamese},
		{"unsupported", []string{"ja-JP"}, language.Vietnamese},
		{"garbage", []string{";;;"}, language.Vietnamese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Localizer(tt.prefs...).Tag)
		})
	}
}

func TestLocalizer_T(t *testing.T) {
	c := newCatalog(t)
	vi := c.Localizer("vi")
	en := c.Localizer("en")

	assert.Equal(t, "Đang tiến hành", vi.T("StatusOngoing"))
	assert.Equal(t, "Ongoing", en.T("StatusOngoing"))
	assert.Equal(t, "của 3 lượt đánh giá", vi.T("Votes", "Count", 3))
	assert.Equal(t, "from 1 vote", en.T("Votes", "Count", 1))
	assert.Equal(t, "from 0 votes", en.T("Votes", "Count", 0))
	assert.Equal(t, "Chapter 12.5", en.T("Chapter", "Number", "12.5"))
	assert.Equal(t, "NoSuchMessage", vi.T("NoSuchMessage"))
}

func TestCatalogsHaveSameMessages(t *testing.T) {
	c := newCatalog(t)
	ids := []string{
		"FetchError", "NotFound", "BackHome", "FirstChapter", "LastChapter",
		"Favorited", "AddFavorite", "TranslationTeam", "NoneYet", "Views",
		"Genres", "Author", "Artist", "ReleaseYear", "ChapterCount",
		"Synopsis", "ChapterList", "StatusHiatus", "StatusCancelled",
		"NoticeLoginRequired", "NoticeActionFailed", "DateLayout",
	}
	for _, tag := range c.Languages() {
		l := c.Localizer(tag.String())
		for _, id := range ids {
			assert.NotEqual(t, id, l.T(id), "%s missing in %s", id, tag)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCatalog(t)

	r := gin.New()
	r.Use(Middleware(c))
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, FromContext(ctx).T("Home"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "vi-VN")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "en"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Home", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Trang chủ", w.Body.String())
}
