// Package web serves the server-rendered pages. Every piece of data comes
// from the JSON API through apiclient.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mangareader/internal/apiclient"
	"mangareader/internal/logger"
	"mangareader/internal/microservices/web/locale"
	"mangareader/internal/microservices/web/view"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

//go:embed html/*.html
var htmlFS embed.FS

//go:embed assets
var assetsFS embed.FS

const accessCookie = "access_token"

var notices = map[string]string{
	"login_required": "NoticeLoginRequired",
	"action_failed":  "NoticeActionFailed",
}

// API is the part of apiclient.Client the pages use.
type API interface {
	ListMangas(ctx context.Context, page, pageSize int) (*apiclient.MangaPage, error)
	GetManga(ctx context.Context, id string) (*apiclient.Manga, error)
	CheckFavorite(ctx context.Context, token, mangaID string) (bool, error)
	ToggleFavorite(ctx context.Context, token, mangaID string) (bool, error)
	Login(ctx context.Context, username, password string) (*apiclient.Session, error)
}

type Options struct {
	// MockFallback renders the demo record when the manga fetch fails.
	MockFallback   bool
	SecureCookies  bool
	RequestTimeout time.Duration
}

type Server struct {
	api     API
	catalog *locale.Catalog
	log     *slog.Logger
	opts    Options
}

func NewServer(api API, catalog *locale.Catalog, log *slog.Logger, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Server{api: api, catalog: catalog, log: log, opts: opts}
}

var funcMap = template.FuncMap{
	"t": func(l *locale.Localizer, id string, params ...any) string {
		if l == nil {
			return id
		}
		return l.T(id, params...)
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// Router builds the engine serving pages and static assets.
func (s *Server) Router() (*gin.Engine, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(s.log))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(locale.Middleware(s.catalog))

	r.SetFuncMap(funcMap)
	r.SetHTMLTemplate(tpl)
	r.StaticFS("/static", http.FS(assets))

	r.GET("/", s.home)
	r.GET("/manga/:id", s.showManga)
	r.POST("/manga/:id/favorite", s.toggleFavorite)
	r.GET("/login", s.loginForm)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)
	r.GET("/lang/:code", s.switchLanguage)

	r.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "NotFound")
	})

	return r, nil
}

// page returns the fields every template's header needs, merged with extra.
func (s *Server) page(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{
		"L":        locale.FromContext(c),
		"Title":    title,
		"LoggedIn": accessToken(c) != "",
		"Path":     c.Request.URL.RequestURI(),
		"Langs":    s.catalog.Languages(),
		"Notice":   "",
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (s *Server) renderError(c *gin.Context, status int, messageID string) {
	c.HTML(status, "error.html", s.page(c, "", gin.H{"Message": messageID}))
}

func (s *Server) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
}

func accessToken(c *gin.Context) string {
	token, err := c.Cookie(accessCookie)
	if err != nil {
		return ""
	}
	return token
}

func (s *Server) setAccessToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, token, maxAge, "/", "", s.opts.SecureCookies, true)
}

func apiStatus(err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (s *Server) home(c *gin.Context) {
	ctx, cancel := s.timeout(c)
	defer cancel()

	data := gin.H{"Error": "", "Mangas": nil}
	list, err := s.api.ListMangas(ctx, 1, 24)
	if err != nil {
		s.log.Error("failed to list manga", "error", err)
		data["Error"] = "ListError"
	} else {
		data["Mangas"] = list.Data
	}
	c.HTML(http.StatusOK, "home.html", s.page(c, "", data))
}

func (s *Server) showManga(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := s.timeout(c)
	defer cancel()

	var notice string
	if key, ok := notices[c.Query("notice")]; ok {
		notice = key
	}

	m, err := s.api.GetManga(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch manga", "manga_id", id, "error", err)
		if !s.opts.MockFallback {
			status := http.StatusBadGateway
			if apiStatus(err) == http.StatusNotFound {
				status = http.StatusNotFound
			}
			s.renderError(c, status, "FetchError")
			return
		}
		m = view.MockManga(id)
		notice = "FetchError"
	}

	isFavorite := false
	if token := accessToken(c); token != "" {
		fav, err := s.api.CheckFavorite(ctx, token, id)
		if err != nil {
			s.log.Warn("failed to check favorite status", "manga_id", id, "error", err)
		} else {
			isFavorite = fav
		}
	}

	loc := locale.FromContext(c)
	tag, layout := language.Vietnamese, ""
	if loc != nil {
		tag, layout = loc.Tag, loc.T("DateLayout")
	}
	detail := view.NewDetail(m, tag, layout, isFavorite)

	c.HTML(http.StatusOK, "detail.html", s.page(c, detail.Title, gin.H{
		"Manga":  detail,
		"Notice": notice,
	}))
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id := c.Param("id")
	back := "/manga/" + url.PathEscape(id)

	token := accessToken(c)
	if token == "" {
		c.Redirect(http.StatusSeeOther, back+"?notice=login_required")
		return
	}

	ctx, cancel := s.timeout(c)
	defer cancel()

	if _, err := s.api.ToggleFavorite(ctx, token, id); err != nil {
		s.log.Warn("failed to toggle favorite", "manga_id", id, "error", err)
		notice := "action_failed"
		if apiStatus(err) == http.StatusUnauthorized {
			s.setAccessToken(c, "", -1)
			notice = "login_required"
		}
		c.Redirect(http.StatusSeeOther, back+"?notice="+notice)
		return
	}
	c.Redirect(http.StatusSeeOther, back)
}

func (s *Server) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", s.page(c, "", gin.H{
		"Error":    "",
		"Next":     safeNext(c.Query("next")),
		"Username": "",
	}))
}

func (s *Server) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	ctx, cancel := s.timeout(c)
	defer cancel()

	session, err := s.api.Login(ctx, username, password)
	if err != nil {
		status, message := http.StatusBadGateway, "LoginUnavailable"
		if apiStatus(err) == http.StatusUnauthorized {
			status, message = http.StatusUnauthorized, "LoginFailed"
		} else {
			s.log.Error("login request failed", "error", err)
		}
		c.HTML(status, "login.html", s.page(c, "", gin.H{
			"Error":    message,
			"Next":     next,
			"Username": username,
		}))
		return
	}

	s.setAccessToken(c, session.AccessToken, int(session.ExpiresIn))
	c.Redirect(http.StatusSeeOther, next)
}

func (s *Server) logout(c *gin.Context) {
	s.setAccessToken(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) switchLanguage(c *gin.Context) {
	code := c.Param("code")
	for _, tag := range s.catalog.Languages() {
		if tag.String() == code {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(locale.CookieName, code, int((365 * 24 * time.Hour).Seconds()), "/", "", s.opts.SecureCookies, false)
			break
		}
	}

	back := "/"
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" {
		back = safeNext(ref.RequestURI())
	}
	c.Redirect(http.StatusSeeOther, back)
}
