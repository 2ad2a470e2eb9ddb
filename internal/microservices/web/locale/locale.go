// Package locale loads the page message catalogs and picks one per request.
package locale

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var translationFS embed.FS

const (
	CookieName = "lang"
	contextKey = "localizer"
	countParam = "Count"
)

type Catalog struct {
	bundle  *i18n.Bundle
	tags    []language.Tag
	matcher language.Matcher
}

// NewCatalog parses the embedded translations. defaultLang is used when no
// preference matches and for messages missing from another language.
func NewCatalog(defaultLang string) (*Catalog, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if err := parseTranslationFiles(translationFS, bundle); err != nil {
		return nil, err
	}

	// the matcher falls back to its first tag
	tags := []language.Tag{def}
	for _, tag := range bundle.LanguageTags() {
		if tag != def {
			tags = append(tags, tag)
		}
	}

	return &Catalog{
		bundle:  bundle,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}, nil
}

func parseTranslationFiles(i18nFS fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		if _, err := bundle.ParseMessageFileBytes(data, path); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	})
}

// Languages lists the available catalogs, default first.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Localizer resolves prefs (cookie values or Accept-Language headers, most
// important first) to one of the catalogs.
func (c *Catalog) Localizer(prefs ...string) *Localizer {
	var wanted []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}

	tag := c.tags[0]
	if len(wanted) > 0 {
		if _, idx, conf := c.matcher.Match(wanted...); conf != language.No {
			tag = c.tags[idx]
		}
	}

	return &Localizer{
		Tag: tag,
		loc: i18n.NewLocalizer(c.bundle, tag.String()),
	}
}

type Localizer struct {
	Tag language.Tag
	loc *i18n.Localizer
}

// T localizes id. params are alternating key/value template fields; a
// "Count" field also selects the plural form. Unknown ids come back as is.
func (l *Localizer) T(id string, params ...any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(params) > 1 {
		data := make(map[string]any, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			key, ok := params[i].(string)
			if !ok {
				continue
			}
			data[key] = params[i+1]
		}
		cfg.TemplateData = data
		if n, ok := data[countParam]; ok {
			cfg.PluralCount = n
		}
	}

	msg, err := l.loc.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

// Middleware stores a Localizer chosen from the lang cookie, then
// Accept-Language.
func Middleware(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs []string
		if cookie, err := c.Cookie(CookieName); err == nil {
			prefs = append(prefs, cookie)
		}
		prefs = append(prefs, c.GetHeader("Accept-Language"))

		c.Set(contextKey, catalog.Localizer(prefs...))
		c.Next()
	}
}

// FromContext returns the request's Localizer, or nil outside Middleware.
func FromContext(c *gin.Context) *Localizer {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*Localizer); ok {
			return l
		}
	}
	return nil
}
