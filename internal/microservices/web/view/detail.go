package view

import (
	"strconv"
	"time"

	"mangareader/internal/apiclient"

	"golang.org/x/text/language"
)

const PlaceholderCover = "/static/placeholder-manga.svg"

type GenreTag struct {
	Name string
	Slug string
}

type ChapterRow struct {
	ID     int64
	Number string
	Title  string
	Views  string
	Date   string
}

// Detail is everything the detail template needs, already formatted.
type Detail struct {
	ID              int64
	Title           string
	Description     string
	CoverImage      string
	Author          string
	Artist          string
	Status          string
	StatusKey       string
	ReleaseYear     string
	TranslationTeam string

	Stars      []bool
	RatingText string
	TotalVotes int64

	ViewBadge  string
	TotalViews string

	Genres         []GenreTag
	Chapters       []ChapterRow
	ChapterCount   int
	FirstChapterID int64
	LastChapterID  int64

	IsFavorite bool
}

// NewDetail formats m for tag. dateLayout is a time layout for chapter dates.
func NewDetail(m *apiclient.Manga, tag language.Tag, dateLayout string, isFavorite bool) Detail {
	d := Detail{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CoverImage:  m.CoverImage,
		Author:      m.Author,
		Status:      m.Status,
		StatusKey:   StatusKey(m.Status),
		RatingText:  RatingText(m.Rating),
		IsFavorite:  isFavorite,
	}
	if d.CoverImage == "" {
		d.CoverImage = PlaceholderCover
	}
	if m.Artist != nil {
		d.Artist = *m.Artist
	}
	if m.ReleaseYear != nil && *m.ReleaseYear != 0 {
		d.ReleaseYear = strconv.Itoa(*m.ReleaseYear)
	}
	if m.TranslationTeam != nil {
		d.TranslationTeam = *m.TranslationTeam
	}

	var rating float64
	if m.Rating != nil {
		rating = *m.Rating
	}
	d.Stars = Stars(rating)
	if m.TotalVotes != nil {
		d.TotalVotes = *m.TotalVotes
	}

	var views int64
	if m.ViewCount != nil {
		views = *m.ViewCount
	}
	d.TotalViews = GroupedNumber(views, tag)
	if views != 0 {
		d.ViewBadge = FormatViewCount(views)
	}

	for i, g := range m.Genres {
		name := GenreName(g, i)
		d.Genres = append(d.Genres, GenreTag{Name: name, Slug: GenreSlug(name, i)})
	}

	sorted := SortChaptersDesc(m.Chapters)
	for _, ch := range sorted {
		row := ChapterRow{
			ID:     ch.ID,
			Number: strconv.FormatFloat(ch.Number, 'f', -1, 64),
			Title:  ch.Title,
			Date:   formatDate(ch.CreatedAt, dateLayout),
		}
		if ch.ViewCount != nil && *ch.ViewCount != 0 {
			row.Views = FormatChapterViewCount(*ch.ViewCount)
		}
		d.Chapters = append(d.Chapters, row)
	}
	d.ChapterCount = len(sorted)
	d.FirstChapterID = FirstChapterID(sorted)
	d.LastChapterID = LastChapterID(sorted)
	return d
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = time.DateOnly
	}
	return t.Local().Format(layout)
}
