package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mangareader/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogData is the JSON document accepted by the catalog importer.
type CatalogData struct {
	Genres []string       `json:"genres"`
	Mangas []CatalogManga `json:"mangas"`
}

type CatalogManga struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	CoverImage      string           `json:"coverImage"`
	Author          string           `json:"author"`
	Artist          *string          `json:"artist,omitempty"`
	Status          string           `json:"status"`
	ReleaseYear     *int             `json:"releaseYear,omitempty"`
	TranslationTeam *string          `json:"translationTeam,omitempty"`
	ViewCount       int64            `json:"viewCount"`
	Genres          []string         `json:"genres"`
	Chapters        []CatalogChapter `json:"chapters"`
}

type CatalogChapter struct {
	Number    float64 `json:"number"`
	Title     string  `json:"title"`
	ViewCount *int64  `json:"viewCount,omitempty"`
}

type ImportStats struct {
	Genres   int
	Mangas   int
	Chapters int
}

func ReadCatalog(r io.Reader) (*CatalogData, error) {
	var data CatalogData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
	}
	return &data, nil
}

// ImportCatalog upserts genres and manga in one transaction. A manga that already
// exists (same title and author) keeps its id, ratings and chapters; only missing
// chapter numbers are added.
func ImportCatalog(ctx context.Context, db *gorm.DB, data *CatalogData) (ImportStats, error) {
	var stats ImportStats
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genreIDs, err := importGenres(tx, collectGenreNames(data))
		if err != nil {
			return err
		}
		stats.Genres = len(genreIDs)

		for _, cm := range data.Mangas {
			if strings.TrimSpace(cm.Title) == "" {
				continue
			}
			added, err := importManga(tx, cm, genreIDs)
			if err != nil {
				return fmt.Errorf("import manga %q: %w", cm.Title, err)
			}
			stats.Mangas++
			stats.Chapters += added
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}

func collectGenreNames(data *CatalogData) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(data.Genres))
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, g := range data.Genres {
		add(g)
	}
	for _, m := range data.Mangas {
		for _, g := range m.Genres {
			add(g)
		}
	}
	return names
}

func importGenres(tx *gorm.DB, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	rows := make([]models.Genre, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Genre{Name: n})
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("insert genres: %w", err)
	}

	var stored []models.Genre
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	for _, g := range stored {
		ids[g.Name] = g.ID
	}
	return ids, nil
}

func importManga(tx *gorm.DB, cm CatalogManga, genreIDs map[string]int64) (int, error) {
	status := cm.Status
	if status == "" {
		status = models.StatusOngoing
	}

	var m models.Manga
	err := tx.Where(models.Manga{Title: cm.Title, Author: cm.Author}).
		Assign(models.Manga{
			Description:     cm.Description,
			CoverImage:      cm.CoverImage,
			Artist:          cm.Artist,
			Status:          status,
			ReleaseYear:     cm.ReleaseYear,
			TranslationTeam: cm.TranslationTeam,
			ViewCount:       cm.ViewCount,
		}).
		FirstOrCreate(&m).Error
	if err != nil {
		return 0, err
	}

	genres := make([]models.Genre, 0, len(cm.Genres))
	for _, name := range cm.Genres {
		if id, ok := genreIDs[strings.TrimSpace(name)]; ok {
			genres = append(genres, models.Genre{ID: id})
		}
	}
	if err := tx.Model(&m).Association("Genres").Replace(genres); err != nil {
		return 0, fmt.Errorf("replace genres: %w", err)
	}

	var existing []float64
	if err := tx.Model(&models.Chapter{}).Where("manga_id = ?", m.ID).Pluck("number", &existing).Error; err != nil {
		return 0, err
	}
	have := make(map[float64]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	added := 0
	for _, ch := range cm.Chapters {
		if have[ch.Number] {
			continue
		}
		row := models.Chapter{MangaID: m.ID, Number: ch.Number, Title: ch.Title, ViewCount: ch.ViewCount}
		if err := tx.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("insert chapter %v: %w", ch.Number, err)
		}
		have[ch.Number] = true
		added++
	}
	return added, nil
}
