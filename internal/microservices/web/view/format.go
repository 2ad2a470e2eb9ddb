// Package view turns API payloads into the values the detail page renders.
package view

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mangareader/internal/apiclient"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SortChaptersDesc returns a copy ordered by chapter number, highest first.
// Equal numbers keep their incoming order.
func SortChaptersDesc(chapters []apiclient.Chapter) []apiclient.Chapter {
	sorted := make([]apiclient.Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number > sorted[j].Number
	})
	return sorted
}

// roundHalfAway rounds to the given number of decimals, ties away from zero.
func roundHalfAway(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func thousands(n int64) string {
	return fmt.Sprintf("%.0fK", roundHalfAway(float64(n)/1000, 0))
}

// FormatViewCount renders the manga view badge: 1.5M, 2K, 500.
func FormatViewCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", roundHalfAway(float64(n)/1_000_000, 1))
	case n >= 1000:
		return thousands(n)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatChapterViewCount has no millions step.
func FormatChapterViewCount(n int64) string {
	if n >= 1000 {
		return thousands(n)
	}
	return strconv.FormatInt(n, 10)
}

// GroupedNumber formats n with the locale's thousands separator.
func GroupedNumber(n int64, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// Stars reports, for stars 1..5, whether each is filled.
func Stars(rating float64) []bool {
	stars := make([]bool, 5)
	for i := 1; i <= 5; i++ {
		stars[i-1] = float64(i) <= rating
	}
	return stars
}

// RatingText shows one decimal, "0.0" when there is no rating.
func RatingText(rating *float64) string {
	if rating == nil {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", roundHalfAway(*rating, 1))
}

// StatusKey maps a manga status to its catalog message id.
func StatusKey(status string) string {
	switch status {
	case "ongoing":
		return "StatusOngoing"
	case "completed":
		return "StatusCompleted"
	case "hiatus":
		return "StatusHiatus"
	default:
		return "StatusCancelled"
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case bool:
		return t
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// GenreName resolves a loosely typed genre entry. Objects try name, title
// and id in turn and fall back to the position.
func GenreName(genre any, index int) string {
	switch g := genre.(type) {
	case nil:
		return fmt.Sprintf("genre-%d", index)
	case map[string]any:
		for _, key := range []string{"name", "title", "id"} {
			if v := g[key]; truthy(v) {
				return stringify(v)
			}
		}
		return strconv.Itoa(index)
	case []any:
		return strconv.Itoa(index)
	default:
		return stringify(g)
	}
}

// slugSpace is whitespace as browsers define it, Unicode spaces included.
const slugSpace = `\s\v\p{Zs}\x{2028}\x{2029}\x{feff}`

var (
	slugStrip      = regexp.MustCompile(`[^\w` + slugSpace + `-]`)
	slugWhitespace = regexp.MustCompile(`[` + slugSpace + `]+`)
)

// GenreSlug lowercases, drops anything outside word chars, whitespace and
// hyphens, then joins whitespace runs with "-".
func GenreSlug(name string, index int) string {
	slug := strings.ToLower(name)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	if slug == "" {
		return fmt.Sprintf("genre-%d", index)
	}
	return slug
}

// FirstChapterID and LastChapterID read the ends of a list sorted highest
// first; both fall back to 1 for an empty list.
func FirstChapterID(sorted []apiclient.Chapter) int64 {
	if len(sorted) == 0 {
		return 1
	}
	return sorted[len(sorted)-1].ID
}

func LastChapterID(sorted []apiclient.Chapter) int64 {
	if len(sorted) == 0 {
		return 1
	}
	return sorted[0].ID
}
