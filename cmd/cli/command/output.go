package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mangareader/internal/microservices/web/locale"
	"mangareader/internal/microservices/web/view"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	starColor   = color.New(color.FgYellow)
	mutedColor  = color.New(color.FgHiBlack)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
	accentColor = color.New(color.FgMagenta)
)

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func printSuccess(w io.Writer, msg string) {
	okColor.Fprintln(w, "✓ "+msg)
}

func printError(w io.Writer, err error) {
	errColor.Fprintln(w, "✗ "+err.Error())
}

// envLanguage turns a POSIX locale such as en_US.UTF-8 into en-US.
func envLanguage() string {
	v := os.Getenv("LANG")
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "C" || v == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(v, "_", "-")
}

func localizer() (*locale.Localizer, error) {
	catalog, err := locale.NewCatalog("vi")
	if err != nil {
		return nil, err
	}
	return catalog.Localizer(lang, envLanguage()), nil
}

// renderManga prints the same fields the detail page shows.
func renderManga(w io.Writer, d view.Detail, l *locale.Localizer) {
	titleColor.Fprintln(w, d.Title)

	var stars strings.Builder
	for _, on := range d.Stars {
		if on {
			stars.WriteString("★")
		} else {
			stars.WriteString("☆")
		}
	}
	starColor.Fprint(w, stars.String())
	fmt.Fprintf(w, " %s %s ", d.RatingText, l.T("OutOfFive"))
	mutedColor.Fprintln(w, "("+l.T("Votes", "Count", d.TotalVotes)+")")

	var badges []string
	if d.Status != "" {
		badges = append(badges, l.T(d.StatusKey))
	}
	if d.ViewBadge != "" {
		badges = append(badges, "👁 "+d.ViewBadge)
	}
	if len(badges) > 0 {
		accentColor.Fprintln(w, strings.Join(badges, " · "))
	}

	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(w, "%s %s\n", l.T("Genres"), strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "%s %s\n", l.T("Author"), d.Author)
	if d.Artist != "" {
		fmt.Fprintf(w, "%s %s\n", l.T("Artist"), d.Artist)
	}
	if d.ReleaseYear != "" {
		fmt.Fprintf(w, "%s %s\n", l.T("ReleaseYear"), d.ReleaseYear)
	}
	team := d.TranslationTeam
	if team == "" {
		team = l.T("NoneYet")
	}
	fmt.Fprintf(w, "%s %s\n", l.T("TranslationTeam"), team)
	fmt.Fprintf(w, "%s %s\n", l.T("Views"), d.TotalViews)
	fmt.Fprintf(w, "%s %d\n", l.T("ChapterCount"), d.ChapterCount)
	if d.Description != "" {
		fmt.Fprintf(w, "%s %s\n", l.T("Synopsis"), d.Description)
	}

	fmt.Fprintln(w)
	titleColor.Fprintln(w, l.T("ChapterList"))
	if len(d.Chapters) == 0 {
		mutedColor.Fprintln(w, "  "+l.T("NoChapters"))
		return
	}
	for _, ch := range d.Chapters {
		line := "  " + l.T("Chapter", "Number", ch.Number)
		if ch.Title != "" {
			line += "  " + ch.Title
		}
		fmt.Fprint(w, line)
		var extra []string
		if ch.Date != "" {
			extra = append(extra, ch.Date)
		}
		if ch.Views != "" {
			extra = append(extra, "👁 "+ch.Views)
		}
		if len(extra) > 0 {
			mutedColor.Fprint(w, "  "+strings.Join(extra, "  "))
		}
		fmt.Fprintln(w)
	}
}
