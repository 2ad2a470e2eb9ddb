package command

import (
	"fmt"
	"text/tabwriter"

	"mangareader/internal/microservices/web/view"

	"github.com/spf13/cobra"
)

var mangaCmd = &cobra.Command{
	Use:   "manga",
	Short: "Browse manga",
}

var listMangaCmd = &cobra.Command{
	Use:   "list",
	Short: "List manga, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := newClient().ListMangas(ctx, page, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list manga: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Data) == 0 {
			fmt.Fprintln(out, "No manga found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING\tVIEWS")
		for _, m := range result.Data {
			rating := m.Rating
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Title, m.Author, view.RatingText(&rating), view.FormatViewCount(m.ViewCount))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		p := result.Pagination
		fmt.Fprintf(out, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
		return nil
	},
}

var showMangaCmd = &cobra.Command{
	Use:   "show [manga-id]",
	Short: "Show a manga with its chapters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := mangaIDArg(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client := newClient()
		m, err := client.GetManga(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch manga: %w", err)
		}

		// favorite status only when a session exists
		isFavorite := false
		if token, err := accessToken(ctx, client); err == nil {
			if fav, err := client.CheckFavorite(ctx, token, id); err == nil {
				isFavorite = fav
			}
		}

		l, err := localizer()
		if err != nil {
			return err
		}
		d := view.NewDetail(m, l.Tag, l.T("DateLayout"), isFavorite)
		renderManga(cmd.OutOrStdout(), d, l)
		if isFavorite {
			starColor.Fprintln(cmd.OutOrStdout(), "\n♥ "+l.T("Favorited"))
		}
		return nil
	},
}

func init() {
	mangaCmd.AddCommand(listMangaCmd, showMangaCmd)

	listMangaCmd.Flags().Int("page", 1, "page number")
	listMangaCmd.Flags().Int("page-size", 20, "results per page")
}
