package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage your favorites",
}

var checkFavoriteCmd = &cobra.Command{
	Use:   "check [manga-id]",
	Short: "Tell whether a manga is in your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := mangaIDArg(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client := newClient()
		token, err := accessToken(ctx, client)
		if err != nil {
			return err
		}
		fav, err := client.CheckFavorite(ctx, token, id)
		if err != nil {
			return err
		}
		if fav {
			fmt.Fprintf(cmd.OutOrStdout(), "Manga %s is in your favorites\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Manga %s is not in your favorites\n", id)
		}
		return nil
	},
}

var toggleFavoriteCmd = &cobra.Command{
	Use:   "toggle [manga-id]",
	Short: "Add or remove a manga from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := mangaIDArg(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client := newClient()
		token, err := accessToken(ctx, client)
		if err != nil {
			return err
		}
		fav, err := client.ToggleFavorite(ctx, token, id)
		if err != nil {
			return err
		}
		if fav {
			printSuccess(cmd.OutOrStdout(), "Added manga "+id+" to favorites")
		} else {
			printSuccess(cmd.OutOrStdout(), "Removed manga "+id+" from favorites")
		}
		return nil
	},
}

var listFavoritesCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorites, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		client := newClient()
		token, err := accessToken(ctx, client)
		if err != nil {
			return err
		}
		list, err := client.ListFavorites(ctx, token)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list.Items) == 0 {
			fmt.Fprintln(out, "No favorites yet.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tADDED")
		for _, item := range list.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\n", item.MangaID, item.Manga.Title, item.AddedAt.Local().Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d favorites\n", list.Total)
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(checkFavoriteCmd, toggleFavoriteCmd, listFavoritesCmd)
}
