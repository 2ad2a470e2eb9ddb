package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"mangareader/internal/apiclient"
	"mangareader/internal/microservices/web/view"

	"github.com/spf13/cobra"
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rate manga",
	Long:  `Create, change, remove or show your 1-5 rating of a manga.`,
}

func ratingValue(arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid rating %q", arg)
	}
	// the API has the final say; this only saves a round trip
	if v < 1 || v > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5")
	}
	return v, nil
}

func printAggregate(w io.Writer, agg *apiclient.Aggregate) {
	rating := agg.Rating
	fmt.Fprintf(w, "Average: %s / 5 from %d votes\n", view.RatingText(&rating), agg.TotalVotes)
}

type ratingCall func(ctx context.Context, client *apiclient.Client, token, mangaID string, value int) (*apiclient.Aggregate, error)

// mutateRating is shared by rate, update and delete; withValue says whether
// args carry a rating value after the manga id.
func mutateRating(call ratingCall, withValue bool, done string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := mangaIDArg(args[0])
		if err != nil {
			return err
		}
		value := 0
		if withValue {
			if value, err = ratingValue(args[1]); err != nil {
				return err
			}
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client := newClient()
		token, err := accessToken(ctx, client)
		if err != nil {
			return err
		}
		agg, err := call(ctx, client, token, id, value)
		if err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), done)
		printAggregate(cmd.OutOrStdout(), agg)
		return nil
	}
}

var rateCmd = &cobra.Command{
	Use:   "rate [manga-id] [1-5]",
	Short: "Rate a manga",
	Args:  cobra.ExactArgs(2),
	RunE: mutateRating(func(ctx context.Context, c *apiclient.Client, token, id string, v int) (*apiclient.Aggregate, error) {
		return c.CreateRating(ctx, token, id, v)
	}, true, "Rating saved"),
}

var updateRatingCmd = &cobra.Command{
	Use:   "update [manga-id] [1-5]",
	Short: "Change your rating",
	Args:  cobra.ExactArgs(2),
	RunE: mutateRating(func(ctx context.Context, c *apiclient.Client, token, id string, v int) (*apiclient.Aggregate, error) {
		return c.UpdateRating(ctx, token, id, v)
	}, true, "Rating updated"),
}

var deleteRatingCmd = &cobra.Command{
	Use:   "delete [manga-id]",
	Short: "Remove your rating",
	Args:  cobra.ExactArgs(1),
	RunE: mutateRating(func(ctx context.Context, c *apiclient.Client, token, id string, _ int) (*apiclient.Aggregate, error) {
		return c.DeleteRating(ctx, token, id)
	}, false, "Rating removed"),
}

var myRatingCmd = &cobra.Command{
	Use:   "me [manga-id]",
	Short: "Show your rating of a manga",
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
		r, err := client.MyRating(ctx, token, id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Your rating for manga %s: ", id)
		starColor.Fprintln(out, fmt.Sprintf("%d / 5", r.Rating))
		fmt.Fprintf(out, "Updated at: %s\n", r.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	ratingCmd.AddCommand(rateCmd, updateRatingCmd, deleteRatingCmd, myRatingCmd)
}
