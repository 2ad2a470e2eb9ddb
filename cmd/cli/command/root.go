package command

// root.go defines the root command and the flags every subcommand shares.

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"mangareader/internal/apiclient"

	"github.com/spf13/cobra"
)

var (
	apiURL  string        // API base URL, including /api/v1
	timeout time.Duration // per-request timeout
	lang    string        // output language, falls back to $LANG
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mangareader",
	Short: "mangareader - command line client for the manga reader API",
	Long: `mangareader talks to the manga reader API. You can:
- log in and keep the session in the OS keyring
- look up manga and their chapters
- rate manga and manage your favorites

Use "mangareader [command] --help" to see the options of each command.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("MANGAREADER_API", "http://localhost:8080/api/v1"), "API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "output language (vi, en)")
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(authCmd, mangaCmd, ratingCmd, favoriteCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *apiclient.Client {
	return apiclient.New(apiURL, timeout)
}

func mangaIDArg(arg string) (string, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("invalid manga id %q", arg)
	}
	return strconv.FormatInt(id, 10), nil
}
