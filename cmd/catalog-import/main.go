package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mangareader/database"
	"mangareader/internal/config"
	"mangareader/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "catalog-import",
		Short: "Load manga, genres and chapters from a JSON catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := logger.New(cfg.LogLevel, cfg.LogFormat)

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open catalog: %w", err)
			}
			defer f.Close()

			data, err := database.ReadCatalog(f)
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg, logger)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			stats, err := database.ImportCatalog(ctx, db, data)
			if err != nil {
				return err
			}
			logger.Info("catalog_imported",
				"file", file,
				"genres", stats.Genres,
				"mangas", stats.Mangas,
				"chapters", stats.Chapters,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/catalog.sample.json", "catalog JSON file")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "import timeout")
	return cmd
}
