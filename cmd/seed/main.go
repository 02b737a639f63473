// Command seed replaces the catalogue with the sample categories and
// products. Receipts and users are kept.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/sangkips/licorera-api/internal/config"
	"github.com/sangkips/licorera-api/internal/infrastructure/database"
	"github.com/sangkips/licorera-api/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "licorera-seed", Format: "console"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	db, err := database.Open(&cfg.Database, logg, false)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	categories, products, err := database.SeedSampleCatalog(ctx, db)
	if err != nil {
		logg.Error(ctx, "failed to seed sample catalogue", err)
		os.Exit(1)
	}

	logg.Event(ctx, zerolog.InfoLevel).
		Int("categories", categories).
		Int("products", products).
		Msg("sample catalogue loaded")
}
