// Command seed loads the reference donation types and centers. It is safe to run repeatedly.
package main

import (
	"context"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"vidar/internal/config"
	"vidar/internal/database"
	"vidar/internal/database/migration"
	"vidar/internal/logger"
	"vidar/internal/model"
	mongorepo "vidar/internal/repository/mongo"
	"vidar/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := migration.EnsureMigrated(ctx, db.Database(), log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}

	data, err := seed.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load seed data")
		os.Exit(1)
	}

	res, err := seed.Run(ctx, data,
		mongorepo.NewCollection[model.DonationType](db.Collection(model.CollectionDonationTypes)),
		mongorepo.NewCollection[model.Center](db.Collection(model.CollectionCenters)),
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
	log.Info().
		Int("types_created", res.TypesCreated).
		Int("types_existing", res.TypesExisting).
		Int("centers_created", res.CentersCreated).
		Int("centers_updated", res.CentersUpdated).
		Msg("seed_completed")
}
