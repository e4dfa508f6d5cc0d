// Package migration creates the indexes the repositories rely on.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidar/internal/model"
)

type migrationStep struct {
	Name       string
	Collection string
	Index      mongo.IndexModel
}

var steps = []migrationStep{
	{
		Name:       "create_index_users_username",
		Collection: model.CollectionUsers,
		Index: mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_username"),
		},
	},
	{
		Name:       "create_index_tipos_donacion_nombre",
		Collection: model.CollectionDonationTypes,
		Index: mongo.IndexModel{
			Keys:    bson.D{{Key: "nombre", Value: 1}},
			Options: options.Index().SetName("idx_tipos_donacion_nombre"),
		},
	},
	{
		Name:       "create_index_centros_nombre",
		Collection: model.CollectionCenters,
		Index: mongo.IndexModel{
			Keys:    bson.D{{Key: "nombre", Value: 1}},
			Options: options.Index().SetName("idx_centros_nombre"),
		},
	},
	{
		Name:       "create_index_centros_tipos_disponibles",
		Collection: model.CollectionCenters,
		Index: mongo.IndexModel{
			Keys:    bson.D{{Key: "tipos_disponibles", Value: 1}},
			Options: options.Index().SetName("idx_centros_tipos_disponibles"),
		},
	},
	{
		Name:       "create_index_donaciones_id_donante",
		Collection: model.CollectionDonations,
		Index: mongo.IndexModel{
			Keys:    bson.D{{Key: "id_donante", Value: 1}},
			Options: options.Index().SetName("idx_donaciones_id_donante"),
		},
	},
}

// EnsureMigrated creates every index. Index creation is idempotent so it runs on each start.
func EnsureMigrated(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_name", db.Name()).Logger()

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Msg("ensuring indexes")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.Collection(step.Collection).Indexes().CreateOne(ctx, step.Index); err != nil {
			log.Error().
				Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("index ready")
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("indexes ready")
	return nil
}
