// Package seed loads the reference donation types and centers.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/model"
	"vidar/internal/repository"
)

//go:embed catalog.json
var catalogJSON []byte

// Catalog is the store of one seeded collection.
type Catalog[T any] interface {
	FindOneBy(ctx context.Context, field string, value any) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	SetFields(ctx context.Context, id bson.ObjectID, fields bson.M) error
}

// CenterSeed is a reference center. Types are referenced by name.
type CenterSeed struct {
	model.Center
	Tipos []string `json:"tipos"`
}

// Data is the embedded reference data.
type Data struct {
	Types   []model.DonationType `json:"tipos_donacion"`
	Centers []CenterSeed         `json:"centros"`
}

// Load decodes the embedded reference data.
func Load() (Data, error) {
	var d Data
	if err := json.Unmarshal(catalogJSON, &d); err != nil {
		return Data{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	return d, nil
}

// Result counts what a run did.
type Result struct {
	TypesCreated   int
	TypesExisting  int
	CentersCreated int
	CentersUpdated int
}

// Run inserts the missing types and centers, matching by nombre. Existing centers get their
// tipos_disponibles and coordenadas refreshed; nothing else about existing records changes.
func Run(ctx context.Context, d Data, types Catalog[model.DonationType], centers Catalog[model.Center], log zerolog.Logger) (Result, error) {
	var res Result

	typeIDs := make(map[string]bson.ObjectID, len(d.Types))
	for _, t := range d.Types {
		existing, err := types.FindOneBy(ctx, "nombre", t.Nombre)
		switch {
		case err == nil:
			res.TypesExisting++
			log.Info().Str("tipo", t.Nombre).Msg("seed_type_exists")
		case errors.Is(err, repository.ErrNotFound):
			doc := t
			doc.ID = bson.ObjectID{}
			existing, err = types.Create(ctx, &doc)
			if err != nil {
				return res, fmt.Errorf("create type %q: %w", t.Nombre, err)
			}
			res.TypesCreated++
			log.Info().Str("tipo", t.Nombre).Msg("seed_type_created")
		default:
			return res, fmt.Errorf("find type %q: %w", t.Nombre, err)
		}
		typeIDs[t.Nombre] = existing.ID
	}

	for _, c := range d.Centers {
		ids := make([]bson.ObjectID, 0, len(c.Tipos))
		for _, name := range c.Tipos {
			if id, ok := typeIDs[name]; ok {
				ids = append(ids, id)
			}
		}

		existing, err := centers.FindOneBy(ctx, "nombre", c.Nombre)
		switch {
		case err == nil:
			if err := centers.SetFields(ctx, existing.ID, bson.M{
				"tipos_disponibles": ids,
				"coordenadas":       c.Coordenadas,
			}); err != nil {
				return res, fmt.Errorf("refresh center %q: %w", c.Nombre, err)
			}
			res.CentersUpdated++
			log.Info().Str("centro", c.Nombre).Msg("seed_center_updated")
		case errors.Is(err, repository.ErrNotFound):
			doc := c.Center
			doc.ID = bson.ObjectID{}
			doc.TiposDisponibles = ids
			if _, err := centers.Create(ctx, &doc); err != nil {
				return res, fmt.Errorf("create center %q: %w", c.Nombre, err)
			}
			res.CentersCreated++
			log.Info().Str("centro", c.Nombre).Msg("seed_center_created")
		default:
			return res, fmt.Errorf("find center %q: %w", c.Nombre, err)
		}
	}

	return res, nil
}
