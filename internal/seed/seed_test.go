package seed

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/model"
	"vidar/internal/repository"
)

type memCatalog[T any] struct {
	docs []*T
	name func(*T) string
	id   func(*T) *bson.ObjectID
	sets map[bson.ObjectID]bson.M
	fail error
}

func (m *memCatalog[T]) FindOneBy(_ context.Context, field string, value any) (*T, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	for _, d := range m.docs {
		if field == "nombre" && m.name(d) == value {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCatalog[T]) Create(_ context.Context, doc *T) (*T, error) {
	*m.id(doc) = bson.NewObjectID()
	m.docs = append(m.docs, doc)
	return doc, nil
}

func (m *memCatalog[T]) SetFields(_ context.Context, id bson.ObjectID, fields bson.M) error {
	if m.sets == nil {
		m.sets = map[bson.ObjectID]bson.M{}
	}
	m.sets[id] = fields
	return nil
}

func newTypes() *memCatalog[model.DonationType] {
	return &memCatalog[model.DonationType]{
		name: func(t *model.DonationType) string { return t.Nombre },
		id:   func(t *model.DonationType) *bson.ObjectID { return &t.ID },
	}
}

func newCenters() *memCatalog[model.Center] {
	return &memCatalog[model.Center]{
		name: func(c *model.Center) string { return c.Nombre },
		id:   func(c *model.Center) *bson.ObjectID { return &c.ID },
	}
}

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	require.Len(t, d.Types, 5)
	require.Len(t, d.Centers, 10)

	assert.Equal(t, "Sangre", d.Types[0].Nombre)
	require.NotNil(t, d.Types[0].ColorIdentidad)
	assert.Equal(t, "#bb0710", *d.Types[0].ColorIdentidad)

	laPaz := d.Centers[0]
	assert.Equal(t, "Hospital Universitario La Paz", laPaz.Nombre)
	assert.True(t, laPaz.Coordenadas.Complete())
	assert.Len(t, laPaz.Tipos, 5)
	require.NotNil(t, laPaz.EmailContacto)
	assert.Equal(t, "info@hospital.es", *laPaz.EmailContacto)
}

func TestRunCreatesThenRefreshes(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	types, centers := newTypes(), newCenters()
	log := zerolog.New(io.Discard)

	res, err := Run(context.Background(), d, types, centers, log)
	require.NoError(t, err)
	assert.Equal(t, Result{TypesCreated: 5, CentersCreated: 10}, res)

	byName := map[string]bson.ObjectID{}
	for _, tp := range types.docs {
		byName[tp.Nombre] = tp.ID
	}
	navarra := centers.docs[5]
	assert.Equal(t, "Complejo Hospitalario de Navarra", navarra.Nombre)
	assert.Equal(t, []bson.ObjectID{byName["Sangre"]}, navarra.TiposDisponibles)

	res, err = Run(context.Background(), d, types, centers, log)
	require.NoError(t, err)
	assert.Equal(t, Result{TypesExisting: 5, CentersUpdated: 10}, res)
	assert.Len(t, types.docs, 5)
	assert.Len(t, centers.docs, 10)

	fields := centers.sets[navarra.ID]
	require.NotNil(t, fields)
	assert.Equal(t, []bson.ObjectID{byName["Sangre"]}, fields["tipos_disponibles"])
	assert.NotNil(t, fields["coordenadas"])
}

func TestRunSkipsUnknownTypeNames(t *testing.T) {
	d := Data{Centers: []CenterSeed{{Center: model.Center{Nombre: "Solo"}, Tipos: []string{"Plasma"}}}}
	centers := newCenters()

	_, err := Run(context.Background(), d, newTypes(), centers, zerolog.New(io.Discard))
	require.NoError(t, err)
	require.Len(t, centers.docs, 1)
	assert.NotNil(t, centers.docs[0].TiposDisponibles)
	assert.Empty(t, centers.docs[0].TiposDisponibles)
}

func TestRunStoreFailure(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	types := newTypes()
	types.fail = errors.New("connection refused")

	_, err = Run(context.Background(), d, types, newCenters(), zerolog.New(io.Discard))
	assert.ErrorContains(t, err, "connection refused")
}
