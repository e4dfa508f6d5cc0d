package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/normalize"
	"vidar/internal/repository"
)

var (
	// ErrInvalidID is returned when an id is not a hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when no record has the given id.
	ErrNotFound = errors.New("not found")
)

// AfterCreateFunc runs once a document has been stored.
type AfterCreateFunc[T any] func(ctx context.Context, doc *T) error

// ResourceService defines the CRUD use cases of one managed record kind.
// Input arrives as a decoded JSON object and is normalized before it reaches the store.
type ResourceService[T any] interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]T, error)

	// Create normalizes raw and stores it. Normalization failures are returned as *normalize.ValidationError.
	Create(ctx context.Context, raw normalize.Raw) (*T, error)

	// Update replaces the normalized fields of the record with the given hex id.
	// ErrInvalidID is checked before normalization; ErrNotFound when nothing matches.
	Update(ctx context.Context, id string, raw normalize.Raw) (*T, error)

	// Delete removes the record with the given hex id.
	Delete(ctx context.Context, id string) error
}

// ResourceOption configures a ResourceService.
type ResourceOption[T any] func(*resourceService[T])

// WithAfterCreate registers a hook run after every successful create.
// Hook errors are logged and never fail the create.
func WithAfterCreate[T any](fn AfterCreateFunc[T]) ResourceOption[T] {
	return func(s *resourceService[T]) { s.afterCreate = append(s.afterCreate, fn) }
}

// WithLogger sets the logger used for hook failures.
func WithLogger[T any](log zerolog.Logger) ResourceOption[T] {
	return func(s *resourceService[T]) { s.log = log }
}

type resourceService[T any] struct {
	name        string
	repo        repository.Repository[T]
	norm        normalize.Normalizer[T]
	afterCreate []AfterCreateFunc[T]
	log         zerolog.Logger
}

// NewResourceService constructs the service for the collection called name.
func NewResourceService[T any](name string, repo repository.Repository[T], norm normalize.Normalizer[T], opts ...ResourceOption[T]) ResourceService[T] {
	s := &resourceService[T]{name: name, repo: repo, norm: norm, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *resourceService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *resourceService[T]) Create(ctx context.Context, raw normalize.Raw) (*T, error) {
	doc, err := s.norm.Normalize(raw)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Create(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	for _, hook := range s.afterCreate {
		if err := hook(ctx, stored); err != nil {
			s.log.Warn().Err(err).Str("collection", s.name).Msg("after-create hook failed")
		}
	}
	return stored, nil
}

func (s *resourceService[T]) Update(ctx context.Context, id string, raw normalize.Raw) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.norm.Normalize(raw)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Update(ctx, oid, &doc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s: %w", s.name, err)
	}
	return stored, nil
}

func (s *resourceService[T]) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", s.name, err)
	}
	return nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return oid, nil
}
