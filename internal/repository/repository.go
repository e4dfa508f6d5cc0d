// Package repository contains data access abstractions.
// Implementations live in subpackages (mongo) and contain no business logic.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/model"
)

var (
	// ErrNotFound is returned when no document matches the identifier or key.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Repository is the persistence contract of one managed collection of T.
type Repository[T any] interface {
	// List returns every document, newest identifier first. An empty collection yields an empty slice.
	List(ctx context.Context) ([]T, error)

	// Create inserts doc, letting the store assign the identifier, and returns the stored document.
	Create(ctx context.Context, doc *T) (*T, error)

	// Update overwrites the stored fields of the document with the given id and returns the result.
	// ErrNotFound is returned when nothing matches.
	Update(ctx context.Context, id bson.ObjectID, doc *T) (*T, error)

	// Delete removes the document with the given id. ErrNotFound is returned when nothing matches.
	Delete(ctx context.Context, id bson.ObjectID) error
}

// UserRepository stores site accounts.
type UserRepository interface {
	// FindByUsername returns the account with exactly this username or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create inserts a new account. ErrDuplicate is returned when the username is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
}
