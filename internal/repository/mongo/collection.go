// Package mongo implements the repository contracts on top of MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"vidar/internal/repository"
)

// Collection is a MongoDB implementation of repository.Repository for documents of type T.
// T must carry an `_id,omitempty` ObjectID field so the server assigns identifiers.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection wraps coll.
func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

// List returns every document sorted by descending _id, i.e. newest first.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	cur, err := c.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cur.Close(ctx)

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// Create inserts doc and reads it back so the caller sees exactly what was stored.
func (c *Collection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return c.findByID(ctx, res.InsertedID)
}

// Update sets every field of doc on the matching document; _id is left untouched.
func (c *Collection[T]) Update(ctx context.Context, id bson.ObjectID, doc *T) (*T, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return c.findByID(ctx, id)
}

// Delete removes the document with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) findByID(ctx context.Context, id any) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find %s by id: %w", c.coll.Name(), err)
	}
	return &out, nil
}

// FindOneBy returns the first document whose field equals value, or repository.ErrNotFound.
func (c *Collection[T]) FindOneBy(ctx context.Context, field string, value any) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, bson.M{field: value}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find %s by %s: %w", c.coll.Name(), field, err)
	}
	return &out, nil
}

// SetFields updates only the given fields of the document with the given id.
func (c *Collection[T]) SetFields(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
