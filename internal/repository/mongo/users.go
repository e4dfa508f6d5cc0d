package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"vidar/internal/model"
	"vidar/internal/repository"
)

// Users is the MongoDB implementation of repository.UserRepository.
// Username uniqueness is backed by the index created in database/migration.
type Users struct {
	coll *mongo.Collection
}

// NewUsers wraps the users collection.
func NewUsers(coll *mongo.Collection) *Users {
	return &Users{coll: coll}
}

var _ repository.UserRepository = (*Users)(nil)

// FindByUsername looks up an account by exact username.
func (u *Users) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := u.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create inserts an account and fills in its generated identifier.
func (u *Users) Create(ctx context.Context, user *model.User) (*model.User, error) {
	res, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	out := *user
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		out.ID = id
	}
	return &out, nil
}
