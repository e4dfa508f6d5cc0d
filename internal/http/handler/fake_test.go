package handler

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/model"
	"vidar/internal/repository"
)

// memRepo is an in-memory repository.Repository. Documents go through a bson round trip
// so identifiers are assigned the same way the store does it.
type memRepo[T any] struct {
	mu   sync.Mutex
	ids  []bson.ObjectID
	docs map[bson.ObjectID]T
}

func newMemRepo[T any]() *memRepo[T] {
	return &memRepo[T]{docs: map[bson.ObjectID]T{}}
}

func (r *memRepo[T]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.ids))
	for _, id := range slices.Backward(r.ids) {
		out = append(out, r.docs[id])
	}
	return out, nil
}

func (r *memRepo[T]) Create(_ context.Context, doc *T) (*T, error) {
	id := bson.NewObjectID()
	stored, err := withID(doc, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.docs[id] = stored
	return &stored, nil
}

func (r *memRepo[T]) Update(_ context.Context, id bson.ObjectID, doc *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return nil, repository.ErrNotFound
	}
	stored, err := withID(doc, id)
	if err != nil {
		return nil, err
	}
	r.docs[id] = stored
	return &stored, nil
}

func (r *memRepo[T]) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	r.ids = slices.DeleteFunc(r.ids, func(x bson.ObjectID) bool { return x == id })
	return nil
}

func (r *memRepo[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func withID[T any](doc *T, id bson.ObjectID) (T, error) {
	var out T
	b, err := bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	var d bson.D
	if err := bson.Unmarshal(b, &d); err != nil {
		return out, err
	}
	d = append(bson.D{{Key: "_id", Value: id}}, d...)
	b, err = bson.Marshal(d)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(b, &out)
	return out, err
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]model.User{}} }

func (m *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return nil, repository.ErrDuplicate
	}
	stored := *u
	stored.ID = bson.NewObjectID()
	m.users[u.Username] = stored
	return &stored, nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
