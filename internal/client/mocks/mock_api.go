package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"vidar/internal/client"
)

type MockAPI struct {
	mock.Mock
}

var _ client.API = (*MockAPI)(nil)

func (m *MockAPI) List(ctx context.Context, collection string) ([]client.Record, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Record), args.Error(1)
}

func (m *MockAPI) Create(ctx context.Context, collection string, payload map[string]any) (client.Record, error) {
	args := m.Called(ctx, collection, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(client.Record), args.Error(1)
}

func (m *MockAPI) Update(ctx context.Context, collection, id string, payload map[string]any) (client.Record, error) {
	args := m.Called(ctx, collection, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(client.Record), args.Error(1)
}

func (m *MockAPI) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockAPI) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}
