package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vidar/internal/model"
	"vidar/internal/normalize"
	"vidar/internal/service"
)

type MockResourceService[T any] struct {
	mock.Mock
}

var _ service.ResourceService[model.Donor] = (*MockResourceService[model.Donor])(nil)

func (m *MockResourceService[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockResourceService[T]) Create(ctx context.Context, raw normalize.Raw) (*T, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResourceService[T]) Update(ctx context.Context, id string, raw normalize.Raw) (*T, error) {
	args := m.Called(ctx, id, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResourceService[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.PublicUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicUser), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, f service.UploadFile) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}
