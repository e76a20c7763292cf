package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/craterhub/crater-api/internal/database"
	"github.com/craterhub/crater-api/internal/models"
)

// MockCollectionService mocks the CollectionService
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Get(ctx context.Context, exec database.Executor, id uuid.UUID) (*models.Collection, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) GetMany(ctx context.Context, exec database.Executor, ids []uuid.UUID) ([]models.Collection, error) {
	args := m.Called(ctx, exec, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionService) Insert(ctx context.Context, tx database.Executor, builder models.CollectionBuilder) (uuid.UUID, error) {
	args := m.Called(ctx, tx, builder)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCollectionService) Remove(ctx context.Context, tx database.Executor, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectionService) ClearCache(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
