package mocks

import (
	"context"

	"docregistry/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockPersistence) SaveDocuments(ctx context.Context, docs []model.Document) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockPersistence) LoadCounters(ctx context.Context) (*model.CounterState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CounterState), args.Error(1)
}

func (m *MockPersistence) SaveCounters(ctx context.Context, state model.CounterState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Catalogs(ctx context.Context) (model.Catalogs, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Catalogs), args.Error(1)
}
