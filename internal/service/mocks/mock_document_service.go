package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docregistry/internal/model"
	"docregistry/internal/registry"
	"docregistry/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) Register(ctx context.Context, doc model.Document) (*registry.Registration, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Registration), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id string, patch model.DocumentPatch) (*registry.UpdateResult, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.UpdateResult), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Search(ctx context.Context, term string, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, term, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) PreviewNumber(ctx context.Context, t model.DocumentType) (*service.NumberPreview, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NumberPreview), args.Error(1)
}

func (m *MockDocumentService) Catalogs(ctx context.Context) model.Catalogs {
	args := m.Called(ctx)
	return args.Get(0).(model.Catalogs)
}

func (m *MockDocumentService) AttachmentLink(ctx context.Context, id string, index int) (*service.AttachmentLink, error) {
	args := m.Called(ctx, id, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentLink), args.Error(1)
}
