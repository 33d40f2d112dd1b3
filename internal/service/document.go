package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docregistry/internal/model"
	"docregistry/internal/registry"
	"docregistry/internal/storage"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = registry.ErrNotFound
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrNoContent          = errors.New("attachment has no stored content")
	ErrStorageDisabled    = errors.New("object storage is not configured")
)

const (
	DefaultLimit = 50
	MaxLimit     = 500

	// LinkExpiry is how long attachment download links stay valid.
	LinkExpiry = 15 * time.Minute
)

// DocumentListResult is one page of search results.
type DocumentListResult struct {
	Items  []model.Document `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// NumberPreview is what the next registration of a type would be assigned.
type NumberPreview struct {
	Type      model.DocumentType `json:"type"`
	DocNumber string             `json:"docNumber"`
	ID        string             `json:"id"`
}

// AttachmentLink is a time-limited download URL for stored attachment content.
type AttachmentLink struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DocumentService defines the use cases of the document registry.
type DocumentService interface {
	// Register records a new document. Salida and Interno documents receive their
	// docNumber here; any docNumber the caller supplied for them is replaced.
	Register(ctx context.Context, doc model.Document) (*registry.Registration, error)

	// Update applies patch to the document with the given id. A missing id is ErrNotFound.
	Update(ctx context.Context, id string, patch model.DocumentPatch) (*registry.UpdateResult, error)

	// Get returns a single document by its id.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document. A missing id is ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Search filters and sorts the log and returns one page of it.
	Search(ctx context.Context, term string, limit, offset int) (*DocumentListResult, error)

	// PreviewNumber returns the docNumber and id the next registration of t would get.
	PreviewNumber(ctx context.Context, t model.DocumentType) (*NumberPreview, error)

	// Catalogs returns the department and external entity catalogs.
	Catalogs(ctx context.Context) model.Catalogs

	// AttachmentLink resolves the content reference of the attachment at index.
	AttachmentLink(ctx context.Context, id string, index int) (*AttachmentLink, error)
}

// Registry is the subset of *registry.Registry the service depends on.
type Registry interface {
	Register(ctx context.Context, doc model.Document) (registry.Registration, error)
	Update(ctx context.Context, id string, patch model.DocumentPatch) (registry.UpdateResult, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (model.Document, error)
	Search(term string) []model.Document
	PreviewNumber(ctx context.Context, t model.DocumentType) (string, error)
	PreviewOrder() string
	Catalogs() model.Catalogs
}

var _ Registry = (*registry.Registry)(nil)

type documentService struct {
	reg    Registry
	store  storage.Storage
	tracer trace.Tracer
}

// NewDocumentService constructs a DocumentService. store may be nil, in which case
// AttachmentLink returns ErrStorageDisabled.
func NewDocumentService(reg Registry, store storage.Storage) DocumentService {
	return &documentService{
		reg:    reg,
		store:  store,
		tracer: otel.Tracer("docregistry/internal/service"),
	}
}

func (s *documentService) Register(ctx context.Context, doc model.Document) (*registry.Registration, error) {
	ctx, span := s.tracer.Start(ctx, "DocumentService.Register",
		trace.WithAttributes(attribute.String("document.type", string(doc.Type))))
	defer span.End()

	res, err := s.reg.Register(ctx, doc)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(
		attribute.String("document.id", res.Document.ID),
		attribute.String("document.number", res.Document.DocNumber),
	)
	return &res, nil
}

func (s *documentService) Update(ctx context.Context, id string, patch model.DocumentPatch) (*registry.UpdateResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	ctx, span := s.tracer.Start(ctx, "DocumentService.Update",
		trace.WithAttributes(attribute.String("document.id", id)))
	defer span.End()

	res, err := s.reg.Update(ctx, id, patch)
	if err != nil {
		return nil, recordError(span, err)
	}
	if !res.Found {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	_, span := s.tracer.Start(ctx, "DocumentService.Get",
		trace.WithAttributes(attribute.String("document.id", id)))
	defer span.End()

	doc, err := s.reg.Get(id)
	if err != nil {
		return nil, recordError(span, err)
	}
	return &doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ctx, span := s.tracer.Start(ctx, "DocumentService.Delete",
		trace.WithAttributes(attribute.String("document.id", id)))
	defer span.End()

	found, err := s.reg.Delete(ctx, id)
	if err != nil {
		return recordError(span, err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Search clamps limit to (0, MaxLimit] with DefaultLimit for non-positive values.
func (s *documentService) Search(ctx context.Context, term string, limit, offset int) (*DocumentListResult, error) {
	_, span := s.tracer.Start(ctx, "DocumentService.Search")
	defer span.End()

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	all := s.reg.Search(strings.TrimSpace(term))
	span.SetAttributes(attribute.Int("search.matches", len(all)))

	start := min(offset, len(all))
	end := min(start+limit, len(all))
	return &DocumentListResult{
		Items:  all[start:end],
		Total:  len(all),
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *documentService) PreviewNumber(ctx context.Context, t model.DocumentType) (*NumberPreview, error) {
	ctx, span := s.tracer.Start(ctx, "DocumentService.PreviewNumber",
		trace.WithAttributes(attribute.String("document.type", string(t))))
	defer span.End()

	number, err := s.reg.PreviewNumber(ctx, t)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.String("document.number", number))
	return &NumberPreview{Type: t, DocNumber: number, ID: s.reg.PreviewOrder()}, nil
}

func (s *documentService) Catalogs(context.Context) model.Catalogs {
	return s.reg.Catalogs()
}

func (s *documentService) AttachmentLink(ctx context.Context, id string, index int) (*AttachmentLink, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(doc.Attachments) {
		return nil, ErrAttachmentNotFound
	}
	att := doc.Attachments[index]
	if !att.HasContent() {
		return nil, ErrNoContent
	}

	url, err := s.store.PresignGet(ctx, att.ContentRef, LinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", att.ContentRef, err)
	}
	return &AttachmentLink{Name: att.Name, URL: url, ExpiresAt: time.Now().Add(LinkExpiry).UTC()}, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
