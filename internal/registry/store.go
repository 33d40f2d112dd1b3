package registry

import (
	"context"
	"fmt"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

// DocumentStore owns the record collection, newest-inserted-first. Every mutation rewrites
// the documents slot; a failed write restores the previous in-memory collection.
type DocumentStore struct {
	persist repository.Persistence
	docs    []model.Document
	nextID  func() string
}

// LoadDocumentStore reads the stored collection. nextID supplies ids for records added
// without one.
func LoadDocumentStore(ctx context.Context, p repository.Persistence, nextID func() string) (*DocumentStore, error) {
	docs, err := p.LoadDocuments(ctx)
	if err != nil {
		return nil, persistenceError("load documents", err)
	}
	for i := range docs {
		docs[i] = normalizeAttachments(docs[i])
	}
	return &DocumentStore{persist: p, docs: docs, nextID: nextID}, nil
}

// Len returns the number of stored records.
func (s *DocumentStore) Len() int {
	return len(s.docs)
}

// Get returns a copy of the record with the given id.
func (s *DocumentStore) Get(id string) (model.Document, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Document{}, false
	}
	return s.docs[i].Clone(), true
}

// List returns a snapshot of the collection, newest-inserted-first. The caller owns it.
func (s *DocumentStore) List() []model.Document {
	out := make([]model.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out
}

// Add stores doc at the front of the collection, assigning an id if it has none.
func (s *DocumentStore) Add(ctx context.Context, doc model.Document) (model.Document, error) {
	if doc.ID == "" {
		doc.ID = s.nextID()
	}
	if s.index(doc.ID) >= 0 {
		return model.Document{}, fmt.Errorf("%w: %s", ErrDuplicateID, doc.ID)
	}
	doc = normalizeAttachments(doc.Clone())

	next := make([]model.Document, 0, len(s.docs)+1)
	next = append(next, doc)
	next = append(next, s.docs...)
	if err := s.commit(ctx, next); err != nil {
		return model.Document{}, err
	}
	return doc.Clone(), nil
}

// Update merges patch into the record with the given id. A missing id is not an error: the
// boolean result is false and nothing is written.
func (s *DocumentStore) Update(ctx context.Context, id string, patch model.DocumentPatch) (model.Document, bool, error) {
	i := s.index(id)
	if i < 0 {
		return model.Document{}, false, nil
	}
	updated, err := applyPatch(s.docs[i], patch)
	if err != nil {
		return model.Document{}, true, err
	}

	next := make([]model.Document, len(s.docs))
	copy(next, s.docs)
	next[i] = updated
	if err := s.commit(ctx, next); err != nil {
		return model.Document{}, true, err
	}
	return updated.Clone(), true, nil
}

// Delete removes the record with the given id. A missing id is not an error.
func (s *DocumentStore) Delete(ctx context.Context, id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	next := make([]model.Document, 0, len(s.docs)-1)
	next = append(next, s.docs[:i]...)
	next = append(next, s.docs[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

// maxOrder returns the highest numeric id in the collection.
func (s *DocumentStore) maxOrder() int {
	highest := 0
	for _, d := range s.docs {
		if n, ok := orderNumber(d.ID); ok && n > highest {
			highest = n
		}
	}
	return highest
}

func (s *DocumentStore) commit(ctx context.Context, next []model.Document) error {
	if err := s.persist.SaveDocuments(ctx, next); err != nil {
		return persistenceError("save documents", err)
	}
	s.docs = next
	return nil
}

func (s *DocumentStore) index(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(doc model.Document, p model.DocumentPatch) (model.Document, error) {
	if p.Type != nil && *p.Type != doc.Type {
		return model.Document{}, fmt.Errorf("%w: type", ErrImmutableField)
	}
	if p.DocNumber != nil && *p.DocNumber != doc.DocNumber && doc.Type.AutoNumbered() {
		return model.Document{}, fmt.Errorf("%w: docNumber", ErrImmutableField)
	}

	out := doc.Clone()
	if p.RegistrationDate != nil {
		out.RegistrationDate = *p.RegistrationDate
	}
	if p.DocDate != nil {
		out.DocDate = *p.DocDate
	}
	if p.DocNumber != nil {
		out.DocNumber = *p.DocNumber
	}
	if p.Origin != nil {
		out.Origin = *p.Origin
	}
	if p.Destination != nil {
		out.Destination = *p.Destination
	}
	if p.Summary != nil {
		out.Summary = *p.Summary
	}
	if p.Observations != nil {
		out.Observations = *p.Observations
	}
	if p.Attachments != nil {
		out.Attachments = append([]model.Attachment(nil), (*p.Attachments)...)
	}
	return normalizeAttachments(out), nil
}

func normalizeAttachments(doc model.Document) model.Document {
	if doc.Attachments == nil {
		doc.Attachments = []model.Attachment{}
		return doc
	}
	for i := range doc.Attachments {
		doc.Attachments[i] = doc.Attachments[i].Normalize()
	}
	return doc
}
