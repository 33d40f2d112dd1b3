// Package blob is a Persistence binding for key/value blob stores. Each slot is one JSON
// value under its own key and every save rewrites it whole.
package blob

import (
	"context"
	"encoding/json"
	"fmt"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

const (
	// DocumentsKey and CountersKey are the default slot names.
	DocumentsKey = "cndes_documents"
	CountersKey  = "cndes_counters"
)

// Backend reads and writes opaque values by key.
type Backend interface {
	// Read returns the value under key; ok is false when the key does not exist.
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)
	Write(ctx context.Context, key string, data []byte) error
}

// Store implements repository.Persistence on top of a Backend.
type Store struct {
	backend     Backend
	documentKey string
	counterKey  string
}

// New creates a Store that keeps its slots under prefix+DocumentsKey and prefix+CountersKey.
func New(b Backend, prefix string) *Store {
	return &Store{
		backend:     b,
		documentKey: prefix + DocumentsKey,
		counterKey:  prefix + CountersKey,
	}
}

var _ repository.Persistence = (*Store)(nil)

// storedDocument is the on-disk shape of a document. FileName mirrors the first attachment
// so older readers that only know the single-file field keep working.
type storedDocument struct {
	model.Document
	FileName string `json:"fileName,omitempty"`
}

func (s *Store) LoadDocuments(ctx context.Context) ([]model.Document, error) {
	data, ok, err := s.backend.Read(ctx, s.documentKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return []model.Document{}, nil
	}
	var stored []storedDocument
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrCorruptSlot, s.documentKey, err)
	}
	docs := make([]model.Document, len(stored))
	for i, sd := range stored {
		d := sd.Document
		if len(d.Attachments) == 0 && sd.FileName != "" {
			d.Attachments = []model.Attachment{model.LegacyAttachment(sd.FileName)}
		}
		docs[i] = d
	}
	return docs, nil
}

func (s *Store) SaveDocuments(ctx context.Context, docs []model.Document) error {
	stored := make([]storedDocument, len(docs))
	for i, d := range docs {
		stored[i] = storedDocument{Document: d, FileName: d.FileName()}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	return s.backend.Write(ctx, s.documentKey, data)
}

func (s *Store) LoadCounters(ctx context.Context) (*model.CounterState, error) {
	data, ok, err := s.backend.Read(ctx, s.counterKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var state model.CounterState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrCorruptSlot, s.counterKey, err)
	}
	return &state, nil
}

func (s *Store) SaveCounters(ctx context.Context, state model.CounterState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode counters: %w", err)
	}
	return s.backend.Write(ctx, s.counterKey, data)
}
