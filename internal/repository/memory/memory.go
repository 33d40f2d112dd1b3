// Package memory is an in-process Persistence binding. It backs the "memory" registry
// backend and the registry tests.
package memory

import (
	"context"
	"sync"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

// Store keeps both slots in memory. Failures can be injected per slot for tests.
type Store struct {
	mu       sync.Mutex
	docs     []model.Document
	counters *model.CounterState

	// DocumentsErr and CountersErr, when set, are returned by the matching Save call.
	DocumentsErr error
	CountersErr  error

	docSaves     int
	counterSaves int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// NewWith creates a store pre-populated with docs and, if non-nil, counters.
func NewWith(docs []model.Document, counters *model.CounterState) *Store {
	s := &Store{docs: cloneDocs(docs)}
	if counters != nil {
		c := *counters
		s.counters = &c
	}
	return s
}

var _ repository.Persistence = (*Store)(nil)

func (s *Store) LoadDocuments(_ context.Context) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocs(s.docs), nil
}

func (s *Store) SaveDocuments(_ context.Context, docs []model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DocumentsErr != nil {
		return s.DocumentsErr
	}
	s.docs = cloneDocs(docs)
	s.docSaves++
	return nil
}

func (s *Store) LoadCounters(_ context.Context) (*model.CounterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters == nil {
		return nil, nil
	}
	c := *s.counters
	return &c, nil
}

func (s *Store) SaveCounters(_ context.Context, state model.CounterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CountersErr != nil {
		return s.CountersErr
	}
	s.counters = &state
	s.counterSaves++
	return nil
}

// Saves reports how many successful writes each slot has received.
func (s *Store) Saves() (documents, counters int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docSaves, s.counterSaves
}

func cloneDocs(docs []model.Document) []model.Document {
	out := make([]model.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
