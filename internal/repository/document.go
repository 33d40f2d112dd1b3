package repository

import (
	"context"
	"errors"

	"docregistry/internal/model"
)

// ErrCorruptSlot is returned when a stored slot cannot be decoded.
var ErrCorruptSlot = errors.New("stored slot is corrupt")

// Persistence is the durable storage port of the registry. It exposes two slots, the
// document collection and the counter state. Every Save rewrites the whole slot.
type Persistence interface {
	// LoadDocuments returns the stored collection, newest-inserted-first. An empty store
	// returns an empty slice.
	LoadDocuments(ctx context.Context) ([]model.Document, error)

	// SaveDocuments replaces the stored collection with docs.
	SaveDocuments(ctx context.Context, docs []model.Document) error

	// LoadCounters returns the stored counter state, or nil when none was ever saved.
	LoadCounters(ctx context.Context) (*model.CounterState, error)

	// SaveCounters replaces the stored counter state.
	SaveCounters(ctx context.Context, state model.CounterState) error
}

// CatalogRepository reads the seeded reference catalogs.
type CatalogRepository interface {
	Catalogs(ctx context.Context) (model.Catalogs, error)
}
