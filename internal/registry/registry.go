// Package registry is the document registry engine: the record store, the counter
// registry that numbers outgoing and internal documents, and the query engine.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"docregistry/internal/model"
	"docregistry/internal/numbering"
	"docregistry/internal/repository"
)

// RolloverPolicy selects when the year rollover check runs.
type RolloverPolicy string

const (
	// RolloverOnOpen checks once, when the registry is opened. A registry left open across
	// a year boundary keeps numbering for the old year until it is reopened.
	RolloverOnOpen RolloverPolicy = "session"
	// RolloverPerRequest checks before every preview and registration.
	RolloverPerRequest RolloverPolicy = "request"
)

// Options configures a Registry. Zero values select the defaults.
type Options struct {
	Prefix          string
	Rollover        RolloverPolicy
	EnforceCatalogs bool
	Catalogs        model.Catalogs
	// Now returns the current time; the calendar year for numbering is taken from it.
	Now    func() time.Time
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = numbering.DefaultPrefix
	}
	if o.Rollover == "" {
		o.Rollover = RolloverOnOpen
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Registration is the outcome of a successful Register call. Warnings lists catalog
// violations that were accepted because enforcement is off.
type Registration struct {
	Document model.Document `json:"document"`
	Warnings []Violation    `json:"warnings,omitempty"`
}

// UpdateResult is the outcome of Update. Found is false when no record had the id, in
// which case nothing was changed.
type UpdateResult struct {
	Document model.Document `json:"document"`
	Found    bool           `json:"found"`
	Warnings []Violation    `json:"warnings,omitempty"`
}

// Registry is the service object exposing the engine's operations. It serializes
// mutations within the process; it does not coordinate with other processes sharing the
// same persistence backend.
type Registry struct {
	mu        sync.Mutex
	opts      Options
	log       *zap.Logger
	counters  *CounterRegistry
	store     *DocumentStore
	observers map[int]Observer
	nextObs   int
}

// Open loads both slots from p and runs the rollover check.
func Open(ctx context.Context, p repository.Persistence, opts Options) (*Registry, error) {
	opts = opts.withDefaults()
	r := &Registry{
		opts:      opts,
		log:       opts.Logger.With(zap.String("component", "registry")),
		observers: make(map[int]Observer),
	}

	counters, rolled, err := LoadCounterRegistry(ctx, p, opts.Prefix, opts.Now)
	if err != nil {
		return nil, err
	}
	store, err := LoadDocumentStore(ctx, p, counters.PreviewOrder)
	if err != nil {
		return nil, err
	}
	counters.observeOrder(store.maxOrder())

	r.counters = counters
	r.store = store

	state := counters.State()
	r.log.Info("registry opened",
		zap.Int("documents", store.Len()),
		zap.Int("year", state.Year),
		zap.Int("salida_count", state.SalidaCount),
		zap.Int("interno_count", state.InternoCount),
		zap.Bool("rolled_over", rolled),
		zap.String("rollover_policy", string(opts.Rollover)),
	)
	return r, nil
}

// Subscribe registers o for change events and returns a function that removes it.
func (r *Registry) Subscribe(o Observer) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextObs
	r.nextObs++
	r.observers[id] = o
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

// Catalogs returns the reference catalogs the registry validates against.
func (r *Registry) Catalogs() model.Catalogs {
	return r.opts.Catalogs
}

// Counters returns the current counter state.
func (r *Registry) Counters() model.CounterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters.State()
}

// PreviewNumber returns the docNumber the next registration of type t would receive. It
// is idempotent: repeated calls without a registration in between return the same value.
// Entrada returns "".
func (r *Registry) PreviewNumber(ctx context.Context, t model.DocumentType) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.rolloverIfPerRequest(ctx); err != nil {
		return "", err
	}
	return r.counters.PreviewNext(t)
}

// PreviewOrder returns the id the next registration without an explicit id would receive.
func (r *Registry) PreviewOrder() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters.PreviewOrder()
}

// Get returns the record with the given id, or ErrNotFound.
func (r *Registry) Get(id string) (model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.store.Get(id)
	if !ok {
		return model.Document{}, ErrNotFound
	}
	return doc, nil
}

// List returns a snapshot of all records, newest-inserted-first.
func (r *Registry) List() []model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.List()
}

// Search runs the query engine over a fresh snapshot.
func (r *Registry) Search(term string) []model.Document {
	return Query(r.List(), term)
}

// Register validates doc, assigns its id and (for Salida and Interno) its docNumber, then
// stores it and commits the counters. On a persistence failure nothing stays changed in
// memory; a failed counter write is compensated by removing the stored record.
func (r *Registry) Register(ctx context.Context, doc model.Document) (Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Now()
	today := now.Format(dateLayout)
	if doc.RegistrationDate == "" {
		doc.RegistrationDate = today
	}
	if doc.DocDate == "" {
		doc.DocDate = today
	}
	doc.Status = model.StatusCompleted
	doc.CreatedAt = now.UTC()

	if err := r.rolloverIfPerRequest(ctx); err != nil {
		return Registration{}, err
	}
	if doc.Type.AutoNumbered() {
		number, err := r.counters.PreviewNext(doc.Type)
		if err != nil {
			return Registration{}, err
		}
		doc.DocNumber = number
	}
	if err := validateDocument(doc); err != nil {
		return Registration{}, err
	}
	warnings, err := r.catalogCheck(doc)
	if err != nil {
		return Registration{}, err
	}

	stored, err := r.store.Add(ctx, doc)
	if err != nil {
		return Registration{}, err
	}
	if _, err := r.counters.commit(ctx, stored.Type, stored.ID); err != nil {
		if _, delErr := r.store.Delete(ctx, stored.ID); delErr != nil {
			r.log.Error("registration rollback failed",
				zap.String("document_id", stored.ID),
				zap.Error(delErr),
			)
			return Registration{}, fmt.Errorf("commit counters: %w; rollback failed: %w", err, delErr)
		}
		return Registration{}, fmt.Errorf("commit counters: %w", err)
	}

	state := r.counters.State()
	r.log.Info("document registered",
		zap.String("document_id", stored.ID),
		zap.String("type", string(stored.Type)),
		zap.String("doc_number", stored.DocNumber),
		zap.Int("warnings", len(warnings)),
	)
	r.notify(Event{Kind: EventDocumentCreated, DocumentID: stored.ID, Document: &stored, Counters: &state, At: now})
	return Registration{Document: stored, Warnings: warnings}, nil
}

// Update merges patch into the record with the given id. A missing id yields
// Found=false and no error. Type changes and changes to a system-assigned docNumber are
// rejected with ErrImmutableField.
func (r *Registry) Update(ctx context.Context, id string, patch model.DocumentPatch) (UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.store.Get(id)
	if !ok {
		r.log.Debug("update ignored: document not found", zap.String("document_id", id))
		return UpdateResult{Found: false}, nil
	}
	merged, err := applyPatch(current, patch)
	if err != nil {
		return UpdateResult{Found: true}, err
	}
	if err := validateDocument(merged); err != nil {
		return UpdateResult{Found: true}, err
	}
	warnings, err := r.catalogCheck(merged)
	if err != nil {
		return UpdateResult{Found: true}, err
	}

	updated, _, err := r.store.Update(ctx, id, patch)
	if err != nil {
		return UpdateResult{Found: true}, err
	}
	r.log.Info("document updated", zap.String("document_id", id))
	r.notify(Event{Kind: EventDocumentUpdated, DocumentID: id, Document: &updated, At: r.opts.Now()})
	return UpdateResult{Document: updated, Found: true, Warnings: warnings}, nil
}

// Delete removes the record with the given id and reports whether it existed. A missing
// id is not an error.
func (r *Registry) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, err := r.store.Delete(ctx, id)
	if err != nil {
		return found, err
	}
	if !found {
		r.log.Debug("delete ignored: document not found", zap.String("document_id", id))
		return false, nil
	}
	r.log.Info("document deleted", zap.String("document_id", id))
	r.notify(Event{Kind: EventDocumentDeleted, DocumentID: id, At: r.opts.Now()})
	return true, nil
}

// CheckRollover runs the year rollover check on demand, regardless of policy.
func (r *Registry) CheckRollover(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rollover(ctx)
}

func (r *Registry) rolloverIfPerRequest(ctx context.Context) error {
	if r.opts.Rollover != RolloverPerRequest {
		return nil
	}
	_, err := r.rollover(ctx)
	return err
}

func (r *Registry) rollover(ctx context.Context) (bool, error) {
	rolled, err := r.counters.CheckRollover(ctx)
	if err != nil || !rolled {
		return rolled, err
	}
	state := r.counters.State()
	r.log.Info("counters rolled over", zap.Int("year", state.Year))
	r.notify(Event{Kind: EventCountersRolledOver, Counters: &state, At: r.opts.Now()})
	return true, nil
}

func (r *Registry) catalogCheck(doc model.Document) ([]Violation, error) {
	violations := checkCatalogs(r.opts.Catalogs, doc)
	if len(violations) == 0 {
		return nil, nil
	}
	if r.opts.EnforceCatalogs {
		return nil, fmt.Errorf("%w: %w", ErrCatalogViolation, errors.Join(violationErrors(violations)...))
	}
	for _, v := range violations {
		r.log.Warn("catalog violation accepted",
			zap.String("field", v.Field),
			zap.String("value", v.Value),
			zap.String("catalog", v.Catalog),
		)
	}
	return violations, nil
}

func (r *Registry) notify(e Event) {
	for _, o := range r.observers {
		o.Notify(e)
	}
}

func violationErrors(vs []Violation) []error {
	out := make([]error, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
