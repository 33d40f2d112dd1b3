// Package app wires configuration into a running registry: the persistence backend, the
// registry engine, its observers and the document service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docregistry/internal/catalog"
	"docregistry/internal/config"
	"docregistry/internal/database"
	"docregistry/internal/events"
	"docregistry/internal/http/handler"
	"docregistry/internal/metrics"
	"docregistry/internal/registry"
	"docregistry/internal/repository"
	"docregistry/internal/repository/blob"
	"docregistry/internal/repository/memory"
	"docregistry/internal/repository/postgres"
	redisrepo "docregistry/internal/repository/redis"
	"docregistry/internal/service"
	"docregistry/internal/storage"
)

// ObjectStorePrefix is the key prefix of the registry slots in the object store bucket.
const ObjectStorePrefix = "registry/"

// App holds the long-lived collaborators built from an AppConfig.
type App struct {
	Config    *config.AppConfig
	Log       *zap.Logger
	Registry  *registry.Registry
	Documents service.DocumentService
	Hub       *events.Hub
	Metrics   *prometheus.Registry
	// Health pings the persistence backend; nil when the backend has nothing to ping.
	Health handler.Pinger

	closers []func() error
}

// Backend is an opened persistence binding.
type Backend struct {
	Persistence repository.Persistence
	Catalogs    repository.CatalogRepository
	Health      handler.Pinger
	// Storage is the object store the backend was built on, if any.
	Storage storage.Storage
	Close   func() error
}

// OpenBackend connects the persistence binding selected by cfg.Registry.Backend. Catalogs
// come from the database tables for postgres and from the seed document otherwise.
func OpenBackend(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Backend, error) {
	seed, err := catalog.Load(cfg.Registry.CatalogSeedFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	noop := func() error { return nil }

	switch cfg.Registry.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.Database, log, seed)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewRegistryPostgres(db)
		return &Backend{Persistence: repo, Catalogs: repo, Health: db, Close: db.Close}, nil

	case config.BackendObjectStore:
		st, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return &Backend{
			Persistence: blob.New(blob.NewObjectBackend(st), ObjectStorePrefix),
			Catalogs:    catalog.NewStatic(seed.Catalogs),
			Storage:     st,
			Close:       noop,
		}, nil

	case config.BackendRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Persistence: redisrepo.New(client, cfg.Redis.KeyPrefix),
			Catalogs:    catalog.NewStatic(seed.Catalogs),
			Health: handler.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}),
			Close: client.Close,
		}, nil

	case config.BackendMemory:
		return &Backend{
			Persistence: memory.New(),
			Catalogs:    catalog.NewStatic(seed.Catalogs),
			Close:       noop,
		}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Registry.Backend)
}

// OpenRegistry opens the registry engine on an already connected backend.
func OpenRegistry(ctx context.Context, cfg *config.AppConfig, b *Backend, log *zap.Logger) (*registry.Registry, error) {
	loc, err := cfg.Registry.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	cats, err := b.Catalogs.Catalogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	return registry.Open(ctx, b.Persistence, registry.Options{
		Prefix:          cfg.Registry.Prefix,
		Rollover:        registry.RolloverPolicy(cfg.Registry.RolloverCheck),
		EnforceCatalogs: cfg.Registry.EnforceCatalogs,
		Catalogs:        cats,
		Now:             func() time.Time { return time.Now().In(loc) },
		Logger:          log,
	})
}

// New builds the application. Call Close when done.
func New(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*App, error) {
	b, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log, Health: b.Health, closers: []func() error{b.Close}}

	reg, err := OpenRegistry(ctx, cfg, b, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Registry = reg

	a.Metrics = prometheus.NewRegistry()
	a.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewRegistryCollector(a.Metrics)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register registry metrics: %w", err)
	}
	collector.Observe(reg.Counters())
	a.Hub = events.NewHub(log)
	for _, o := range []registry.Observer{collector, a.Hub} {
		unsubscribe := reg.Subscribe(o)
		a.closers = append(a.closers, func() error { unsubscribe(); return nil })
	}

	attachments := b.Storage
	if attachments == nil && cfg.MinIO.Enabled() {
		attachments, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("init attachment storage: %w", err)
		}
	}
	a.Documents = service.NewDocumentService(reg, attachments)

	log.Info("application ready",
		zap.String("backend", cfg.Registry.Backend),
		zap.Bool("attachment_links", attachments != nil),
		zap.Int("catalog_departments", len(reg.Catalogs().Departments)),
	)
	return a, nil
}

// Close releases the backend connection and detaches the observers.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
