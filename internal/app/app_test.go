package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/model"
	"docregistry/internal/service"
)

func memoryConfig() *config.AppConfig {
	return &config.AppConfig{
		Registry: config.RegistryConfig{
			Backend:       config.BackendMemory,
			Prefix:        "CNDES",
			RolloverCheck: "session",
			Timezone:      "UTC",
		},
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Health)
	assert.NotEmpty(t, a.Registry.Catalogs().Departments)

	res, err := a.Documents.Register(ctx, model.Document{
		Type:        model.TypeInterno,
		Origin:      "Pleno",
		Destination: "Presidente",
		Summary:     "Convocatoria",
	})
	require.NoError(t, err)
	assert.Equal(t, "001", res.Document.ID)
	assert.Contains(t, res.Document.DocNumber, "CNDES/INT/")
	assert.Empty(t, res.Warnings)

	count, err := testutil.GatherAndCount(a.Metrics, "docregistry_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = a.Documents.AttachmentLink(ctx, "001", 0)
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}

func TestNew_CatalogSeedFileMissing(t *testing.T) {
	cfg := memoryConfig()
	cfg.Registry.CatalogSeedFile = "/nonexistent/seed.yaml"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := memoryConfig()
	cfg.Registry.Backend = "sqlite"

	_, err := OpenBackend(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown backend")
}

func TestClose_DetachesObservers(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = a.Documents.Register(ctx, model.Document{
		Type:        model.TypeSalida,
		Origin:      "Pleno",
		Destination: "GETESA",
		Summary:     "Oficio",
	})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(a.Metrics, "docregistry_events_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
