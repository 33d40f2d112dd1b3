package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docregistry/internal/model"
	"docregistry/internal/repository/memory"
	repoMocks "docregistry/internal/repository/mocks"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.May, 1, 9, 30, 0, 0, time.UTC) }
}

func TestCounterRegistry_PreviewMatchesCommit(t *testing.T) {
	ctx := context.Background()

	for _, typ := range []model.DocumentType{model.TypeSalida, model.TypeInterno} {
		t.Run(string(typ), func(t *testing.T) {
			store := memory.New()
			c, rolled, err := LoadCounterRegistry(ctx, store, "CNDES", fixedClock(2024))
			require.NoError(t, err)
			assert.False(t, rolled)

			code := "SAL"
			if typ == model.TypeInterno {
				code = "INT"
			}
			for n := 1; n <= 12; n++ {
				want := fmt.Sprintf("CNDES/%s/2024/%03d", code, n)

				preview, err := c.PreviewNext(typ)
				require.NoError(t, err)
				assert.Equal(t, want, preview)

				committed, err := c.Commit(ctx, typ)
				require.NoError(t, err)
				assert.Equal(t, want, committed)
			}
			assert.Equal(t, 12, c.State().Count(typ))
		})
	}
}

func TestCounterRegistry_PreviewIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWith(nil, &model.CounterState{SalidaCount: 2, Year: 2024})
	c, _, err := LoadCounterRegistry(ctx, store, "CNDES", fixedClock(2024))
	require.NoError(t, err)

	first, err := c.PreviewNext(model.TypeSalida)
	require.NoError(t, err)
	second, err := c.PreviewNext(model.TypeSalida)
	require.NoError(t, err)

	assert.Equal(t, "CNDES/SAL/2024/003", first)
	assert.Equal(t, first, second)
	_, counterSaves := store.Saves()
	assert.Zero(t, counterSaves)
}

func TestCounterRegistry_RolloverOnLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWith(nil, &model.CounterState{SalidaCount: 5, InternoCount: 3, Year: 2023, OrderSeq: 40})

	c, rolled, err := LoadCounterRegistry(ctx, store, "CNDES", fixedClock(2024))
	require.NoError(t, err)
	assert.True(t, rolled)

	preview, err := c.PreviewNext(model.TypeSalida)
	require.NoError(t, err)
	assert.Equal(t, "CNDES/SAL/2024/001", preview)

	saved, err := store.LoadCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CounterState{Year: 2024, OrderSeq: 40}, *saved)
}

func TestCounterRegistry_DefaultsWhenNothingStored(t *testing.T) {
	c, rolled, err := LoadCounterRegistry(context.Background(), memory.New(), "CNDES", fixedClock(2026))
	require.NoError(t, err)
	assert.False(t, rolled)
	assert.Equal(t, model.CounterState{Year: 2026}, c.State())
	assert.Equal(t, "001", c.PreviewOrder())
}

func TestCounterRegistry_Entrada(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	c, _, err := LoadCounterRegistry(ctx, store, "CNDES", fixedClock(2024))
	require.NoError(t, err)

	preview, err := c.PreviewNext(model.TypeEntrada)
	require.NoError(t, err)
	assert.Empty(t, preview)

	committed, err := c.Commit(ctx, model.TypeEntrada)
	require.NoError(t, err)
	assert.Empty(t, committed)

	_, counterSaves := store.Saves()
	assert.Zero(t, counterSaves)
}

func TestCounterRegistry_InvalidType(t *testing.T) {
	c, _, err := LoadCounterRegistry(context.Background(), memory.New(), "CNDES", fixedClock(2024))
	require.NoError(t, err)

	_, err = c.PreviewNext(model.DocumentType("Circular"))
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = c.Commit(context.Background(), model.DocumentType("Circular"))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCounterRegistry_CommitFailureRestoresState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWith(nil, &model.CounterState{SalidaCount: 4, Year: 2024})
	c, _, err := LoadCounterRegistry(ctx, store, "CNDES", fixedClock(2024))
	require.NoError(t, err)

	store.CountersErr = errors.New("disk full")
	_, err = c.Commit(ctx, model.TypeSalida)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 4, c.State().SalidaCount)

	preview, err := c.PreviewNext(model.TypeSalida)
	require.NoError(t, err)
	assert.Equal(t, "CNDES/SAL/2024/005", preview)
}

func TestCounterRegistry_LoadFailure(t *testing.T) {
	ctx := context.Background()
	p := new(repoMocks.MockPersistence)
	p.On("LoadCounters", ctx).Return(nil, errors.New("connection refused"))

	_, _, err := LoadCounterRegistry(ctx, p, "CNDES", fixedClock(2024))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "connection refused")
	p.AssertExpectations(t)
}

func TestCounterRegistry_RolloverSaveFailure(t *testing.T) {
	ctx := context.Background()
	p := new(repoMocks.MockPersistence)
	p.On("LoadCounters", ctx).Return(&model.CounterState{SalidaCount: 9, Year: 2023}, nil)
	p.On("SaveCounters", ctx, model.CounterState{Year: 2024}).Return(errors.New("read-only"))

	_, _, err := LoadCounterRegistry(ctx, p, "CNDES", fixedClock(2024))
	assert.ErrorIs(t, err, ErrPersistence)
	p.AssertExpectations(t)
}
