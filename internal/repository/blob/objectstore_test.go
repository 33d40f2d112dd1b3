package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docregistry/internal/storage"
	storeMocks "docregistry/internal/storage/mocks"
)

func TestObjectBackend_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("existing object", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		m.On("Get", ctx, "cndes_counters").
			Return(io.NopCloser(bytes.NewReader([]byte(`{"year":2024}`))), storage.ObjectInfo{Key: "cndes_counters"}, nil)

		data, ok, err := NewObjectBackend(m).Read(ctx, "cndes_counters")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"year":2024}`, string(data))
		m.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		m.On("Get", ctx, "cndes_documents").
			Return(nil, storage.ObjectInfo{}, fmt.Errorf("%w: NoSuchKey", storage.ErrObjectNotFound))

		data, ok, err := NewObjectBackend(m).Read(ctx, "cndes_documents")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("storage error", func(t *testing.T) {
		m := new(storeMocks.MockStorage)
		m.On("Get", ctx, "cndes_documents").Return(nil, storage.ObjectInfo{}, errors.New("access denied"))

		_, _, err := NewObjectBackend(m).Read(ctx, "cndes_documents")
		assert.EqualError(t, err, "access denied")
	})
}

func TestObjectBackend_Write(t *testing.T) {
	ctx := context.Background()
	m := new(storeMocks.MockStorage)
	payload := []byte(`{"salida":1}`)
	m.On("Put", ctx, "cndes_counters", mock.Anything, storage.PutObjectOptions{
		Size:        int64(len(payload)),
		ContentType: "application/json",
	}).Return(storage.ObjectInfo{Key: "cndes_counters"}, nil)

	require.NoError(t, NewObjectBackend(m).Write(ctx, "cndes_counters", payload))
	m.AssertExpectations(t)
}

func TestObjectBackend_WithStore(t *testing.T) {
	ctx := context.Background()
	m := new(storeMocks.MockStorage)
	m.On("Get", ctx, "registry/cndes_counters").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

	counters, err := New(NewObjectBackend(m), "registry/").LoadCounters(ctx)
	require.NoError(t, err)
	assert.Nil(t, counters)
}
