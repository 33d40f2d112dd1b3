package blob

import (
	"bytes"
	"context"
	"errors"
	"io"

	"docregistry/internal/storage"
)

// ObjectBackend stores slots as objects in an S3-compatible bucket.
type ObjectBackend struct {
	store storage.Storage
}

// NewObjectBackend wraps an object store.
func NewObjectBackend(s storage.Storage) *ObjectBackend {
	return &ObjectBackend{store: s}
}

func (b *ObjectBackend) Read(ctx context.Context, key string) ([]byte, bool, error) {
	rc, _, err := b.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *ObjectBackend) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	})
	return err
}
