package storage

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"docregistry/internal/config"
)

func TestNewMinIO_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want []string
	}{
		{
			name: "empty",
			cfg:  config.MinIOConfig{},
			want: []string{"endpoint is required", "credentials are required", "bucket is required"},
		},
		{
			name: "missing secret",
			cfg:  config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "registry", Bucket: "cndes"},
			want: []string{"credentials are required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			for _, w := range tt.want {
				assert.ErrorContains(t, err, w)
			}
		})
	}
}

func TestMapMinioError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, mapMinioError(notFound), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.NotErrorIs(t, mapMinioError(denied), ErrObjectNotFound)
}
