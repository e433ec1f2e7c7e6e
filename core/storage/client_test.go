package storage_test

import (
	"context"
	"testing"

	"data-correlator/core/storage"
	"data-correlator/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestNewClient tests client construction for the supported endpoint forms.
func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Bare endpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Region: "us-east-1"}},
		{"HTTP scheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPS scheme", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

// TestEnsureBucket tests that buckets are created only when missing.
func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "correlations").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "correlations", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "correlations").Return(false, nil)
		client.On("MakeBucket", ctx, "correlations", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "correlations", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("Check fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "correlations").Return(false, assert.AnError)

		err := storage.EnsureBucket(ctx, client, "correlations", "")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

// TestListObjectNames tests draining the listing channel.
func TestListObjectNames(t *testing.T) {
	ctx := context.Background()
	opts := minio.ListObjectsOptions{Prefix: "exports/", Recursive: true}

	t.Run("Names", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "exports/a.json"}
		ch <- minio.ObjectInfo{Key: "exports/b.json"}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", ctx, "correlations", opts).Return((<-chan minio.ObjectInfo)(ch))

		names, err := storage.ListObjectNames(ctx, client, "correlations", "exports/")
		require.NoError(t, err)
		assert.Equal(t, []string{"exports/a.json", "exports/b.json"}, names)
	})

	t.Run("Listing error", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: assert.AnError}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", ctx, "correlations", opts).Return((<-chan minio.ObjectInfo)(ch))

		_, err := storage.ListObjectNames(ctx, client, "correlations", "exports/")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
