package storage_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"catalog-exporter/core/storage"
	"catalog-exporter/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	payload := []byte("Product;ItemNumber\n")

	t.Run("BucketExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog-exports").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalog-exports", "export.csv", mock.Anything, int64(len(payload)), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		err := storage.Upload(ctx, client, "catalog-exports", "export.csv", bytes.NewReader(payload), int64(len(payload)), "text/csv")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("CreatesMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog-exports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "catalog-exports", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "catalog-exports", "export.csv", mock.Anything, int64(len(payload)), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		err := storage.Upload(ctx, client, "catalog-exports", "export.csv", bytes.NewReader(payload), int64(len(payload)), "text/csv")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("PutFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog-exports").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalog-exports", "export.csv", mock.Anything, int64(len(payload)), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("connection reset"))

		err := storage.Upload(ctx, client, "catalog-exports", "export.csv", bytes.NewReader(payload), int64(len(payload)), "text/csv")
		assert.ErrorContains(t, err, "failed to upload")
	})
}
