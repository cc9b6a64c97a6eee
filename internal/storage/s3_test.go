package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"alcyxob/training-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_PresignedDownloadURL(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "exports",
	})
	require.NoError(t, err)

	// presigning is local, no request reaches the endpoint
	url, err := fs.GeneratePresignedDownloadURL(context.Background(), "exports/abc/report.json", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/exports/exports/abc/report.json?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
}

func TestDisabledStorage(t *testing.T) {
	fs := NewDisabledStorage()
	assert.ErrorIs(t, fs.PutObject(context.Background(), "k", "application/json", nil), ErrStorageDisabled)
	_, err := fs.GeneratePresignedDownloadURL(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, fs.DeleteObject(context.Background(), "k"), ErrStorageDisabled)
}
