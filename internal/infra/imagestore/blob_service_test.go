package imagestore

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobImageStorage_UploadAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobImageStorage(bucket, "https://cdn.example.com/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	url, err := storage.UploadImage(ctx, "products", "kopi.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key := strings.TrimPrefix(url, "https://cdn.example.com/")
	data, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, storage.DeleteImage(ctx, url))

	exists, err := bucket.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobImageStorage_DeleteIgnoresForeignURL(t *testing.T) {
	t.Parallel()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobImageStorage(bucket, "https://cdn.example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, storage.DeleteImage(context.Background(), "https://other.example.com/products/x.png"))
}
