// Package imagestore uploads product and profile images to blob storage.
package imagestore

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"lapak/config"
	"lapak/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type blobImageStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the image storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates an ImageStorage backed by the configured bucket. When no bucket
// is configured, image uploads are rejected with a clear error.
func New(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Blob
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Blob storage not configured, image uploads disabled")

		return &disabledImageStorage{}, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Blob image storage initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	return NewBlobImageStorage(bucket, cfg.PublicBaseURL, params.Logger), nil
}

// NewBlobImageStorage wraps an open bucket.
func NewBlobImageStorage(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) service.ImageStorage {
	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// UploadImage stores the image under a unique key and returns its public URL.
func (s *blobImageStorage) UploadImage(ctx context.Context, keyPrefix, filename, contentType string, body io.Reader) (string, error) {
	key := keyPrefix + "/" + uuid.New().String() + path.Ext(filename)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "open writer for %s", key)
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "write image %s", key)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "close writer for %s", key)
	}

	return s.publicBaseURL + "/" + key, nil
}

// DeleteImage removes a previously uploaded image by its public URL. URLs
// outside the configured base are ignored.
func (s *blobImageStorage) DeleteImage(ctx context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, s.publicBaseURL+"/")
	if !ok || key == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to delete image",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return nil
}

// disabledImageStorage rejects uploads when no bucket is configured.
type disabledImageStorage struct{}

func (s *disabledImageStorage) UploadImage(context.Context, string, string, string, io.Reader) (string, error) {
	return "", errors.New("image storage is not configured")
}

func (s *disabledImageStorage) DeleteImage(context.Context, string) error {
	return nil
}
