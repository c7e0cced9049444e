package service

import (
	"context"
	"io"
)

// ImageStorage uploads product and profile images to blob storage and returns
// the public URL to persist on the entity.
type ImageStorage interface {
	// UploadImage stores the image under the given key prefix and returns its
	// public URL.
	UploadImage(ctx context.Context, keyPrefix, filename, contentType string, body io.Reader) (string, error)

	// DeleteImage removes a previously uploaded image by its public URL.
	// Unknown URLs are ignored.
	DeleteImage(ctx context.Context, publicURL string) error
}
