package reservations

import (
	"context"
)

// BlobStore хранилище документов по пути
type BlobStore interface {
	Load(ctx context.Context, path string) ([]byte, error)
	Overwrite(ctx context.Context, path string, body []byte) error
}
