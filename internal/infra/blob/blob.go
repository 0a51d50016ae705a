package blob

import (
	"context"
	"io"
	"time"
)

// Store is the object-store surface the handlers need. Keys follow the
// `{year}/{calendarID}/{day}.{ext}` convention derived from relational
// identifiers.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	SignURL(key string, ttl time.Duration) (string, error)
}
