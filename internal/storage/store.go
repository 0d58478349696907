package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key     string
	Created time.Time
}

// Store is the object-store boundary. Implementations hold uploaded audio
// and video artifacts and hand out short-lived signed URLs for them.
type Store interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	SignedURL(key string, ttl time.Duration) (string, error)
}

// SignedURLTTL is the default lifetime for links returned to clients.
const SignedURLTTL = time.Hour
