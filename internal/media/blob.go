// Package media turns uploaded ad photos into resized, publicly reachable
// blobs.
package media

import (
	"context"
	"strings"
)

// BlobStore writes an object under key and returns the URL clients fetch it
// from.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
