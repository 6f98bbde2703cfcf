package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs on disk. The router serves Dir under the public base
// URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// DefaultLocalBaseURL is where the router mounts a LocalStore.
const DefaultLocalBaseURL = "/media"

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if baseURL == "" {
		baseURL = DefaultLocalBaseURL
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	// Rooting the key before cleaning keeps it inside dir.
	clean := filepath.ToSlash(filepath.Clean("/" + key))
	path := filepath.Join(s.dir, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return joinURL(s.baseURL, clean), nil
}
