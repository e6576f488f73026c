// Package cache stores rendered artifacts between runs.
//
// Rendering a scene file is deterministic: the same scene bytes and render
// options always give the same output. The pipeline therefore keys finished
// artifacts by a hash of both and skips rendering on a hit.
//
// Two implementations exist: [FileCache], a directory of JSON entries under
// the user cache dir, and [NullCache], which never stores anything and is
// used for --no-cache.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the artifact cache directory: $XDG_CACHE_HOME/viewgrid,
// or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "viewgrid"), nil
}
