// Package cache provides caching for processed image results.
//
// The Cache interface abstracts over backends: a file-based cache for CLI
// usage, Redis for the HTTP server, and a null cache for tests or --no-cache
// runs. Keys are content-addressed: the Keyer derives a stable key from the
// input image hash plus the normalized processing options, so the same image
// with the same settings always hits.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached data.
const (
	// ResultTTL is how long processed image results are kept.
	// Processing is deterministic for a given key, so the TTL exists only
	// to bound disk usage.
	ResultTTL = 7 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// A ttl of 0 means no expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the processing options that affect the cached output.
// Every field participates in the key: two runs with any differing field
// must never share an entry.
type ResultKeyOpts struct {
	BlockSize        int
	PaletteSize      int
	Palette          string
	PreBlur          bool
	EdgeEnhance      bool
	Dither           bool
	Outline          bool
	OutlineThickness int
	Seed             int64
	Format           string

	// PaletteHash is the content hash of a user-defined palette, empty for
	// built-in palettes. It keeps differently-defined palettes with the
	// same name from sharing entries.
	PaletteHash string
}

// Keyer generates cache keys for processed results.
type Keyer interface {
	// ResultKey generates a key for an encoded processing result.
	// inputHash is the SHA-256 of the raw input bytes.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for an encoded processing result.
func (k *DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
