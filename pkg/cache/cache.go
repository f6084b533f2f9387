// Package cache provides caching for chart results and resolved layouts.
//
// Layout resolution is deterministic, so the cache is purely an
// optimization: a miss recomputes the same bytes a hit would have
// returned. Backends cover the deployment spectrum: in-process memory for
// tests and single-shot CLI runs, files for local CLI usage across runs,
// redis for the hosted service, and a null cache to disable caching
// entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per content class. Chart results change when upstream
// recomputes statistics; resolved layouts only change with content or
// policy, so they live longer.
const (
	ChartTTL  = 15 * time.Minute
	LayoutTTL = 24 * time.Hour
)

// Cache is the storage interface for cached bytes.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the content classes the service caches.
type Keyer interface {
	// ChartKey keys one upstream chart result.
	ChartKey(chartID string) string

	// LayoutKey keys one block's resolution at one width under one
	// policy fingerprint.
	LayoutKey(blockHash string, widthPx float64, policyHash string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ChartKey generates a key for an upstream chart result.
func (k *DefaultKeyer) ChartKey(chartID string) string {
	return hashKey("chart", chartID)
}

// LayoutKey generates a key for a resolved block layout.
func (k *DefaultKeyer) LayoutKey(blockHash string, widthPx float64, policyHash string) string {
	return hashKey("layout", blockHash, widthPx, policyHash)
}
