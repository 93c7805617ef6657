// Package cache stores rendered artifacts and generated feed data.
//
// [Cache] is a byte-oriented key/value store with per-entry TTL. Backends:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a Redis server, for multi-instance deployments
//
// Keys come from a [Keyer] so every caller hashes options the same way.
// [Instrument] wraps any backend with observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with expiring entries.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SnapshotKeyOpts identifies a rendered diagram frame.
type SnapshotKeyOpts struct {
	Diagram string        `json:"diagram"`
	Format  string        `json:"format"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	At      time.Duration `json:"at"`
	Seed    uint64        `json:"seed"`
	Hover   string        `json:"hover,omitempty"`
	Animate bool          `json:"animate,omitempty"`
	Labels  bool          `json:"labels,omitempty"` // detailed node-link labels
	Pinned  bool          `json:"pinned,omitempty"` // geographic node-link layout
	Dataset string        `json:"dataset"`          // dataset content hash
}

// ChartKeyOpts identifies a rendered market chart.
type ChartKeyOpts struct {
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Dataset string `json:"dataset"`
}

// Keyer builds cache keys.
type Keyer interface {
	SnapshotKey(opts SnapshotKeyOpts) string
	ChartKey(opts ChartKeyOpts) string
	SocialKey(platform string) string
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SnapshotKey returns "snapshot:<hash>".
func (DefaultKeyer) SnapshotKey(opts SnapshotKeyOpts) string {
	return hashKey("snapshot", opts)
}

// ChartKey returns "chart:<hash>".
func (DefaultKeyer) ChartKey(opts ChartKeyOpts) string {
	return hashKey("chart", opts)
}

// SocialKey returns "social:<platform>".
func (DefaultKeyer) SocialKey(platform string) string {
	return "social:" + platform
}
