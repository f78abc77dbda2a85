// Package cache provides key-value caching for radar sources and render
// outputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for server deployments
//   - [NullCache]: stores nothing, for --no-cache runs
//
// # Keys
//
// A [Keyer] derives keys from content hashes and render options, so two runs
// with the same data and settings share entries:
//
//	source:<hash>    fetched source bodies           (TTLSource)
//	scene:<hash>     computed scenes, seeded only    (TTLScene)
//	artifact:<hash>  rendered outputs, seeded only   (TTLArtifact)
//
// Unseeded placement differs on every pass, so scenes and artifacts of
// unseeded runs are never cached.
package cache

import (
	"context"
	"time"
)

// TTLs per key family.
const (
	TTLSource   = time.Hour
	TTLScene    = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values with an optional time-to-live.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	SourceKey(kind, location string) string
	SceneKey(datasetHash string, opts SceneKeyOpts) string
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the layout inputs besides the dataset.
type SceneKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Seed   uint64  `json:"seed"`
	Style  string  `json:"style"`
}

// ArtifactKeyOpts are the render inputs besides the dataset.
type ArtifactKeyOpts struct {
	Scene    SceneKeyOpts `json:"scene"`
	VizType  string       `json:"viz_type"`
	Format   string       `json:"format"`
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Scale    float64      `json:"scale,omitempty"`
	Tooltips bool         `json:"tooltips,omitempty"`
	Detailed bool         `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SourceKey keys a fetched source body by kind ("csv", "html", ...) and
// location.
func (DefaultKeyer) SourceKey(kind, location string) string {
	return hashKey("source", kind, location)
}

// SceneKey keys a computed scene.
func (DefaultKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return hashKey("scene", datasetHash, opts)
}

// ArtifactKey keys one rendered output.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}
