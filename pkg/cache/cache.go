// Package cache provides content-addressed caching for the rendering
// pipeline. Three stages are cached independently: the parsed dataset,
// the computed layout, and the rendered artifact, so that changing a
// render option reuses the layout and changing layout options reuses
// the dataset.
package cache

import (
	"context"
	"time"
)

// Default TTLs for the pipeline stages. Datasets and layouts are cheap
// to recompute, artifacts can involve external converters.
const (
	TTLDataset  = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	Split  bool
	Pad    []float64
	Levels []string
}

// ArtifactKeyOpts are the inputs that change a rendered artifact for a
// fixed layout.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Font   string
	DPI    float64
	Top    bool
	// Config is a digest of the remaining render configuration (label
	// settings, frame styling, output size).
	Config string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey generates a key for a parsed dataset, from the hash of
	// the raw input plus the column selection.
	DatasetKey(sourceHash string, columns []string) string
	// LayoutKey generates a key for a computed layout.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) DatasetKey(sourceHash string, columns []string) string {
	return hashKey(prefixDataset, sourceHash, columns)
}

func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey(prefixLayout, datasetHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, layoutHash, opts)
}
