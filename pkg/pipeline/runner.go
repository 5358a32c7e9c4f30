package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Items are the parsed input rows.
	Items []treemap.Item

	// Tree is the aggregated hierarchy with tile rectangles assigned.
	Tree *treemap.Tree

	// TreeHash is the content hash of the laid-out tree.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	GroupCount int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the parsed dataset came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	source := sourceDescription(opts)
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	items, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, source, len(items), time.Since(loadStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load")
	}
	result.Items = items
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RowCount = len(items)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded data",
		"source", source,
		"rows", len(items),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(items))
	tree, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, items, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "layout")
	}
	result.Tree = tree
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.GroupCount = countGroups(tree)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := MarshalTree(tree); err == nil {
		result.TreeHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"levels", tree.Depth(),
		"groups", result.Stats.GroupCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	for _, f := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, f)
	}
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tree, opts)
	for _, f := range opts.Formats {
		observability.Pipeline().OnRenderComplete(ctx, f, time.Since(renderStart), err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]treemap.Item, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	raw, err := RawInput(opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DatasetKey(cache.Hash(raw), opts.Columns())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var items []treemap.Item
			if err := json.Unmarshal(data, &items); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return items, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	items, err := parseItems(raw, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, err := json.Marshal(items); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
			observability.Cache().OnCacheSet(ctx, "dataset", len(data))
		}
	}

	return items, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]treemap.Item, error) {
	items, _, err := r.LoadWithCacheInfo(ctx, opts)
	return items, err
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, items []treemap.Item, opts Options) (*treemap.Tree, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	itemData, _ := json.Marshal(items)
	cacheKey := r.Keyer.LayoutKey(cache.Hash(itemData), opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := UnmarshalTree(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	tree, err := GenerateLayout(items, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := MarshalTree(tree); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return tree, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, items []treemap.Item, opts Options) (*treemap.Tree, error) {
	tree, _, err := r.GenerateLayoutWithCacheInfo(ctx, items, opts)
	return tree, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tree *treemap.Tree, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	treeData, err := MarshalTree(tree)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize tree for cache key")
	}
	treeHash := cache.Hash(treeData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(tree, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tree *treemap.Tree, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tree, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// MarshalTree serializes a laid-out tree for caching.
func MarshalTree(t *treemap.Tree) ([]byte, error) {
	return json.Marshal(t)
}

// UnmarshalTree deserializes a cached tree.
func UnmarshalTree(data []byte) (*treemap.Tree, error) {
	var t treemap.Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func countGroups(t *treemap.Tree) int {
	n := 0
	for _, level := range t.Levels {
		n += len(level.Groups)
	}
	return n
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
