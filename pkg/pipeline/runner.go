package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/observability"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer; a nil cache
// disables caching.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.ExecuteDataset(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteDataset runs layout → render over an already loaded dataset.
func (r *Runner) ExecuteDataset(ctx context.Context, d *radar.Dataset, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Dataset:     d,
		DatasetHash: DatasetHash(d),
		Stats:       Stats{Entries: len(d.Entries)},
	}

	layoutStart := time.Now()
	if opts.IsNodelink() {
		result.DOT = BuildDOT(d, opts)
	} else {
		s, hit, err := r.LayoutWithCacheInfo(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Scene = s
		result.CacheInfo.LayoutHit = hit
		result.Stats.Placed = len(s.Blips)
		result.Stats.Skipped = len(s.Skipped)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"viz", opts.VizType,
		"blips", result.Stats.Placed,
		"skipped", result.Stats.Skipped,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load pulls a document from opts.Source and validates it into a dataset.
func (r *Runner) Load(ctx context.Context, opts Options) (*radar.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	doc, err := opts.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	d, err := source.Dataset(doc, opts.SourceOptions())
	if err != nil {
		return nil, err
	}

	r.Logger.Info("loaded radar",
		"source", opts.Source.Kind(),
		"entries", len(d.Entries),
		"quadrants", len(d.Quadrants),
		"rings", len(d.Rings),
		"duration", time.Since(start))
	return d, nil
}

// LayoutWithCacheInfo builds the radar scene, reusing a cached one for
// reproducible runs.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *radar.Dataset, opts Options) (chart.Scene, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Scene{}, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, len(d.Entries))
	start := time.Now()

	cacheable := opts.Reproducible()
	key := r.Keyer.SceneKey(DatasetHash(d), opts.SceneKeyOpts())

	if cacheable {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s chart.Scene
			if err := json.Unmarshal(data, &s); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				r.Logger.Debug("scene cache hit", "key", key)
				hooks.OnLayoutComplete(ctx, opts.VizType, len(s.Blips), len(s.Skipped), time.Since(start), nil)
				return s, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
		r.Logger.Debug("scene cache miss", "key", key)
	}

	s := BuildScene(d, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, len(s.Blips), len(s.Skipped), time.Since(start), nil)

	if cacheable {
		if data, err := json.Marshal(s); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLScene); err == nil {
				observability.Cache().OnCacheSet(ctx, "scene", len(data))
			}
		}
	}
	return s, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, d *radar.Dataset, opts Options) (chart.Scene, error) {
	s, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return s, err
}

// RenderWithCacheInfo renders the layout held in result. For reproducible
// runs every format is looked up in the cache first; one miss renders all.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheable := opts.Reproducible()
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(result.DatasetHash, opts.ArtifactKeyOpts(format))
	}

	if cacheable {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keyFor(format))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			r.Logger.Debug("artifact cache hit", "formats", opts.Formats)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		rendered map[string][]byte
		err      error
	)
	if opts.IsNodelink() {
		rendered, err = RenderNodelink(ctx, result.DOT, len(result.Dataset.Quadrants), len(result.Dataset.Entries), opts)
	} else {
		rendered, err = RenderScene(ctx, result.Scene, opts)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		for format, data := range rendered {
			if err := r.Cache.Set(ctx, keyFor(format), data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return rendered, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DatasetHash returns a content hash of d for cache keys.
func DatasetHash(d *radar.Dataset) string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
