package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dashchart/pkg/cache"
	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/observability"
	"github.com/matzehuels/dashchart/pkg/stats"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// StatsTTL, when positive, caches loaded snapshots under
	// Keyer.StatsKey so slow sources are not queried on every request.
	StatsTTL time.Duration
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

// LoadStats fetches a snapshot from src and reports it to the pipeline hooks.
// name identifies the source in logs, metrics and the snapshot cache key
// ("file", "mongo", ...).
func (r *Runner) LoadStats(ctx context.Context, src stats.Source, name string) (*stats.Stats, error) {
	var key string
	if r.StatsTTL > 0 {
		key = r.Keyer.StatsKey(name)
		if s, ok := r.cachedStats(ctx, key); ok {
			return s, nil
		}
	}

	start := time.Now()
	s, err := src.Stats(ctx)
	observability.Pipeline().OnStatsLoad(ctx, name, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	for _, w := range s.Warnings {
		r.Logger.Warn(w, "source", name)
	}
	r.Logger.Debug("loaded stats",
		"source", name,
		"categories", len(s.Categories),
		"rules", s.TotalRules,
		"duration", time.Since(start))

	if key != "" {
		if data, err := s.MarshalJSON(); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.StatsTTL); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "stats", len(data))
			}
		}
	}
	return s, nil
}

func (r *Runner) cachedStats(ctx context.Context, key string) (*stats.Stats, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "stats")
		return nil, false
	}
	s, err := stats.Parse(data)
	if err != nil {
		r.Logger.Debug("discarding corrupt stats entry", "key", key, "err", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "stats")
	return s, true
}

type job struct {
	chart, format string
}

// Render produces every requested chart × format artifact, reading from and
// writing to the cache. Artifacts render concurrently.
func (r *Runner) Render(ctx context.Context, snapshot *stats.Stats, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if snapshot == nil {
		snapshot = &stats.Stats{}
	}
	start := time.Now()

	result := &Result{
		StatsHash: cache.HashJSON(snapshot),
		Artifacts: make(map[string][]byte),
	}

	var jobs []job
	for _, c := range opts.Charts {
		for _, f := range opts.Formats {
			jobs = append(jobs, job{chart: c, format: f})
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			data, d, hit, err := r.renderOne(gctx, snapshot.Chart(), result.StatsHash, j, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result.Artifacts[ArtifactName(j.chart, j.format)] = data
			if hit {
				result.CacheInfo.Hits++
				return nil
			}
			result.CacheInfo.Misses++
			mergeDashboard(&result.Dashboard, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.RenderTime = time.Since(start)
	r.Logger.Info("rendered charts",
		"artifacts", len(result.Artifacts),
		"cached", result.CacheInfo.Hits,
		"width", opts.Width,
		"duration", result.RenderTime)
	return result, nil
}

// RenderOne is Render for a single artifact, as served by the HTTP endpoint.
func (r *Runner) RenderOne(ctx context.Context, snapshot *stats.Stats, chartName, format string, opts Options) ([]byte, bool, error) {
	opts.Charts = []string{chartName}
	opts.Formats = []string{format}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if snapshot == nil {
		snapshot = &stats.Stats{}
	}
	data, _, hit, err := r.renderOne(ctx, snapshot.Chart(), cache.HashJSON(snapshot), job{chartName, format}, opts)
	return data, hit, err
}

func (r *Runner) renderOne(ctx context.Context, snapshot chart.Stats, statsHash string, j job, opts Options) ([]byte, chart.Dashboard, bool, error) {
	key := r.Keyer.ArtifactKey(statsHash, opts.ArtifactKeyOpts(j.chart, j.format))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, chart.Dashboard{}, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, j.chart, j.format)
	data, d, err := RenderArtifact(ctx, snapshot, j.chart, j.format, opts)
	observability.Pipeline().OnRenderComplete(ctx, j.chart, j.format, len(data), time.Since(start), err)
	if err != nil {
		return nil, d, false, err
	}

	if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	opts.Logger.Debug("rendered artifact", "name", ArtifactName(j.chart, j.format), "bytes", len(data))
	return data, d, false, nil
}

func mergeDashboard(dst *chart.Dashboard, src chart.Dashboard) {
	if !src.Categories.Empty() {
		dst.Categories = src.Categories
	}
	if !src.Severities.Empty() {
		dst.Severities = src.Severities
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
