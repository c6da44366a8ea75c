package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliq/pkg/cache"
	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/graph"
	"github.com/matzehuels/cliq/pkg/observability"
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

// Execute runs the complete eval → materialize → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	start := time.Now()

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Eval
	evalStart := time.Now()
	n, canonical, evalHit, err := r.EvalWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnEvalComplete(ctx, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("eval: %w", err)
	}
	result.Normal = n
	result.Canonical = canonical
	result.Stats.EvalTime = time.Since(evalStart)
	result.CacheInfo.EvalHit = evalHit

	// Stage 2: Materialize
	result.Graph = graph.FromExpr(n)
	result.Stats.VertexCount = result.Graph.Order()
	result.Stats.EdgeCount = result.Graph.Size()

	r.Logger.Info("evaluated program",
		"vertices", result.Stats.VertexCount,
		"edges", result.Stats.EdgeCount,
		"cached", evalHit,
		"duration", result.Stats.EvalTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, canonical, result.Graph, opts)
	if err != nil {
		observability.Pipeline().OnEvalComplete(ctx, result.Stats.VertexCount, result.Stats.EdgeCount, time.Since(start), err)
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	observability.Pipeline().OnEvalComplete(ctx, result.Stats.VertexCount, result.Stats.EdgeCount, time.Since(start), nil)
	return result, nil
}

// EvalWithCacheInfo evaluates a program with caching and returns cache
// hit info. The cached value is the canonical normal-form text, which
// reparses losslessly.
func (r *Runner) EvalWithCacheInfo(ctx context.Context, opts Options) (expr.Expr, string, bool, error) {
	if err := opts.ValidateForEval(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.EvalKey(opts.Program, opts.EvalKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if n, err := expr.Parse(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "eval")
				return n, string(data), true, nil
			}
			// A corrupt entry falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "eval")
	}

	n, err := Eval(ctx, opts)
	if err != nil {
		return nil, "", false, err
	}
	canonical := expr.Format(n)

	if !opts.Refresh {
		if err := r.Cache.Set(ctx, cacheKey, []byte(canonical), cache.TTLEval); err == nil {
			observability.Cache().OnCacheSet(ctx, "eval", len(canonical))
		}
	}

	return n, canonical, false, nil
}

// Eval is a convenience wrapper that calls EvalWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Eval(ctx context.Context, opts Options) (expr.Expr, error) {
	n, _, _, err := r.EvalWithCacheInfo(ctx, opts)
	return n, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. Artifacts are keyed on the canonical text, so equal
// expressions share entries no matter how their programs were written.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, canonical string, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(canonical, opts.ArtifactKeyOpts(format))
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

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageRender)
	rendered, err := Render(ctx, canonical, g, opts)
	hooks.OnStageComplete(ctx, observability.StageRender, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format.
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(canonical, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, canonical string, g graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, canonical, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
