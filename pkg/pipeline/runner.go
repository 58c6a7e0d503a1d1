package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/citemap/pkg/cache"
	"github.com/matzehuels/citemap/pkg/graph"
	pkgio "github.com/matzehuels/citemap/pkg/io"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete label → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, d *pkgio.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result, err := r.ComputeLayout(ctx, d, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Layout, opts.Formats, opts.Render)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// ComputeLayout runs the label and layout stages, consulting the cache first.
// The returned result has no artifacts.
func (r *Runner) ComputeLayout(ctx context.Context, d *pkgio.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	key, keyErr := r.layoutKey(d, opts)
	if keyErr == nil && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := graph.UnmarshalLayout(data); err == nil {
				l.RunID = uuid.NewString()
				r.Logger.Debug("layout cache hit", "key", key[:16])
				return &Result{Layout: l, Stats: statsFromLayout(l, d), CacheHit: true}, nil
			}
			// Undecodable entries fall through and get recomputed.
		}
	}

	a, err := Analyze(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	l := Export(d, a, opts)

	r.Logger.Info("labeled components",
		"vertices", a.Stats.Vertices,
		"components", a.Stats.Components,
		"duration", a.Stats.LabelTime)
	r.Logger.Info("computed layout",
		"regions", len(l.Regions),
		"duration", a.Stats.LayoutTime)
	if a.Stats.Fallbacks > 0 {
		r.Logger.Warn("some components could not be placed without overlap",
			"fallbacks", a.Stats.Fallbacks,
			"max_attempts", opts.Layout.MaxAttempts)
	}

	if keyErr == nil {
		if data, err := graph.MarshalLayout(l); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
				r.Logger.Debug("cache write failed", "error", err)
			}
		}
	}

	l.RunID = uuid.NewString()
	return &Result{Layout: l, Stats: a.Stats}, nil
}

// Render renders a layout to the requested formats and logs the outcome.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	start := time.Now()
	artifacts, err := Render(ctx, l, opts.Formats, opts.Render)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "duration", time.Since(start))
	return artifacts, nil
}

// SubjectResult is the layout of one subject's subgraph.
type SubjectResult struct {
	Subject string
	*Result
}

// AnalyzeSubjects splits d by subject and computes a layout for each part
// with the same options. Parts are returned in subject name order.
func (r *Runner) AnalyzeSubjects(ctx context.Context, d *pkgio.Dataset, opts Options) ([]SubjectResult, error) {
	subjects := d.Subgraphs()
	results := make([]SubjectResult, 0, len(subjects))
	for _, s := range subjects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.ComputeLayout(ctx, s.Data, opts)
		if err != nil {
			return nil, fmt.Errorf("subject %q: %w", s.Name, err)
		}
		results = append(results, SubjectResult{Subject: s.Name, Result: res})
	}
	r.Logger.Info("analyzed subjects", "subjects", len(results))
	return results, nil
}

// layoutKey hashes the dataset content with the options that affect layout.
func (r *Runner) layoutKey(d *pkgio.Dataset, opts Options) (string, error) {
	sum, err := cache.HashFrom(func(w io.Writer) error { return pkgio.WriteJSON(d, w) })
	if err != nil {
		return "", err
	}
	return cache.LayoutKey(sum, opts)
}

func statsFromLayout(l graph.Layout, d *pkgio.Dataset) Stats {
	s := Stats{
		Vertices:   len(l.Nodes),
		Edges:      d.Graph.EdgeCount(),
		Components: len(l.Regions),
	}
	for _, reg := range l.Regions {
		if reg.Fallback {
			s.Fallbacks++
		}
	}
	return s
}
