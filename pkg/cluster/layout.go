package cluster

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/components"
	"github.com/matzehuels/citemap/pkg/errors"
)

// Default layout parameters, tuned for a 1000x1000 canvas.
const (
	DefaultMinRadius     = 50.0
	DefaultBiggestCircle = 3.0
	DefaultGridSize      = 50.0
	DefaultMaxAttempts   = 1000
	DefaultWrapJitter    = 100.0
)

// Options configures [Layout].
type Options struct {
	// MinRadius is the smallest radius any component gets.
	MinRadius float64 `toml:"min_radius" json:"min_radius"`
	// BiggestCircle divides the canvas's smaller side to give the radius a
	// component holding every vertex would get.
	BiggestCircle float64 `toml:"biggest_circle" json:"biggest_circle"`
	// GridSize is the cell edge of the spatial hash.
	GridSize float64 `toml:"grid_size" json:"grid_size"`
	// MaxAttempts bounds the candidate centers tried per component.
	MaxAttempts int `toml:"max_attempts" json:"max_attempts"`
	// WrapJitter is the random offset added when the cursor wraps.
	WrapJitter float64 `toml:"wrap_jitter" json:"wrap_jitter"`
}

// DefaultOptions returns the default layout parameters.
func DefaultOptions() Options {
	return Options{
		MinRadius:     DefaultMinRadius,
		BiggestCircle: DefaultBiggestCircle,
		GridSize:      DefaultGridSize,
		MaxAttempts:   DefaultMaxAttempts,
		WrapJitter:    DefaultWrapJitter,
	}
}

// Validate checks the options against the canvas bounds. NaN and infinite
// values are rejected along with out-of-range ones.
func (o Options) Validate(bounds r2.Box) error {
	switch {
	case !(o.MinRadius >= 0) || math.IsInf(o.MinRadius, 0):
		return errors.New(errors.ErrCodeInvalidOptions, "min radius must be finite and not negative: %g", o.MinRadius)
	case !(o.BiggestCircle > 0) || math.IsInf(o.BiggestCircle, 0):
		return errors.New(errors.ErrCodeInvalidOptions, "biggest circle must be finite and positive: %g", o.BiggestCircle)
	case !(o.GridSize > 0) || math.IsInf(o.GridSize, 0):
		return errors.New(errors.ErrCodeInvalidOptions, "grid size must be finite and positive: %g", o.GridSize)
	case o.MaxAttempts < 1:
		return errors.New(errors.ErrCodeInvalidOptions, "max attempts must be at least 1: %d", o.MaxAttempts)
	case !(o.WrapJitter >= 0) || math.IsInf(o.WrapJitter, 0):
		return errors.New(errors.ErrCodeInvalidOptions, "wrap jitter must be finite and not negative: %g", o.WrapJitter)
	case !finite(bounds.Min) || !finite(bounds.Max):
		return errors.New(errors.ErrCodeInvalidOptions, "bounds must be finite: %v", bounds)
	case !(bounds.Max.X > bounds.Min.X) || !(bounds.Max.Y > bounds.Min.Y):
		return errors.New(errors.ErrCodeInvalidOptions, "bounds must have positive width and height: %v", bounds)
	}
	return nil
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Region is the circle assigned to one component.
type Region struct {
	Component int     `json:"component"`
	Center    r2.Vec  `json:"center"`
	Radius    float64 `json:"radius"`
	// Share is the component's fraction of all vertices.
	Share float64 `json:"share"`
	// Attempts is the number of candidate centers tried.
	Attempts int `json:"attempts"`
	// Fallback is set when no collision-free center was found within the
	// retry budget. A fallback region may overlap other regions.
	Fallback bool `json:"fallback,omitempty"`
}

// Contains reports whether p lies inside or on the region's circle.
func (r Region) Contains(p r2.Vec) bool {
	return r2.Norm(r2.Sub(p, r.Center)) <= r.Radius*(1+1e-9)+1e-9
}

// Result holds the regions of one layout pass.
type Result struct {
	// Regions is indexed by component id.
	Regions []Region
	// Order lists component ids in placement order.
	Order  []int
	Bounds r2.Box
}

// Region returns the region of component id.
func (r Result) Region(id int) Region { return r.Regions[id] }

// Overlaps returns the ids of fallback regions in placement order.
func (r Result) Overlaps() []int {
	var ids []int
	for _, id := range r.Order {
		if r.Regions[id].Fallback {
			ids = append(ids, id)
		}
	}
	return ids
}

// cancelCheckEvery is how many candidates are tried between context checks.
const cancelCheckEvery = 256

// Layout assigns a region to every component in counts within bounds.
// It returns an INVALID_OPTIONS error if opts do not fit bounds.
func Layout(counts components.Counts, bounds r2.Box, rng Rand, opts Options) (Result, error) {
	return LayoutContext(context.Background(), counts, bounds, rng, opts)
}

// LayoutContext is [Layout] with cancellation. ctx is checked before each
// component and periodically while a component's retries run; on
// cancellation it returns ctx's error and no result.
func LayoutContext(ctx context.Context, counts components.Counts, bounds r2.Box, rng Rand, opts Options) (Result, error) {
	if err := opts.Validate(bounds); err != nil {
		return Result{}, err
	}
	res := Result{
		Regions: make([]Region, len(counts)),
		Order:   counts.Ranked(),
		Bounds:  bounds,
	}
	if len(counts) == 0 {
		return res, nil
	}

	total := float64(counts.Total())
	size := r2.Sub(bounds.Max, bounds.Min)
	maxRadius := min(size.X, size.Y) / opts.BiggestCircle

	grid := newSpatialGrid(opts.GridSize)
	cursor := bounds.Min

	for _, id := range res.Order {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		share := 0.0
		if total > 0 {
			share = float64(counts[id]) / total
		}
		radius := max(opts.MinRadius, math.Sqrt(share)*maxRadius)

		p := placement{budget: opts.MaxAttempts}
		candidate := r2.Add(cursor, r2.Vec{X: radius, Y: radius})
		for !p.consider(candidate, depthAt(grid, bounds, candidate, radius)) {
			if p.attempts%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return Result{}, err
				}
			}
			candidate = r2.Vec{
				X: uniform(rng, bounds.Min.X, bounds.Max.X),
				Y: uniform(rng, bounds.Min.Y, bounds.Max.Y),
			}
		}

		res.Regions[id] = Region{
			Component: id,
			Center:    p.best,
			Radius:    radius,
			Share:     share,
			Attempts:  p.attempts,
			Fallback:  !p.accepted,
		}
		grid.insert(circle{center: p.best, radius: radius})

		cursor = advance(cursor, bounds, radius, share, rng, opts.WrapJitter)
	}
	return res, nil
}

// placement tracks the retry state for one component.
type placement struct {
	budget    int
	attempts  int
	accepted  bool
	best      r2.Vec
	bestDepth float64
}

// consider records one candidate and reports whether the search is over:
// either the candidate is free or the budget is spent. best always holds the
// least-overlapping candidate seen so far.
func (p *placement) consider(center r2.Vec, depth float64) bool {
	p.attempts++
	if p.attempts == 1 || depth < p.bestDepth {
		p.best, p.bestDepth = center, depth
	}
	if depth <= 0 {
		p.accepted = true
		return true
	}
	return p.attempts >= p.budget
}

// depthAt returns the overlap of a candidate with placed circles, or +Inf
// if its center lies outside bounds.
func depthAt(grid *spatialGrid, bounds r2.Box, center r2.Vec, radius float64) float64 {
	if center.X < bounds.Min.X || center.X > bounds.Max.X || center.Y < bounds.Min.Y || center.Y > bounds.Max.Y {
		return math.Inf(1)
	}
	return grid.penetration(circle{center: center, radius: radius})
}

// advance steps the cursor right and down with jitter, wrapping each axis
// back near the canvas origin when the next circle would not fit.
func advance(cursor r2.Vec, bounds r2.Box, radius, share float64, rng Rand, jitter float64) r2.Vec {
	cursor.X += radius * uniform(rng, 2, 4)
	cursor.Y += radius * uniform(rng, 2, 3) * (1 + (1 - math.Sqrt(share)))

	if cursor.X+radius > bounds.Max.X {
		cursor.X = bounds.Min.X + uniform(rng, 0, jitter)
	}
	if cursor.Y+radius > bounds.Max.Y {
		cursor.Y = bounds.Min.Y + uniform(rng, 0, jitter)
	}
	return cursor
}
