package cluster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/components"
)

// PlaceOptions configures [Place].
type PlaceOptions struct {
	// AreaUniform samples the radius as sqrt(u)*R so points are spread
	// evenly over the disk instead of crowding the center.
	AreaUniform bool
}

// Place samples a point inside region.
func Place(region Region, rng Rand, opts PlaceOptions) r2.Vec {
	angle := uniform(rng, 0, 2*math.Pi)
	u := rng.Float64()
	if opts.AreaUniform {
		u = math.Sqrt(u)
	}
	rho := u * region.Radius
	return r2.Add(region.Center, r2.Vec{X: rho * math.Cos(angle), Y: rho * math.Sin(angle)})
}

// PlaceAll samples a position for every vertex inside the region of its
// component. Vertices are sampled in id order.
func PlaceAll(l components.Labeling, res Result, rng Rand, opts PlaceOptions) []r2.Vec {
	positions := make([]r2.Vec, len(l.Of))
	for v, c := range l.Of {
		positions[v] = Place(res.Regions[c], rng, opts)
	}
	return positions
}
