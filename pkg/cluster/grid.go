package cluster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type cell struct{ x, y int }

type circle struct {
	center r2.Vec
	radius float64
}

// spatialGrid buckets placed circles by the grid cell of their center.
type spatialGrid struct {
	size      float64
	cells     map[cell][]circle
	maxRadius float64
}

func newSpatialGrid(size float64) *spatialGrid {
	return &spatialGrid{size: size, cells: make(map[cell][]circle)}
}

func (g *spatialGrid) cellOf(p r2.Vec) cell {
	return cell{x: int(math.Floor(p.X / g.size)), y: int(math.Floor(p.Y / g.size))}
}

func (g *spatialGrid) insert(c circle) {
	k := g.cellOf(c.center)
	g.cells[k] = append(g.cells[k], c)
	g.maxRadius = max(g.maxRadius, c.radius)
}

// penetration returns how deeply c overlaps the circles already in the
// grid: the largest (r1 + r2 - distance) over all neighbors, or 0 when c
// touches nothing.
//
// Any circle that could overlap c has its center within c.radius+maxRadius,
// so only cells within that reach are scanned. With small radii this is the
// candidate's own cell and its immediate neighbors.
func (g *spatialGrid) penetration(c circle) float64 {
	if len(g.cells) == 0 {
		return 0
	}
	reachF := math.Ceil((c.radius + g.maxRadius) / g.size)
	depth := 0.0
	if span := 2*reachF + 1; span*span > float64(len(g.cells)) {
		// Sparse grid: walking the occupied cells is cheaper.
		for _, bucket := range g.cells {
			depth = max(depth, overlapDepth(c, bucket))
		}
		return depth
	}
	reach := int(reachF)
	home := g.cellOf(c.center)
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			depth = max(depth, overlapDepth(c, g.cells[cell{x: home.x + dx, y: home.y + dy}]))
		}
	}
	return depth
}

func overlapDepth(c circle, bucket []circle) float64 {
	depth := 0.0
	for _, other := range bucket {
		depth = max(depth, c.radius+other.radius-r2.Norm(r2.Sub(c.center, other.center)))
	}
	return depth
}
