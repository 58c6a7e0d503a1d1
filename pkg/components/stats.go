package components

import (
	"cmp"
	"fmt"
	"slices"
)

// Counts holds the number of vertices in each component, indexed by id.
type Counts []int

// Count builds the per-component vertex counts in one scan of l.
//
// Count panics if l has an unlabeled vertex or an id outside [0, l.Count):
// counting an incomplete labeling is a sequencing bug, not an input error.
func Count(l Labeling) Counts {
	counts := make(Counts, l.Count)
	for v, c := range l.Of {
		mustInRange(l, v, c)
		counts[c]++
	}
	return counts
}

func mustInRange(l Labeling, v, c int) {
	if c < 0 || c >= l.Count {
		panic(fmt.Sprintf("components: vertex %d has label %d outside [0, %d)", v, c, l.Count))
	}
}

// Scale is shorthand for Count(l).Scale(sortDesc).
func Scale(l Labeling, sortDesc bool) []float64 {
	return Count(l).Scale(sortDesc)
}

// Total returns the number of vertices across all components.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Scale returns the coverage curve: entry i is the fraction of all vertices
// held by the first i components. With sortDesc the components are taken
// largest first; otherwise in id order. The curve is empty when there are
// no vertices.
func (c Counts) Scale(sortDesc bool) []float64 {
	total := c.Total()
	if total == 0 {
		return []float64{}
	}

	sizes := slices.Clone([]int(c))
	if sortDesc {
		slices.SortFunc(sizes, func(a, b int) int { return cmp.Compare(b, a) })
	}

	curve := make([]float64, len(sizes)+1)
	running := 0
	for i, n := range sizes {
		running += n
		curve[i+1] = float64(running) / float64(total)
	}
	// Guard against float drift in the last step.
	curve[len(sizes)] = 1
	return curve
}

// Ranked returns component ids ordered by size, largest first.
// Equal sizes are ordered by ascending id so the order is reproducible.
func (c Counts) Ranked() []int {
	ids := make([]int, len(c))
	for i := range ids {
		ids[i] = i
	}
	slices.SortStableFunc(ids, func(a, b int) int { return cmp.Compare(c[b], c[a]) })
	return ids
}

// Largest returns the id and size of the largest component, or (-1, 0)
// when there are no components.
func (c Counts) Largest() (id, size int) {
	id = -1
	for i, n := range c {
		if n > size || id < 0 {
			id, size = i, n
		}
	}
	return id, size
}

// Summary is a compact description of a component partition.
type Summary struct {
	Vertices     int     `json:"vertices"`
	Components   int     `json:"components"`
	Singletons   int     `json:"singletons"`
	LargestSize  int     `json:"largest_size"`
	LargestShare float64 `json:"largest_share"`
}

// Summary computes aggregate figures over the counts.
func (c Counts) Summary() Summary {
	s := Summary{Vertices: c.Total(), Components: len(c)}
	for _, n := range c {
		if n == 1 {
			s.Singletons++
		}
	}
	_, s.LargestSize = c.Largest()
	if s.Vertices > 0 {
		s.LargestShare = float64(s.LargestSize) / float64(s.Vertices)
	}
	return s
}
