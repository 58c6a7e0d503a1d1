package components

import "github.com/matzehuels/citemap/pkg/citegraph"

// Unlabeled marks a vertex that no traversal has reached yet.
const Unlabeled = -1

// Labeling maps every vertex to its component id.
type Labeling struct {
	// Of holds the component id of each vertex, indexed by vertex.
	Of []int
	// Count is the number of components; ids are 0..Count-1.
	Count int
}

// Label assigns a component id to every vertex of g.
func Label(g *citegraph.Graph) Labeling {
	n := g.N()
	of := make([]int, n)
	for v := range of {
		of[v] = Unlabeled
	}

	next := 0
	queue := make([]citegraph.Vertex, 0, 64)
	for v := range n {
		if of[v] != Unlabeled {
			continue
		}
		queue = markBFS(g, v, next, of, queue[:0])
		next++
	}
	return Labeling{Of: of, Count: next}
}

// markBFS labels everything reachable from start along out-edges with id.
// The queue is returned so its backing array can be reused.
func markBFS(g *citegraph.Graph, start citegraph.Vertex, id int, of []int, queue []citegraph.Vertex) []citegraph.Vertex {
	of[start] = id
	queue = append(queue, start)
	for head := 0; head < len(queue); head++ {
		for _, u := range g.Out(queue[head]) {
			if of[u] == Unlabeled {
				of[u] = id
				queue = append(queue, u)
			}
		}
	}
	return queue
}

// Complete reports whether every vertex carries a component id.
func (l Labeling) Complete() bool {
	for _, c := range l.Of {
		if c == Unlabeled {
			return false
		}
	}
	return true
}

// Members returns the vertices of each component, indexed by component id,
// each list in ascending vertex order. Like [Count], it panics on an
// incomplete labeling.
func (l Labeling) Members() [][]citegraph.Vertex {
	members := make([][]citegraph.Vertex, l.Count)
	for v, c := range l.Of {
		mustInRange(l, v, c)
		members[c] = append(members[c], v)
	}
	return members
}
