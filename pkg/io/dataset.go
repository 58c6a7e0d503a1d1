package io

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/matzehuels/citemap/pkg/citegraph"
	"github.com/matzehuels/citemap/pkg/errors"
)

// Node is the metadata of one paper.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Features Features `json:"features,omitempty"`
}

// Features is a small-integer feature vector. It encodes as a JSON array of
// numbers rather than the base64 string encoding/json uses for byte slices.
type Features []uint8

// MarshalJSON implements json.Marshaler.
func (f Features) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(f))
	for i, b := range f {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Features) UnmarshalJSON(data []byte) error {
	var ints []uint8Value
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(Features, len(ints))
	for i, v := range ints {
		out[i] = uint8(v)
	}
	*f = out
	return nil
}

// uint8Value decodes a JSON number into a byte without the []byte base64 path.
type uint8Value uint8

// Link is a citation between two external ids.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Dataset is a citation graph with its node metadata.
// Nodes[v] describes vertex v of Graph.
type Dataset struct {
	Graph *citegraph.Graph
	Nodes []Node

	index map[string]citegraph.Vertex
}

// NewDataset maps node ids to dense vertices in order and builds the graph.
// Returns INVALID_INPUT for empty or duplicate ids and INVALID_GRAPH for
// links that name an unknown id.
func NewDataset(nodes []Node, links []Link) (*Dataset, error) {
	index := make(map[string]citegraph.Vertex, len(nodes))
	for v, n := range nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d has an empty id", v)
		}
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		index[n.ID] = v
	}

	edges := make([]citegraph.Edge, len(links))
	for i, l := range links {
		from, ok := index[l.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node id %q not found in node data", l.From)
		}
		to, ok := index[l.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "target node id %q not found in node data", l.To)
		}
		edges[i] = citegraph.Edge{From: from, To: to}
	}

	g, err := citegraph.New(len(nodes), edges)
	if err != nil {
		return nil, err
	}
	return &Dataset{Graph: g, Nodes: slices.Clone(nodes), index: index}, nil
}

// FromGraph wraps a bare graph, naming vertices by their decimal index.
func FromGraph(g *citegraph.Graph) *Dataset {
	nodes := make([]Node, g.N())
	index := make(map[string]citegraph.Vertex, g.N())
	for v := range nodes {
		id := itoa(v)
		nodes[v] = Node{ID: id}
		index[id] = v
	}
	return &Dataset{Graph: g, Nodes: nodes, index: index}
}

// Vertex returns the vertex of an external id.
func (d *Dataset) Vertex(id string) (citegraph.Vertex, bool) {
	v, ok := d.index[id]
	return v, ok
}

// Links returns the edges of the graph as external id pairs.
func (d *Dataset) Links() []Link {
	edges := d.Graph.Edges()
	links := make([]Link, len(edges))
	for i, e := range edges {
		links[i] = Link{From: d.Nodes[e.From].ID, To: d.Nodes[e.To].ID}
	}
	return links
}

// Subject is the induced sub-dataset of all papers sharing a subject.
type Subject struct {
	Name string
	Data *Dataset
}

// Subgraphs splits the dataset by subject. Each part keeps only citations
// between papers of the same subject and is re-indexed from 0. Parts are
// sorted by subject name; papers without a subject form the "" part.
func (d *Dataset) Subgraphs() []Subject {
	groups := make(map[string][]citegraph.Vertex)
	for v, n := range d.Nodes {
		groups[n.Subject] = append(groups[n.Subject], v)
	}

	subjects := make([]Subject, 0, len(groups))
	for name, vertices := range groups {
		nodes := make([]Node, len(vertices))
		index := make(map[string]citegraph.Vertex, len(vertices))
		for i, v := range vertices {
			nodes[i] = d.Nodes[v]
			index[nodes[i].ID] = i
		}
		subjects = append(subjects, Subject{
			Name: name,
			Data: &Dataset{Graph: d.Graph.Induced(vertices), Nodes: nodes, index: index},
		})
	}
	slices.SortFunc(subjects, func(a, b Subject) int { return cmp.Compare(a.Name, b.Name) })
	return subjects
}
