package graph

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/components"
	"github.com/matzehuels/citemap/pkg/errors"
)

// Layout is the serialized result of one analysis run.
type Layout struct {
	RunID  string  `json:"run_id,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Seed   uint64  `json:"seed"`

	Summary  components.Summary `json:"summary"`
	Counts   []int              `json:"counts"`
	Coverage []float64          `json:"coverage"`

	Regions []Region `json:"regions"`
	Nodes   []Node   `json:"nodes"`
	Edges   []Edge   `json:"edges,omitempty"`
}

// Region is the circle assigned to one component.
type Region struct {
	Component int     `json:"component"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Share     float64 `json:"share"`
	Attempts  int     `json:"attempts,omitempty"`
	Fallback  bool    `json:"fallback,omitempty"`
}

// Center returns the region's center as a vector.
func (r Region) Center() r2.Vec { return r2.Vec{X: r.X, Y: r.Y} }

// Node is a positioned vertex.
type Node struct {
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	Subject   string  `json:"subject,omitempty"`
	Component int     `json:"component"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Pos returns the node's position as a vector.
func (n Node) Pos() r2.Vec { return r2.Vec{X: n.X, Y: n.Y} }

// Edge is a directed edge between two node ids.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Bounds returns the canvas box, centered on the origin.
func (l Layout) Bounds() r2.Box {
	hw, hh := l.Width/2, l.Height/2
	return r2.Box{Min: r2.Vec{X: -hw, Y: -hh}, Max: r2.Vec{X: hw, Y: hh}}
}

// NodeIndex maps node ids to their position in Nodes.
func (l Layout) NodeIndex() map[string]int {
	idx := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Validate checks the layout's internal references.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout dimensions must be positive: %gx%g", l.Width, l.Height)
	}
	for i, r := range l.Regions {
		if r.Component != i {
			return errors.New(errors.ErrCodeInvalidFormat, "region %d has component id %d", i, r.Component)
		}
	}
	idx := make(map[string]struct{}, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.Component < 0 || n.Component >= len(l.Regions) {
			return errors.New(errors.ErrCodeInvalidFormat, "node %q references unknown component %d", n.ID, n.Component)
		}
		if _, dup := idx[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %q", n.ID)
		}
		idx[n.ID] = struct{}{}
	}
	for _, e := range l.Edges {
		_, okFrom := idx[e.From]
		_, okTo := idx[e.To]
		if !okFrom || !okTo {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s->%s references unknown node", e.From, e.To)
		}
	}
	return nil
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
