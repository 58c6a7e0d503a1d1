package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes the dataset as node-link JSON.
// The output can be read back with [ReadJSON].
func WriteJSON(d *Dataset, w io.Writer) error {
	out := document{Nodes: d.Nodes, Edges: d.Links()}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the dataset to a JSON file at path.
func ExportJSON(d *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
