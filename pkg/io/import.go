package io

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/citemap/pkg/errors"
)

// Column positions in nodes.csv and edges.csv.
const (
	nodeIDCol      = 1
	nodeLabelCol   = 2
	nodeSubjectCol = 3
	nodeFeatureCol = 4

	edgeSourceCol = 1
	edgeTargetCol = 2
)

// ReadCSV reads a node file and an edge file into a Dataset.
// Both readers must start with a header row. ReadCSV does not close them.
func ReadCSV(nodes, edges io.Reader) (*Dataset, error) {
	nodeRecords, err := readRecords(nodes, "nodes")
	if err != nil {
		return nil, err
	}
	ns := make([]Node, 0, len(nodeRecords))
	for i, r := range nodeRecords {
		if len(r) <= nodeIDCol {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nodes: record %d has %d fields, need at least %d", i+1, len(r), nodeIDCol+1)
		}
		ns = append(ns, Node{
			ID:       strings.TrimSpace(r[nodeIDCol]),
			Label:    field(r, nodeLabelCol),
			Subject:  field(r, nodeSubjectCol),
			Features: parseFeatures(field(r, nodeFeatureCol)),
		})
	}

	edgeRecords, err := readRecords(edges, "edges")
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(edgeRecords))
	for i, r := range edgeRecords {
		if len(r) <= edgeTargetCol {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edges: record %d has %d fields, need at least %d", i+1, len(r), edgeTargetCol+1)
		}
		links = append(links, Link{
			From: strings.TrimSpace(r[edgeSourceCol]),
			To:   strings.TrimSpace(r[edgeTargetCol]),
		})
	}

	return NewDataset(ns, links)
}

// ImportCSV opens the node and edge files and reads them with [ReadCSV].
func ImportCSV(nodePath, edgePath string) (*Dataset, error) {
	nf, err := openFile(nodePath)
	if err != nil {
		return nil, err
	}
	defer nf.Close()

	ef, err := openFile(edgePath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	return ReadCSV(nf, ef)
}

// ReadJSON decodes a node-link JSON document into a Dataset.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph")
	}
	return NewDataset(doc.Nodes, doc.Edges)
}

// ImportJSON reads a JSON file at path with [ReadJSON].
func ImportJSON(path string) (*Dataset, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Link `json:"edges"`
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// readRecords returns all records after the header row.
func readRecords(r io.Reader, name string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func field(r []string, i int) string {
	if i < len(r) {
		return strings.TrimSpace(r[i])
	}
	return ""
}

// parseFeatures parses "[1,0,3]" into bytes, skipping entries that are not
// valid uint8 values.
func parseFeatures(s string) Features {
	s = strings.Trim(s, "[]")
	if s == "" {
		return nil
	}
	var out Features
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			continue
		}
		out = append(out, uint8(v))
	}
	return out
}

func itoa(v int) string { return strconv.Itoa(v) }
