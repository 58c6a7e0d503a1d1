package io

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/citemap/pkg/citegraph"
)

func TestSubgraphs(t *testing.T) {
	d, err := ReadCSV(strings.NewReader(nodesCSV), strings.NewReader(edgesCSV))
	if err != nil {
		t.Fatal(err)
	}
	subjects := d.Subgraphs()
	if len(subjects) != 2 {
		t.Fatalf("len(subjects) = %d, want 2", len(subjects))
	}

	nn, theory := subjects[0], subjects[1]
	if nn.Name != "Neural_Networks" || theory.Name != "Theory" {
		t.Fatalf("names = %q, %q", nn.Name, theory.Name)
	}

	// Neural_Networks: 1033 (vertex 0), 103482 (vertex 1); 103482->1033 kept.
	if nn.Data.Graph.N() != 2 {
		t.Errorf("nn N() = %d, want 2", nn.Data.Graph.N())
	}
	if got := nn.Data.Graph.Edges(); !slices.Equal(got, []citegraph.Edge{{From: 1, To: 0}}) {
		t.Errorf("nn edges = %v", got)
	}
	if v, ok := nn.Data.Vertex("103482"); !ok || v != 1 {
		t.Errorf("nn Vertex(103482) = %d, %v", v, ok)
	}

	// Theory: 35, 77; 77->35 kept, cross-subject citations dropped.
	if got := theory.Data.Links(); !slices.Equal(got, []Link{{From: "77", To: "35"}}) {
		t.Errorf("theory links = %v", got)
	}
}
