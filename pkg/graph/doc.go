// Package graph provides the serialization format for cluster layouts.
//
// A [Layout] is the canonical wire form of one analysis run: the component
// statistics, the circle assigned to each component and the position of
// every vertex. It is what the CLI writes with `citemap layout`, what the
// HTTP API returns and what the renderers in pkg/render consume, so a layout
// computed once can be rendered again in any format without recomputing it.
//
// # Format
//
//	{
//	  "run_id": "3f0c…",
//	  "width": 1000,
//	  "height": 1000,
//	  "seed": 42,
//	  "summary": {"vertices": 6, "components": 2, ...},
//	  "counts": [3, 3],
//	  "coverage": [0, 0.5, 1],
//	  "regions": [{"component": 0, "x": -250, "y": -250, "radius": 216.6, ...}],
//	  "nodes": [{"id": "0", "component": 0, "x": -240.1, "y": -301.7}, ...],
//	  "edges": [{"from": "0", "to": "1"}]
//	}
//
// Coordinates are in canvas units with the canvas centered on the origin.
// Regions are indexed by component id; every node's component must name one
// of them. [UnmarshalLayout] enforces this so renderers can index freely.
package graph
