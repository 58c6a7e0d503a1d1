// Package io loads citation networks into a [Dataset] and writes them back
// out.
//
// # Overview
//
// A Dataset pairs a dense [citegraph.Graph] with the per-paper metadata
// needed for reporting: external id, label, subject, and feature vector.
// External ids are mapped to vertices 0..n-1 in the order nodes are read.
//
// # CSV Format
//
// Two files with header rows. Extra columns are ignored.
//
//	nodes.csv: index,node_id,label,subject,features
//	           0,1033,paper-a,Neural_Networks,"[0,1,0,1]"
//	edges.csv: index,source,target
//	           0,1033,35
//
// # JSON Format
//
// The JSON format mirrors the node-link layout used by the HTTP API:
//
//	{
//	  "nodes": [{"id": "1033", "subject": "Neural_Networks"}, {"id": "35"}],
//	  "edges": [{"from": "1033", "to": "35"}]
//	}
//
// # Errors
//
// Malformed records return INVALID_INPUT, edges naming an unknown node
// return INVALID_GRAPH, and missing files return FILE_NOT_FOUND. All are
// [errors.Error] values from pkg/errors.
//
// [citegraph.Graph]: github.com/matzehuels/citemap/pkg/citegraph.Graph
// [errors.Error]: github.com/matzehuels/citemap/pkg/errors.Error
package io
