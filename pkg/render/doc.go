// Package render draws cluster layouts.
//
// All renderers take a [graph.Layout], the serialized form of an analysis,
// so a layout file written by one run can be rendered again later:
//
//   - [ConnectivitySVG]: nodes colored by component, optional edges and
//     region outlines, written directly as SVG
//   - [CoverageSVG]: line chart of the cumulative coverage curve
//   - [ToDOT] and [RenderDOT]: Graphviz DOT with every node pinned at its
//     layout position, rendered with neato to PNG or SVG
//
// Component colors come from [Gradient], which runs from dark blue for
// component 0 to teal for the last component.
package render
