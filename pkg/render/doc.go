// Package render exports filtered taxon listings as Graphviz diagrams.
//
// # Overview
//
// This package turns a [taxonlist.Listing] into a node-link diagram of the
// taxonomy it covers: taxa appear as boxes connected by parent-child arrows.
// Listings produced by flat policies (leaf, child, single rank) are joined
// through their ancestor chains so the diagram stays a connected tree;
// ancestor taxa that are not themselves listed are drawn dashed and grey.
//
// # Usage
//
// Convert a listing to DOT format, then render to SVG:
//
//	dot := render.ToDOT(listing, render.Options{})
//	svg, err := render.SVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [SVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes, so broader ranks sit above narrower ones the way the paginated
// hierarchical listing orders them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz installation is required.
//
// [taxonlist.Listing]: github.com/naturelab/lifelist/pkg/taxonlist
package render
