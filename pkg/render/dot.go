package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

// Options configures taxonomy diagram rendering.
type Options struct {
	// Detailed includes rank and observation count in node labels.
	// When false, only the taxon name is shown.
	Detailed bool
}

// ToDOT converts a listing to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered with [SVG].
//
// Listed taxa are drawn as filled boxes. Ancestors pulled in only to connect
// a flat listing (and inactive taxa) are rendered with dashed outlines and
// grey fill to distinguish them from the listing proper.
func ToDOT(l *taxonlist.Listing, opts Options) string {
	nodes, edges := collect(l)

	var buf bytes.Buffer
	buf.WriteString("digraph taxonomy {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %d [%s];\n", n.taxon.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotNode is one box of the diagram. Connectors are ancestors present only
// to keep a flat listing connected.
type dotNode struct {
	taxon     *taxon.Taxon
	connector bool
}

type dotEdge struct {
	from, to int
}

// collect gathers the diagram's node and edge sets from the listing. Each
// entry links upward to its nearest ancestor that is also part of the
// diagram; ancestors missing from the listing are pulled in as connectors.
func collect(l *taxonlist.Listing) ([]dotNode, []dotEdge) {
	byID := make(map[int]dotNode)
	listed := make(map[int]bool, len(l.Entries))
	for _, e := range l.Entries {
		listed[e.Taxon().ID] = true
	}

	var edges []dotEdge
	for _, e := range l.Entries {
		t := e.Taxon()
		byID[t.ID] = dotNode{taxon: t}

		prev := t.ID
		for i, chain := len(e.Ancestors())-1, e.Ancestors(); i >= 0; i-- {
			anc := chain[i].Taxon
			edges = append(edges, dotEdge{from: anc.ID, to: prev})
			if listed[anc.ID] {
				break
			}
			if _, seen := byID[anc.ID]; seen {
				break
			}
			byID[anc.ID] = dotNode{taxon: anc, connector: true}
			prev = anc.ID
		}
	}

	nodes := make([]dotNode, 0, len(byID))
	for _, n := range byID {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].taxon.ID < nodes[j].taxon.ID })

	edges = dedupeEdges(edges)
	return nodes, edges
}

func dedupeEdges(edges []dotEdge) []dotEdge {
	seen := make(map[dotEdge]bool, len(edges))
	out := edges[:0]
	for _, e := range edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].from != out[j].from {
			return out[i].from < out[j].from
		}
		return out[i].to < out[j].to
	})
	return out
}

func fmtLabel(n dotNode, detailed bool) string {
	label := n.taxon.Name
	if n.taxon.CommonName != "" {
		label += "\n(" + n.taxon.CommonName + ")"
	}
	if !detailed {
		return label
	}

	parts := []string{string(n.taxon.Rank)}
	if c := n.taxon.ObsCount(); c > 0 && !n.connector {
		parts = append(parts, fmt.Sprintf("%d obs", c))
	}
	return label + "\n" + strings.Join(parts, ", ")
}

func fmtAttrs(n dotNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.connector || n.taxon.Inactive {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at the
// origin and the pixel size matches it. Graphviz emits point-based sizes that
// scale inconsistently across viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
