// Package pkg provides the core libraries for lifelist taxon-list assembly.
//
// # Overview
//
// lifelist turns natural-language observation queries into filtered,
// paginated life lists backed by the iNaturalist API. The pkg directory is
// organized into a handful of areas:
//
//  1. [query] - Natural-language query parsing and resolution
//  2. [inat] - iNaturalist API client (autocomplete, taxonomy counts)
//  3. [taxon], [taxonlist] - Taxon records, tree reconstruction, filtering
//  4. [format], [render] - Page formatting and Graphviz diagrams
//  5. [pipeline] - Orchestration (parse → resolve → fetch → build)
//  6. [cache], [menus], [config] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through lifelist:
//
//	"my birds from home"
//	         ↓
//	    [query] package (parse clauses, resolve names to ids)
//	         ↓
//	    [inat] package (fetch per-query taxonomy counts)
//	         ↓
//	    [taxonlist] package (rebuild the tree, filter per policy)
//	         ↓
//	    [format] / [render] output (pages, SVG)
//
// # Quick Start
//
// Run a query end to end with the pipeline runner:
//
//	import (
//	    "context"
//	    "github.com/naturelab/lifelist/pkg/inat"
//	    "github.com/naturelab/lifelist/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(inat.NewClient(), nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Argument: "my birds",
//	    Defaults: inat.Defaults{Login: "benarm"},
//	})
//	if err != nil {
//	    // lserr.UserMessage(err) gives a presentable message
//	}
//	page, _ := result.Renderer.Format(true, 0, -1)
//
// The lower-level packages compose the same way the runner uses them, so
// callers that need finer control (custom record sources, offline data via
// [io]) can assemble listings directly with [taxonlist.New].
package pkg
