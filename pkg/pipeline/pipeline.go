// Package pipeline provides the core life-list pipeline for Lifelist.
//
// This package implements the complete parse → resolve → fetch → build
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Turn a natural-language argument into a structured query
//  2. Resolve: Look up the query's taxon, users, place, and project
//  3. Fetch: Retrieve the observed-taxa record set for the query
//  4. Build: Filter and paginate the records into a renderable listing
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(client, cache, nil, logger)
//	opts := pipeline.Options{
//	    Argument: "my birds from home",
//	    Policy:   "main",
//	    PerPage:  20,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, err := result.Renderer.Format(true, 0, -1)
package pipeline

import (
	"time"

	"github.com/naturelab/lifelist/pkg/format"
	"github.com/naturelab/lifelist/pkg/inat"
	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/query"
	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

const (
	// DefaultPerPage is the page size used when none is requested. It keeps
	// a full page with title and footer within one chat message.
	DefaultPerPage = 20

	// DefaultPolicy groups listings by the commonly used ranks.
	DefaultPolicy = "main"
)

// Options configures a pipeline run.
type Options struct {
	// Argument is the natural-language query, e.g. "my birds from home".
	Argument string

	// Defaults supply the login and home place that "me" and "home" expand
	// to. Zero values disable those shorthands.
	Defaults inat.Defaults

	// Policy selects how the listing groups taxa: "main", "any", "leaf",
	// "child", or a single rank name. A per clause in the argument wins.
	Policy string

	// PerPage is the number of entries per page. Zero means DefaultPerPage.
	PerPage int

	// Sort and Order reorder flat listings ("name"/"obs", "asc"/"desc").
	// Sort-by and order clauses in the argument win. Empty keeps the
	// policy's natural order.
	Sort  string
	Order string

	// Display toggles. Option clauses in the argument ("opt index") win
	// over all of these.
	WithURL    bool
	WithTaxa   bool
	WithIndex  bool
	WithDirect bool
	WithCommon bool

	// Refresh bypasses the resolve cache.
	Refresh bool
}

// setDefaults applies fallbacks for unset options.
func (o *Options) setDefaults() {
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	if o.PerPage == 0 {
		o.PerPage = DefaultPerPage
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Query is the parsed structured query.
	Query *query.Query

	// Response carries the resolved taxon, users, place, and project.
	Response *query.Response

	// Records is the observed-taxa record set the listing was built from.
	Records []*taxon.Taxon

	// Listing is the filtered and aggregated listing.
	Listing *taxonlist.Listing

	// Renderer paginates and formats the listing.
	Renderer *format.Renderer

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	EntryCount  int
	ResolveTime time.Duration
	FetchTime   time.Duration
	BuildTime   time.Duration
}

// CacheInfo reports cache hits per stage.
type CacheInfo struct {
	// ResolveHit is true when the resolved query came from the cache
	// instead of the data source.
	ResolveHit bool
}

// effectivePolicy returns the listing policy for a run: the query's per
// clause when present, otherwise the configured default.
func effectivePolicy(q *query.Query, opts Options) (taxonlist.Policy, error) {
	name := opts.Policy
	if q.Per != "" {
		name = q.Per
	}
	policy, err := taxonlist.ParsePolicy(name)
	if err != nil {
		return taxonlist.Policy{}, lserr.Wrap(lserr.ErrCodeInvalidPolicy, err, "cannot group per %q", name)
	}
	return policy, nil
}

// effectiveSort returns the sort settings for a run; query clauses win
// over configured defaults.
func effectiveSort(q *query.Query, opts Options) (taxonlist.SortSpec, error) {
	key, order := opts.Sort, opts.Order
	if q.SortBy != "" {
		key = q.SortBy
	}
	if q.Order != "" {
		order = q.Order
	}
	return taxonlist.ParseSort(key, order)
}

// displayOptions folds the query's opt clauses into the configured display
// toggles.
func displayOptions(resp *query.Response, opts Options) format.ListOptions {
	list := format.ListOptions{
		WithURL:    opts.WithURL,
		WithTaxa:   opts.WithTaxa,
		WithIndex:  opts.WithIndex,
		WithDirect: opts.WithDirect,
		WithCommon: opts.WithCommon,
	}
	for name, flag := range map[string]*bool{
		"url":    &list.WithURL,
		"taxa":   &list.WithTaxa,
		"index":  &list.WithIndex,
		"direct": &list.WithDirect,
		"common": &list.WithCommon,
	} {
		if v, ok := resp.Options[name]; ok {
			*flag = v == "true"
		}
	}
	return list
}
