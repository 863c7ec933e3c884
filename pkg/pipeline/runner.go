package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/naturelab/lifelist/pkg/cache"
	"github.com/naturelab/lifelist/pkg/format"
	"github.com/naturelab/lifelist/pkg/inat"
	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/query"
	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

// resolveTTL bounds how long a resolved query is reused. Logins, place names,
// and taxon matches drift slowly; an hour keeps repeat pagination cheap
// without pinning stale matches.
const resolveTTL = time.Hour

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the client, cache, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Client *inat.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Progress, when set, is called as each pipeline stage begins with a
	// short human-readable message. The CLI points it at its spinner.
	Progress func(message string)
}

// report notifies the Progress hook, if any.
func (r *Runner) report(message string) {
	if r.Progress != nil {
		r.Progress(message)
	}
}

// NewRunner creates a runner with the given client and cache.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (resolve caching disabled).
func NewRunner(client *inat.Client, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Client: client,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → resolve → fetch → build pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()

	result := &Result{}

	q, err := query.ParseNatural(opts.Argument)
	if err != nil {
		return nil, err
	}
	result.Query = q

	r.report("Resolving query...")
	resolveStart := time.Now()
	resp, hit, err := r.ResolveWithCacheInfo(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	result.Response = resp
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = hit

	r.Logger.Info("resolved query",
		"query", q.String(),
		"cached", hit,
		"duration", result.Stats.ResolveTime)

	r.report("Fetching life list...")
	fetchStart := time.Now()
	records, err := r.Client.LifeList(ctx, resp.ObsArgs())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, lserr.New(lserr.ErrCodeEmptyResult, "no observed taxa match %q", opts.Argument)
	}
	result.Records = records
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.RecordCount = len(records)

	r.Logger.Info("fetched life list",
		"records", len(records),
		"duration", result.Stats.FetchTime)

	r.report("Building listing...")
	buildStart := time.Now()
	listing, renderer, err := r.Build(q, resp, records, opts)
	if err != nil {
		return nil, err
	}
	result.Listing = listing
	result.Renderer = renderer
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.EntryCount = len(listing.Entries)

	r.Logger.Info("built listing",
		"entries", len(listing.Entries),
		"pages", renderer.Pager().LastPage()+1,
		"duration", result.Stats.BuildTime)

	return result, nil
}

// ResolveWithCacheInfo resolves the query's names against the data source,
// reusing a cached resolution when one exists. The second return reports a
// cache hit.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, q *query.Query, opts Options) (*query.Response, bool, error) {
	key := r.Keyer.QueryKey(q.String(), opts.Defaults.Login)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var resp query.Response
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, true, nil
			}
		}
	}

	resp, err := r.Client.Resolve(ctx, q, opts.Defaults)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := r.Cache.Set(ctx, key, data, resolveTTL); err != nil {
			r.Logger.Debug("resolve cache write failed", "err", err)
		}
	}
	return resp, false, nil
}

// Build filters the record set per the effective policy and wraps it in a
// paginating renderer. The reference taxon of the query, when present,
// narrows the listing to its subtree.
func (r *Runner) Build(q *query.Query, resp *query.Response, records []*taxon.Taxon, opts Options) (*taxonlist.Listing, *format.Renderer, error) {
	opts.setDefaults()

	policy, err := effectivePolicy(q, opts)
	if err != nil {
		return nil, nil, err
	}
	sortSpec, err := effectiveSort(q, opts)
	if err != nil {
		return nil, nil, err
	}

	listOpts := taxonlist.Options{
		Policy: policy,
		Sort:   sortSpec,
	}
	if resp.Taxon != nil {
		listOpts.Ref = resp.Taxon
		// The fetch already narrowed records to the taxon's clade, but the
		// root record itself only appears when it has observations of its
		// own. Restrict to the subtree only when it is present.
		for _, rec := range records {
			if rec.ID == resp.Taxon.ID {
				listOpts.RootID = resp.Taxon.ID
				break
			}
		}
	}
	listing, err := taxonlist.New(records, listOpts)
	if err != nil {
		return nil, nil, err
	}

	pager := taxonlist.NewPaginator(listing, opts.PerPage)
	renderer := format.NewRenderer(pager, resp, displayOptions(resp, opts))
	return listing, renderer, nil
}
