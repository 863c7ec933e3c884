package taxonlist

import (
	"sort"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxon/tree"
)

// Entry is one node of a filtered listing, tagged with its display depth
// relative to the filtered root.
type Entry struct {
	node *tree.Node

	// Indent is the depth in the filtered tree minus the depth of the
	// filtered root, so the first entry is always 0. Flat policies (leaf,
	// child, single rank) use 0 throughout.
	Indent int
}

// Taxon returns the underlying record.
func (e *Entry) Taxon() *taxon.Taxon {
	return e.node.Taxon
}

// Ancestors returns the entry's ancestor chain in the built tree, root-first.
// Used to reconstruct breadcrumb headers for pages that start mid-hierarchy.
func (e *Entry) Ancestors() []*tree.Node {
	return e.node.Ancestors()
}

// Listing is the filtered, aggregated, and ordered result of one query. It
// is immutable once constructed apart from Sort, which reorders Entries for
// the policies that permit it.
type Listing struct {
	Entries []*Entry
	Meta    *Metadata
	Policy  Policy

	// DisplayRanks is the rank set the listing presents, used by breadcrumb
	// headers to decide which ancestors to show. Nil for leaf and child
	// policies.
	DisplayRanks []taxon.Rank

	// Ref is the reference taxon of the originating query, if any.
	Ref *taxon.Taxon
}

// Options configures New.
type Options struct {
	// Policy selects which nodes the listing includes.
	Policy Policy
	// Ref is the query's nominal root taxon, used to adjust the displayed
	// rank set and as the fallback entry for over-narrow rank requests.
	Ref *taxon.Taxon
	// RootID restricts the listing to the subtree rooted at this taxon id.
	// Zero means the whole tree. A root id absent from the records is a data
	// error, surfaced as ROOT_NOT_FOUND.
	RootID int
	// Sort optionally reorders leaf and child listings. The zero value keeps
	// the policy's natural order.
	Sort SortSpec
}

// New reconstructs the taxon tree from a flat record list, filters it per
// the policy, aggregates display metadata, and applies any requested sort.
// A policy that legitimately matches nothing yields an empty listing, not an
// error; callers distinguish that case via Meta.TaxonCount.
func New(records []*taxon.Taxon, opts Options) (*Listing, error) {
	if opts.RootID != 0 && !containsID(records, opts.RootID) {
		return nil, lserr.New(lserr.ErrCodeRootNotFound, "root taxon %d not in record set", opts.RootID)
	}

	displayRanks := opts.Policy.DisplayRanks(opts.Ref)
	var buildOpts []tree.Option
	if displayRanks != nil {
		buildOpts = append(buildOpts, tree.WithIncludeRanks(displayRanks))
	}
	t, err := tree.Build(records, buildOpts...)
	if err != nil {
		return nil, lserr.Wrap(lserr.ErrCodeInvalidInput, err, "cannot build taxon tree")
	}

	listing := &Listing{
		Policy:       opts.Policy,
		DisplayRanks: displayRanks,
		Ref:          opts.Ref,
	}

	switch opts.Policy.Kind {
	case PolicyMain, PolicyAny:
		listing.Entries = flattenHierarchy(t, displayRanks, opts.RootID)
	case PolicyRank:
		listing.Entries = flattenFlat(t, opts.RootID, func(n *tree.Node) bool {
			return n.Taxon.Level() == opts.Policy.Rank.Level()
		})
		listing.Entries = rankFallback(listing.Entries, records, opts)
	case PolicyLeaf:
		listing.Entries = flattenFlat(t, opts.RootID, func(n *tree.Node) bool {
			return n.Taxon.IsLeaf()
		})
		// Leaves are gathered across disjoint branches; tree order is not
		// useful to a reader scanning alphabetically.
		sort.SliceStable(listing.Entries, func(i, j int) bool {
			return listing.Entries[i].Taxon().Name < listing.Entries[j].Taxon().Name
		})
	case PolicyChild:
		listing.Entries = flattenChildren(t, opts.RootID)
	}

	listing.Meta = aggregate(listing.Entries, describeRanks(opts.Policy))
	listing.Sort(opts.Sort)
	return listing, nil
}

// flattenHierarchy walks the rank-restricted tree depth-first, ancestors
// before descendants, keeping the requested subtree and annotating each node
// with its depth. Depths are then normalized so the shallowest entry is 0.
func flattenHierarchy(t *tree.Tree, displayRanks []taxon.Rank, rootID int) []*Entry {
	hidden := hiddenRoot(t, displayRanks)
	var entries []*Entry
	t.Walk(func(n *tree.Node, depth int) bool {
		if n == t.Root && hidden {
			return true
		}
		if n.InSubtree(rootID) {
			entries = append(entries, &Entry{node: n, Indent: depth})
		}
		return true
	})
	if len(entries) > 0 {
		base := entries[0].Indent
		for _, entry := range entries {
			entry.Indent -= base
		}
	}
	return entries
}

// flattenFlat collects matching nodes of the requested subtree in tree order
// with indent 0.
func flattenFlat(t *tree.Tree, rootID int, match func(*tree.Node) bool) []*Entry {
	hidden := hiddenRoot(t, nil)
	var entries []*Entry
	t.Walk(func(n *tree.Node, depth int) bool {
		if n == t.Root && hidden {
			return true
		}
		if n.InSubtree(rootID) && match(n) {
			entries = append(entries, &Entry{node: n})
		}
		return true
	})
	return entries
}

// flattenChildren returns the filtered root plus its direct children, all at
// indent 0: a flat listing of one generation.
func flattenChildren(t *tree.Tree, rootID int) []*Entry {
	start := t.Root
	if rootID != 0 {
		if n := t.Find(rootID); n != nil {
			start = n
		}
	}
	var entries []*Entry
	if !(start == t.Root && hiddenRoot(t, nil)) {
		entries = append(entries, &Entry{node: start})
	}
	for _, child := range start.Children {
		entries = append(entries, &Entry{node: child})
	}
	return entries
}

// rankFallback keeps a narrow rank request from coming back empty when the
// query's own taxon is coarser than everything requested: the reference
// taxon itself is returned so the user sees at least the root. Aggregation
// still runs over the fallback entry.
func rankFallback(entries []*Entry, records []*taxon.Taxon, opts Options) []*Entry {
	if len(entries) > 0 || opts.Ref == nil {
		return entries
	}
	if opts.Ref.Level() <= opts.Policy.Rank.Level() {
		return entries
	}
	for _, rec := range records {
		if rec.ID == opts.Ref.ID {
			return []*Entry{{node: &tree.Node{Taxon: rec}}}
		}
	}
	return entries
}

// hiddenRoot reports whether the tree root is omitted from listings: the
// synthetic (or well-known "Life") root, unless its rank is explicitly part
// of the displayed rank set.
func hiddenRoot(t *tree.Tree, displayRanks []taxon.Rank) bool {
	if !t.HiddenRoot() {
		return false
	}
	for _, rank := range displayRanks {
		if rank == t.Root.Taxon.Rank {
			return false
		}
	}
	return true
}

// describeRanks names the included ranks for summary text.
func describeRanks(policy Policy) string {
	switch policy.Kind {
	case PolicyMain:
		return "main ranks"
	case PolicyAny:
		return "ranks"
	case PolicyLeaf:
		return "leaf taxa"
	case PolicyChild:
		return "child taxa"
	default:
		return taxon.PluralRank(policy.Rank, 2)
	}
}

func containsID(records []*taxon.Taxon, id int) bool {
	for _, rec := range records {
		if rec.ID == id {
			return true
		}
	}
	return false
}
