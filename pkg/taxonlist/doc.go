// Package taxonlist is the taxon-list assembly engine: it reconstructs the
// ancestor/descendant tree implied by a flat record list, selects nodes per
// a rank-filter policy, aggregates per-rank totals and column widths, orders
// the result deterministically, and slices it into fixed-size pages.
//
// Five filter policies exist: a specific rank, the "main" commonly used rank
// set, "any" rank, "leaf" taxa (no unaccounted descendant observations), and
// "child" (one generation beneath the filtered root). Hierarchical policies
// preserve depth-first tree order and annotate entries with indent levels;
// flat policies return indent 0 throughout.
package taxonlist
