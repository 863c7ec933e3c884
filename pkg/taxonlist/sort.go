package taxonlist

import (
	"sort"

	"github.com/naturelab/lifelist/pkg/lserr"
)

// SortKey selects what a listing is ordered by.
type SortKey int

const (
	// SortNone keeps the policy's natural order (tree order, or name order
	// for leaf listings).
	SortNone SortKey = iota
	// SortByName orders by scientific name.
	SortByName
	// SortByCount orders by observation count, using the descendant rollup
	// when available and the direct count otherwise.
	SortByCount
)

// SortOrder is the direction of an explicit sort.
type SortOrder int

const (
	// Ascending is the default order.
	Ascending SortOrder = iota
	// Descending reverses the comparison itself. For names this is a
	// character-reversed comparison ("Z" before "A"), not a reversal of the
	// ascending result: ties keep their original relative order either way.
	Descending
)

// SortSpec is a sort request: a key and a direction. The zero value means no
// explicit sort.
type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

// ParseSort resolves user-facing sort key and order names. Empty strings
// select the defaults (no explicit sort, ascending).
func ParseSort(key, order string) (SortSpec, error) {
	var spec SortSpec
	switch key {
	case "", "none":
		spec.Key = SortNone
	case "name":
		spec.Key = SortByName
	case "count", "obs", "observations":
		spec.Key = SortByCount
	default:
		return SortSpec{}, lserr.New(lserr.ErrCodeInvalidInput, "unrecognized sort key: %s", key)
	}
	switch order {
	case "", "asc":
		spec.Order = Ascending
	case "desc":
		spec.Order = Descending
	default:
		return SortSpec{}, lserr.New(lserr.ErrCodeInvalidInput, "unrecognized sort order: %s", order)
	}
	return spec, nil
}

// Sort reorders the listing entries by the given key and order. Only leaf
// and child listings are reordered: hierarchical and single-rank listings
// preserve depth-first tree order, since reordering them would break the
// parent-before-child display invariant.
//
// Rank level is the dominant key, so coarser ranks sort before finer ones
// even within an explicitly sorted listing.
func (l *Listing) Sort(spec SortSpec) {
	if spec.Key == SortNone {
		return
	}
	if l.Policy.Kind != PolicyLeaf && l.Policy.Kind != PolicyChild {
		return
	}
	sort.SliceStable(l.Entries, func(i, j int) bool {
		a, b := l.Entries[i].Taxon(), l.Entries[j].Taxon()
		if a.Level() != b.Level() {
			return a.Level() > b.Level() // coarser ranks first
		}
		switch spec.Key {
		case SortByCount:
			if spec.Order == Descending {
				return a.ObsCount() > b.ObsCount()
			}
			return a.ObsCount() < b.ObsCount()
		default:
			if spec.Order == Descending {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		}
	})
}
