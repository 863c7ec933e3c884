package taxonlist

import (
	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/taxon"
)

// PolicyKind selects which nodes of the tree a listing includes.
type PolicyKind int

const (
	// PolicyRank includes only nodes of one specific rank (expanded to the
	// whole rank group sharing that rank's level).
	PolicyRank PolicyKind = iota
	// PolicyMain includes nodes whose rank is in the commonly used set.
	PolicyMain
	// PolicyAny includes nodes of every recognized rank.
	PolicyAny
	// PolicyLeaf includes only nodes with no unaccounted descendant
	// observations, re-sorted by name.
	PolicyLeaf
	// PolicyChild includes the filtered root and its direct children as a
	// flat, one-generation listing.
	PolicyChild
)

// Policy is a rank-filter policy: one of the keyword policies, or a specific
// rank.
type Policy struct {
	Kind PolicyKind
	Rank taxon.Rank // set only for PolicyRank
}

// String returns the policy keyword or rank name.
func (p Policy) String() string {
	switch p.Kind {
	case PolicyMain:
		return "main"
	case PolicyAny:
		return "any"
	case PolicyLeaf:
		return "leaf"
	case PolicyChild:
		return "child"
	default:
		return string(p.Rank)
	}
}

// ParsePolicy resolves a policy keyword or rank name. Rank synonyms are
// normalized to their canonical rank. Unrecognized names are rejected with an
// INVALID_RANK error before any traversal begins.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "main":
		return Policy{Kind: PolicyMain}, nil
	case "any":
		return Policy{Kind: PolicyAny}, nil
	case "leaf":
		return Policy{Kind: PolicyLeaf}, nil
	case "child":
		return Policy{Kind: PolicyChild}, nil
	}
	rank, err := taxon.NormalizeRank(name)
	if err != nil {
		return Policy{}, lserr.Wrap(lserr.ErrCodeInvalidRank, err, "unrecognized rank or policy: %s", name)
	}
	return Policy{Kind: PolicyRank, Rank: rank}, nil
}

// DisplayRanks returns the set of ranks a main/any listing displays, finest
// to coarsest, adjusted for the reference taxon of the query:
//
//   - ranks coarser than the reference taxon never occur beneath it, so the
//     set is truncated at the reference taxon's rank
//   - a reference rank outside the base set is appended so the reference
//     taxon itself still appears
//
// For PolicyRank the result is the requested rank's whole rank group. Leaf
// and child policies have no rank set and return nil.
func (p Policy) DisplayRanks(ref *taxon.Taxon) []taxon.Rank {
	var base []taxon.Rank
	switch p.Kind {
	case PolicyMain:
		base = taxon.CommonRanks
	case PolicyAny:
		base = taxon.AllRanks()
	case PolicyRank:
		return taxon.RankGroup(p.Rank)
	default:
		return nil
	}
	if ref == nil || !ref.Rank.Known() {
		ranks := make([]taxon.Rank, len(base))
		copy(ranks, base)
		return ranks
	}
	// With a reference taxon, truncate the base set at its rank when present;
	// otherwise keep only finer ranks and append the reference rank itself.
	for i, rank := range base {
		if rank == ref.Rank {
			ranks := make([]taxon.Rank, i+1)
			copy(ranks, base[:i+1])
			return ranks
		}
	}
	refLevel := ref.Level()
	var ranks []taxon.Rank
	for _, rank := range base {
		if taxon.RankLevels[rank] < refLevel {
			ranks = append(ranks, rank)
		}
	}
	return append(ranks, ref.Rank)
}
