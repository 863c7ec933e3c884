package taxon

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownRank is returned by [NormalizeRank] when the name is not a
	// recognized rank or rank synonym.
	ErrUnknownRank = errors.New("unknown rank")
)

// Rank is a named classification tier such as "species" or "kingdom".
type Rank string

// Ranks referenced by name throughout the package.
const (
	RankSpecies       Rank = "species"
	RankGenus         Rank = "genus"
	RankStateOfMatter Rank = "stateofmatter"
)

// RootTaxonID is the well-known id of the "Life" root taxon. A tree rooted at
// this taxon hides it from flattened listings.
const RootTaxonID = 48460

// rankOrder lists every recognized rank from finest to coarsest. The order is
// significant: rank-set truncation keeps a prefix of this list, and the
// summary footer walks it in reverse so coarser ranks print first.
var rankOrder = []Rank{
	"form",
	"variety",
	"subspecies",
	"infrahybrid",
	"hybrid",
	"species",
	"complex",
	"subsection",
	"section",
	"subgenus",
	"genushybrid",
	"genus",
	"subtribe",
	"tribe",
	"supertribe",
	"subfamily",
	"family",
	"epifamily",
	"superfamily",
	"zoosubsection",
	"zoosection",
	"parvorder",
	"infraorder",
	"suborder",
	"order",
	"superorder",
	"subterclass",
	"infraclass",
	"subclass",
	"class",
	"superclass",
	"subphylum",
	"phylum",
	"subkingdom",
	"kingdom",
	"stateofmatter",
}

// RankLevels maps each recognized rank to its numeric level. Higher levels are
// coarser ranks. Some levels are fractional: they slot between the standard
// Linnaean tiers.
var RankLevels = map[Rank]float64{
	"form":          5,
	"variety":       5,
	"subspecies":    5,
	"infrahybrid":   5,
	"hybrid":        10,
	"species":       10,
	"complex":       11,
	"subsection":    12,
	"section":       13,
	"subgenus":      15,
	"genushybrid":   20,
	"genus":         20,
	"subtribe":      24,
	"tribe":         25,
	"supertribe":    26,
	"subfamily":     27,
	"family":        30,
	"epifamily":     32,
	"superfamily":   33,
	"zoosubsection": 33.5,
	"zoosection":    34,
	"parvorder":     34.5,
	"infraorder":    35,
	"suborder":      37,
	"order":         40,
	"superorder":    43,
	"subterclass":   44,
	"infraclass":    45,
	"subclass":      47,
	"class":         50,
	"superclass":    53,
	"subphylum":     57,
	"phylum":        60,
	"subkingdom":    67,
	"kingdom":       70,
	"stateofmatter": 100,
}

// CommonRanks is the "main" rank set: the most commonly used ranks, finest to
// coarsest. Listings filtered per main rank only include these tiers.
var CommonRanks = []Rank{
	"form",
	"variety",
	"subspecies",
	"hybrid",
	"species",
	"genus",
	"family",
	"order",
	"class",
	"phylum",
	"kingdom",
}

// PrimaryRanks are the coarse ranks emphasized (bolded) in hierarchy
// displays: the last five entries of [CommonRanks].
var PrimaryRanks = CommonRanks[len(CommonRanks)-5:]

// TrinomialAbbr maps intraspecific ranks to the abbreviation inserted between
// the second and third name of a trinomial, e.g. "Anser anser domesticus"
// formats as "Anser anser var. domesticus".
var TrinomialAbbr = map[Rank]string{
	"variety":    "var.",
	"subspecies": "ssp.",
	"form":       "f.",
}

// rankEquivalents maps user-facing rank synonyms and abbreviations to their
// canonical rank.
var rankEquivalents = map[string]Rank{
	"division":     "phylum",
	"subdivision":  "subphylum",
	"infraspecies": "subspecies",
	"ssp":          "subspecies",
	"sub-species":  "subspecies",
	"subsp":        "subspecies",
	"trinomial":    "subspecies",
	"var":          "variety",
	"sp":           "species",
	"spp":          "species",
	"gen":          "genus",
}

// Level returns the numeric rank level, or 0 when the rank is unrecognized.
// Higher levels are coarser ranks.
func (r Rank) Level() float64 {
	return RankLevels[r]
}

// Known reports whether the rank belongs to the recognized vocabulary.
func (r Rank) Known() bool {
	_, ok := RankLevels[r]
	return ok
}

// AllRanks returns every recognized rank, finest to coarsest.
func AllRanks() []Rank {
	ranks := make([]Rank, len(rankOrder))
	copy(ranks, rankOrder)
	return ranks
}

// RankKeywords returns every recognized rank name and synonym, suitable for
// validating user input before any traversal begins.
func RankKeywords() []string {
	keywords := make([]string, 0, len(rankOrder)+len(rankEquivalents))
	for _, rank := range rankOrder {
		keywords = append(keywords, string(rank))
	}
	for synonym := range rankEquivalents {
		keywords = append(keywords, synonym)
	}
	return keywords
}

// NormalizeRank resolves a rank name or synonym to its canonical rank.
// Matching is case-insensitive. Returns [ErrUnknownRank] when the name is not
// in the rank vocabulary.
func NormalizeRank(name string) (Rank, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := rankEquivalents[normalized]; ok {
		return canonical, nil
	}
	rank := Rank(normalized)
	if rank.Known() {
		return rank, nil
	}
	return "", ErrUnknownRank
}

// RankGroup returns every rank sharing the given rank's level, finest-order
// preserved. Requesting one member of a group includes its peers, e.g.
// "genus" also matches "genushybrid".
func RankGroup(rank Rank) []Rank {
	level, ok := RankLevels[rank]
	if !ok {
		return nil
	}
	var group []Rank
	for _, candidate := range rankOrder {
		if RankLevels[candidate] == level {
			group = append(group, candidate)
		}
	}
	return group
}

// rankPlurals holds the irregular plural forms; everything else follows
// regular English pluralization rules.
var rankPlurals = map[Rank]string{
	"genus":      "genera",
	"subgenus":   "subgenera",
	"phylum":     "phyla",
	"subphylum":  "subphyla",
	"species":    "species",
	"subspecies": "subspecies",
}

// PluralRank returns the rank name pluralized for the given count. A count of
// one returns the singular name.
func PluralRank(rank Rank, count int) string {
	name := string(rank)
	if count == 1 {
		return name
	}
	if plural, ok := rankPlurals[rank]; ok {
		return plural
	}
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"):
		return name + "es"
	case strings.HasSuffix(name, "y"):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}
