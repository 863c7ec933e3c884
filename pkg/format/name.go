package format

import (
	"strings"

	"github.com/naturelab/lifelist/pkg/taxon"
)

// NameOptions control how [TaxonName] renders a taxon.
type NameOptions struct {
	// WithRank prefixes the capitalized rank for ranks above species,
	// matching how taxon pages title themselves on the web.
	WithRank bool
	// WithCommon appends the common name in parentheses when known.
	WithCommon bool
	// Hierarchy renders an ancestry-list item instead: ranks above species
	// are never rank-prefixed, and the most commonly used ranks are set off
	// as bold quoted lines.
	Hierarchy bool
}

// TaxonName formats a taxon name the way iNaturalist renders names on the
// website:
//
//   - the rank keyword is dropped at species level and below
//   - the name is italicized for genus level and below, except for
//     genushybrid and subgenus
//   - trinomials insert an unitalicized rank abbreviation between the second
//     and third name, e.g. "*Anser anser* var. *domesticus*"
func TaxonName(t *taxon.Taxon, opts NameOptions) string {
	name := t.Name
	level := t.Level()
	speciesLevel := taxon.RankLevels[taxon.RankSpecies]

	italic := t.Rank == taxon.RankGenus || level <= speciesLevel
	if italic {
		name = "*" + name + "*"
	}
	if level > speciesLevel {
		if opts.Hierarchy {
			if isPrimaryRank(t.Rank) {
				name = "\n> **" + name + "**"
			}
		} else if opts.WithRank {
			name = capitalize(string(t.Rank)) + " " + name
		}
	} else if abbr, ok := taxon.TrinomialAbbr[t.Rank]; ok {
		if parts := strings.Split(t.Name, " "); len(parts) == 3 {
			name = "*" + parts[0] + " " + parts[1] + "* " + abbr + " *" + parts[2] + "*"
		}
	}

	if opts.WithCommon && !opts.Hierarchy && t.CommonName != "" {
		name += " (" + t.CommonName + ")"
	}
	if t.Inactive {
		name += " ❗ Inactive Taxon"
	}
	return name
}

func isPrimaryRank(rank taxon.Rank) bool {
	for _, primary := range taxon.PrimaryRanks {
		if rank == primary {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
