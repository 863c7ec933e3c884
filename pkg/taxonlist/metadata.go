package taxonlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/naturelab/lifelist/pkg/taxon"
)

// Metadata is aggregated over one filtering pass: the per-rank entry totals,
// the digit widths the renderer needs to right-align count columns, and a
// short description of which ranks were included. Created once per filter
// invocation and immutable afterward.
type Metadata struct {
	// RanksDescription names the included ranks for the summary footer, e.g.
	// "main ranks", "leaf taxa", "child taxa", or a pluralized rank name.
	RanksDescription string
	// RankTotals counts included entries per rank. Totals always sum to
	// TaxonCount.
	RankTotals map[taxon.Rank]int
	// CountDigits is the widest descendant-count rendering, in digits.
	CountDigits int
	// DirectDigits is the widest direct-count rendering, in digits.
	DirectDigits int
	// TaxonCount is the total number of included entries.
	TaxonCount int
}

// aggregate computes metadata over the filtered entries. Digit widths are at
// least 1 so empty or all-zero listings still render a column.
func aggregate(entries []*Entry, description string) *Metadata {
	meta := &Metadata{
		RanksDescription: description,
		RankTotals:       make(map[taxon.Rank]int),
		CountDigits:      1,
		DirectDigits:     1,
		TaxonCount:       len(entries),
	}
	for _, entry := range entries {
		rec := entry.Taxon()
		if digits := len(strconv.Itoa(rec.DescendantObsCount)); digits > meta.CountDigits {
			meta.CountDigits = digits
		}
		if digits := len(strconv.Itoa(rec.Count)); digits > meta.DirectDigits {
			meta.DirectDigits = digits
		}
		meta.RankTotals[rec.Rank]++
	}
	return meta
}

// FormattedRankTotals renders one "`N` rankname" line per rank present,
// coarsest rank first, counts right-justified to a common width. The
// "stateofmatter" pseudo-rank is left out: a single "Life" line adds nothing
// to a summary.
func (m *Metadata) FormattedRankTotals() []string {
	maxDigits := 1
	for _, total := range m.RankTotals {
		if digits := len(strconv.Itoa(total)); digits > maxDigits {
			maxDigits = digits
		}
	}
	ranks := taxon.AllRanks()
	var lines []string
	for i := len(ranks) - 1; i >= 0; i-- {
		rank := ranks[i]
		if rank == taxon.RankStateOfMatter {
			continue
		}
		total, ok := m.RankTotals[rank]
		if !ok {
			continue
		}
		padded := fmt.Sprintf("%*d", maxDigits, total)
		lines = append(lines, fmt.Sprintf("`%s` %s", padded, taxon.PluralRank(rank, total)))
	}
	return lines
}

// Summary renders the final-page footer: the per-rank totals (when the
// policy has a meaningful per-rank breakdown) followed by the overall total.
func (m *Metadata) Summary(policy Policy) string {
	total := m.TaxonCount
	if policy.Kind == PolicyChild && total > 0 {
		// The one-generation listing includes its root; the total describes
		// the children only.
		total--
	}
	totalLine := fmt.Sprintf("Total: %d %s", total, m.RanksDescription)
	if policy.Kind == PolicyLeaf || policy.Kind == PolicyChild {
		return totalLine
	}
	lines := m.FormattedRankTotals()
	if len(lines) == 0 {
		return totalLine
	}
	return strings.Join(lines, "\n") + "\n\n" + totalLine
}
