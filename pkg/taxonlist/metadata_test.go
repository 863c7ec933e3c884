package taxonlist

import (
	"strings"
	"testing"

	"github.com/naturelab/lifelist/pkg/taxon"
)

func TestFormattedRankTotals(t *testing.T) {
	meta := &Metadata{
		RanksDescription: "main ranks",
		RankTotals: map[taxon.Rank]int{
			"stateofmatter": 1,
			"kingdom":       1,
			"genus":         2,
			"species":       43,
		},
		TaxonCount: 47,
	}

	lines := meta.FormattedRankTotals()
	want := []string{
		"` 1` kingdom",
		"` 2` genera",
		"`43` species",
	}
	if len(lines) != len(want) {
		t.Fatalf("FormattedRankTotals() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSummary(t *testing.T) {
	meta := &Metadata{
		RanksDescription: "main ranks",
		RankTotals: map[taxon.Rank]int{
			"kingdom": 1,
			"species": 3,
		},
		TaxonCount: 4,
	}

	got := meta.Summary(Policy{Kind: PolicyMain})
	if !strings.HasPrefix(got, "`1` kingdom\n`3` species\n\n") {
		t.Errorf("Summary() rank totals section = %q", got)
	}
	if !strings.HasSuffix(got, "Total: 4 main ranks") {
		t.Errorf("Summary() total line = %q", got)
	}
}

func TestSummaryLeafOmitsBreakdown(t *testing.T) {
	meta := &Metadata{
		RanksDescription: "leaf taxa",
		RankTotals:       map[taxon.Rank]int{"species": 12},
		TaxonCount:       12,
	}

	got := meta.Summary(Policy{Kind: PolicyLeaf})
	if got != "Total: 12 leaf taxa" {
		t.Errorf("Summary() = %q, want the bare total", got)
	}
}

func TestAggregateDigitWidths(t *testing.T) {
	listing, err := New([]*taxon.Taxon{
		{ID: 1, Name: "Aves", Rank: "class", Count: 7, DescendantObsCount: 1234},
		{ID: 2, Name: "Corvus", Rank: "genus", ParentID: 1, AncestorIDs: []int{1}, Count: 56, DescendantObsCount: 900},
	}, Options{Policy: Policy{Kind: PolicyAny}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if listing.Meta.CountDigits != 4 {
		t.Errorf("CountDigits = %d, want 4", listing.Meta.CountDigits)
	}
	if listing.Meta.DirectDigits != 2 {
		t.Errorf("DirectDigits = %d, want 2", listing.Meta.DirectDigits)
	}
}
