package taxonlist

import (
	"testing"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/taxon"
)

func leafListing(t *testing.T, records []*taxon.Taxon) *Listing {
	t.Helper()
	listing, err := New(records, Options{Policy: Policy{Kind: PolicyLeaf}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return listing
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		key, order string
		want       SortSpec
		wantErr    bool
	}{
		{key: "", order: "", want: SortSpec{}},
		{key: "name", order: "desc", want: SortSpec{Key: SortByName, Order: Descending}},
		{key: "count", order: "asc", want: SortSpec{Key: SortByCount}},
		{key: "obs", order: "", want: SortSpec{Key: SortByCount}},
		{key: "size", order: "", wantErr: true},
		{key: "name", order: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.order, func(t *testing.T) {
			got, err := ParseSort(tt.key, tt.order)
			if tt.wantErr {
				if !lserr.Is(err, lserr.ErrCodeInvalidInput) {
					t.Fatalf("ParseSort(%q, %q) error = %v, want INVALID_INPUT", tt.key, tt.order, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSort(%q, %q) unexpected error: %v", tt.key, tt.order, err)
			}
			if got != tt.want {
				t.Errorf("ParseSort(%q, %q) = %+v, want %+v", tt.key, tt.order, got, tt.want)
			}
		})
	}
}

func TestSortByNameDescending(t *testing.T) {
	// Bird10 vs Bird9: a character-reversed comparison puts "Bird9" first
	// ('9' > '1'), where a row-reversal of the ascending list would not
	// change their relative order the same way when duplicates are present.
	records := []*taxon.Taxon{
		{ID: 1, Name: "Bird10", Rank: "species", Count: 1, DescendantObsCount: 1},
		{ID: 2, Name: "Bird9", Rank: "species", Count: 1, DescendantObsCount: 1},
		{ID: 3, Name: "Albatross", Rank: "species", Count: 1, DescendantObsCount: 1},
	}
	listing := leafListing(t, records)
	listing.Sort(SortSpec{Key: SortByName, Order: Descending})

	want := []string{"Bird9", "Bird10", "Albatross"}
	for i, entry := range listing.Entries {
		if entry.Taxon().Name != want[i] {
			t.Fatalf("descending name order = %v..., want %v", entry.Taxon().Name, want)
		}
	}
}

func TestSortDescendingKeepsTieOrder(t *testing.T) {
	// Duplicate names: a stable descending comparison keeps their original
	// relative order, whereas reversing the ascending result would swap them.
	records := []*taxon.Taxon{
		{ID: 1, Name: "Salix alba", Rank: "species", Count: 1, DescendantObsCount: 1},
		{ID: 2, Name: "Salix alba", Rank: "species", Count: 1, DescendantObsCount: 1},
	}
	listing := leafListing(t, records)
	listing.Sort(SortSpec{Key: SortByName, Order: Descending})

	if listing.Entries[0].Taxon().ID != 1 || listing.Entries[1].Taxon().ID != 2 {
		t.Errorf("tie order = [%d, %d], want original [1, 2]",
			listing.Entries[0].Taxon().ID, listing.Entries[1].Taxon().ID)
	}
}

func TestSortByCountRankLevelDominant(t *testing.T) {
	// A coarser-rank node with a higher count still sorts before a
	// finer-rank node with a lower count.
	records := []*taxon.Taxon{
		{ID: 1, Name: "Salix alba", Rank: "species", Count: 2, DescendantObsCount: 2},
		{ID: 2, Name: "Acer", Rank: "genus", Count: 9, DescendantObsCount: 9},
		{ID: 3, Name: "Salix caprea", Rank: "species", Count: 7, DescendantObsCount: 7},
	}
	listing := leafListing(t, records)
	listing.Sort(SortSpec{Key: SortByCount, Order: Ascending})

	wantIDs := []int{2, 1, 3}
	for i, entry := range listing.Entries {
		if entry.Taxon().ID != wantIDs[i] {
			var got []int
			for _, e := range listing.Entries {
				got = append(got, e.Taxon().ID)
			}
			t.Fatalf("count sort order = %v, want %v", got, wantIDs)
		}
	}
}

func TestSortIgnoredForTreeOrderPolicies(t *testing.T) {
	listing, err := New(lifeChain(), Options{
		Policy: Policy{Kind: PolicyMain},
		Sort:   SortSpec{Key: SortByName, Order: Descending},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// Depth-first tree order must survive: parents stay before children.
	if listing.Entries[0].Taxon().Rank != "kingdom" {
		t.Errorf("first entry rank = %v, want kingdom (tree order preserved)",
			listing.Entries[0].Taxon().Rank)
	}
	for i := 1; i < 7; i++ {
		if listing.Entries[i].Indent != listing.Entries[i-1].Indent+1 {
			t.Fatalf("entry %d breaks the parent-before-child chain", i)
		}
	}
}
