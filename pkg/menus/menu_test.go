package menus

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/naturelab/lifelist/pkg/format"
	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

// speciesMenu builds a menu over n species in one genus, paginated at perPage.
func speciesMenu(t *testing.T, n, perPage int) *Menu {
	t.Helper()
	records := []*taxon.Taxon{
		{ID: 1, Name: "Acer", Rank: "genus", Count: n, DescendantObsCount: n},
	}
	for i := 0; i < n; i++ {
		records = append(records, &taxon.Taxon{
			ID: 100 + i, Name: fmt.Sprintf("Acer sp%02d", i), Rank: "species",
			ParentID: 1, AncestorIDs: []int{1},
			Count: 1, DescendantObsCount: 1,
		})
	}
	listing, err := taxonlist.New(records, taxonlist.Options{
		Policy: taxonlist.Policy{Kind: taxonlist.PolicyRank, Rank: "species"},
	})
	if err != nil {
		t.Fatalf("building listing: %v", err)
	}
	renderer := format.NewRenderer(taxonlist.NewPaginator(listing, perPage), nil,
		format.ListOptions{WithTaxa: true})
	return NewMenu(renderer)
}

func TestMenuWrapping(t *testing.T) {
	m := speciesMenu(t, 25, 10) // pages 0..2

	m.Next()
	m.Next()
	if m.Page() != 2 {
		t.Fatalf("page = %d, want 2", m.Page())
	}
	m.Next()
	if m.Page() != 0 {
		t.Errorf("next from last page = %d, want wrap to 0", m.Page())
	}
	m.Prev()
	if m.Page() != 2 {
		t.Errorf("prev from page 0 = %d, want wrap to 2", m.Page())
	}
}

func TestMenuSelectionResetsOnPageChange(t *testing.T) {
	m := speciesMenu(t, 25, 10)
	if err := m.Select(4); err != nil {
		t.Fatalf("Select: %v", err)
	}
	m.Next()
	if m.Selected() != 0 {
		t.Errorf("selected = %d after page change, want 0", m.Selected())
	}

	if err := m.Select(3); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := m.Jump(1); err != nil {
		t.Fatalf("Jump to current page: %v", err)
	}
	if m.Selected() != 3 {
		t.Errorf("selected = %d after jump to same page, want 3", m.Selected())
	}
}

func TestMenuJumpOutOfRange(t *testing.T) {
	m := speciesMenu(t, 25, 10)
	if err := m.Jump(3); !lserr.Is(err, lserr.ErrCodePageOutOfRange) {
		t.Fatalf("Jump(3) err = %v, want PAGE_OUT_OF_RANGE", err)
	}
	if m.Page() != 0 {
		t.Errorf("failed jump moved the page to %d", m.Page())
	}
}

func TestMenuSelectOutOfRange(t *testing.T) {
	m := speciesMenu(t, 25, 10)
	if err := m.Jump(2); err != nil {
		t.Fatalf("Jump: %v", err)
	}
	// Last page holds 5 entries.
	if err := m.Select(5); !lserr.Is(err, lserr.ErrCodeSelectionOutOfRange) {
		t.Fatalf("Select(5) err = %v, want SELECTION_OUT_OF_RANGE", err)
	}
	if err := m.Select(4); err != nil {
		t.Fatalf("Select(4): %v", err)
	}
}

func TestMenuSelectedTaxonID(t *testing.T) {
	m := speciesMenu(t, 25, 10)
	m.Next()
	if err := m.Select(2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := m.SelectedTaxonID(); got != 112 {
		t.Errorf("SelectedTaxonID() = %d, want 112", got)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(time.Minute)
	sess := r.Create(speciesMenu(t, 5, 10))
	if sess.ID == "" {
		t.Fatal("session id empty")
	}

	got, err := r.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Menu != sess.Menu {
		t.Error("Get returned a different menu")
	}

	if _, err := r.Get("no-such-session"); !lserr.Is(err, lserr.ErrCodeSessionNotFound) {
		t.Fatalf("unknown id err = %v, want SESSION_NOT_FOUND", err)
	}

	r.Delete(sess.ID)
	if _, err := r.Get(sess.ID); !lserr.Is(err, lserr.ErrCodeSessionNotFound) {
		t.Fatalf("deleted id err = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestRegistryExpiry(t *testing.T) {
	r := NewRegistry(time.Minute)
	sess := r.Create(speciesMenu(t, 5, 10))
	sess.ExpiresAt = time.Now().Add(-time.Second)

	if _, err := r.Get(sess.ID); !lserr.Is(err, lserr.ErrCodeSessionNotFound) {
		t.Fatalf("expired id err = %v, want SESSION_NOT_FOUND", err)
	}

	stale := r.Create(speciesMenu(t, 5, 10))
	stale.ExpiresAt = time.Now().Add(-time.Second)
	live := r.Create(speciesMenu(t, 5, 10))
	if removed := r.Cleanup(); removed != 1 {
		t.Errorf("Cleanup removed %d sessions, want 1", removed)
	}
	if _, err := r.Get(live.ID); err != nil {
		t.Errorf("live session dropped by cleanup: %v", err)
	}
}

func TestMenuEmptyListing(t *testing.T) {
	m := speciesMenu(t, 0, 10)
	got, err := m.Format(true)
	if err != nil {
		t.Fatalf("Format over an empty listing: %v", err)
	}
	if !strings.Contains(got, "Total: 0 species") {
		t.Errorf("empty listing missing total footer:\n%s", got)
	}
	if id := m.SelectedTaxonID(); id != 0 {
		t.Errorf("SelectedTaxonID = %d, want 0 for an empty page", id)
	}
}
