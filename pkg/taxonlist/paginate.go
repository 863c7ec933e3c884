package taxonlist

import (
	"github.com/naturelab/lifelist/pkg/lserr"
)

// Paginator slices a listing into fixed-size, zero-based pages. The page
// size is set at construction; a size of zero or less disables pagination
// and leaves everything on page 0.
type Paginator struct {
	listing *Listing
	perPage int
}

// NewPaginator wraps the listing with a fixed page size.
func NewPaginator(listing *Listing, perPage int) *Paginator {
	if perPage < 0 {
		perPage = 0
	}
	return &Paginator{listing: listing, perPage: perPage}
}

// Listing returns the paginated listing.
func (p *Paginator) Listing() *Listing {
	return p.listing
}

// PerPage returns the fixed page size, 0 when pagination is disabled.
func (p *Paginator) PerPage() int {
	return p.perPage
}

// IsPaginating reports whether the listing exceeds one page.
func (p *Paginator) IsPaginating() bool {
	return p.perPage > 0 && len(p.listing.Entries) > p.perPage
}

// LastPage returns the highest valid zero-based page index:
// ceil(count/perPage)-1, or 0 when the listing is empty or unpaginated.
func (p *Paginator) LastPage() int {
	count := len(p.listing.Entries)
	if p.perPage <= 0 || count == 0 {
		return 0
	}
	return (count+p.perPage-1)/p.perPage - 1
}

// Page returns the entries of the given zero-based page, clamped to the
// listing bounds. Negative pages, and pages starting beyond the end of a
// non-empty listing, fail with PAGE_OUT_OF_RANGE. Page 0 of an empty listing
// is an empty page, not an error.
func (p *Paginator) Page(page int) ([]*Entry, error) {
	count := len(p.listing.Entries)
	if page < 0 || (count > 0 && page > p.LastPage()) {
		return nil, lserr.New(lserr.ErrCodePageOutOfRange,
			"page %d out of range 0..%d", page, p.LastPage())
	}
	if p.perPage <= 0 {
		return p.listing.Entries, nil
	}
	start := page * p.perPage
	if start > count {
		start = count
	}
	end := start + p.perPage
	if end > count {
		end = count
	}
	return p.listing.Entries[start:end], nil
}
