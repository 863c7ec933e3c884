// Package menus layers stateful navigation over rendered taxon listings.
//
// A [Menu] tracks the current page and selected entry for one user-facing
// conversation. Menus are not safe for concurrent use; each conversation
// owns its menu and issues navigation calls in order. The [Registry] keys
// live menus by session id with an expiry, for callers (such as the HTTP
// API) that resume navigation across requests.
package menus

import (
	"github.com/naturelab/lifelist/pkg/format"
	"github.com/naturelab/lifelist/pkg/lserr"
)

// Menu is the navigation state machine over one rendered listing: next and
// prev wrap around the page range, jumps validate the target page, and the
// selected entry resets to the first entry whenever the page changes.
type Menu struct {
	renderer *format.Renderer
	page     int
	selected int
}

// NewMenu starts navigation at page 0 with the first entry selected.
func NewMenu(renderer *format.Renderer) *Menu {
	return &Menu{renderer: renderer}
}

// Renderer returns the menu's renderer.
func (m *Menu) Renderer() *format.Renderer { return m.renderer }

// Page returns the current zero-based page number.
func (m *Menu) Page() int { return m.page }

// Selected returns the zero-based index of the selected entry on the
// current page.
func (m *Menu) Selected() int { return m.selected }

// Next advances one page, wrapping from the last page back to page 0.
func (m *Menu) Next() {
	m.page++
	if m.page > m.renderer.Pager().LastPage() {
		m.page = 0
	}
	m.selected = 0
}

// Prev goes back one page, wrapping from page 0 to the last page.
func (m *Menu) Prev() {
	m.page--
	if m.page < 0 {
		m.page = m.renderer.Pager().LastPage()
	}
	m.selected = 0
}

// Jump moves to an exact page. Out-of-range pages are a recoverable
// navigation error and leave the menu unchanged.
func (m *Menu) Jump(page int) error {
	if page < 0 || page > m.renderer.Pager().LastPage() {
		return lserr.New(lserr.ErrCodePageOutOfRange,
			"page %d out of range 0..%d", page, m.renderer.Pager().LastPage())
	}
	if page != m.page {
		m.selected = 0
	}
	m.page = page
	return nil
}

// Select highlights an entry on the current page by zero-based index.
func (m *Menu) Select(index int) error {
	entries, err := m.renderer.Pager().Page(m.page)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return lserr.New(lserr.ErrCodeSelectionOutOfRange,
			"selection %d out of range 0..%d", index, len(entries)-1)
	}
	m.selected = index
	return nil
}

// SelectedTaxonID returns the taxon id of the selected entry, or 0 when
// the current page is empty.
func (m *Menu) SelectedTaxonID() int {
	entries, err := m.renderer.Pager().Page(m.page)
	if err != nil || len(entries) == 0 {
		return 0
	}
	return entries[m.selected].Taxon().ID
}

// Format renders the current page with the selection highlighted.
func (m *Menu) Format(withTitle bool) (string, error) {
	return m.renderer.Format(withTitle, m.page, m.selected)
}
