package format

import (
	"fmt"
	"strings"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/query"
	"github.com/naturelab/lifelist/pkg/taxon"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

// indentUnit is one child-depth step: an en space plus a thin space.
const indentUnit = "  "

// elbow marks a child entry, followed by a thin space.
const elbow = "└ "

// enSpace pads unselected entries where the selection cursor would go.
const enSpace = " "

// ListOptions control which columns and adornments [Renderer] emits.
type ListOptions struct {
	// WithURL links the title to the life list page when the query names a
	// single user. The website has no life list page for any other query.
	WithURL bool
	// WithTaxa renders the taxa on each page. When false only the summary
	// footer can be rendered.
	WithTaxa bool
	// WithIndex numbers the entries on each page, for selection by number.
	WithIndex bool
	// WithDirect adds a column of direct (non-descendant) observation
	// counts, shown in parentheses when non-zero.
	WithDirect bool
	// WithCommon appends common names to entries when known.
	WithCommon bool
	// ShortDescription leads the title, e.g. "Life list".
	ShortDescription string
}

// StructuredPage is one rendered page broken into sections, kept so callers
// can restyle parts (e.g. an API response) without reparsing markdown.
type StructuredPage struct {
	EntriesHeader string
	Entries       []PageEntry
	Footer        string
}

// PageEntry is one pre-formatted listing row. Count and Direct are padded to
// the listing's column widths.
type PageEntry struct {
	Count  string
	Direct string
	Indent string
	Name   string
}

// Renderer formats a paginated taxon listing as markdown pages. Pages are
// memoized by page number, so repeated navigation over the same listing
// formats each page once.
type Renderer struct {
	pager *taxonlist.Paginator
	resp  *query.Response
	opts  ListOptions

	pages map[int]*StructuredPage
}

// NewRenderer builds a renderer over a paginated listing. resp supplies the
// observation query context for links and the title; it may be nil, in which
// case entries are unlinked.
func NewRenderer(pager *taxonlist.Paginator, resp *query.Response, opts ListOptions) *Renderer {
	if opts.ShortDescription == "" {
		opts.ShortDescription = "Life list"
	}
	return &Renderer{
		pager: pager,
		resp:  resp,
		opts:  opts,
		pages: make(map[int]*StructuredPage),
	}
}

// Pager returns the underlying paginator.
func (r *Renderer) Pager() *taxonlist.Paginator { return r.pager }

// Options returns the renderer's options.
func (r *Renderer) Options() ListOptions { return r.opts }

// Title describes the listing in terms of the observation query, linked to
// the life list web page when the query is for one user.
func (r *Renderer) Title() string {
	title := r.opts.ShortDescription
	if r.resp != nil {
		title += " " + r.resp.ObsQueryDescription(func(t *taxon.Taxon) string {
			return TaxonName(t, NameOptions{WithRank: true, WithCommon: true})
		})
		if r.opts.WithURL && r.resp.User != nil {
			url := query.LifelistsURL(r.resp.User.Login, r.resp.ObsArgs())
			title = Link(title, url)
		}
	}
	return title
}

// Format renders one page, optionally preceded by the title. selected is the
// zero-based index of the highlighted entry on the page, or -1 for none.
func (r *Renderer) Format(withTitle bool, page, selected int) (string, error) {
	formatted, err := r.FormatPage(page, selected)
	if err != nil {
		return "", err
	}
	if withTitle {
		formatted = r.Title() + "\n\n" + formatted
	}
	return formatted, nil
}

// FormatPage renders the page's sections joined by blank lines: an optional
// breadcrumb header for pages starting mid-hierarchy, the entries, and on
// the last page the rank summary footer.
func (r *Renderer) FormatPage(page, selected int) (string, error) {
	structured, err := r.structuredPage(page)
	if err != nil {
		return "", err
	}
	if len(structured.Entries) == 0 {
		// Nothing to select on an empty page; render header and footer only.
		selected = -1
	} else if selected >= len(structured.Entries) {
		return "", lserr.New(lserr.ErrCodeSelectionOutOfRange,
			"selection %d out of range for page %d", selected, page)
	}

	var sections []string
	if structured.EntriesHeader != "" {
		sections = append(sections, structured.EntriesHeader)
	}
	if len(structured.Entries) > 0 {
		lines := make([]string, len(structured.Entries))
		for i, entry := range structured.Entries {
			var index string
			if r.opts.WithIndex {
				index = fmt.Sprintf("**`%02d) `**", i+1)
			}
			cursor, emphasize, deemphasize := enSpace, "", ""
			if i == selected {
				cursor, emphasize, deemphasize = ">", "**__", "__**"
			}
			lines[i] = fmt.Sprintf("%s`%s%s`%s%s%s%s%s",
				index, entry.Count, entry.Direct, cursor, entry.Indent, emphasize, entry.Name, deemphasize)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if structured.Footer != "" {
		sections = append(sections, structured.Footer)
	}
	return strings.Join(sections, "\n\n"), nil
}

// structuredPage returns the memoized sections for a page, building them on
// first access.
func (r *Renderer) structuredPage(page int) (*StructuredPage, error) {
	if cached, ok := r.pages[page]; ok {
		return cached, nil
	}
	listing := r.pager.Listing()

	structured := &StructuredPage{}
	if r.opts.WithTaxa && len(listing.Entries) > 0 {
		entries, err := r.pager.Page(page)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			structured.Entries = r.formatEntries(entries)
			if r.hierarchical() && entries[0].Indent > 1 {
				structured.EntriesHeader = r.entriesHeader(entries[0])
			}
		}
	}
	lastPage := 0
	if r.opts.WithTaxa {
		lastPage = r.pager.LastPage()
	}
	if page == lastPage {
		structured.Footer = listing.Meta.Summary(listing.Policy)
	}
	r.pages[page] = structured
	return structured, nil
}

func (r *Renderer) hierarchical() bool {
	kind := r.pager.Listing().Policy.Kind
	return kind == taxonlist.PolicyMain || kind == taxonlist.PolicyAny
}

// formatEntries pre-formats rows with fixed-width count columns.
func (r *Renderer) formatEntries(entries []*taxonlist.Entry) []PageEntry {
	meta := r.pager.Listing().Meta
	rows := make([]PageEntry, len(entries))
	for i, entry := range entries {
		t := entry.Taxon()
		count := fmt.Sprintf("%*d", meta.CountDigits, t.ObsCount())

		// The direct column mirrors Dynamic Life Lists on the web:
		// direct counts of zero are never shown, leaves at terminal ranks
		// show only the one column since the counts are equal, and leaves
		// above species show only the direct count as a cue that further
		// identification could refine the species count.
		var direct string
		if r.opts.WithDirect {
			directWidth := meta.DirectDigits + 2
			direct = strings.Repeat(" ", directWidth)
			if t.Count > 0 {
				direct = fmt.Sprintf("%*s", directWidth, "("+fmt.Sprint(t.Count)+")")
				if t.IsLeaf() {
					if t.Level() <= taxon.RankLevels[taxon.RankSpecies] {
						direct = strings.Repeat(" ", directWidth)
					} else {
						count = strings.Repeat(" ", meta.CountDigits)
					}
				}
			}
		}

		name := TaxonName(t, NameOptions{WithRank: true})
		if r.resp != nil {
			name = Link(name, r.resp.TaxonObsURL(t.ID))
		}
		if r.opts.WithCommon && t.CommonName != "" {
			name += " (" + t.CommonName + ")"
		}

		rows[i] = PageEntry{
			Count:  count,
			Direct: direct,
			Indent: r.indentChild(entry.Indent),
			Name:   name,
		}
	}
	return rows
}

// indentChild renders an entry's depth as en-space indentation ending in an
// elbow, empty at the top level.
func (r *Renderer) indentChild(level int) string {
	if !r.hierarchical() || level < 1 {
		return ""
	}
	return ProtectLeadingBlanks(strings.Repeat(indentUnit, level-1) + elbow)
}

// entriesHeader renders a breadcrumb of the first entry's ancestors for
// pages that start more than one level deep, so the reader keeps context
// across page boundaries. Only ancestors at displayed ranks appear, and the
// synthetic Life root never does.
func (r *Renderer) entriesHeader(first *taxonlist.Entry) string {
	var names []string
	headerRanks := r.headerRanks()
	for _, node := range first.Ancestors() {
		if node.Taxon.ID == taxon.RootTaxonID {
			continue
		}
		if headerRanks[node.Taxon.Rank] {
			names = append(names, TaxonName(node.Taxon, NameOptions{}))
		}
	}
	if len(names) == 0 {
		return ""
	}
	countsWidth := r.pager.Listing().Meta.CountDigits
	if r.opts.WithDirect {
		countsWidth += r.pager.Listing().Meta.DirectDigits + 2
	}
	return "`" + strings.Repeat(" ", countsWidth) + "` __" + strings.Join(names, " > ") + "__"
}

// headerRanks is the static rank set for the policy, independent of any
// reference-taxon adjustment, so breadcrumbs stay stable across pages.
func (r *Renderer) headerRanks() map[taxon.Rank]bool {
	var ranks []taxon.Rank
	switch r.pager.Listing().Policy.Kind {
	case taxonlist.PolicyMain:
		ranks = taxon.CommonRanks
	case taxonlist.PolicyAny:
		ranks = taxon.AllRanks()
	}
	set := make(map[taxon.Rank]bool, len(ranks))
	for _, rank := range ranks {
		set[rank] = true
	}
	return set
}
