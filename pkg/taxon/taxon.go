package taxon

// Taxon is one taxonomic node as received from the data source, annotated
// with observation counts for the query that produced it.
//
// Records are constructed once per query and treated as read-only afterward.
// AncestorIDs runs from the classification root down to the direct parent;
// when non-empty, its last element equals ParentID.
type Taxon struct {
	ID          int    // Globally unique taxon id
	Name        string // Scientific name
	Rank        Rank   // Rank from the fixed vocabulary
	ParentID    int    // Direct parent id (0 for roots)
	AncestorIDs []int  // Ids from root down to direct parent
	CommonName  string // Preferred common name, if any
	MatchedTerm string // Search term a name lookup matched, if any
	Inactive    bool   // Taxon has been deactivated upstream

	// Count is the direct observation count for this exact taxon.
	Count int
	// DescendantObsCount includes observations of all descendants. Zero when
	// the data source supplied no rollup.
	DescendantObsCount int
}

// Level returns the numeric rank level of the record's rank.
func (t *Taxon) Level() float64 {
	return t.Rank.Level()
}

// IsLeaf reports whether nothing beneath the taxon contributes additional
// observations, i.e. the direct count equals the rollup count.
func (t *Taxon) IsLeaf() bool {
	return t.Count == t.DescendantObsCount
}

// ObsCount returns the rollup count when present, otherwise the direct count.
func (t *Taxon) ObsCount() int {
	if t.DescendantObsCount > 0 {
		return t.DescendantObsCount
	}
	return t.Count
}
