// Package tree reconstructs a rooted taxon tree from the flat record list a
// data source returns. Each record carries an ancestor-id chain; Build
// attaches every record beneath its nearest resolvable ancestor, fabricates
// a synthetic "Life" super-root when the records do not share a single root,
// and can graft out records of unwanted ranks so that listings filtered per
// rank keep their hierarchy intact.
//
// The tree owns child links; parent links are non-owning back-references so
// breadcrumb construction can walk ancestor chains without reference cycles.
package tree
