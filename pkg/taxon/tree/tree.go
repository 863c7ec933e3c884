package tree

import (
	"errors"

	"github.com/naturelab/lifelist/pkg/taxon"
)

var (
	// ErrNoRecords is returned by [Build] when the record list is empty.
	ErrNoRecords = errors.New("no taxon records")

	// ErrInconsistentAncestry is returned by [Tree.Validate] when a record's
	// last ancestor id does not resolve within the record set even though the
	// record claims a non-empty ancestor chain.
	ErrInconsistentAncestry = errors.New("inconsistent ancestor chain")
)

// Node is one vertex of a reconstructed taxon tree. The tree owns the
// Children slice; Parent is a non-owning back-reference used to walk the
// ancestor chain for breadcrumbs.
type Node struct {
	Taxon    *taxon.Taxon
	Parent   *Node
	Children []*Node
}

// Ancestors returns the node's ancestor chain from the tree root down to the
// direct parent, excluding the node itself.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	// Collected child-to-root; reverse to root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// InSubtree reports whether the node is rootID itself or a descendant of it,
// judged by the record's original ancestor chain. This holds even when
// intermediate ancestors were grafted out of the built tree.
func (n *Node) InSubtree(rootID int) bool {
	if rootID == 0 || n.Taxon.ID == rootID {
		return true
	}
	for _, id := range n.Taxon.AncestorIDs {
		if id == rootID {
			return true
		}
	}
	return false
}

// Tree is a single rooted taxon tree reconstructed from a flat record list.
type Tree struct {
	Root *Node

	// Synthetic reports whether the root was fabricated to join multiple
	// top-level records under one "Life" node.
	Synthetic bool

	byID    map[int]*Node
	records []*taxon.Taxon
}

// options configures Build.
type options struct {
	includeRanks map[taxon.Rank]bool
}

// Option customizes tree construction.
type Option func(*options)

// WithIncludeRanks restricts the tree to records of the given ranks. Records
// of other ranks are dropped and their descendants grafted onto the nearest
// retained ancestor; descendants with no retained ancestor are joined under
// the synthetic super-root.
func WithIncludeRanks(ranks []taxon.Rank) Option {
	return func(o *options) {
		o.includeRanks = make(map[taxon.Rank]bool, len(ranks))
		for _, r := range ranks {
			o.includeRanks[r] = true
		}
	}
}

// Build reconstructs a single rooted tree from a flat record list using each
// record's ancestor-id chain. A record attaches beneath the nearest ancestor
// resolvable within the set; records with no resolvable ancestor become
// roots. When more than one root remains, a synthetic "Life" super-root is
// fabricated to join them (at most one synthetic root per build).
//
// Children at each level keep the input record order, so rebuilding from
// the same input always yields the same traversal order. The data source
// supplies records in its own listing order; sorting is the listing
// layer's concern.
func Build(records []*taxon.Taxon, opts ...Option) (*Tree, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	present := make(map[int]*taxon.Taxon, len(records))
	for _, rec := range records {
		if _, dup := present[rec.ID]; !dup {
			present[rec.ID] = rec
		}
	}

	included := func(rec *taxon.Taxon) bool {
		if o.includeRanks == nil {
			return true
		}
		return o.includeRanks[rec.Rank]
	}

	// Resolve each record's effective parent: the nearest ancestor that is
	// present in the set and retained by the rank restriction.
	parentOf := make(map[int]int, len(records))
	var roots []*taxon.Taxon
	kept := make([]*taxon.Taxon, 0, len(records))
	for _, rec := range records {
		if present[rec.ID] != rec {
			continue // duplicate id, first record wins
		}
		parent := 0
		chain := rec.AncestorIDs
		if len(chain) == 0 && rec.ParentID != 0 {
			chain = []int{rec.ParentID}
		}
		for i := len(chain) - 1; i >= 0; i-- {
			anc, ok := present[chain[i]]
			if ok && included(anc) {
				parent = anc.ID
				break
			}
		}
		if !included(rec) {
			// Dropped rank: descendants graft through to this record's own
			// effective parent instead.
			parentOf[rec.ID] = parent
			continue
		}
		kept = append(kept, rec)
		if parent == 0 {
			roots = append(roots, rec)
		} else {
			parentOf[rec.ID] = parent
		}
	}

	// Chains may pass through dropped records; follow them to a kept one.
	keptSet := make(map[int]bool, len(kept))
	for _, rec := range kept {
		keptSet[rec.ID] = true
	}
	resolve := func(id int) int {
		seen := 0
		for id != 0 && !keptSet[id] {
			id = parentOf[id]
			if seen++; seen > len(records) {
				return 0
			}
		}
		return id
	}

	t := &Tree{byID: make(map[int]*Node, len(kept)), records: records}
	for _, rec := range kept {
		t.byID[rec.ID] = &Node{Taxon: rec}
	}

	// Promote records whose grafting target vanished entirely to roots.
	for _, rec := range kept {
		node := t.byID[rec.ID]
		parentID := resolve(parentOf[rec.ID])
		if parentID == 0 || parentID == rec.ID {
			continue
		}
		parent := t.byID[parentID]
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}
	roots = roots[:0]
	for _, rec := range kept {
		if t.byID[rec.ID].Parent == nil {
			roots = append(roots, rec)
		}
	}

	if len(roots) == 1 {
		t.Root = t.byID[roots[0].ID]
	} else {
		life := &Node{Taxon: &taxon.Taxon{
			ID:   taxon.RootTaxonID,
			Name: "Life",
			Rank: taxon.RankStateOfMatter,
		}}
		for _, rec := range roots {
			node := t.byID[rec.ID]
			node.Parent = life
			life.Children = append(life.Children, node)
		}
		t.Root = life
		t.Synthetic = true
	}

	return t, nil
}

// Find returns the node for the given taxon id, or nil when the id is not in
// the tree (absent from the records, or grafted out by a rank restriction).
func (t *Tree) Find(id int) *Node {
	return t.byID[id]
}

// Len returns the number of nodes in the tree, excluding a synthetic root.
func (t *Tree) Len() int {
	return len(t.byID)
}

// HiddenRoot reports whether the root should be omitted from flattened
// listings: a synthetic super-root, or the well-known "Life" taxon.
func (t *Tree) HiddenRoot() bool {
	return t.Synthetic || t.Root.Taxon.ID == taxon.RootTaxonID
}

// Walk visits every node depth-first, ancestors before descendants, calling
// fn with each node and its depth (root depth 0). Traversal of a subtree is
// pruned when fn returns false for its root.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Validate checks the record set for inconsistent ancestor chains: a record
// whose non-empty chain ends in an id absent from the set. Grafting in Build
// tolerates these; Validate lets callers surface them as data errors instead
// of silently repairing.
func (t *Tree) Validate() error {
	present := make(map[int]bool, len(t.records))
	for _, rec := range t.records {
		present[rec.ID] = true
	}
	for _, rec := range t.records {
		if n := len(rec.AncestorIDs); n > 0 && !present[rec.AncestorIDs[n-1]] {
			return ErrInconsistentAncestry
		}
	}
	return nil
}
