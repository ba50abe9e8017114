// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tree implements the structural engine behind the category
// hierarchy: building a forest from flat rows, materialized-path
// maintenance, move validation, sibling reordering, and cascade
// deletion sets. The package is pure in-memory logic — persistence and
// transport live elsewhere.
package tree

import (
	"sort"

	"paperdeck/internal/models"
)

// Node is one category in the built forest, carrying its row plus the
// ordered child list.
type Node struct {
	models.Category
	Children []*Node `json:"children,omitempty"`
}

// Forest is the in-memory view of the whole category hierarchy. It is
// always built from the full row set; the tree is user-authored and
// small enough to materialize whole.
type Forest struct {
	Roots []*Node

	// Orphans lists ids whose parent_id referenced a missing row.
	// They are promoted to root rather than dropped.
	Orphans []int64

	index   map[int64]*Node
	parents map[int64]*Node
}

// Build converts flat rows into a forest. Rows may arrive in any order;
// a stable sort on sort_order makes sibling order deterministic. Rows
// whose parent_id does not resolve, or whose parent chain loops back on
// itself, are promoted to root and recorded in Orphans — data is never
// silently dropped, so the output node count always equals the input
// row count.
func Build(rows []models.Category) *Forest {
	sorted := make([]models.Category, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	f := &Forest{
		index:   make(map[int64]*Node, len(sorted)),
		parents: make(map[int64]*Node, len(sorted)),
	}
	for i := range sorted {
		f.index[sorted[i].ID] = &Node{Category: sorted[i]}
	}

	for i := range sorted {
		n := f.index[sorted[i].ID]
		if n.ParentID == nil {
			f.Roots = append(f.Roots, n)
			continue
		}
		parent, ok := f.index[*n.ParentID]
		if !ok || parent == n {
			// Dangling reference: fail open, surface as root.
			f.Orphans = append(f.Orphans, n.ID)
			n.ParentID = nil
			f.Roots = append(f.Roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
		f.parents[n.ID] = parent
	}

	// Rows whose parent chains form a cycle (corrupted storage) resolve
	// every lookup above yet never reach a root. Break each cycle by
	// promoting its first node in sort order, recorded like a dangling
	// reference, so no input row is ever dropped from the forest.
	reachable := make(map[int64]bool, len(sorted))
	var mark func(n *Node)
	mark = func(n *Node) {
		reachable[n.ID] = true
		for _, c := range n.Children {
			mark(c)
		}
	}
	for _, root := range f.Roots {
		mark(root)
	}
	if len(reachable) < len(sorted) {
		for i := range sorted {
			n := f.index[sorted[i].ID]
			if reachable[n.ID] {
				continue
			}
			f.detach(n)
			n.ParentID = nil
			f.Orphans = append(f.Orphans, n.ID)
			f.Roots = append(f.Roots, n)
			mark(n)
		}
	}

	return f
}

// Node returns the node with the given id, or nil.
func (f *Forest) Node(id int64) *Node {
	return f.index[id]
}

// Parent returns the parent of the given node, or nil for roots.
func (f *Forest) Parent(id int64) *Node {
	return f.parents[id]
}

// Len returns the total number of nodes in the forest.
func (f *Forest) Len() int {
	return len(f.index)
}

// Flatten walks the forest depth-first and returns the flat row set.
// Rows carry whatever ParentID, SortOrder, and Path the nodes currently
// hold; it is the structural operations' job to keep those canonical.
func (f *Forest) Flatten() []models.Category {
	rows := make([]models.Category, 0, len(f.index))
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			rows = append(rows, n.Category)
			walk(n.Children)
		}
	}
	walk(f.Roots)
	return rows
}

// siblingsOf returns the sibling slice containing id: the parent's
// child list, or the root list for top-level nodes.
func (f *Forest) siblingsOf(id int64) []*Node {
	if p := f.parents[id]; p != nil {
		return p.Children
	}
	return f.Roots
}
