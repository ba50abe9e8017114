// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package tree

// DeletionSet returns the id plus every descendant id, in ascending
// path order, using the materialized-path prefix test. Deleting exactly
// this set guarantees no orphaned children survive the parent's
// deletion. Returns nil when the id does not resolve.
func (f *Forest) DeletionSet(id int64) []int64 {
	root := f.index[id]
	if root == nil {
		return nil
	}

	ids := []int64{root.ID}
	for _, row := range f.Flatten() {
		if IsDescendantPath(root.Path, row.Path) {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Remove detaches the subtree rooted at id from the forest and drops
// all its nodes from the index, renumbering the sibling group it left.
// Call after the deletion set has been persisted away.
func (f *Forest) Remove(id int64) {
	n := f.index[id]
	if n == nil {
		return
	}

	parent := f.parents[id]
	f.detach(n)
	if parent != nil {
		renumber(parent.Children)
	} else {
		renumber(f.Roots)
	}

	var drop func(n *Node)
	drop = func(n *Node) {
		delete(f.index, n.ID)
		delete(f.parents, n.ID)
		for _, c := range n.Children {
			drop(c)
		}
	}
	drop(n)
}
