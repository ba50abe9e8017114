// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// reorder.go keeps sibling sort_order values densely packed and applies
// whole-tree reorders submitted as a nested snapshot.
package tree

import (
	"errors"
	"fmt"

	"paperdeck/internal/models"
)

// ErrBadSnapshot rejects a whole-tree reorder whose snapshot is
// internally inconsistent: duplicate ids, ids that do not exist, or
// ids missing from the snapshot.
var ErrBadSnapshot = errors.New("inconsistent tree snapshot")

// renumber rewrites one sibling group's sort_order to the dense
// sequence 0, 1, 2, … in current slice order. Repeated insertions at
// the same spot can never overflow because every insertion re-densifies
// the group; the pass covers a single group, so cost is bounded by the
// branching factor, not the tree size.
func renumber(siblings []*Node) {
	for i, n := range siblings {
		n.SortOrder = i
	}
}

// ApplyOrdering replaces every node's parent and sibling position with
// the structure described by the snapshot, then recomputes all paths.
// The snapshot must mention exactly the ids currently in the forest,
// each once; nesting is taken literally, so a well-formed snapshot
// cannot encode a cycle. Names in the snapshot are ignored.
func (f *Forest) ApplyOrdering(snapshot []models.TreeNode) error {
	seen := make(map[int64]bool, f.Len())
	var collect func(nodes []models.TreeNode) error
	collect = func(nodes []models.TreeNode) error {
		for _, n := range nodes {
			if seen[n.ID] {
				return fmt.Errorf("%w: duplicate id %d", ErrBadSnapshot, n.ID)
			}
			if f.index[n.ID] == nil {
				return fmt.Errorf("%w: unknown id %d", ErrBadSnapshot, n.ID)
			}
			seen[n.ID] = true
			if err := collect(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(snapshot); err != nil {
		return err
	}
	if len(seen) != f.Len() {
		return fmt.Errorf("%w: %d of %d nodes present", ErrBadSnapshot, len(seen), f.Len())
	}

	f.Roots = f.Roots[:0]
	f.parents = make(map[int64]*Node, f.Len())

	var place func(nodes []models.TreeNode, parent *Node)
	place = func(nodes []models.TreeNode, parent *Node) {
		for i, sn := range nodes {
			n := f.index[sn.ID]
			n.Children = nil
			n.SortOrder = i
			if parent == nil {
				n.ParentID = nil
				f.Roots = append(f.Roots, n)
			} else {
				id := parent.ID
				n.ParentID = &id
				parent.Children = append(parent.Children, n)
				f.parents[n.ID] = parent
			}
			place(sn.Children, n)
		}
	}
	place(snapshot, nil)

	// Every node was explicitly placed, so prior orphan promotions are
	// resolved by the new structure.
	f.Orphans = nil
	f.AssignPaths()
	return nil
}
