// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// move.go implements drag semantics: a drag gesture reduces to
// (draggedID, targetID, position) before it reaches this package, and
// the engine only ever sees that semantic triple.
package tree

import (
	"errors"
	"fmt"
)

// Position describes where the dragged node lands relative to the target.
type Position string

const (
	// PositionChild appends the dragged node as the target's last child.
	PositionChild Position = "child"
	// PositionAbove inserts the dragged node as the sibling before the target.
	PositionAbove Position = "above"
	// PositionBelow inserts the dragged node as the sibling after the target.
	PositionBelow Position = "below"
)

// Valid reports whether p is one of the three drop positions.
func (p Position) Valid() bool {
	switch p {
	case PositionChild, PositionAbove, PositionBelow:
		return true
	}
	return false
}

// RootID is the sentinel target for dropping a node at the top level.
const RootID int64 = 0

var (
	// ErrInvalidMove rejects a self-drop or a drop that would make a
	// node its own ancestor.
	ErrInvalidMove = errors.New("invalid move")

	// ErrUnknownNode means a referenced id does not resolve in the forest.
	ErrUnknownNode = errors.New("unknown node")
)

// ValidateMove checks a proposed reparent without mutating anything.
// It fails with ErrInvalidMove when the drop is a no-op (onto itself)
// or would create a cycle (onto a node inside the dragged subtree),
// and with ErrUnknownNode when either id does not resolve. Paths must
// be assigned before calling.
func (f *Forest) ValidateMove(draggedID, targetID int64, pos Position) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: position %q", ErrInvalidMove, pos)
	}

	dragged := f.index[draggedID]
	if dragged == nil {
		return fmt.Errorf("%w: dragged %d", ErrUnknownNode, draggedID)
	}

	if targetID == RootID {
		// Top-level drop: only "child of root" is meaningful.
		if pos != PositionChild {
			return fmt.Errorf("%w: position %q relative to root", ErrInvalidMove, pos)
		}
		return nil
	}

	target := f.index[targetID]
	if target == nil {
		return fmt.Errorf("%w: target %d", ErrUnknownNode, targetID)
	}

	if draggedID == targetID {
		return fmt.Errorf("%w: node %d dropped on itself", ErrInvalidMove, draggedID)
	}
	if IsDescendantPath(dragged.Path, target.Path) {
		return fmt.Errorf("%w: %d is inside the subtree of %d", ErrInvalidMove, targetID, draggedID)
	}
	return nil
}

// Move reparents and reorders the dragged node relative to the target.
// With PositionChild the node becomes the target's last child (target
// RootID appends it as the last root). With PositionAbove/Below the
// node joins the target's sibling group immediately before/after it.
// Both affected sibling groups are renumbered densely and the moved
// subtree's paths are recomputed; nothing else changes.
func (f *Forest) Move(draggedID, targetID int64, pos Position) error {
	if err := f.ValidateMove(draggedID, targetID, pos); err != nil {
		return err
	}

	dragged := f.index[draggedID]
	oldParent := f.parents[draggedID]
	f.detach(dragged)

	switch {
	case targetID == RootID:
		f.attach(dragged, nil, len(f.Roots))
	case pos == PositionChild:
		target := f.index[targetID]
		f.attach(dragged, target, len(target.Children))
	default:
		parent := f.parents[targetID]
		idx := indexOf(f.siblingsOf(targetID), targetID)
		if pos == PositionBelow {
			idx++
		}
		f.attach(dragged, parent, idx)
	}

	// Renumber the group the node left; attach already renumbered the
	// one it joined.
	if oldParent != f.parents[draggedID] {
		if oldParent != nil {
			renumber(oldParent.Children)
		} else {
			renumber(f.Roots)
		}
	}

	return nil
}

// detach removes n from its current sibling group without renumbering.
func (f *Forest) detach(n *Node) {
	if p := f.parents[n.ID]; p != nil {
		p.Children = removeNode(p.Children, n.ID)
		delete(f.parents, n.ID)
	} else {
		f.Roots = removeNode(f.Roots, n.ID)
	}
}

// attach inserts n at index idx under parent (nil for root), fixes the
// node's ParentID, renumbers the receiving group, and recomputes the
// moved subtree's paths.
func (f *Forest) attach(n *Node, parent *Node, idx int) {
	parentPath := ""
	if parent == nil {
		f.Roots = insertNode(f.Roots, n, idx)
		n.ParentID = nil
		renumber(f.Roots)
	} else {
		parent.Children = insertNode(parent.Children, n, idx)
		id := parent.ID
		n.ParentID = &id
		f.parents[n.ID] = parent
		renumber(parent.Children)
		parentPath = parent.Path
	}
	f.assignSubtree(n, parentPath)
}

func indexOf(nodes []*Node, id int64) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func removeNode(nodes []*Node, id int64) []*Node {
	i := indexOf(nodes, id)
	if i < 0 {
		return nodes
	}
	return append(nodes[:i], nodes[i+1:]...)
}

func insertNode(nodes []*Node, n *Node, idx int) []*Node {
	if idx < 0 || idx > len(nodes) {
		idx = len(nodes)
	}
	nodes = append(nodes, nil)
	copy(nodes[idx+1:], nodes[idx:])
	nodes[idx] = n
	return nodes
}
