// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// path.go maintains the materialized path of every node: the dot-joined
// ancestor id chain from root to the node, inclusive ("1.4.12"). Paths
// make cycle detection and subtree queries a string prefix test.
package tree

import (
	"strconv"
	"strings"
)

// pathSep joins path segments. Matches the ltree convention.
const pathSep = "."

// ChildPath returns the path of a node with the given id under
// parentPath. An empty parentPath denotes a root node.
func ChildPath(parentPath string, id int64) string {
	if parentPath == "" {
		return strconv.FormatInt(id, 10)
	}
	return parentPath + pathSep + strconv.FormatInt(id, 10)
}

// ParentPath returns the path of a node's parent, or "" for root paths.
func ParentPath(path string) string {
	i := strings.LastIndex(path, pathSep)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// Depth returns the number of segments in a path. The empty path has
// depth zero.
func Depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, pathSep) + 1
}

// IsDescendantPath reports whether p lies strictly inside the subtree
// rooted at ancestor. A path is not a descendant of itself.
func IsDescendantPath(ancestor, p string) bool {
	return strings.HasPrefix(p, ancestor+pathSep)
}

// AssignPaths recomputes the path of every node in the forest from its
// current parent chain. Cost is O(total nodes).
func (f *Forest) AssignPaths() {
	for _, root := range f.Roots {
		f.assignSubtree(root, "")
	}
}

// assignSubtree recomputes paths for one subtree under the given parent
// path. Used after a move so only the moved subtree shifts, bounding
// the repath to O(subtree size) rather than the whole tree.
func (f *Forest) assignSubtree(n *Node, parentPath string) {
	n.Path = ChildPath(parentPath, n.ID)
	for _, c := range n.Children {
		f.assignSubtree(c, n.Path)
	}
}
