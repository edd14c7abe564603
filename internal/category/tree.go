package category

// Find returns the first node with the given id, searching depth-first, or
// nil when the id is absent. Callers treat nil as "gone", not as an error.
func Find(forest []*Node, id string) *Node {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindName returns the display name of the node with the given id.
func FindName(forest []*Node, id string) (string, bool) {
	if n := Find(forest, id); n != nil {
		return n.Name, true
	}
	return "", false
}

// DescendantIDs returns the ids of every node below id in pre-order,
// excluding id itself. The result is empty when the node is absent or has no
// children. Together with the queried id this forms the highlight set for a
// selected category.
func DescendantIDs(forest []*Node, id string) []string {
	n := Find(forest, id)
	if n == nil {
		return nil
	}
	var ids []string
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, c := range nodes {
			ids = append(ids, c.ID)
			walk(c.Children)
		}
	}
	walk(n.Children)
	return ids
}

// Rename returns a forest in which the node with the given id carries the
// new name. Nodes on the path to it are shallow-copied, everything else is
// shared with the input. The input is returned unchanged when the id is
// absent.
func Rename(forest []*Node, id, name string) []*Node {
	renamed, ok := renameIn(forest, id, name)
	if !ok {
		return forest
	}
	return renamed
}

func renameIn(nodes []*Node, id, name string) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			copied := n.clone()
			copied.Name = name
			return replaceAt(nodes, i, copied), true
		}
		if children, ok := renameIn(n.Children, id, name); ok {
			copied := n.clone()
			copied.Children = children
			return replaceAt(nodes, i, copied), true
		}
	}
	return nodes, false
}

// AddSubcategory returns a forest with child appended to the children of the
// node with parentID. Passing RootID appends to the top level instead. The
// input is returned unchanged when parentID is absent and not the sentinel.
func AddSubcategory(forest []*Node, parentID string, child *Node) []*Node {
	if parentID == RootID {
		out := make([]*Node, len(forest), len(forest)+1)
		copy(out, forest)
		return append(out, child)
	}
	added, ok := addIn(forest, parentID, child)
	if !ok {
		return forest
	}
	return added
}

func addIn(nodes []*Node, parentID string, child *Node) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == parentID {
			copied := n.clone()
			copied.Children = append(append([]*Node{}, n.Children...), child)
			return replaceAt(nodes, i, copied), true
		}
		if children, ok := addIn(n.Children, parentID, child); ok {
			copied := n.clone()
			copied.Children = children
			return replaceAt(nodes, i, copied), true
		}
	}
	return nodes, false
}

// RemoveSubtree returns a forest without the node carrying the given id or
// any of its descendants, wherever it sits. Removing an absent id is a
// no-op, which also makes the operation idempotent.
func RemoveSubtree(forest []*Node, id string) []*Node {
	removed, changed := removeIn(forest, id)
	if !changed {
		return forest
	}
	return removed
}

// removeIn filters the matching node out of each sibling list, then recurses
// into the children of the survivors.
func removeIn(nodes []*Node, id string) ([]*Node, bool) {
	changed := false
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == id {
			changed = true
			continue
		}
		if children, childChanged := removeIn(n.Children, id); childChanged {
			copied := n.clone()
			copied.Children = children
			n = copied
			changed = true
		}
		out = append(out, n)
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// ReorderSiblings returns a forest in which the dragged node has been moved
// to the target node's position within their shared sibling list. Both ids
// must sit in the same list; a drag onto a node in a different subtree is a
// no-op rather than a re-parent. Indexes are taken from the list before the
// dragged node is removed.
func ReorderSiblings(forest []*Node, draggedID, targetID string) []*Node {
	moved, ok := reorderIn(forest, draggedID, targetID)
	if !ok {
		return forest
	}
	return moved
}

func reorderIn(nodes []*Node, draggedID, targetID string) ([]*Node, bool) {
	draggedIdx, targetIdx := -1, -1
	for i, n := range nodes {
		switch n.ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx >= 0 && targetIdx >= 0 {
		return spliceTo(nodes, draggedIdx, targetIdx), true
	}
	for i, n := range nodes {
		if children, ok := reorderIn(n.Children, draggedID, targetID); ok {
			copied := n.clone()
			copied.Children = children
			return replaceAt(nodes, i, copied), true
		}
	}
	return nodes, false
}

// spliceTo returns a copy of nodes with the element at from removed and
// reinserted at position to (an index into the original list).
func spliceTo(nodes []*Node, from, to int) []*Node {
	moved := nodes[from]
	rest := make([]*Node, 0, len(nodes))
	rest = append(rest, nodes[:from]...)
	rest = append(rest, nodes[from+1:]...)

	out := make([]*Node, 0, len(nodes))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// replaceAt returns a copy of nodes with index i swapped for n.
func replaceAt(nodes []*Node, i int, n *Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	out[i] = n
	return out
}
