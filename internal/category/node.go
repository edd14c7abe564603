// Package category maintains the script library's category forest.
//
// All mutating operations are copy-on-write: they return a new forest that
// shares untouched subtrees with the input, and return the input slice itself
// when the target id is absent. Callers replace their forest reference
// atomically, so snapshots held elsewhere (undo history, in-flight renders)
// never observe a mutation.
package category

import "github.com/google/uuid"

// RootID is the sentinel parent id that addresses the top-level forest in
// AddSubcategory. It is never the id of a real node.
const RootID = "root"

// Node is a single category in the forest. Children are owned exclusively by
// their parent and ordered.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
}

// NewNode creates a category with a generated id and no children.
func NewNode(name string) *Node {
	return &Node{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// clone returns a shallow copy of the node. Children still point at the
// original child nodes; callers replace the slice when they change it.
func (n *Node) clone() *Node {
	c := *n
	return &c
}

// Count returns the number of nodes in the forest, all depths included.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}
