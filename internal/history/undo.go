// Package history provides bounded undo/redo over category forest
// snapshots. Because the category store is copy-on-write, snapshots share
// structure and keeping many of them is cheap.
package history

import "github.com/breeze-rmm/scriptkit/internal/category"

// Stack holds past and future forest snapshots around the caller's current
// forest. The caller owns the current snapshot; the stack only holds what it
// was handed.
type Stack struct {
	past   [][]*category.Node
	future [][]*category.Node
	limit  int
}

// NewStack creates a stack keeping at most limit undo steps. Oldest steps
// fall off first.
func NewStack(limit int) *Stack {
	if limit < 1 {
		limit = 1
	}
	return &Stack{limit: limit}
}

// Push records the forest that is about to be replaced by a mutation. Any
// redo branch is discarded.
func (s *Stack) Push(forest []*category.Node) {
	s.past = append(s.past, forest)
	if len(s.past) > s.limit {
		s.past = s.past[len(s.past)-s.limit:]
	}
	s.future = nil
}

// Undo exchanges current for the most recent snapshot. Returns current
// unchanged and false when there is nothing to undo.
func (s *Stack) Undo(current []*category.Node) ([]*category.Node, bool) {
	if len(s.past) == 0 {
		return current, false
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, current)
	return prev, true
}

// Redo reverses the most recent Undo. Returns current unchanged and false
// when there is nothing to redo.
func (s *Stack) Redo(current []*category.Node) ([]*category.Node, bool) {
	if len(s.future) == 0 {
		return current, false
	}
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, current)
	return next, true
}

// CanUndo reports whether an Undo would change anything.
func (s *Stack) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether a Redo would change anything.
func (s *Stack) CanRedo() bool { return len(s.future) > 0 }

// Len returns the number of undoable steps.
func (s *Stack) Len() int { return len(s.past) }

// Clear drops all snapshots, e.g. after loading a different library.
func (s *Stack) Clear() {
	s.past = nil
	s.future = nil
}
