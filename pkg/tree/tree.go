// Package tree provides an arena-backed ordered tree.
//
// Values live in a flat slot table owned by the Tree. Parent and child links
// are NodeID handles rather than pointers, so there are no ownership cycles
// and a handle to a removed node simply stops resolving.
package tree

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a NodeID does not refer to a live node
var ErrNotFound = errors.New("node not found")

// NodeID is a stable handle to a node. The zero value refers to no node.
type NodeID struct {
	index uint32 // slot index + 1, 0 means none
	gen   uint32
}

// Root is the pseudo-parent of top-level nodes
var Root = NodeID{}

// IsZero reports whether id is the empty handle
func (id NodeID) IsZero() bool {
	return id.index == 0
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(none)"
	}
	return fmt.Sprintf("node(%d#%d)", id.index-1, id.gen)
}

type slot[T any] struct {
	value    T
	gen      uint32
	alive    bool
	parent   NodeID
	children []NodeID
}

// Tree is an ordered forest of values of type T. It is not safe for
// concurrent use.
type Tree[T any] struct {
	slots []slot[T]
	free  []uint32
	roots []NodeID
	count int
}

// New creates an empty tree
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

func (t *Tree[T]) slot(id NodeID) *slot[T] {
	if id.index == 0 || int(id.index) > len(t.slots) {
		return nil
	}
	s := &t.slots[id.index-1]
	if !s.alive || s.gen != id.gen {
		return nil
	}
	return s
}

// Contains reports whether id refers to a node currently in the tree
func (t *Tree[T]) Contains(id NodeID) bool {
	return t.slot(id) != nil
}

// Len returns the number of live nodes
func (t *Tree[T]) Len() int {
	return t.count
}

// Add appends v as the last child of parent (Root for a top-level node)
func (t *Tree[T]) Add(parent NodeID, v T) (NodeID, error) {
	if !parent.IsZero() && !t.Contains(parent) {
		return NodeID{}, fmt.Errorf("add under %s: %w", parent, ErrNotFound)
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		idx = uint32(len(t.slots))
	}

	s := &t.slots[idx-1]
	s.gen++
	s.alive = true
	s.value = v
	s.parent = parent
	s.children = nil
	id := NodeID{index: idx, gen: s.gen}

	if parent.IsZero() {
		t.roots = append(t.roots, id)
	} else {
		p := t.slot(parent)
		p.children = append(p.children, id)
	}
	t.count++
	return id, nil
}

// Get returns a pointer to the stored value. The pointer is only valid until
// the next Add or Remove.
func (t *Tree[T]) Get(id NodeID) (*T, bool) {
	s := t.slot(id)
	if s == nil {
		return nil, false
	}
	return &s.value, true
}

// Set replaces the value stored at id
func (t *Tree[T]) Set(id NodeID, v T) error {
	s := t.slot(id)
	if s == nil {
		return fmt.Errorf("set %s: %w", id, ErrNotFound)
	}
	s.value = v
	return nil
}

// Parent returns the parent of id, or Root for a top-level node
func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	s := t.slot(id)
	if s == nil {
		return NodeID{}, false
	}
	return s.parent, true
}

// Children returns the children of id in insertion order. Passing Root
// returns the top-level nodes.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	if id.IsZero() {
		return append([]NodeID(nil), t.roots...)
	}
	s := t.slot(id)
	if s == nil {
		return nil
	}
	return append([]NodeID(nil), s.children...)
}

// Roots returns the top-level nodes in insertion order
func (t *Tree[T]) Roots() []NodeID {
	return t.Children(Root)
}

// IsAncestor reports whether anc is id itself or one of its ancestors
func (t *Tree[T]) IsAncestor(anc, id NodeID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == anc {
			return true
		}
		s := t.slot(cur)
		if s == nil {
			return false
		}
		cur = s.parent
	}
	return false
}

// Remove deletes id and its whole subtree. It returns the removed handles in
// pre-order, which callers use to drop any references they hold.
func (t *Tree[T]) Remove(id NodeID) ([]NodeID, error) {
	s := t.slot(id)
	if s == nil {
		return nil, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}

	if s.parent.IsZero() {
		t.roots = without(t.roots, id)
	} else if p := t.slot(s.parent); p != nil {
		p.children = without(p.children, id)
	}

	var removed []NodeID
	t.walk(id, 0, func(n NodeID, _ int, _ *T) bool {
		removed = append(removed, n)
		return true
	})
	var zero T
	for _, n := range removed {
		ns := &t.slots[n.index-1]
		ns.alive = false
		ns.value = zero
		ns.children = nil
		ns.parent = NodeID{}
		t.free = append(t.free, n.index)
	}
	t.count -= len(removed)
	return removed, nil
}

// Clear removes every node. Handles issued before Clear never resolve again.
func (t *Tree[T]) Clear() {
	for _, id := range t.Roots() {
		t.Remove(id)
	}
}

// Walk visits every node in pre-order with its depth (top-level nodes have
// depth 0). Returning false from fn stops the walk.
func (t *Tree[T]) Walk(fn func(id NodeID, depth int, v *T) bool) {
	for _, r := range t.roots {
		if !t.walk(r, 0, fn) {
			return
		}
	}
}

// WalkFrom visits id and its descendants in pre-order
func (t *Tree[T]) WalkFrom(id NodeID, fn func(id NodeID, depth int, v *T) bool) {
	if t.Contains(id) {
		t.walk(id, 0, fn)
	}
}

func (t *Tree[T]) walk(id NodeID, depth int, fn func(NodeID, int, *T) bool) bool {
	s := t.slot(id)
	if s == nil {
		return true
	}
	if !fn(id, depth, &s.value) {
		return false
	}
	for _, c := range s.children {
		if !t.walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in pre-order whose value matches pred
func (t *Tree[T]) Find(pred func(v *T) bool) (NodeID, bool) {
	var found NodeID
	t.Walk(func(id NodeID, _ int, v *T) bool {
		if pred(v) {
			found = id
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

func without(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
