package electron

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// Scheme loads and saves documents. The controller never looks at the
// serialized form itself.
type Scheme interface {
	// NewScheme returns an empty document
	NewScheme() *Tree
	// LoadFromFile reads a document from path
	LoadFromFile(path string) (*Tree, error)
	// SaveToFile writes t to path
	SaveToFile(path string, t *Tree) error
}

// ErrNoScheme is returned by load/save when the controller has no Scheme
var ErrNoScheme = errors.New("no scheme attached")

// Electron owns the document tree and the current selection. The selection
// is a handle resolved against the tree on every use, so removing a node
// can never leave it dangling.
type Electron struct {
	tree    *Tree
	current NodeID
	scheme  Scheme
}

// New creates a controller with an empty document. scheme may be nil if
// the caller never loads or saves.
func New(scheme Scheme) *Electron {
	e := &Electron{scheme: scheme}
	e.tree = e.emptyTree()
	return e
}

func (e *Electron) emptyTree() *Tree {
	if e.scheme != nil {
		if t := e.scheme.NewScheme(); t != nil {
			return t
		}
	}
	return NewTree()
}

// Tree gives read access to the whole document. Mutations should go through
// the controller so the selection stays consistent.
func (e *Electron) Tree() *Tree {
	return e.tree
}

// Scheme returns the attached load/save collaborator
func (e *Electron) Scheme() Scheme {
	return e.scheme
}

// SetCurrent selects id. It fails, leaving the selection unchanged, if id is
// not in the tree.
func (e *Electron) SetCurrent(id NodeID) bool {
	if !e.tree.Contains(id) {
		return false
	}
	e.current = id
	return true
}

// Current returns the selected element, if any
func (e *Electron) Current() (*Element, bool) {
	if e.current.IsZero() {
		return nil, false
	}
	el, ok := e.tree.Get(e.current)
	if !ok {
		e.current = NodeID{}
		return nil, false
	}
	return el, true
}

// CurrentID returns the selection handle; zero when nothing is selected
func (e *Electron) CurrentID() NodeID {
	if !e.tree.Contains(e.current) {
		return NodeID{}
	}
	return e.current
}

// ClearCurrent drops the selection
func (e *Electron) ClearCurrent() {
	e.current = NodeID{}
}

// RotateCurrent rotates the selected element by angle degrees. Without a
// selection it does nothing.
func (e *Electron) RotateCurrent(angle float64) {
	if el, ok := e.Current(); ok {
		el.Rotate(angle)
	}
}

// ReflectCurrent mirrors the selected element. Without a selection it does
// nothing.
func (e *Electron) ReflectCurrent(axis Axis) {
	if el, ok := e.Current(); ok {
		el.Reflect(axis)
	}
}

// Insert adds el under parent (tree.Root for top level)
func (e *Electron) Insert(parent NodeID, el Element) (NodeID, error) {
	id, err := e.tree.Add(parent, el)
	if err != nil {
		return NodeID{}, fmt.Errorf("insert %q: %w", el.Name, err)
	}
	return id, nil
}

// Remove deletes id and its subtree, clearing the selection first if it
// points inside that subtree
func (e *Electron) Remove(id NodeID) error {
	if !e.tree.Contains(id) {
		return fmt.Errorf("remove: %w", tree.ErrNotFound)
	}
	if !e.current.IsZero() && e.tree.IsAncestor(id, e.current) {
		e.current = NodeID{}
	}
	_, err := e.tree.Remove(id)
	return err
}

// Move places id at pos in its parent's frame
func (e *Electron) Move(id NodeID, pos Point) error {
	el, ok := e.tree.Get(id)
	if !ok {
		return fmt.Errorf("move: %w", tree.ErrNotFound)
	}
	el.Pos = pos
	return nil
}

// FindByName returns the first element in pre-order with the given name
func (e *Electron) FindByName(name string) (NodeID, bool) {
	return e.tree.Find(func(el *Element) bool { return el.Name == name })
}

// WorldPos returns the absolute position of id's local origin, summing the
// placements of its ancestors
func (e *Electron) WorldPos(id NodeID) (Point, bool) {
	var pos Point
	for cur := id; !cur.IsZero(); {
		el, ok := e.tree.Get(cur)
		if !ok {
			return Point{}, false
		}
		pos = pos.Add(el.Pos)
		cur, _ = e.tree.Parent(cur)
	}
	return pos, true
}

// NewScheme replaces the document with an empty one
func (e *Electron) NewScheme() {
	e.tree = e.emptyTree()
	e.current = NodeID{}
}

// LoadFromFile replaces the document with the one stored at path. On error
// the current document and selection are kept.
func (e *Electron) LoadFromFile(path string) error {
	if e.scheme == nil {
		return ErrNoScheme
	}
	t, err := e.scheme.LoadFromFile(path)
	if err != nil {
		return err
	}
	e.tree = t
	e.current = NodeID{}
	return nil
}

// SaveToFile writes the document to path
func (e *Electron) SaveToFile(path string) error {
	if e.scheme == nil {
		return ErrNoScheme
	}
	return e.scheme.SaveToFile(path, e.tree)
}
