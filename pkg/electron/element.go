// Package electron models a schematic document: a tree of elements, each a
// placed component drawn by an Image or a wire, plus the controller that
// tracks the current selection and forwards transforms to it.
package electron

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// Axis re-exports image.Axis for callers that only deal with elements
type Axis = image.Axis

const (
	AxisX = image.AxisX
	AxisY = image.AxisY
)

// Point re-exports image.Point
type Point = image.Point

// ElementKind tags what an Element represents
type ElementKind int

const (
	// KindComponent is a placed unit drawn by its Image
	KindComponent ElementKind = iota
	// KindWire is a connector made of a polyline
	KindWire
)

func (k ElementKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindWire:
		return "wire"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// Element is one named schematic unit. Pos places the element's local frame
// in its parent; Image and Points are in local coordinates.
type Element struct {
	ID   uuid.UUID
	Name string
	Kind ElementKind
	Pos  Point

	// Image draws a component; nil for wires
	Image *image.Image
	// Points is the wire polyline; unused for components
	Points []Point
}

// Tree is the document hierarchy of elements
type Tree = tree.Tree[Element]

// NodeID is a handle to an element inside a Tree
type NodeID = tree.NodeID

// NewTree returns an empty document tree
func NewTree() *Tree {
	return tree.New[Element]()
}

// NewComponent creates a component element drawn by img
func NewComponent(name string, pos Point, img *image.Image) Element {
	if img == nil {
		img = &image.Image{}
	}
	return Element{
		ID:    uuid.New(),
		Name:  name,
		Kind:  KindComponent,
		Pos:   pos,
		Image: img,
	}
}

// NewWire creates an empty wire anchored at pos
func NewWire(name string, pos Point) Element {
	return Element{
		ID:   uuid.New(),
		Name: name,
		Kind: KindWire,
		Pos:  pos,
	}
}

// IsWire reports whether e is a connector
func (e *Element) IsWire() bool {
	return e.Kind == KindWire
}

// Rotate rotates the element's drawing about its local origin. The placement
// (Pos) does not change.
func (e *Element) Rotate(angle float64) {
	switch e.Kind {
	case KindComponent:
		if e.Image != nil {
			e.Image.Rotate(angle)
		}
	case KindWire:
		for i := range e.Points {
			e.Points[i].Rotate(angle)
		}
	}
}

// Reflect mirrors the element's drawing across axis in its local frame
func (e *Element) Reflect(axis Axis) {
	switch e.Kind {
	case KindComponent:
		if e.Image != nil {
			e.Image.Reflect(axis)
		}
	case KindWire:
		for i := range e.Points {
			e.Points[i].Reflect(axis)
		}
	}
}

// Clone returns a copy sharing no mutable storage with e. The copy keeps the
// same ID; callers inserting it as a new element should assign a fresh one.
func (e Element) Clone() Element {
	c := e
	c.Image = e.Image.Clone()
	c.Points = append([]Point(nil), e.Points...)
	return c
}

// AddPoint appends a vertex to a wire
func (e *Element) AddPoint(p Point) {
	e.Points = append(e.Points, p)
}

// ReplaceLastPoint moves the last vertex of a wire, which is how a wire
// follows the pointer while it is being drawn. It is a no-op on an empty wire.
func (e *Element) ReplaceLastPoint(p Point) {
	if n := len(e.Points); n > 0 {
		e.Points[n-1] = p
	}
}

// DeleteLastPoint drops the last vertex and reports whether the wire is now
// empty
func (e *Element) DeleteLastPoint() bool {
	if n := len(e.Points); n > 0 {
		e.Points = e.Points[:n-1]
	}
	return len(e.Points) == 0
}

// Complete finishes a wire that was drawn interactively. The last vertex is
// the one that followed the pointer and is dropped. A wire left without a
// single segment cannot be completed and is not changed further. Otherwise
// Pos is moved onto the first vertex, which becomes the local origin.
func (e *Element) Complete() bool {
	e.DeleteLastPoint()
	if len(e.Points) < 2 {
		return false
	}
	first := e.Points[0]
	e.Pos = e.Pos.Add(first)
	for i := range e.Points {
		e.Points[i] = e.Points[i].Sub(first)
	}
	return true
}

// Segments returns consecutive vertex pairs as lines
func (e *Element) Segments() []image.Line {
	if len(e.Points) < 2 {
		return nil
	}
	segs := make([]image.Line, 0, len(e.Points)-1)
	for i := 1; i < len(e.Points); i++ {
		segs = append(segs, image.Line{Start: e.Points[i-1], End: e.Points[i]})
	}
	return segs
}

// Bounds returns the element's extent in its local frame
func (e *Element) Bounds() image.BoundingBox {
	if e.Kind == KindWire {
		bb := image.NewBoundingBox()
		for _, p := range e.Points {
			bb.Expand(p)
		}
		return bb
	}
	return e.Image.Bounds()
}

func (e *Element) String() string {
	return fmt.Sprintf("%s %q at %v", e.Kind, e.Name, e.Pos)
}
