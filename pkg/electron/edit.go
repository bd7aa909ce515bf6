package electron

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// WireBuilder draws a wire from clicks in world coordinates. While a wire is
// being drawn its last vertex follows the pointer.
type WireBuilder struct {
	wire *Element
}

// Active reports whether a wire is being drawn
func (b *WireBuilder) Active() bool {
	return b.wire != nil
}

// Wire returns the wire in progress, nil when none is. Its Pos is a world
// position.
func (b *WireBuilder) Wire() *Element {
	return b.wire
}

// Click fixes the vertex at p and starts the next one. The first click
// anchors a new wire called name at p.
func (b *WireBuilder) Click(p Point, name string) {
	if b.wire == nil {
		el := NewWire(name, p)
		el.AddPoint(Point{})
		el.AddPoint(Point{})
		b.wire = &el
		return
	}
	local := p.Sub(b.wire.Pos)
	b.wire.ReplaceLastPoint(local)
	b.wire.AddPoint(local)
}

// Hover moves the vertex that follows the pointer
func (b *WireBuilder) Hover(p Point) {
	if b.wire != nil {
		b.wire.ReplaceLastPoint(p.Sub(b.wire.Pos))
	}
}

// Back drops the vertex that follows the pointer, handing that role to the
// one before it. Dropping back to the anchor abandons the wire.
func (b *WireBuilder) Back() {
	if b.wire == nil {
		return
	}
	if b.wire.DeleteLastPoint() || len(b.wire.Points) < 2 {
		b.wire = nil
	}
}

// Cancel abandons the wire in progress
func (b *WireBuilder) Cancel() {
	b.wire = nil
}

// Finish completes the wire and inserts it at the top level of e, selecting
// it. It reports false when the wire had no segment to keep.
func (b *WireBuilder) Finish(e *Electron) (bool, error) {
	el := b.wire
	b.wire = nil
	if el == nil || !el.Complete() {
		return false, nil
	}
	id, err := e.Insert(tree.Root, *el)
	if err != nil {
		return false, err
	}
	e.SetCurrent(id)
	return true, nil
}

// NextWireName returns the first of N1, N2, ... not used in the document
func (e *Electron) NextWireName() string {
	return e.freeName("N")
}

func (e *Electron) freeName(prefix string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		if _, ok := e.FindByName(name); !ok {
			return name
		}
	}
}

// Drag moves one element with the pointer
type Drag struct {
	id    NodeID
	start Point // element Pos when the drag began
	grab  Point // world point that was grabbed
}

// BeginDrag starts dragging the selection when world, within tol, hits the
// selected element itself
func (e *Electron) BeginDrag(world Point, tol float64) (Drag, bool) {
	el, ok := e.Current()
	if !ok {
		return Drag{}, false
	}
	hit, ok := Pick(e.tree, world, tol)
	if !ok || hit != e.current {
		return Drag{}, false
	}
	return Drag{id: hit, start: el.Pos, grab: world}, true
}

// DragTo moves the dragged element so the grabbed point sits under world
func (e *Electron) DragTo(d Drag, world Point) error {
	return e.Move(d.id, d.start.Add(world.Sub(d.grab)))
}

// DuplicateCurrent inserts a copy of the selected element, without its
// children, under the same parent and shifted by offset, then selects it.
// The copy gets a new ID and the first free name of the form <name>_<n>.
func (e *Electron) DuplicateCurrent(offset Point) (NodeID, error) {
	el, ok := e.Current()
	if !ok {
		return NodeID{}, fmt.Errorf("duplicate: nothing selected")
	}
	parent, _ := e.tree.Parent(e.current)

	c := el.Clone()
	c.ID = uuid.New()
	c.Pos = c.Pos.Add(offset)
	c.Name = e.freeName(el.Name + "_")

	id, err := e.Insert(parent, c)
	if err != nil {
		return NodeID{}, err
	}
	e.SetCurrent(id)
	return id, nil
}
