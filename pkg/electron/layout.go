package electron

import (
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// WalkWorld visits every element in pre-order together with the world
// position of its local origin. Returning false from fn skips the element's
// subtree.
func WalkWorld(t *Tree, fn func(id NodeID, origin Point, el *Element) bool) {
	var visit func(id NodeID, parent Point)
	visit = func(id NodeID, parent Point) {
		el, ok := t.Get(id)
		if !ok {
			return
		}
		origin := parent.Add(el.Pos)
		if !fn(id, origin, el) {
			return
		}
		for _, child := range t.Children(id) {
			visit(child, origin)
		}
	}
	for _, id := range t.Children(tree.Root) {
		visit(id, Point{})
	}
}

// WorldBounds returns the extent of the whole document in world coordinates
func WorldBounds(t *Tree) image.BoundingBox {
	bb := image.NewBoundingBox()
	WalkWorld(t, func(_ NodeID, origin Point, el *Element) bool {
		bb.ExpandBox(el.Bounds().Translate(origin))
		return true
	})
	return bb
}

// Pick returns the element whose world bounds, grown by tol, contain p.
// When several do, the one drawn last wins, so children beat their parents.
func Pick(t *Tree, p Point, tol float64) (NodeID, bool) {
	var (
		hit   NodeID
		found bool
	)
	WalkWorld(t, func(id NodeID, origin Point, el *Element) bool {
		if el.Bounds().Translate(origin).Grow(tol).Contains(p) {
			hit, found = id, true
		}
		return true
	})
	return hit, found
}
