package electron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

func TestWalkWorldOrigins(t *testing.T) {
	e, u1, r1, n1 := buildDoc(t)

	origins := map[NodeID]Point{}
	WalkWorld(e.Tree(), func(id NodeID, origin Point, _ *Element) bool {
		origins[id] = origin
		return true
	})
	assert.Equal(t, image.Pt(100, 50), origins[u1])
	assert.Equal(t, image.Pt(105, 55), origins[r1])
	assert.Equal(t, image.Pt(0, 0), origins[n1])

	visited := 0
	WalkWorld(e.Tree(), func(NodeID, Point, *Element) bool {
		visited++
		return false
	})
	assert.Equal(t, 2, visited, "returning false skips children")
}

func TestWorldBounds(t *testing.T) {
	e, _, _, _ := buildDoc(t)

	bb := WorldBounds(e.Tree())
	assert.Equal(t, image.Pt(0, 0), bb.Min)
	assert.Equal(t, image.Pt(120, 55), bb.Max)

	assert.True(t, WorldBounds(NewTree()).IsEmpty())
}

func TestPickPrefersChildren(t *testing.T) {
	e, u1, r1, n1 := buildDoc(t)

	// u1 covers (100,50)-(120,55) in world space and r1 sits on its edge
	id, ok := Pick(e.Tree(), image.Pt(107, 55), 0.1)
	require.True(t, ok)
	assert.Equal(t, r1, id)

	id, ok = Pick(e.Tree(), image.Pt(115, 52), 0.1)
	require.True(t, ok)
	assert.Equal(t, u1, id)

	id, ok = Pick(e.Tree(), image.Pt(5, 0.2), 0.5)
	require.True(t, ok)
	assert.Equal(t, n1, id)

	_, ok = Pick(e.Tree(), image.Pt(-50, -50), 1)
	assert.False(t, ok)
}
