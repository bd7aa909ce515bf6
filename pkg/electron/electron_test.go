package electron

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

// memScheme keeps saved documents in a map keyed by path
type memScheme struct {
	files map[string]*Tree
}

func newMemScheme() *memScheme {
	return &memScheme{files: make(map[string]*Tree)}
}

func (m *memScheme) NewScheme() *Tree { return NewTree() }

func (m *memScheme) LoadFromFile(path string) (*Tree, error) {
	t, ok := m.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return t, nil
}

func (m *memScheme) SaveToFile(path string, t *Tree) error {
	m.files[path] = t
	return nil
}

func mustImage(t *testing.T, s string) *image.Image {
	t.Helper()
	img, err := image.ParseString(s)
	require.NoError(t, err)
	return img
}

func buildDoc(t *testing.T) (*Electron, NodeID, NodeID, NodeID) {
	t.Helper()
	e := New(newMemScheme())

	u1, err := e.Insert(tree.Root, NewComponent("U1", image.Pt(100, 50), mustImage(t, "RECT 10 0 10 5\nJOIN 0 0")))
	require.NoError(t, err)
	r1, err := e.Insert(u1, NewComponent("R1", image.Pt(5, 5), mustImage(t, "LINE 0 0 4 0")))
	require.NoError(t, err)

	w := NewWire("N1", image.Pt(0, 0))
	w.AddPoint(image.Pt(0, 0))
	w.AddPoint(image.Pt(10, 0))
	n1, err := e.Insert(tree.Root, w)
	require.NoError(t, err)

	return e, u1, r1, n1
}

func TestSetCurrentInTree(t *testing.T) {
	e, u1, _, _ := buildDoc(t)

	require.True(t, e.SetCurrent(u1))
	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, "U1", cur.Name)
	assert.Equal(t, u1, e.CurrentID())
}

func TestSetCurrentNotInTree(t *testing.T) {
	e, u1, _, _ := buildDoc(t)
	require.True(t, e.SetCurrent(u1))

	assert.False(t, e.SetCurrent(NodeID{}))

	// a handle that was removed from this tree
	victim, err := e.Insert(tree.Root, NewComponent("tmp", image.Pt(0, 0), nil))
	require.NoError(t, err)
	require.NoError(t, e.Remove(victim))
	assert.False(t, e.SetCurrent(victim))

	// failed attempts leave the selection unchanged
	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, "U1", cur.Name)
}

func TestRotateCurrentWithoutSelection(t *testing.T) {
	e, u1, _, _ := buildDoc(t)
	before, _ := e.Tree().Get(u1)
	snapshot := before.Clone()

	assert.NotPanics(t, func() {
		e.RotateCurrent(90)
		e.ReflectCurrent(AxisX)
	})

	after, _ := e.Tree().Get(u1)
	assert.Equal(t, snapshot.Image, after.Image)
	assert.Equal(t, snapshot.Pos, after.Pos)
}

func TestRotateCurrentTransformsOnlySelection(t *testing.T) {
	e, u1, r1, _ := buildDoc(t)
	require.True(t, e.SetCurrent(u1))

	e.RotateCurrent(90)

	u, _ := e.Tree().Get(u1)
	assert.True(t, u.Image.Rects[0].Pos.ApproxEqual(image.Pt(0, 10), 1e-9))
	assert.Equal(t, image.Pt(100, 50), u.Pos, "placement is not part of the drawing")

	r, _ := e.Tree().Get(r1)
	assert.Equal(t, image.Pt(4, 0), r.Image.Lines[0].End, "children keep their own drawing")
}

func TestReflectCurrentWire(t *testing.T) {
	e, _, _, n1 := buildDoc(t)
	require.True(t, e.SetCurrent(n1))

	e.ReflectCurrent(AxisY)
	w, _ := e.Tree().Get(n1)
	assert.Equal(t, []Point{image.Pt(0, 0), image.Pt(-10, 0)}, w.Points)

	e.RotateCurrent(-90)
	assert.Equal(t, []Point{image.Pt(0, 0), image.Pt(0, 10)}, w.Points)
}

func TestRemoveClearsSelection(t *testing.T) {
	e, u1, r1, n1 := buildDoc(t)

	require.True(t, e.SetCurrent(r1))
	require.NoError(t, e.Remove(u1)) // r1 is inside u1's subtree

	_, ok := e.Current()
	assert.False(t, ok)
	assert.True(t, e.CurrentID().IsZero())
	assert.False(t, e.Tree().Contains(r1))

	// removing something else leaves the selection alone
	require.True(t, e.SetCurrent(n1))
	extra, err := e.Insert(tree.Root, NewComponent("X", image.Pt(0, 0), nil))
	require.NoError(t, err)
	require.NoError(t, e.Remove(extra))
	_, ok = e.Current()
	assert.True(t, ok)

	assert.Error(t, e.Remove(u1))
}

func TestMoveAndWorldPos(t *testing.T) {
	e, u1, r1, _ := buildDoc(t)

	pos, ok := e.WorldPos(r1)
	require.True(t, ok)
	assert.Equal(t, image.Pt(105, 55), pos)

	require.NoError(t, e.Move(u1, image.Pt(0, 0)))
	pos, _ = e.WorldPos(r1)
	assert.Equal(t, image.Pt(5, 5), pos)

	assert.Error(t, e.Move(NodeID{}, image.Pt(1, 1)))
}

func TestSchemeDelegation(t *testing.T) {
	e, u1, _, _ := buildDoc(t)
	require.NoError(t, e.SaveToFile("a.esch"))
	saved := e.Tree()

	e.NewScheme()
	assert.Equal(t, 0, e.Tree().Len())
	assert.False(t, e.SetCurrent(u1))

	require.NoError(t, e.LoadFromFile("a.esch"))
	assert.Same(t, saved, e.Tree())
	require.True(t, e.SetCurrent(u1))

	require.Error(t, e.LoadFromFile("missing.esch"))
	_, ok := e.Current()
	assert.True(t, ok, "a failed load keeps the document and selection")
}

func TestLoadClearsSelection(t *testing.T) {
	e, u1, _, _ := buildDoc(t)
	require.NoError(t, e.SaveToFile("a.esch"))
	require.True(t, e.SetCurrent(u1))

	require.NoError(t, e.LoadFromFile("a.esch"))
	_, ok := e.Current()
	assert.False(t, ok)
}

func TestNoScheme(t *testing.T) {
	e := New(nil)
	assert.Equal(t, 0, e.Tree().Len())
	assert.True(t, errors.Is(e.LoadFromFile("x"), ErrNoScheme))
	assert.True(t, errors.Is(e.SaveToFile("x"), ErrNoScheme))
}
