package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, tr *Tree[string], parent NodeID, v string) NodeID {
	t.Helper()
	id, err := tr.Add(parent, v)
	require.NoError(t, err)
	return id
}

func collect(tr *Tree[string]) []string {
	var out []string
	tr.Walk(func(_ NodeID, depth int, v *string) bool {
		prefix := ""
		for i := 0; i < depth; i++ {
			prefix += "."
		}
		out = append(out, prefix+*v)
		return true
	})
	return out
}

func TestAddAndWalk(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	b := mustAdd(t, tr, Root, "b")
	a1 := mustAdd(t, tr, a, "a1")
	mustAdd(t, tr, a1, "a1x")
	mustAdd(t, tr, a, "a2")
	mustAdd(t, tr, b, "b1")

	assert.Equal(t, 6, tr.Len())
	assert.Equal(t, []string{"a", ".a1", "..a1x", ".a2", "b", ".b1"}, collect(tr))
	assert.Equal(t, []NodeID{a, b}, tr.Roots())

	parent, ok := tr.Parent(a1)
	require.True(t, ok)
	assert.Equal(t, a, parent)

	parent, ok = tr.Parent(a)
	require.True(t, ok)
	assert.True(t, parent.IsZero())
}

func TestAddUnderMissingParent(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	_, err := tr.Remove(a)
	require.NoError(t, err)

	_, err = tr.Add(a, "orphan")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, tr.Len())
}

func TestRemoveSubtree(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	a1 := mustAdd(t, tr, a, "a1")
	a1x := mustAdd(t, tr, a1, "a1x")
	a2 := mustAdd(t, tr, a, "a2")

	removed, err := tr.Remove(a1)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a1, a1x}, removed)
	assert.False(t, tr.Contains(a1))
	assert.False(t, tr.Contains(a1x))
	assert.True(t, tr.Contains(a2))
	assert.Equal(t, []NodeID{a2}, tr.Children(a))
	assert.Equal(t, 2, tr.Len())

	_, err = tr.Remove(a1)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	tr := New[string]()
	old := mustAdd(t, tr, Root, "old")
	_, err := tr.Remove(old)
	require.NoError(t, err)

	fresh := mustAdd(t, tr, Root, "fresh")
	assert.NotEqual(t, old, fresh)
	assert.False(t, tr.Contains(old))

	_, ok := tr.Get(old)
	assert.False(t, ok)

	v, ok := tr.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh", *v)
}

func TestGetSetMutate(t *testing.T) {
	tr := New[string]()
	id := mustAdd(t, tr, Root, "x")

	v, ok := tr.Get(id)
	require.True(t, ok)
	*v = "y"

	got, _ := tr.Get(id)
	assert.Equal(t, "y", *got)

	require.NoError(t, tr.Set(id, "z"))
	got, _ = tr.Get(id)
	assert.Equal(t, "z", *got)

	assert.Error(t, tr.Set(NodeID{}, "nope"))
}

func TestFindAndWalkStop(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	target := mustAdd(t, tr, a, "target")
	mustAdd(t, tr, Root, "target")

	id, ok := tr.Find(func(v *string) bool { return *v == "target" })
	require.True(t, ok)
	assert.Equal(t, target, id, "pre-order finds the nested node first")

	_, ok = tr.Find(func(v *string) bool { return *v == "missing" })
	assert.False(t, ok)

	visited := 0
	tr.Walk(func(NodeID, int, *string) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestIsAncestorAndWalkFrom(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	a1 := mustAdd(t, tr, a, "a1")
	a1x := mustAdd(t, tr, a1, "a1x")
	b := mustAdd(t, tr, Root, "b")

	assert.True(t, tr.IsAncestor(a, a1x))
	assert.True(t, tr.IsAncestor(a1x, a1x))
	assert.False(t, tr.IsAncestor(b, a1x))
	assert.False(t, tr.IsAncestor(a1x, a))

	var seen []string
	tr.WalkFrom(a1, func(_ NodeID, depth int, v *string) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []string{"a1", "a1x"}, seen)
}

func TestClear(t *testing.T) {
	tr := New[string]()
	a := mustAdd(t, tr, Root, "a")
	mustAdd(t, tr, a, "a1")
	mustAdd(t, tr, Root, "b")

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Roots())
	assert.False(t, tr.Contains(a))
}

func TestZeroHandle(t *testing.T) {
	var id NodeID
	assert.True(t, id.IsZero())
	assert.Equal(t, "node(none)", id.String())

	tr := New[string]()
	assert.False(t, tr.Contains(id))
	_, ok := tr.Parent(id)
	assert.False(t, ok)
}
