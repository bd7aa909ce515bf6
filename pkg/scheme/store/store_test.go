package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/tree"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "lib", "schemes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doc(t *testing.T, names ...string) *electron.Tree {
	t.Helper()
	d := electron.NewTree()
	for _, n := range names {
		img, err := image.ParseString(`STRING 0 0 "` + n + `"`)
		require.NoError(t, err)
		_, err = d.Add(tree.Root, electron.NewComponent(n, image.Pt(0, 0), img))
		require.NoError(t, err)
	}
	return d
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.Put(ctx, "amp", doc(t, "U1", "R1")))

	got, err := s.Get(ctx, "amp")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	id, ok := got.Find(func(el *electron.Element) bool { return el.Name == "R1" })
	require.True(t, ok)
	el, _ := got.Get(id)
	assert.Equal(t, "R1", el.Image.Strings[0].Text)

	// Put replaces
	require.NoError(t, s.Put(ctx, "amp", doc(t, "U9")))
	got, err = s.Get(ctx, "amp")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, s.Put(ctx, "b", doc(t, "X")))
	require.NoError(t, s.Put(ctx, "a", doc(t, "X", "Y", "Z")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, 3, entries[0].Elements)
	assert.Positive(t, entries[0].Size)
	assert.Equal(t, int64(1700000000), entries[1].UpdatedAt.Unix())

	require.NoError(t, s.Delete(ctx, "a"))
	assert.True(t, errors.Is(s.Delete(ctx, "a"), ErrNotFound))

	_, err = s.Get(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotFound))

	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPutRejectsEmptyName(t *testing.T) {
	s := openTemp(t)
	assert.Error(t, s.Put(context.Background(), "", doc(t)))
}
