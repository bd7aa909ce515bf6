package electron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

func TestWireDrawing(t *testing.T) {
	w := NewWire("N2", image.Pt(3, 3))
	assert.True(t, w.IsWire())
	assert.Nil(t, w.Image)

	// ReplaceLastPoint on an empty wire is a no-op
	w.ReplaceLastPoint(image.Pt(9, 9))
	assert.Empty(t, w.Points)

	w.AddPoint(image.Pt(0, 0))
	w.AddPoint(image.Pt(5, 0))
	w.ReplaceLastPoint(image.Pt(5, 5))
	w.AddPoint(image.Pt(10, 5))

	segs := w.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, image.Line{Start: image.Pt(0, 0), End: image.Pt(5, 5)}, segs[0])
	assert.Equal(t, image.Line{Start: image.Pt(5, 5), End: image.Pt(10, 5)}, segs[1])

	bb := w.Bounds()
	assert.Equal(t, image.Pt(0, 0), bb.Min)
	assert.Equal(t, image.Pt(10, 5), bb.Max)

	assert.False(t, w.DeleteLastPoint())
	assert.False(t, w.DeleteLastPoint())
	assert.True(t, w.DeleteLastPoint())
	assert.True(t, w.DeleteLastPoint(), "deleting from an empty wire stays empty")
	assert.Nil(t, w.Segments())
}

func TestComponentDefaultsAndIdentity(t *testing.T) {
	a := NewComponent("U1", image.Pt(0, 0), nil)
	b := NewComponent("U1", image.Pt(0, 0), nil)

	require.NotNil(t, a.Image)
	assert.True(t, a.Image.IsEmpty())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, KindComponent, a.Kind)
	assert.Equal(t, "component", a.Kind.String())
}

func TestElementCloneIsIndependent(t *testing.T) {
	img, err := image.ParseString(`RECT 0 0 2 1 STRING 1 1 "U1"`)
	require.NoError(t, err)
	orig := NewComponent("U1", image.Pt(1, 2), img)

	c := orig.Clone()
	assert.Equal(t, orig.ID, c.ID)
	c.Rotate(90)
	c.Image.Strings[0].Text = "U2"

	assert.Equal(t, image.Pt(0, 0), orig.Image.Rects[0].Pos)
	assert.Equal(t, 2.0, orig.Image.Rects[0].Width)
	assert.Equal(t, "U1", orig.Image.Strings[0].Text)

	w := NewWire("N", image.Pt(0, 0))
	w.AddPoint(image.Pt(1, 1))
	wc := w.Clone()
	wc.Reflect(AxisX)
	assert.Equal(t, image.Pt(1, 1), w.Points[0])
	assert.Equal(t, image.Pt(1, -1), wc.Points[0])
}

func TestElementString(t *testing.T) {
	e := NewComponent("R7", image.Pt(2, -1), nil)
	assert.Equal(t, `component "R7" at (2, -1)`, e.String())
}

func TestWireComplete(t *testing.T) {
	w := NewWire("N3", image.Pt(10, 10))
	w.AddPoint(image.Pt(2, 0))
	w.AddPoint(image.Pt(6, 0))
	w.AddPoint(image.Pt(6, 4))
	w.AddPoint(image.Pt(9, 9)) // follows the pointer

	require.True(t, w.Complete())
	assert.Equal(t, image.Pt(12, 10), w.Pos)
	assert.Equal(t, []image.Point{image.Pt(0, 0), image.Pt(4, 0), image.Pt(4, 4)}, w.Points)
}

func TestWireCompleteNeedsASegment(t *testing.T) {
	tests := []struct {
		name   string
		points []image.Point
	}{
		{"empty", nil},
		{"anchor only", []image.Point{image.Pt(0, 0)}},
		{"anchor and pointer", []image.Point{image.Pt(0, 0), image.Pt(5, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWire("N", image.Pt(1, 1))
			for _, p := range tt.points {
				w.AddPoint(p)
			}
			assert.False(t, w.Complete())
			assert.Equal(t, image.Pt(1, 1), w.Pos)
		})
	}
}
