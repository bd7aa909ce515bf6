package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

func TestWorldScreenRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 10, -5
	c.Zoom = 4

	for _, p := range []image.Point{image.Pt(0, 0), image.Pt(10, -5), image.Pt(-3.5, 12)} {
		sx, sy := c.WorldToScreen(p)
		assert.True(t, c.ScreenToWorld(sx, sy).ApproxEqual(p, 1e-9), "point %v", p)
	}

	sx, sy := c.WorldToScreen(image.Pt(10, -5))
	assert.Equal(t, 400.0, sx)
	assert.Equal(t, 300.0, sy)
}

func TestInvertYPutsPositiveYUp(t *testing.T) {
	c := NewCamera(100, 100)
	_, low := c.WorldToScreen(image.Pt(0, 0))
	_, high := c.WorldToScreen(image.Pt(0, 1))
	assert.Less(t, high, low)

	c.InvertY = false
	_, low = c.WorldToScreen(image.Pt(0, 0))
	_, high = c.WorldToScreen(image.Pt(0, 1))
	assert.Greater(t, high, low)
}

func TestPanDragsContent(t *testing.T) {
	c := NewCamera(100, 100)
	before := image.Pt(3, 4)
	x0, y0 := c.WorldToScreen(before)

	c.Pan(15, -7)
	x1, y1 := c.WorldToScreen(before)
	assert.InDelta(t, x0+15, x1, 1e-9)
	assert.InDelta(t, y0-7, y1, 1e-9)
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	c := NewCamera(640, 480)
	under := c.ScreenToWorld(100, 50)

	c.ZoomAt(100, 50, 2.5)
	assert.Equal(t, 25.0, c.Zoom)
	assert.True(t, c.ScreenToWorld(100, 50).ApproxEqual(under, 1e-9))

	c.ZoomAt(0, 0, 1e9)
	assert.Equal(t, MaxZoom, c.Zoom)
	c.ZoomAt(0, 0, 1e-12)
	assert.Equal(t, MinZoom, c.Zoom)
}

func TestFit(t *testing.T) {
	c := NewCamera(200, 100)
	bb := image.NewBoundingBox()
	bb.Expand(image.Pt(0, 0))
	bb.Expand(image.Pt(20, 5))

	c.Fit(bb)
	assert.Equal(t, 10.0, c.CenterX)
	assert.Equal(t, 2.5, c.CenterY)
	assert.InDelta(t, 9.0, c.Zoom, 1e-9) // width-limited: 200*0.9/20

	// a horizontal line only constrains the width
	line := image.NewBoundingBox()
	line.Expand(image.Pt(0, 1))
	line.Expand(image.Pt(90, 1))
	c.Fit(line)
	assert.InDelta(t, 2.0, c.Zoom, 1e-9)
	assert.Equal(t, 1.0, c.CenterY)

	zoom := c.Zoom
	c.Fit(image.NewBoundingBox())
	assert.Equal(t, zoom, c.Zoom, "empty box leaves the camera alone")
}

func TestVisibleBounds(t *testing.T) {
	c := NewCamera(100, 50)
	c.Zoom = 10
	vb := c.VisibleBounds()
	assert.InDelta(t, -5, vb.Min.X, 1e-9)
	assert.InDelta(t, 5, vb.Max.X, 1e-9)
	assert.InDelta(t, -2.5, vb.Min.Y, 1e-9)
	assert.InDelta(t, 2.5, vb.Max.Y, 1e-9)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("solarized"))
	assert.Equal(t, "dark", ThemeDark.String())
	assert.NotEqual(t, GetColors(ThemeDark).Background, GetColors(ThemeLight).Background)
}
