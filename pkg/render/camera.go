// Package render draws an electron document with gio.
package render

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

// Zoom limits in pixels per world unit
const (
	MinZoom = 0.1
	MaxZoom = 1000.0
)

// Camera is a viewport onto the document's world plane
type Camera struct {
	// Center position in world coordinates
	CenterX float64
	CenterY float64

	// Zoom level (pixels per world unit)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int

	// InvertY maps world +Y to screen up. Documents are y-up, so this is the
	// default.
	InvertY bool
}

// NewCamera creates a camera centered on the origin
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		InvertY:      true,
	}
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(pos image.Point) (float64, float64) {
	x := (pos.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0

	if c.InvertY {
		y = float64(c.ScreenHeight) - y
	}
	return x, y
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(screenX, screenY float64) image.Point {
	y := screenY
	if c.InvertY {
		y = float64(c.ScreenHeight) - screenY
	}

	return image.Point{
		X: (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX,
		Y: (y-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY,
	}
}

// Pan moves the view by screen pixel offsets, dragging the content along
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	if c.InvertY {
		c.CenterY += deltaY / c.Zoom
	} else {
		c.CenterY -= deltaY / c.Zoom
	}
}

// ZoomAt zooms by factor keeping the world point under (screenX, screenY)
// fixed. factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, c.Zoom*factor))

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centers bbox and zooms so it fills 90% of the screen. A degenerate
// box (a point or a line) is centered without changing the zoom along the
// missing dimension.
func (c *Camera) Fit(bbox image.BoundingBox) {
	if bbox.IsEmpty() {
		return
	}
	center := bbox.Center()
	c.CenterX, c.CenterY = center.X, center.Y

	zoom := math.Inf(1)
	if w := bbox.Width(); w > 0 {
		zoom = float64(c.ScreenWidth) * 0.9 / w
	}
	if h := bbox.Height(); h > 0 {
		zoom = math.Min(zoom, float64(c.ScreenHeight)*0.9/h)
	}
	if !math.IsInf(zoom, 1) {
		c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, zoom))
	}
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the world area currently on screen
func (c *Camera) VisibleBounds() image.BoundingBox {
	bb := image.NewBoundingBox()
	bb.Expand(c.ScreenToWorld(0, 0))
	bb.Expand(c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight)))
	return bb
}
