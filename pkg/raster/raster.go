// Package raster exports electron documents as PNG images. Drawing happens
// at a multiple of the target size and is scaled down with CatmullRom, which
// stands in for antialiasing.
package raster

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

// Options control the output image
type Options struct {
	Width    int
	Height   int
	Padding  int     // pixels kept clear on every side
	Scale    int     // supersampling factor
	FontSize float64 // points at the target size
	Line     float64 // line width in pixels at the target size

	Background color.Color
	Ink        color.Color
	Wire       color.Color
	Current    color.Color
}

// DefaultOptions returns an 800x600 light rendering
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Padding:    40,
		Scale:      4,
		FontSize:   12,
		Line:       1.5,
		Background: color.RGBA{255, 255, 255, 255},
		Ink:        color.RGBA{132, 0, 0, 255},
		Wire:       color.RGBA{0, 132, 0, 255},
		Current:    color.RGBA{255, 0, 0, 255},
	}
}

type canvas struct {
	img   *stdimage.RGBA
	line  float64
	face  font.Face
	zoom  float64
	minX  float64
	maxY  float64
	offX  float64
	offY  float64
	arcN  int
	scale float64
}

// world → supersampled pixel; y grows down on the canvas
func (c *canvas) px(p image.Point) (float64, float64) {
	return (p.X-c.minX)*c.zoom + c.offX, (c.maxY-p.Y)*c.zoom + c.offY
}

func newCanvas(bb image.BoundingBox, opts Options) (*canvas, error) {
	s := opts.Scale
	if s < 1 {
		s = 1
	}
	w, h := opts.Width*s, opts.Height*s
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), stdimage.NewUniform(opts.Background), stdimage.Point{}, draw.Src)

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * float64(s),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	c := &canvas{img: img, line: opts.Line * float64(s), face: face, arcN: 48, scale: float64(s)}
	if bb.IsEmpty() {
		return c, nil
	}

	pad := float64(opts.Padding * s)
	availW, availH := float64(w)-2*pad, float64(h)-2*pad
	c.zoom = math.Inf(1)
	if bw := bb.Width(); bw > 0 {
		c.zoom = availW / bw
	}
	if bh := bb.Height(); bh > 0 {
		c.zoom = math.Min(c.zoom, availH/bh)
	}
	if math.IsInf(c.zoom, 1) {
		c.zoom = c.scale
	}
	c.minX, c.maxY = bb.Min.X, bb.Max.Y
	c.offX = pad + (availW-bb.Width()*c.zoom)/2
	c.offY = pad + (availH-bb.Height()*c.zoom)/2
	return c, nil
}

// Render draws the whole document fitted into the output size. current, if
// non-zero, is drawn in the Current color.
func Render(t *electron.Tree, current electron.NodeID, opts Options) (*stdimage.RGBA, error) {
	c, err := newCanvas(electron.WorldBounds(t), opts)
	if err != nil {
		return nil, err
	}
	electron.WalkWorld(t, func(id electron.NodeID, origin image.Point, el *electron.Element) bool {
		c.element(origin, el, id == current && !current.IsZero(), opts)
		return true
	})
	return c.finish(opts), nil
}

// RenderElement draws a single element, without its children, in its local
// frame
func RenderElement(el *electron.Element, opts Options) (*stdimage.RGBA, error) {
	c, err := newCanvas(el.Bounds(), opts)
	if err != nil {
		return nil, err
	}
	c.element(image.Point{}, el, false, opts)
	return c.finish(opts), nil
}

// WritePNG renders t and encodes it to w
func WritePNG(w io.Writer, t *electron.Tree, current electron.NodeID, opts Options) error {
	img, err := Render(t, current, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (c *canvas) finish(opts Options) *stdimage.RGBA {
	if c.scale == 1 {
		return c.img
	}
	out := stdimage.NewRGBA(stdimage.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	return out
}

func (c *canvas) element(origin image.Point, el *electron.Element, selected bool, opts Options) {
	ink := opts.Ink
	if el.IsWire() {
		ink = opts.Wire
	}
	if selected {
		ink = opts.Current
	}

	if el.IsWire() {
		c.polyline(origin, el.Points, ink)
		return
	}
	if el.Image == nil {
		return
	}

	img := el.Image
	for _, r := range img.Rects {
		a, b := r.Corners()
		c.polyline(origin, []image.Point{a, image.Pt(b.X, a.Y), b, image.Pt(a.X, b.Y), a}, ink)
	}
	for _, a := range img.Arcs {
		c.polyline(origin, a.Points(c.arcN), ink)
	}
	for _, l := range img.Lines {
		c.polyline(origin, []image.Point{l.Start, l.End}, ink)
	}
	for _, a := range img.Arrows {
		left, right := a.Barbs()
		c.polyline(origin, []image.Point{a.Line.Start, a.Line.End}, ink)
		c.polyline(origin, []image.Point{left, a.Line.End, right}, ink)
	}
	for _, j := range img.Joins {
		x, y := c.px(origin.Add(j.Pos))
		c.dot(x, y, 2*c.line, ink)
	}
	for _, s := range img.Strings {
		x, y := c.px(origin.Add(s.Pos))
		c.text(x, y, s.Text, ink)
	}
}

func (c *canvas) polyline(origin image.Point, pts []image.Point, col color.Color) {
	for i := 1; i < len(pts); i++ {
		x1, y1 := c.px(origin.Add(pts[i-1]))
		x2, y2 := c.px(origin.Add(pts[i]))
		c.segment(x1, y1, x2, y2, col)
	}
}

// segment draws a thick line by stamping perpendicular spans along it
func (c *canvas) segment(x1, y1, x2, y2 float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	half := c.line / 2
	if dist < 1 {
		c.dot(x1, y1, half, col)
		return
	}

	perpX, perpY := -dy/dist, dx/dist
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx, cy := x1+dx*t, y1+dy*t
		for off := -half; off <= half; off += 0.5 {
			c.img.Set(int(cx+perpX*off), int(cy+perpY*off), col)
		}
	}
}

func (c *canvas) dot(x, y, r float64, col color.Color) {
	for ty := -r; ty <= r; ty++ {
		for tx := -r; tx <= r; tx++ {
			if tx*tx+ty*ty <= r*r {
				c.img.Set(int(x+tx), int(y+ty), col)
			}
		}
	}
}

// text draws s with its baseline starting at (x, y)
func (c *canvas) text(x, y float64, s string, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  stdimage.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(int(y))},
	}
	d.DrawString(s)
}
