package render

import (
	stdimage "image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

// Options tune how a document is drawn
type Options struct {
	StrokeWidth  float32 // pixels
	JoinDiameter float32 // pixels
	TextSize     unit.Sp
	ArcSegments  int
	ShowBounds   bool // frame every element, not just the current one
}

// DefaultOptions returns the options used by the viewer
func DefaultOptions() Options {
	return Options{
		StrokeWidth:  2,
		JoinDiameter: 8,
		TextSize:     12,
		ArcSegments:  32,
	}
}

// Global theme for text rendering
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// RenderTree draws every element of t over whatever is already painted. The
// element identified by current is drawn in the highlight color with its
// bounds shaded.
func RenderTree(gtx layout.Context, camera *Camera, t *electron.Tree, current electron.NodeID, colors *Colors, opts Options) {
	electron.WalkWorld(t, func(id electron.NodeID, origin image.Point, el *electron.Element) bool {
		selected := !current.IsZero() && id == current
		if selected || opts.ShowBounds {
			renderBounds(gtx, camera, el.Bounds().Translate(origin), colors.Selection)
		}
		if el.IsWire() {
			c := colors.Wire
			if selected {
				c = colors.Current
			}
			renderPolyline(gtx, camera, origin, el.Points, c, opts.StrokeWidth)
			return true
		}
		renderImage(gtx, camera, origin, el.Image, colors, selected, opts)
		return true
	})
}

// RenderWire draws a wire that is not part of a tree yet, such as one being
// drawn. Its Pos is taken as a world position.
func RenderWire(gtx layout.Context, camera *Camera, el *electron.Element, c color.NRGBA, opts Options) {
	renderPolyline(gtx, camera, el.Pos, el.Points, c, opts.StrokeWidth)
}

// RenderGrid draws grid dots every step world units over the visible area
func RenderGrid(gtx layout.Context, camera *Camera, step float64, colors *Colors) {
	if step <= 0 || step*camera.Zoom < 8 {
		return
	}
	vis := camera.VisibleBounds()
	for x := math.Floor(vis.Min.X/step) * step; x <= vis.Max.X; x += step {
		for y := math.Floor(vis.Min.Y/step) * step; y <= vis.Max.Y; y += step {
			sx, sy := camera.WorldToScreen(image.Pt(x, y))
			paint.FillShape(gtx.Ops, colors.Grid, clip.Rect{
				Min: stdimage.Pt(int(sx)-1, int(sy)-1),
				Max: stdimage.Pt(int(sx)+1, int(sy)+1),
			}.Op())
		}
	}
}

func renderImage(gtx layout.Context, camera *Camera, origin image.Point, img *image.Image, colors *Colors, selected bool, opts Options) {
	if img == nil {
		return
	}
	pick := func(c color.NRGBA) color.NRGBA {
		if selected {
			return colors.Current
		}
		return c
	}

	for _, r := range img.Rects {
		a, b := r.Corners()
		renderPolyline(gtx, camera, origin, []image.Point{
			a, image.Pt(b.X, a.Y), b, image.Pt(a.X, b.Y), a,
		}, pick(colors.Body), opts.StrokeWidth)
	}
	for _, a := range img.Arcs {
		renderPolyline(gtx, camera, origin, a.Points(opts.ArcSegments), pick(colors.Body), opts.StrokeWidth)
	}
	for _, l := range img.Lines {
		renderPolyline(gtx, camera, origin, []image.Point{l.Start, l.End}, pick(colors.Body), opts.StrokeWidth)
	}
	for _, a := range img.Arrows {
		left, right := a.Barbs()
		c := pick(colors.Arrow)
		renderPolyline(gtx, camera, origin, []image.Point{a.Line.Start, a.Line.End}, c, opts.StrokeWidth)
		renderPolyline(gtx, camera, origin, []image.Point{left, a.Line.End, right}, c, opts.StrokeWidth)
	}
	for _, j := range img.Joins {
		x, y := camera.WorldToScreen(origin.Add(j.Pos))
		r := opts.JoinDiameter / 2
		paint.FillShape(gtx.Ops, pick(colors.Join),
			clip.Ellipse{
				Min: stdimage.Pt(int(float32(x)-r), int(float32(y)-r)),
				Max: stdimage.Pt(int(float32(x)+r), int(float32(y)+r)),
			}.Op(gtx.Ops))
	}
	for _, s := range img.Strings {
		renderText(gtx, camera, origin.Add(s.Pos), s.Text, pick(colors.Text), opts.TextSize)
	}
}

func renderPolyline(gtx layout.Context, camera *Camera, origin image.Point, pts []image.Point, c color.NRGBA, width float32) {
	if len(pts) < 2 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	for i, p := range pts {
		x, y := camera.WorldToScreen(origin.Add(p))
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}

	paint.FillShape(gtx.Ops, c, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
}

func renderBounds(gtx layout.Context, camera *Camera, bb image.BoundingBox, c color.NRGBA) {
	if bb.IsEmpty() {
		return
	}
	bb = bb.Grow(2 / camera.Zoom)
	x0, y0 := camera.WorldToScreen(bb.Min)
	x1, y1 := camera.WorldToScreen(bb.Max)
	paint.FillShape(gtx.Ops, c, clip.Rect{
		Min: stdimage.Pt(int(math.Min(x0, x1)), int(math.Min(y0, y1))),
		Max: stdimage.Pt(int(math.Max(x0, x1)), int(math.Max(y0, y1))),
	}.Op())
}

// renderText draws s with its baseline-left corner at the world anchor
func renderText(gtx layout.Context, camera *Camera, anchor image.Point, s string, c color.NRGBA, size unit.Sp) {
	if s == "" {
		return
	}
	x, y := camera.WorldToScreen(anchor)

	defer op.Offset(stdimage.Pt(int(x), int(y)-gtx.Sp(size))).Push(gtx.Ops).Pop()

	lbl := material.Label(defaultTheme, size, s)
	lbl.Color = c
	lbl.Alignment = text.Start
	gtx.Constraints.Min = stdimage.Point{}
	lbl.Layout(gtx)
}
