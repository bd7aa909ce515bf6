package image

import (
	"fmt"
	"math"
)

// Kind identifies one of the closed set of primitive variants
type Kind int

const (
	KindRect Kind = iota
	KindArc
	KindLine
	KindArrow
	KindString
	KindJoin

	numKinds
)

// kindTags is the record tag vocabulary, indexed by Kind. It is part of the
// file format and must not be reordered or renamed.
var kindTags = [numKinds]string{
	KindRect:   "RECT",
	KindArc:    "ARC",
	KindLine:   "LINE",
	KindArrow:  "ARROW",
	KindString: "STRING",
	KindJoin:   "JOIN",
}

// Tag returns the record tag used in token streams
func (k Kind) Tag() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTags[k]
}

func (k Kind) String() string {
	return k.Tag()
}

// KindFromTag looks up the primitive kind for a record tag
func KindFromTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// Item is a single drawable primitive. The set of implementations is closed:
// *Rectangle, *Arc, *Line, *Arrow, *String and *Join.
type Item interface {
	Kind() Kind
	Rotate(angle float64)
	Reflect(axis Axis)
	// Tokens returns the record including its leading tag
	Tokens() []string

	parse(s *TokenStream) error
}

// newItem allocates an empty primitive for a record kind
func newItem(k Kind) Item {
	switch k {
	case KindRect:
		return &Rectangle{}
	case KindArc:
		return &Arc{}
	case KindLine:
		return &Line{}
	case KindArrow:
		return &Arrow{}
	case KindString:
		return &String{}
	case KindJoin:
		return &Join{}
	}
	return nil
}

// record formats a tag followed by its numeric fields
func record(k Kind, fields ...float64) []string {
	out := make([]string, 0, len(fields)+2)
	out = append(out, k.Tag())
	for _, f := range fields {
		out = append(out, formatFloat(f))
	}
	return out
}

func parsePoint(s *TokenStream, p *Point) error {
	x, err := s.Float()
	if err != nil {
		return err
	}
	y, err := s.Float()
	if err != nil {
		return err
	}
	p.X, p.Y = x, y
	return nil
}

// Rectangle is an origin corner plus a signed extent
type Rectangle struct {
	Pos    Point
	Width  float64
	Height float64
}

func (r *Rectangle) Kind() Kind { return KindRect }

// Corners returns the two defining corners: Pos and Pos+(Width, Height)
func (r Rectangle) Corners() (Point, Point) {
	return r.Pos, Point{X: r.Pos.X + r.Width, Y: r.Pos.Y + r.Height}
}

func (r *Rectangle) setCorners(a, b Point) {
	r.Pos = a
	r.Width = b.X - a.X
	r.Height = b.Y - a.Y
}

// Rotate rotates both defining corners about the origin
func (r *Rectangle) Rotate(angle float64) {
	a, b := r.Corners()
	a.Rotate(angle)
	b.Rotate(angle)
	r.setCorners(a, b)
}

// Reflect mirrors both defining corners
func (r *Rectangle) Reflect(axis Axis) {
	a, b := r.Corners()
	a.Reflect(axis)
	b.Reflect(axis)
	r.setCorners(a, b)
}

// Bounds returns the normalized extent
func (r Rectangle) Bounds() BoundingBox {
	bb := NewBoundingBox()
	a, b := r.Corners()
	bb.Expand(a)
	bb.Expand(b)
	return bb
}

func (r *Rectangle) Tokens() []string {
	return record(KindRect, r.Pos.X, r.Pos.Y, r.Width, r.Height)
}

func (r *Rectangle) parse(s *TokenStream) error {
	if err := parsePoint(s, &r.Pos); err != nil {
		return err
	}
	w, err := s.Float()
	if err != nil {
		return err
	}
	h, err := s.Float()
	if err != nil {
		return err
	}
	r.Width, r.Height = w, h
	return nil
}

// Arc is an elliptical arc inscribed in Rect. StartAngle and SweepAngle are
// in degrees, sweep is signed.
type Arc struct {
	Rect       Rectangle
	StartAngle float64
	SweepAngle float64
}

func (a *Arc) Kind() Kind { return KindArc }

// Rotate rotates the bounding rectangle. The angles are relative to the
// arc's own frame and stay as they are.
func (a *Arc) Rotate(angle float64) {
	a.Rect.Rotate(angle)
}

// Reflect mirrors the bounding rectangle; the angles stay as they are
func (a *Arc) Reflect(axis Axis) {
	a.Rect.Reflect(axis)
}

// Points samples the arc as a polyline of segments+1 points. The ellipse
// is inscribed in Rect; angles run counter-clockwise from +X.
func (a Arc) Points(segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	lo, hi := a.Rect.Corners()
	c := Point{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
	rx, ry := math.Abs(a.Rect.Width)/2, math.Abs(a.Rect.Height)/2

	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		deg := a.StartAngle + a.SweepAngle*float64(i)/float64(segments)
		sin, cos := sincos(deg)
		pts = append(pts, Point{X: c.X + rx*cos, Y: c.Y + ry*sin})
	}
	return pts
}

func (a *Arc) Tokens() []string {
	r := a.Rect
	return record(KindArc, r.Pos.X, r.Pos.Y, r.Width, r.Height, a.StartAngle, a.SweepAngle)
}

func (a *Arc) parse(s *TokenStream) error {
	if err := a.Rect.parse(s); err != nil {
		return err
	}
	start, err := s.Float()
	if err != nil {
		return err
	}
	sweep, err := s.Float()
	if err != nil {
		return err
	}
	a.StartAngle, a.SweepAngle = start, sweep
	return nil
}

// Line is a straight segment
type Line struct {
	Start Point
	End   Point
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Rotate(angle float64) {
	l.Start.Rotate(angle)
	l.End.Rotate(angle)
}

func (l *Line) Reflect(axis Axis) {
	l.Start.Reflect(axis)
	l.End.Reflect(axis)
}

// Length returns the euclidean length of the segment
func (l Line) Length() float64 {
	return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

func (l *Line) Tokens() []string {
	return record(KindLine, l.Start.X, l.Start.Y, l.End.X, l.End.Y)
}

func (l *Line) parse(s *TokenStream) error {
	if err := parsePoint(s, &l.Start); err != nil {
		return err
	}
	return parsePoint(s, &l.End)
}

// arrowSpread is the half-angle between a barb and the shaft
const arrowSpread = math.Pi / 6

// Arrow is a shaft pointing at Line.End with a head of size Head
type Arrow struct {
	Line Line
	Head float64
}

func (a *Arrow) Kind() Kind { return KindArrow }

// Rotate rotates the shaft. Head is a length and does not depend on direction.
func (a *Arrow) Rotate(angle float64) {
	a.Line.Rotate(angle)
}

func (a *Arrow) Reflect(axis Axis) {
	a.Line.Reflect(axis)
}

// Barbs returns the two arrowhead tips, derived from the shaft direction.
// A zero-length shaft has no direction and both barbs collapse onto its end.
func (a Arrow) Barbs() (Point, Point) {
	tip := a.Line.End
	length := a.Line.Length()
	if length == 0 {
		return tip, tip
	}
	bx := (a.Line.Start.X - tip.X) / length
	by := (a.Line.Start.Y - tip.Y) / length
	sin, cos := math.Sincos(arrowSpread)

	left := Point{
		X: tip.X + a.Head*(bx*cos-by*sin),
		Y: tip.Y + a.Head*(bx*sin+by*cos),
	}
	right := Point{
		X: tip.X + a.Head*(bx*cos+by*sin),
		Y: tip.Y + a.Head*(-bx*sin+by*cos),
	}
	return left, right
}

func (a *Arrow) Tokens() []string {
	l := a.Line
	return record(KindArrow, l.Start.X, l.Start.Y, l.End.X, l.End.Y, a.Head)
}

func (a *Arrow) parse(s *TokenStream) error {
	if err := a.Line.parse(s); err != nil {
		return err
	}
	h, err := s.Float()
	if err != nil {
		return err
	}
	a.Head = h
	return nil
}

// String is a text label anchored at Pos. Transforms move the anchor only.
type String struct {
	Pos  Point
	Text string
}

func (t *String) Kind() Kind { return KindString }

func (t *String) Rotate(angle float64) {
	t.Pos.Rotate(angle)
}

func (t *String) Reflect(axis Axis) {
	t.Pos.Reflect(axis)
}

func (t *String) Tokens() []string {
	return append(record(KindString, t.Pos.X, t.Pos.Y), QuoteText(t.Text))
}

func (t *String) parse(s *TokenStream) error {
	if err := parsePoint(s, &t.Pos); err != nil {
		return err
	}
	text, err := s.Text()
	if err != nil {
		return err
	}
	t.Text = text
	return nil
}

// Join is a connection marker
type Join struct {
	Pos Point
}

func (j *Join) Kind() Kind { return KindJoin }

func (j *Join) Rotate(angle float64) {
	j.Pos.Rotate(angle)
}

func (j *Join) Reflect(axis Axis) {
	j.Pos.Reflect(axis)
}

func (j *Join) Tokens() []string {
	return record(KindJoin, j.Pos.X, j.Pos.Y)
}

func (j *Join) parse(s *TokenStream) error {
	return parsePoint(s, &j.Pos)
}
