package image

import (
	"strings"
)

// Image is the full set of primitives of one element, kept per kind.
// Insertion order is preserved within a kind; there is no order across kinds.
type Image struct {
	Rects   []Rectangle
	Arcs    []Arc
	Lines   []Line
	Arrows  []Arrow
	Strings []String
	Joins   []Join
}

// Parse builds an Image from a token slice. On failure the partial Image is
// dropped and only the error is returned.
func Parse(tokens []string) (*Image, error) {
	img := &Image{}
	if err := img.Parse(NewTokenStream(tokens)); err != nil {
		return nil, err
	}
	return img, nil
}

// ParseString tokenizes and parses a record stream
func ParseString(s string) (*Image, error) {
	tokens, err := TokenizeString(s)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse appends every record in s to the image. It stops at the first
// unknown tag or malformed record; primitives parsed before that point stay
// in the image, which callers must then discard.
func (img *Image) Parse(s *TokenStream) error {
	for !s.Done() {
		start := s.Pos()
		tag, _ := s.Next()
		kind, ok := KindFromTag(tag)
		if !ok {
			return &ParseError{Pos: start, Token: tag, Err: ErrUnknownTag}
		}
		item := newItem(kind)
		if err := item.parse(s); err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Tag = tag
			}
			return err
		}
		img.Add(item)
	}
	return nil
}

// Add appends a copy of item to the sequence for its kind
func (img *Image) Add(item Item) {
	switch it := item.(type) {
	case *Rectangle:
		img.Rects = append(img.Rects, *it)
	case *Arc:
		img.Arcs = append(img.Arcs, *it)
	case *Line:
		img.Lines = append(img.Lines, *it)
	case *Arrow:
		img.Arrows = append(img.Arrows, *it)
	case *String:
		img.Strings = append(img.Strings, *it)
	case *Join:
		img.Joins = append(img.Joins, *it)
	}
}

// Each calls fn for every primitive, kind by kind in Kind order and in
// insertion order within a kind. The Item aliases the stored value, so
// mutations made by fn stick.
func (img *Image) Each(fn func(Item)) {
	for i := range img.Rects {
		fn(&img.Rects[i])
	}
	for i := range img.Arcs {
		fn(&img.Arcs[i])
	}
	for i := range img.Lines {
		fn(&img.Lines[i])
	}
	for i := range img.Arrows {
		fn(&img.Arrows[i])
	}
	for i := range img.Strings {
		fn(&img.Strings[i])
	}
	for i := range img.Joins {
		fn(&img.Joins[i])
	}
}

// Rotate rotates every primitive about the local origin by angle degrees
func (img *Image) Rotate(angle float64) {
	img.Each(func(it Item) { it.Rotate(angle) })
}

// Reflect mirrors every primitive across axis
func (img *Image) Reflect(axis Axis) {
	img.Each(func(it Item) { it.Reflect(axis) })
}

// Len returns the total number of primitives
func (img *Image) Len() int {
	if img == nil {
		return 0
	}
	return len(img.Rects) + len(img.Arcs) + len(img.Lines) +
		len(img.Arrows) + len(img.Strings) + len(img.Joins)
}

// IsEmpty reports whether the image holds no primitives
func (img *Image) IsEmpty() bool {
	return img.Len() == 0
}

// Clone returns a deep copy that shares no storage with img
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	return &Image{
		Rects:   append([]Rectangle(nil), img.Rects...),
		Arcs:    append([]Arc(nil), img.Arcs...),
		Lines:   append([]Line(nil), img.Lines...),
		Arrows:  append([]Arrow(nil), img.Arrows...),
		Strings: append([]String(nil), img.Strings...),
		Joins:   append([]Join(nil), img.Joins...),
	}
}

// Bounds returns the extent of all primitives. Arcs count their whole
// bounding rectangle and strings count their anchor only.
func (img *Image) Bounds() BoundingBox {
	bb := NewBoundingBox()
	if img == nil {
		return bb
	}
	for _, r := range img.Rects {
		bb.ExpandBox(r.Bounds())
	}
	for _, a := range img.Arcs {
		bb.ExpandBox(a.Rect.Bounds())
	}
	for _, l := range img.Lines {
		bb.Expand(l.Start)
		bb.Expand(l.End)
	}
	for _, a := range img.Arrows {
		left, right := a.Barbs()
		bb.Expand(a.Line.Start)
		bb.Expand(a.Line.End)
		bb.Expand(left)
		bb.Expand(right)
	}
	for _, s := range img.Strings {
		bb.Expand(s.Pos)
	}
	for _, j := range img.Joins {
		bb.Expand(j.Pos)
	}
	return bb
}

// Tokens serializes the image; Parse(img.Tokens()) reproduces it
func (img *Image) Tokens() []string {
	var out []string
	if img == nil {
		return out
	}
	img.Each(func(it Item) {
		out = append(out, it.Tokens()...)
	})
	return out
}

// Records returns one token slice per primitive
func (img *Image) Records() [][]string {
	var out [][]string
	if img == nil {
		return out
	}
	img.Each(func(it Item) {
		out = append(out, it.Tokens())
	})
	return out
}

// String formats the image with one record per line
func (img *Image) String() string {
	var b strings.Builder
	for _, rec := range img.Records() {
		b.WriteString(strings.Join(rec, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
