package sexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidText is returned by Writer.Write for a String atom that is not
// valid UTF-8, which could not be read back unchanged
var ErrInvalidText = errors.New("string is not valid UTF-8")

// Writer emits S-expressions with one nested structure per line. Lists no
// deeper than two levels, such as (at 1 2) or (pts (xy 0 0) (xy 1 0)), stay
// on one line.
type Writer struct {
	w      *bufio.Writer
	Indent string
}

// NewWriter returns a Writer indenting with two spaces
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), Indent: "  "}
}

// Write emits s followed by a newline and flushes. Nothing is written if s
// holds a String that is not valid UTF-8.
func (w *Writer) Write(s Sexp) error {
	if err := checkText(s); err != nil {
		return err
	}
	w.write(s, 0)
	w.w.WriteByte('\n')
	return w.w.Flush()
}

func (w *Writer) write(s Sexp, level int) {
	l, ok := s.(*List)
	if !ok || depth(l) <= 2 {
		w.w.WriteString(s.String())
		return
	}

	w.w.WriteByte('(')
	i := 0
	// the name and any short leading fields share the first line
	for ; i < l.Len(); i++ {
		if depth(l.elements[i]) > 1 {
			break
		}
		if i > 0 {
			w.w.WriteByte(' ')
		}
		w.w.WriteString(l.elements[i].String())
	}
	pad := strings.Repeat(w.Indent, level+1)
	for ; i < l.Len(); i++ {
		w.w.WriteByte('\n')
		w.w.WriteString(pad)
		w.write(l.elements[i], level+1)
	}
	w.w.WriteByte(')')
}

// depth is 0 for atoms, 1 for a list of atoms, and so on
func depth(s Sexp) int {
	l, ok := s.(*List)
	if !ok {
		return 0
	}
	d := 0
	for _, e := range l.elements {
		if c := depth(e); c > d {
			d = c
		}
	}
	return d + 1
}

func checkText(s Sexp) error {
	switch v := s.(type) {
	case String:
		if !utf8.ValidString(string(v)) {
			return fmt.Errorf("%w: %q", ErrInvalidText, string(v))
		}
	case *List:
		for _, e := range v.elements {
			if err := checkText(e); err != nil {
				return err
			}
		}
	}
	return nil
}
