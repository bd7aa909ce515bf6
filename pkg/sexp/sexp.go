// Package sexp is a small streaming S-expression reader and writer used for
// scheme files. Bare symbols and quoted strings are kept as distinct atom
// types so a document can be written back the way it was read.
package sexp

import (
	"io"
	"strings"
)

// Sexp is an S-expression node: an atom (Symbol or String) or a List
type Sexp interface {
	// IsLeaf returns true for atoms
	IsLeaf() bool

	// Len returns the number of elements in a list (1 for atoms)
	Len() int

	// String returns the source form of the node
	String() string
}

// Symbol is a bare atom: a keyword, number or identifier
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) Len() int       { return 1 }
func (s Symbol) String() string { return string(s) }

// String is a quoted atom holding its decoded text
type String string

func (s String) IsLeaf() bool   { return true }
func (s String) Len() int       { return 1 }
func (s String) String() string { return Quote(string(s)) }

// List is a parenthesized sequence of nodes
type List struct {
	elements []Sexp
}

// NewList builds a list from its elements
func NewList(elems ...Sexp) *List {
	return &List{elements: elems}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) Len() int {
	return len(l.elements)
}

// Get returns the element at index, or nil if out of range
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Items returns the list's elements. The slice is shared with the list.
func (l *List) Items() []Sexp {
	return l.elements
}

// Append adds elements to the end of the list
func (l *List) Append(elems ...Sexp) {
	l.elements = append(l.elements, elems...)
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(elem.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Quote returns s as a quoted atom, escaping what the lexer decodes
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// Parse reads all top-level S-expressions from r
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString parses S-expressions from a string
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
