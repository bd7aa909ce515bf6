package sexp

import (
	"bytes"
	"errors"
	"testing"
)

// Helper to parse one s-expression from string
func parseSexp(t *testing.T, input string) Sexp {
	t.Helper()
	sexps, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression %q: %v", input, err)
	}
	if len(sexps) == 0 {
		t.Fatalf("No s-expressions parsed from %q", input)
	}
	return sexps[0]
}

func TestParseAtoms(t *testing.T) {
	s := parseSexp(t, `(name "U 1" sym -2.5) # trailing comment`)
	l, ok := s.(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", s)
	}
	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	if got, ok := l.Get(1).(String); !ok || string(got) != "U 1" {
		t.Errorf("Get(1) = %#v, want String(\"U 1\")", l.Get(1))
	}
	if got, ok := l.Get(3).(Symbol); !ok || string(got) != "-2.5" {
		t.Errorf("Get(3) = %#v, want Symbol(\"-2.5\")", l.Get(3))
	}
	if l.Get(9) != nil {
		t.Errorf("Get(9) should be nil")
	}
}

func TestParseEscapes(t *testing.T) {
	s := parseSexp(t, `(s "a\"b\\c\nd\te")`)
	got, err := GetString(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\"b\\c\nd\te"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if s.String() != `(s "a\"b\\c\nd\te")` {
		t.Errorf("String() = %s", s.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"unclosed list", "(a\n(b c)", 1},
		{"stray close", "(a)\n)", 2},
		{"unterminated string", `(a "oops`, 1},
		{"bad escape", `(a "\q")`, 1},
		{"invalid UTF-8 in string", "(a\n\"\xff\xfe\")", 2},
		{"invalid UTF-8 in symbol", "(a \xff)", 1},
		{"invalid UTF-8 in comment", "# \xff\n(a)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Line != tt.line {
				t.Errorf("Line = %d, want %d", se.Line, tt.line)
			}
		})
	}
}

func TestParseMultipleTopLevel(t *testing.T) {
	sexps, err := ParseString("(a 1)\n\n(b 2)\nc")
	if err != nil {
		t.Fatal(err)
	}
	if len(sexps) != 3 {
		t.Fatalf("got %d expressions, want 3", len(sexps))
	}
	if _, ok := sexps[2].(Symbol); !ok {
		t.Errorf("third expression should be a symbol, got %T", sexps[2])
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    string
		wantErr bool
	}{
		{name: "name", input: "(at 10 20)", index: 0, want: "at"},
		{name: "value", input: "(at 10 20)", index: 2, want: "20"},
		{name: "quoted", input: `(name "R1")`, index: 1, want: "R1"},
		{name: "out of bounds", input: "(at 10 20)", index: 5, wantErr: true},
		{name: "list element", input: "(pts (xy 0 0))", index: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetString(parseSexp(t, tt.input), tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumbersAndPosition(t *testing.T) {
	s := parseSexp(t, "(at 10.5 -3 7)")
	x, y, err := GetPosition(s)
	if err != nil {
		t.Fatal(err)
	}
	if x != 10.5 || y != -3 {
		t.Errorf("GetPosition() = (%v, %v), want (10.5, -3)", x, y)
	}
	if n, err := GetInt(s, 3); err != nil || n != 7 {
		t.Errorf("GetInt() = %d, %v", n, err)
	}
	if _, err := GetInt(s, 1); err == nil {
		t.Error("GetInt on 10.5 should fail")
	}
	if _, _, err := GetPosition(parseSexp(t, "(at x 1)")); err == nil {
		t.Error("GetPosition with a non-number should fail")
	}
}

func TestFindNodes(t *testing.T) {
	s := parseSexp(t, `(element (name "U1") (at 1 2) (element (name "R1")) (element (name "R2")))`)

	if GetNodeName(s) != "element" {
		t.Errorf("GetNodeName() = %q", GetNodeName(s))
	}
	at, ok := FindNode(s, "at")
	if !ok || at.String() != "(at 1 2)" {
		t.Errorf("FindNode(at) = %v, %v", at, ok)
	}
	if _, ok := FindNode(s, "wire"); ok {
		t.Error("FindNode(wire) should not match")
	}

	kids := FindAllNodes(s, "element")
	if len(kids) != 2 {
		t.Fatalf("FindAllNodes() returned %d nodes, want 2", len(kids))
	}
	name, _ := FindNode(kids[1], "name")
	if got, _ := GetString(name, 1); got != "R2" {
		t.Errorf("second child name = %q", got)
	}
	if items := GetListItems(at); len(items) != 2 {
		t.Errorf("GetListItems() = %v", items)
	}
}

func TestWriterRejectsInvalidUTF8(t *testing.T) {
	doc := NewList(Symbol("text"), String("ok"), NewList(Symbol("bad"), String("\xff\xfe")))

	var buf bytes.Buffer
	err := NewWriter(&buf).Write(doc)
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("Write() error = %v, want ErrInvalidText", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Write() wrote %q before failing", buf.String())
	}

	// U+FFFD itself is valid text and survives a round trip
	buf.Reset()
	if err := NewWriter(&buf).Write(NewList(Symbol("text"), String("\ufffd"))); err != nil {
		t.Fatal(err)
	}
	back := parseSexp(t, buf.String())
	if got, _ := GetString(back, 1); got != "\ufffd" {
		t.Errorf("round trip = %q", got)
	}
}

func TestWriterLayout(t *testing.T) {
	doc := NewList(Symbol("electron_scheme"),
		NewList(Symbol("version"), Symbol("1")),
		NewList(Symbol("wire"),
			NewList(Symbol("name"), String("N1")),
			NewList(Symbol("pts"),
				NewList(Symbol("xy"), Symbol("0"), Symbol("0")),
				NewList(Symbol("xy"), Symbol("1"), Symbol("0")))),
	)

	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(doc); err != nil {
		t.Fatal(err)
	}
	want := `(electron_scheme (version 1)
  (wire (name "N1")
    (pts (xy 0 0) (xy 1 0))))
`
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}

	back := parseSexp(t, buf.String())
	if back.String() != doc.String() {
		t.Errorf("re-parse mismatch:\n%s\n%s", back, doc)
	}
}
