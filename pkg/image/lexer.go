package image

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// RecordLexer defines the lexical structure of a primitive record stream:
//
//	# comment
//	RECT 0 0 10 5
//	STRING 1 2 "label"
//
// Records are not line-oriented; any whitespace separates tokens.
var RecordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	// Quoted text keeps its delimiters; UnquoteText strips them
	{Name: "Text", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Word", Pattern: `[^\s"#]+`},
})

var elided = func() map[lexer.TokenType]bool {
	syms := RecordLexer.Symbols()
	return map[lexer.TokenType]bool{
		syms["Comment"]:    true,
		syms["Whitespace"]: true,
	}
}()

// Tokenize splits a textual record stream into tokens. The only input the
// lexer rejects is an unterminated quoted text, reported as ErrBadText.
func Tokenize(r io.Reader) ([]string, error) {
	lex, err := RecordLexer.Lex("", r)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	toks, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, &ParseError{Pos: -1, Err: fmt.Errorf("%w: %v", ErrBadText, err)}
	}

	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.EOF() || elided[tok.Type] {
			continue
		}
		out = append(out, tok.Value)
	}
	return out, nil
}

// TokenizeString is Tokenize over a string
func TokenizeString(s string) ([]string, error) {
	return Tokenize(strings.NewReader(s))
}
