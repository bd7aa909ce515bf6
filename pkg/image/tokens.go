package image

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnexpectedEnd = errors.New("unexpected end of token stream")
	ErrNotNumber     = errors.New("expected a number")
	ErrBadText       = errors.New("malformed text field")
	ErrUnknownTag    = errors.New("unknown record tag")
)

// ParseError reports where a primitive record failed to parse
type ParseError struct {
	Pos   int    // token index of the offending token, -1 if unknown
	Tag   string // tag of the record being parsed, if known
	Token string // offending token, empty at end of stream
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Tag != "" {
		fmt.Fprintf(&b, "%s record: ", e.Tag)
	}
	if e.Pos >= 0 {
		fmt.Fprintf(&b, "token %d: ", e.Pos)
	}
	b.WriteString(e.Err.Error())
	if e.Token != "" {
		fmt.Fprintf(&b, " (got %q)", e.Token)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TokenStream is a token slice with a read cursor
type TokenStream struct {
	tokens []string
	pos    int
}

// NewTokenStream wraps tokens for reading from the first one
func NewTokenStream(tokens []string) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Pos returns the index of the next unread token
func (s *TokenStream) Pos() int { return s.pos }

// Remaining returns how many tokens are left
func (s *TokenStream) Remaining() int { return len(s.tokens) - s.pos }

// Done reports whether every token has been consumed
func (s *TokenStream) Done() bool { return s.pos >= len(s.tokens) }

// Next consumes one raw token
func (s *TokenStream) Next() (string, error) {
	if s.Done() {
		return "", &ParseError{Pos: s.pos, Err: ErrUnexpectedEnd}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

// Float consumes one finite numeric token. On error the cursor does not move.
func (s *TokenStream) Float() (float64, error) {
	if s.Done() {
		return 0, &ParseError{Pos: s.pos, Err: ErrUnexpectedEnd}
	}
	tok := s.tokens[s.pos]
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Pos: s.pos, Token: tok, Err: ErrNotNumber}
	}
	s.pos++
	return v, nil
}

// Text consumes one quoted text token and returns its unescaped content,
// which must be valid UTF-8. On error the cursor does not move.
func (s *TokenStream) Text() (string, error) {
	if s.Done() {
		return "", &ParseError{Pos: s.pos, Err: ErrUnexpectedEnd}
	}
	tok := s.tokens[s.pos]
	text, err := UnquoteText(tok)
	if err == nil && !utf8.ValidString(text) {
		err = fmt.Errorf("%w: invalid UTF-8", ErrBadText)
	}
	if err != nil {
		return "", &ParseError{Pos: s.pos, Token: tok, Err: err}
	}
	s.pos++
	return text, nil
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// QuoteText delimits text for a token stream. Only backslash, double quote,
// newline, tab and carriage return are escaped.
func QuoteText(text string) string {
	return `"` + textEscaper.Replace(text) + `"`
}

// UnquoteText reverses QuoteText. Errors wrap ErrBadText.
func UnquoteText(tok string) (string, error) {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return "", fmt.Errorf("%w: missing double-quote delimiters", ErrBadText)
	}
	body := tok[1 : len(tok)-1]
	if !strings.ContainsAny(body, `\"`) {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '"':
			return "", fmt.Errorf("%w: unescaped quote at offset %d", ErrBadText, i+1)
		case '\\':
			i++
			if i >= len(body) {
				return "", fmt.Errorf("%w: dangling escape", ErrBadText)
			}
			switch body[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return "", fmt.Errorf("%w: unknown escape \\%c", ErrBadText, body[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// formatFloat writes the shortest decimal that parses back to v. Negative
// zero is written as 0.
func formatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
