package sexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a lexical token with the line it started on
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// SyntaxError reports malformed input and where it was found
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	// Skip whitespace and comments
	for {
		ch, err := l.peek()
		if err != nil {
			return l.eof(err)
		}
		if unicode.IsSpace(ch) {
			l.read()
			continue
		}
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return Token{}, err
				}
				if c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	ch, err := l.peek()
	if err != nil {
		return l.eof(err)
	}

	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Line: l.line}, nil
	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Line: l.line}, nil
	case '"':
		return l.readString()
	default:
		return l.readSymbol()
	}
}

func (l *Lexer) eof(err error) (Token, error) {
	if errors.Is(err, io.EOF) {
		return Token{Type: TokenEOF, Line: l.line}, nil
	}
	return Token{}, err
}

// readRune decodes one rune, rejecting bytes that are not UTF-8
func (l *Lexer) readRune() (rune, error) {
	ch, size, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	if ch == utf8.RuneError && size == 1 {
		return 0, &SyntaxError{Line: l.line, Msg: "invalid UTF-8"}
	}
	return ch, nil
}

func (l *Lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, err := l.readRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *Lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		ch, err = l.readRune()
		if err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

// readString reads a quoted string, decoding \\ \" \n \t and \r
func (l *Lexer) readString() (Token, error) {
	start := l.line
	l.read() // opening quote

	var result []rune
	for {
		ch, err := l.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Token{}, &SyntaxError{Line: start, Msg: "unterminated string"}
			}
			return Token{}, err
		}

		if ch == '"' {
			break
		}

		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return Token{}, &SyntaxError{Line: start, Msg: "unterminated string"}
				}
				return Token{}, err
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '\\', '"':
				result = append(result, next)
			default:
				return Token{}, &SyntaxError{Line: l.line, Msg: fmt.Sprintf("unknown escape \\%c", next)}
			}
			continue
		}

		result = append(result, ch)
	}

	return Token{Type: TokenString, Value: string(result), Line: start}, nil
}

// readSymbol reads an unquoted symbol (identifier, number, etc.)
func (l *Lexer) readSymbol() (Token, error) {
	var result []rune
	for {
		ch, err := l.peek()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		result = append(result, ch)
	}

	return Token{Type: TokenSymbol, Value: string(result), Line: l.line}, nil
}
