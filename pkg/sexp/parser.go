package sexp

import (
	"fmt"
	"io"
)

// Parser builds S-expressions from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
	}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp

	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.current.Type != TokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) parseExpr() (Sexp, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()
	case TokenSymbol:
		return Symbol(p.current.Value), nil
	case TokenString:
		return String(p.current.Value), nil
	case TokenRightParen:
		return nil, &SyntaxError{Line: p.current.Line, Msg: "unexpected ')'"}
	default:
		return nil, &SyntaxError{Line: p.current.Line, Msg: fmt.Sprintf("unexpected %v", p.current.Type)}
	}
}

func (p *Parser) parseList() (Sexp, error) {
	start := p.current.Line
	list := &List{}

	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.current.Type {
		case TokenRightParen:
			return list, nil
		case TokenEOF:
			return nil, &SyntaxError{Line: start, Msg: "unclosed list"}
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.elements = append(list.elements, elem)
	}
}
