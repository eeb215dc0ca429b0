// Package parse converts infix text into node trees.
//
// Supported syntax: decimal numbers, symbols, + - * / ^, unary minus,
// parentheses, implicit multiplication (2x, 3(x+1), 2x^2) and function
// calls such as sqrt(x). Implicit multiplication binds more tightly
// than explicit multiplication and division, so 2x/3 is (2x)/3.
package parse

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"zappem.net/pub/math/steps/node"
)

var (
	ErrSyntax = errors.New("syntax problem")
	ErrEmpty  = errors.New("empty expression")
)

type kind int

const (
	tokNum kind = iota
	tokIdent
	tokOp
	tokEOF
)

type token struct {
	kind kind
	text string
	pos  int
}

// lex breaks s into tokens.
func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			dot := false
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.' && !dot) {
				if s[j] == '.' {
					dot = true
				}
				j++
			}
			if s[i:j] == "." {
				return nil, fmt.Errorf("%w: lone '.' at %d", ErrSyntax, i)
			}
			toks = append(toks, token{kind: tokNum, text: s[i:j], pos: i})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j], pos: i})
			i = j
		case strings.ContainsRune("+-*/^(),", c):
			toks = append(toks, token{kind: tokOp, text: s[i : i+1], pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)}), nil
}

type parser struct {
	toks []token
	at   int
}

func (p *parser) peek() token {
	return p.toks[p.at]
}

func (p *parser) next() token {
	t := p.toks[p.at]
	if t.kind != tokEOF {
		p.at++
	}
	return t
}

func (p *parser) isOp(text string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == text
}

// Expression parses a complete expression.
func Expression(s string) (node.Node, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, ErrEmpty
	}
	p := &parser{toks: toks}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
	return n, nil
}

// MustExpression is Expression for literal inputs known to be valid.
func MustExpression(s string) node.Node {
	n, err := Expression(s)
	if err != nil {
		panic(fmt.Sprintf("parse %q: %v", s, err))
	}
	return n
}

func (p *parser) sum() (node.Node, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := node.Op(p.next().text)
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = node.NewOp(op, left, right)
	}
	return left, nil
}

func (p *parser) product() (node.Node, error) {
	left, err := p.implicit()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := node.Op(p.next().text)
		right, err := p.implicit()
		if err != nil {
			return nil, err
		}
		left = node.NewOp(op, left, right)
	}
	return left, nil
}

// startsPrimary reports whether the next token can begin an operand
// of an implicit product.
func (p *parser) startsPrimary() bool {
	t := p.peek()
	return t.kind == tokNum || t.kind == tokIdent || t.kind == tokOp && t.text == "("
}

func (p *parser) implicit() (node.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.startsPrimary() {
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = node.Implicit(left, right)
	}
	return left, nil
}

func (p *parser) unary() (node.Node, error) {
	if p.isOp("-") {
		p.next()
		arg, err := p.implicit()
		if err != nil {
			return nil, err
		}
		return node.Minus(arg), nil
	}
	if p.isOp("+") {
		p.next()
		return p.implicit()
	}
	return p.power()
}

func (p *parser) power() (node.Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return node.NewOp(node.Pow, base, exp), nil
}

func (p *parser) primary() (node.Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, t.text)
		}
		return &node.Constant{Value: r}, nil
	case tokIdent:
		if !p.isOp("(") {
			return node.Sym(t.text), nil
		}
		p.next()
		call := &node.Call{Name: t.text}
		for !p.isOp(")") {
			arg, err := p.sum()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.isOp(",") {
				p.next()
				continue
			}
			if !p.isOp(")") {
				return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, p.peek().pos)
			}
		}
		p.next()
		return call, nil
	case tokOp:
		if t.text == "(" {
			inner, err := p.sum()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, fmt.Errorf("%w: too many '(' at %d", ErrSyntax, t.pos)
			}
			p.next()
			return node.Par(inner), nil
		}
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
}

// Comparators in the order Equation looks for them.
var Comparators = []string{"<=", ">=", "<", ">", "="}

// Equation splits text on the first comparator found, checking the
// two character comparators first, and parses both sides.
func Equation(text string) (left, right node.Node, comparator string, err error) {
	for _, c := range Comparators {
		i := strings.Index(text, c)
		if i < 0 {
			continue
		}
		if left, err = Expression(text[:i]); err != nil {
			return nil, nil, "", fmt.Errorf("left side: %w", err)
		}
		if right, err = Expression(text[i+len(c):]); err != nil {
			return nil, nil, "", fmt.Errorf("right side: %w", err)
		}
		return left, right, c, nil
	}
	return nil, nil, "", fmt.Errorf("%w: no comparator in %q", ErrSyntax, text)
}
