// Package solve isolates the single symbol of an equation or
// inequality, recording every move as a step.
package solve

import (
	"fmt"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/parse"
)

// Comparator relates the two sides of an Equation.
type Comparator string

const (
	Equal        Comparator = "="
	Less         Comparator = "<"
	Greater      Comparator = ">"
	LessEqual    Comparator = "<="
	GreaterEqual Comparator = ">="
)

// Flip returns the comparator that holds after the sides are swapped
// or both are multiplied by a negative number.
func (c Comparator) Flip() Comparator {
	switch c {
	case Less:
		return Greater
	case Greater:
		return Less
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	}
	return c
}

// Holds reports whether a value comparing as cmp (-1, 0, +1) against
// another satisfies c.
func (c Comparator) Holds(cmp int) bool {
	switch c {
	case Equal:
		return cmp == 0
	case Less:
		return cmp < 0
	case Greater:
		return cmp > 0
	case LessEqual:
		return cmp <= 0
	case GreaterEqual:
		return cmp >= 0
	}
	panic(fmt.Sprintf("solve: unknown comparator %q", string(c)))
}

func (c Comparator) latex() string {
	switch c {
	case LessEqual:
		return `\le`
	case GreaterEqual:
		return `\ge`
	}
	return string(c)
}

// Equation is a relation between two expressions.
type Equation struct {
	Left       node.Node
	Right      node.Node
	Comparator Comparator
}

// Parse reads an equation such as "2x - 3 = 0" or "x + 1 <= 4".
func Parse(text string) (Equation, error) {
	l, r, c, err := parse.Equation(text)
	if err != nil {
		return Equation{}, err
	}
	return Equation{Left: l, Right: r, Comparator: Comparator(c)}, nil
}

// MustParse is Parse for literal equations known to be valid.
func MustParse(text string) Equation {
	eq, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("solve: parse %q: %v", text, err))
	}
	return eq
}

// Print renders the equation with opts.
func (e Equation) Print(opts node.PrintOptions) string {
	c := string(e.Comparator)
	if opts.LaTeX {
		c = e.Comparator.latex()
	}
	return node.Print(e.Left, opts) + " " + c + " " + node.Print(e.Right, opts)
}

func (e Equation) String() string {
	return e.Print(node.PrintOptions{})
}

// swap exchanges the sides.
func (e Equation) swap() Equation {
	return Equation{Left: e.Right, Right: e.Left, Comparator: e.Comparator.Flip()}
}
