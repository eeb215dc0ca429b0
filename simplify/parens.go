package simplify

import (
	"math/big"

	"zappem.net/pub/math/steps/arith"
	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// RemoveParens drops parentheses that carry no meaning. After it runs
// every remaining Paren holds an operator, a unary minus or a call.
// Parentheses around the whole tree are removed. The result never
// counts as a step.
func RemoveParens(n node.Node) Result {
	for {
		p, ok := n.(*node.Paren)
		if !ok {
			break
		}
		n = p.Content
	}
	return noChange(elide(n))
}

func elide(n node.Node) node.Node {
	switch v := n.(type) {
	case *node.Paren:
		return elideParen(v)
	case *node.Neg:
		a := elide(v.Arg)
		if c, ok := a.(*node.Constant); ok && c.Value.Sign() >= 0 {
			return &node.Constant{Value: new(big.Rat).Neg(c.Value)}
		}
		return node.Minus(a)
	case *node.Call:
		args := make([]node.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = elide(a)
		}
		return &node.Call{Name: v.Name, Args: args}
	case *node.Operator:
		return elideOperator(v)
	}
	return n
}

func elideOperator(o *node.Operator) node.Node {
	args := make([]node.Node, len(o.Args))
	for i, a := range o.Args {
		if p, ok := a.(*node.Paren); ok && o.Op == node.Pow {
			// Grouping around a base or exponent is kept unless it
			// holds a single atom.
			args[i] = elideGroup(p)
			continue
		}
		args[i] = elide(a)
	}
	switch o.Op {
	case node.Mul:
		for i, a := range args {
			if p, ok := a.(*node.Paren); ok && term.IsFraction(p.Content) {
				args[i] = p.Content
			}
		}
	case node.Add:
		// A finished sub-sum needs no grouping: (x + 4) + 12 is
		// x + 4 + 12.
		var flat []node.Node
		for _, a := range args {
			if p, ok := a.(*node.Paren); ok && !canCollectOrCombine(p.Content) {
				a = p.Content
			}
			if sub, ok := node.AsOp(a, node.Add); ok {
				flat = append(flat, sub.Args...)
				continue
			}
			flat = append(flat, a)
		}
		args = flat
	}
	return &node.Operator{Op: o.Op, Args: args, Implicit: o.Implicit}
}

// innermost collapses ((e)) to (e) and returns e.
func innermost(p *node.Paren) node.Node {
	c := p.Content
	for {
		q, ok := c.(*node.Paren)
		if !ok {
			return c
		}
		c = q.Content
	}
}

func isAtom(n node.Node) bool {
	switch n.(type) {
	case *node.Symbol, *node.Constant:
		return true
	}
	return false
}

func elideGroup(p *node.Paren) node.Node {
	c := innermost(p)
	if isAtom(c) {
		return c
	}
	return node.Par(elide(c))
}

func elideParen(p *node.Paren) node.Node {
	c := innermost(p)
	if isAtom(c) {
		return c
	}
	c = elide(c)
	if _, ok := node.AsOp(c, node.Pow); ok {
		return c
	}
	return node.Par(c)
}

// canCollectOrCombine reports whether a parenthesized sub-expression
// still has work to do at its own level, so the grouping shown to the
// reader should stay.
func canCollectOrCombine(n node.Node) bool {
	if CanCollect(n) {
		return true
	}
	if arith.IsConstantExpr(n) {
		return true
	}
	return canAddLikeTerms(n) || canMultiplyLikeTerms(n)
}
