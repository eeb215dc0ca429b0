package simplify

import (
	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// Distribution expands products over parenthesized sums, one pair of
// factors per step, and pushes a unary minus into a group.
func Distribution(n node.Node) Result {
	return postOrder(n, distribute)
}

func distribute(n node.Node) Result {
	switch v := n.(type) {
	case *node.Neg:
		return distributeNegation(v)
	case *node.Operator:
		if v.Op == node.Mul {
			return distributeProduct(v)
		}
	}
	return noChange(n)
}

// distributeNegation rewrites -(a * b) to -a * b and -(a + b) to
// (-a + -b).
func distributeNegation(neg *node.Neg) Result {
	p, ok := neg.Arg.(*node.Paren)
	if !ok {
		return noChange(neg)
	}
	o, ok := node.AsOp(p.Content, node.Mul, node.Div, node.Add)
	if !ok || len(o.Args) == 0 {
		return noChange(neg)
	}
	if o.Op == node.Add {
		args := make([]node.Node, len(o.Args))
		for i, a := range o.Args {
			args[i] = term.Negate(a)
		}
		return changed(node.Par(node.NewOp(node.Add, args...)), DistributeNegativeOne)
	}
	args := append([]node.Node{term.Negate(o.Args[0])}, o.Args[1:]...)
	return changed(&node.Operator{Op: o.Op, Args: args, Implicit: o.Implicit}, DistributeNegativeOne)
}

// addends returns the terms of a parenthesized sum, or n alone.
func addends(n node.Node) []node.Node {
	if p, ok := n.(*node.Paren); ok {
		if o, ok := node.AsOp(p.Content, node.Add); ok {
			return o.Args
		}
	}
	return []node.Node{n}
}

// distributeProduct expands the first adjacent pair of factors in
// which one side is a parenthesized sum. When both sides are sums the
// right factor is first spread over the terms of the left one, so
// (a + b)(c + d) takes two steps: a(c + d) + b(c + d) and so on.
func distributeProduct(o *node.Operator) Result {
	for i := 0; i+1 < len(o.Args); i++ {
		l, r := addends(o.Args[i]), addends(o.Args[i+1])
		if len(l) == 1 && len(r) == 1 {
			continue
		}
		var sum []node.Node
		if len(l) > 1 && len(r) > 1 {
			for _, a := range l {
				sum = append(sum, node.NewOp(node.Mul, node.Clone(a), node.Clone(o.Args[i+1])))
			}
		} else {
			for _, a := range l {
				for _, b := range r {
					sum = append(sum, node.NewOp(node.Mul, node.Clone(a), node.Clone(b)))
				}
			}
		}
		expanded := node.Par(node.NewOp(node.Add, sum...))
		if len(o.Args) == 2 {
			return changed(expanded, Distribute)
		}
		args := append([]node.Node{}, o.Args[:i]...)
		args = append(args, expanded)
		args = append(args, o.Args[i+2:]...)
		return changed(node.NewOp(node.Mul, args...), Distribute)
	}
	return noChange(o)
}
