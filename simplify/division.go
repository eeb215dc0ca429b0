package simplify

import "zappem.net/pub/math/steps/node"

// DivisionChain rewrites nested divisions such as ((a / b) / c) / d
// into a single division a / (b * c * d). Only the outermost chain
// found in a pre-order walk is rewritten.
func DivisionChain(n node.Node) Result {
	if o, ok := node.AsOp(n, node.Div); ok && len(o.Args) == 2 {
		num, dens := unchain(o)
		if len(dens) > 1 {
			return changed(node.NewOp(node.Div, num, node.Par(node.NewOp(node.Mul, dens...))), SimplifyDivisionChain)
		}
	}
	for i, c := range node.Children(n) {
		if res := DivisionChain(c); res.Changed {
			return changed(node.WithChild(n, i, res.Node), res.Tag)
		}
	}
	return noChange(n)
}

// unchain walks down the numerators of a division chain. The
// denominators are returned left to right.
func unchain(o *node.Operator) (node.Node, []node.Node) {
	num := o.Args[0]
	if p, ok := num.(*node.Paren); ok {
		num = p.Content
	}
	inner, ok := node.AsOp(num, node.Div)
	if !ok || len(inner.Args) != 2 {
		return o.Args[0], []node.Node{o.Args[1]}
	}
	n, dens := unchain(inner)
	return n, append(dens, o.Args[1])
}
