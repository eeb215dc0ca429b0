package simplify

import (
	"math/big"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// Normalize flattens binary chains into n-ary operators in a single
// bottom-up pass:
//
//	a - b + c      -> +[a, -b, c]
//	a * b * c      -> *[a, b, c]
//	a * b / c      -> *[a, b / c]
//	a / b / c      -> a / (b * c)
//
// Polynomial terms such as 2x stay intact inside products, and a
// unary minus applied to a literal non-negative constant becomes a
// negative constant. Parentheses are never looked through. Normalize
// is not a visible step.
func Normalize(n node.Node) node.Node {
	switch v := n.(type) {
	case *node.Constant:
		return node.Rat(v.Value)
	case *node.Symbol:
		return node.Sym(v.Name)
	case *node.Paren:
		return node.Par(Normalize(v.Content))
	case *node.Neg:
		a := Normalize(v.Arg)
		if c, ok := a.(*node.Constant); ok && c.Value.Sign() >= 0 {
			return &node.Constant{Value: new(big.Rat).Neg(c.Value)}
		}
		return node.Minus(a)
	case *node.Call:
		args := make([]node.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = Normalize(a)
		}
		return &node.Call{Name: v.Name, Args: args}
	case *node.Operator:
		switch v.Op {
		case node.Add, node.Sub:
			return flattenSum(v)
		case node.Mul, node.Div:
			return flattenProduct(v)
		}
		args := make([]node.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = Normalize(a)
		}
		return &node.Operator{Op: v.Op, Args: args, Implicit: v.Implicit}
	}
	return n
}

func flattenSum(o *node.Operator) node.Node {
	var terms []node.Node
	var walk func(n node.Node, negated bool)
	walk = func(n node.Node, negated bool) {
		if op, ok := node.AsOp(n, node.Add, node.Sub); ok {
			for i, a := range op.Args {
				walk(a, negated != (op.Op == node.Sub && i > 0))
			}
			return
		}
		n = Normalize(n)
		if negated {
			n = term.Negate(n)
		}
		terms = append(terms, n)
	}
	walk(o, false)
	if len(terms) == 1 {
		return terms[0]
	}
	return node.NewOp(node.Add, terms...)
}

// isTermProduct reports whether o is a product that is itself a
// polynomial term such as 2x or 3x^2.
func isTermProduct(o *node.Operator) bool {
	return o.Op == node.Mul && term.IsPolynomial(o, true)
}

func flattenProduct(o *node.Operator) node.Node {
	if isTermProduct(o) {
		return &node.Operator{Op: node.Mul, Args: []node.Node{Normalize(o.Args[0]), Normalize(o.Args[1])}, Implicit: o.Implicit}
	}
	var nums, dens []node.Node
	var walk func(n node.Node)
	walk = func(n node.Node) {
		op, ok := node.AsOp(n, node.Mul, node.Div)
		if !ok {
			nums = append(nums, Normalize(n))
			return
		}
		if isTermProduct(op) {
			nums = append(nums, Normalize(op))
			return
		}
		if op.Op == node.Mul {
			args := op.Args
			if op.Implicit && len(args) > 2 && fusable(args[0], args[1]) {
				nums = append(nums, node.Implicit(Normalize(args[0]), Normalize(args[1])))
				args = args[2:]
			}
			for _, a := range args {
				walk(a)
			}
			return
		}
		walk(op.Args[0])
		for _, d := range op.Args[1:] {
			d = Normalize(d)
			if _, ok := node.AsOp(d, node.Mul, node.Div, node.Add, node.Sub); ok && !isTermProductNode(d) {
				d = node.Par(d)
			}
			dens = append(dens, d)
		}
	}
	walk(o)

	if len(dens) == 0 {
		if len(nums) == 1 {
			return nums[0]
		}
		return &node.Operator{Op: node.Mul, Args: nums, Implicit: o.Implicit && len(nums) == 2}
	}
	den := dens[0]
	if len(dens) > 1 {
		den = node.Par(node.NewOp(node.Mul, dens...))
	}
	last := node.NewOp(node.Div, nums[len(nums)-1], den)
	if len(nums) == 1 {
		return last
	}
	return node.NewOp(node.Mul, append(nums[:len(nums)-1:len(nums)-1], last)...)
}

func isTermProductNode(n node.Node) bool {
	o, ok := node.AsOp(n, node.Mul)
	return ok && isTermProduct(o)
}

// fusable reports whether an implicit constant and symbol pair can
// form one polynomial term.
func fusable(a, b node.Node) bool {
	if _, ok := a.(*node.Constant); !ok {
		return false
	}
	return term.IsPolynomial(b, false)
}
