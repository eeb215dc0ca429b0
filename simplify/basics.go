package simplify

import (
	"math/big"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// removeDoubleUnaryMinus rewrites -(-e) and -(-c) to e and c.
func removeDoubleUnaryMinus(n node.Node) Result {
	neg, ok := n.(*node.Neg)
	if !ok {
		return noChange(n)
	}
	switch v := neg.Arg.(type) {
	case *node.Neg:
		return changed(v.Arg, RemoveDoubleUnaryMinus)
	case *node.Constant:
		if v.Value.Sign() < 0 {
			return changed(&node.Constant{Value: new(big.Rat).Neg(v.Value)}, RemoveDoubleUnaryMinus)
		}
	case *node.Paren:
		if inner, ok := v.Content.(*node.Neg); ok {
			return changed(inner.Arg, RemoveDoubleUnaryMinus)
		}
	}
	return noChange(n)
}

func reduceExponentByZero(n node.Node) Result {
	o, ok := node.AsOp(n, node.Pow)
	if !ok || len(o.Args) != 2 || !node.IsConstantValue(o.Args[1], 0) {
		return noChange(n)
	}
	return changed(node.Int(1), ReduceExponentByZero)
}

func removeExponentByOne(n node.Node) Result {
	o, ok := node.AsOp(n, node.Pow)
	if !ok || len(o.Args) != 2 || !node.IsConstantValue(o.Args[1], 1) {
		return noChange(n)
	}
	return changed(o.Args[0], RemoveExponentByOne)
}

// without returns the arguments of o that are not the constant v.
func without(o *node.Operator, v int64) []node.Node {
	var keep []node.Node
	for _, a := range o.Args {
		if !node.IsConstantValue(a, v) {
			keep = append(keep, a)
		}
	}
	return keep
}

func removeAdditionOfZero(n node.Node) Result {
	o, ok := node.AsOp(n, node.Add)
	if !ok {
		return noChange(n)
	}
	keep := without(o, 0)
	switch len(keep) {
	case len(o.Args):
		return noChange(n)
	case 0:
		return changed(node.Int(0), RemoveAdditionOfZero)
	case 1:
		return changed(keep[0], RemoveAdditionOfZero)
	}
	return changed(node.NewOp(node.Add, keep...), RemoveAdditionOfZero)
}

func removeMultiplicationByOne(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok {
		return noChange(n)
	}
	keep := without(o, 1)
	switch len(keep) {
	case len(o.Args):
		return noChange(n)
	case 0:
		return changed(node.Int(1), RemoveMultiplicationByOne)
	case 1:
		return changed(keep[0], RemoveMultiplicationByOne)
	}
	return changed(node.NewOp(node.Mul, keep...), RemoveMultiplicationByOne)
}

func reduceMultiplicationByZero(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok {
		return noChange(n)
	}
	for _, a := range o.Args {
		if node.IsConstantValue(a, 0) {
			return changed(node.Int(0), ReduceMultiplicationByZero)
		}
	}
	return noChange(n)
}

// reduceZeroNumerator rewrites 0/x to 0. 0/0 is left alone.
func reduceZeroNumerator(n node.Node) Result {
	o, ok := node.AsOp(n, node.Div)
	if !ok || len(o.Args) != 2 || !node.IsConstantValue(o.Args[0], 0) || node.IsConstantValue(o.Args[1], 0) {
		return noChange(n)
	}
	return changed(node.Int(0), ReduceZeroNumerator)
}

func removeDivisionByOne(n node.Node) Result {
	o, ok := node.AsOp(n, node.Div)
	if !ok || len(o.Args) != 2 || !node.IsConstantValue(o.Args[1], 1) {
		return noChange(n)
	}
	return changed(o.Args[0], RemoveDivisionByOne)
}

func divisionByNegativeOne(n node.Node) Result {
	o, ok := node.AsOp(n, node.Div)
	if !ok || len(o.Args) != 2 || !node.IsConstantValue(o.Args[1], -1) {
		return noChange(n)
	}
	num := o.Args[0]
	if _, op := num.(*node.Operator); op {
		num = node.Par(num)
	}
	return changed(node.Minus(num), DivisionByNegativeOne)
}

// removeMultiplicationByNegativeOne drops a -1 factor and negates its
// neighbour. Constant neighbours are left to arithmetic.
func removeMultiplicationByNegativeOne(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok || len(o.Args) < 2 {
		return noChange(n)
	}
	for i, a := range o.Args {
		if !node.IsConstantValue(a, -1) {
			continue
		}
		j := i + 1
		if j == len(o.Args) {
			j = i - 1
		}
		next := o.Args[j]
		if term.IsConstantOrFraction(next) {
			continue
		}
		var negated node.Node
		if neg, ok := next.(*node.Neg); ok {
			negated = neg.Arg
		} else {
			negated = node.Minus(next)
		}
		var args []node.Node
		for k, b := range o.Args {
			switch k {
			case i:
			case j:
				args = append(args, negated)
			default:
				args = append(args, b)
			}
		}
		if len(args) == 1 {
			return changed(args[0], RemoveMultiplicationByNegativeOne)
		}
		return changed(node.NewOp(node.Mul, args...), RemoveMultiplicationByNegativeOne)
	}
	return noChange(n)
}

// rearrangeCoefficient turns x * 2, 2 * x and (1/2) * x into the
// polynomial terms 2x and x / 2.
func rearrangeCoefficient(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok || len(o.Args) != 2 {
		return noChange(n)
	}
	c, x := o.Args[0], o.Args[1]
	switch {
	case term.IsConstantOrFraction(x) && !term.IsConstantOrFraction(c):
		c, x = x, c
	case !term.IsConstantOrFraction(c):
		return noChange(n)
	case o.Implicit && !term.IsFraction(c):
		return noChange(n)
	}
	p, ok := term.Polynomial(x, false)
	if !ok {
		return noChange(n)
	}
	var exp node.Node
	if p.HasExponent() {
		exp = p.Exponent()
	}
	return changed(term.Build(node.Clone(c), p.Name(), exp), RearrangeCoefficient)
}
