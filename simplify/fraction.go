package simplify

import (
	"math/big"

	"zappem.net/pub/math/steps/arith"
	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// SimplifyFraction reduces an integer fraction by the GCD of its
// numerator and denominator. The denominator always ends up positive
// and a denominator of 1 is dropped.
func SimplifyFraction(n node.Node) Result {
	if !term.IsIntegerFraction(n) {
		return noChange(n)
	}
	num, den, _ := term.Fraction(n)
	a, b := num.Value.Num(), den.Value.Num()
	g := arith.GCD(a, b)
	if b.Sign() < 0 {
		g.Neg(g)
	}
	if g.Cmp(big.NewInt(1)) == 0 {
		return noChange(n)
	}
	a = new(big.Int).Quo(a, g)
	b = new(big.Int).Quo(b, g)
	if b.Cmp(big.NewInt(1)) == 0 {
		return changed(&node.Constant{Value: new(big.Rat).SetInt(a)}, SimplifyFractionTag)
	}
	return changed(node.NewOp(node.Div,
		&node.Constant{Value: new(big.Rat).SetInt(a)},
		&node.Constant{Value: new(big.Rat).SetInt(b)}), SimplifyFractionTag)
}

// addFractions combines a sum of constants and constant fractions.
// Sums that involve a decimal collapse to decimals. Otherwise every
// operand is brought over the least common denominator in one step.
func addFractions(n node.Node) Result {
	o, ok := node.AsOp(n, node.Add)
	if !ok || len(o.Args) < 2 {
		return noChange(n)
	}
	fractions, integers := 0, true
	for _, a := range o.Args {
		switch {
		case term.IsIntegerFraction(a):
			fractions++
		case term.IsFraction(a):
			fractions++
			integers = false
		default:
			c, ok := a.(*node.Constant)
			if !ok {
				return noChange(n)
			}
			if !c.Value.IsInt() {
				integers = false
			}
		}
	}
	if fractions == 0 {
		return noChange(n)
	}
	if !integers {
		args := make([]node.Node, len(o.Args))
		for i, a := range o.Args {
			v, _ := term.Value(a)
			if !arith.Terminates(v) {
				v = arith.Round(v, arith.Places)
			}
			args[i] = node.Rat(v)
		}
		return changed(node.NewOp(node.Add, args...), SimplifyArithmetic)
	}

	lcm := big.NewInt(1)
	same := true
	var first *big.Int
	for _, a := range o.Args {
		_, den, ok := term.Fraction(a)
		if !ok {
			continue
		}
		d := den.Value.Num()
		if first == nil {
			first = d
		} else if d.Cmp(first) != 0 {
			same = false
		}
		lcm = arith.LCM(lcm, d)
	}
	l := new(big.Rat).SetInt(lcm)
	nums := make([]node.Node, len(o.Args))
	for i, a := range o.Args {
		if c, ok := a.(*node.Constant); ok {
			nums[i] = node.Rat(new(big.Rat).Mul(c.Value, l))
			continue
		}
		num, den, _ := term.Fraction(a)
		if same {
			nums[i] = node.Rat(num.Value)
			continue
		}
		scale := new(big.Rat).Quo(l, den.Value)
		nums[i] = node.Rat(new(big.Rat).Mul(num.Value, scale))
	}
	tag := AddFractions
	switch {
	case fractions != len(o.Args):
		tag = ConvertIntegerToFraction
	case !same:
		tag = CommonDenominator
	}
	return changed(node.NewOp(node.Div, node.Par(node.NewOp(node.Add, nums...)), node.Rat(l)), tag)
}

// multiplyFractions multiplies constants and constant fractions into
// a single fraction.
func multiplyFractions(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok || len(o.Args) < 2 {
		return noChange(n)
	}
	var nums, dens []node.Node
	for _, a := range o.Args {
		if c, ok := a.(*node.Constant); ok {
			nums = append(nums, node.Rat(c.Value))
			continue
		}
		num, den, ok := term.Fraction(a)
		if !ok {
			return noChange(n)
		}
		nums = append(nums, node.Rat(num.Value))
		dens = append(dens, node.Rat(den.Value))
	}
	if len(dens) == 0 {
		return noChange(n)
	}
	return changed(node.NewOp(node.Div, group(nums), group(dens)), MultiplyFractions)
}

// divideByFraction turns a constant divided by a constant fraction
// into a product with the inverted fraction and multiplies it out:
// 2/(3/4) becomes (2 * 4) / 3.
func divideByFraction(n node.Node) Result {
	o, ok := node.AsOp(n, node.Div)
	if !ok || len(o.Args) != 2 {
		return noChange(n)
	}
	num, den := ungroup(o.Args[0]), ungroup(o.Args[1])
	if !term.IsConstantOrFraction(num) {
		return noChange(n)
	}
	p, q, ok := term.Fraction(den)
	if !ok || p.Value.Sign() == 0 {
		return noChange(n)
	}
	inv := node.NewOp(node.Div, node.Rat(q.Value), node.Rat(p.Value))
	res := multiplyFractions(node.NewOp(node.Mul, node.Clone(num), inv))
	return changed(res.Node, MultiplyByInverse)
}

// ungroup strips any parentheses around n.
func ungroup(n node.Node) node.Node {
	if p, ok := n.(*node.Paren); ok {
		return innermost(p)
	}
	return n
}

// group returns the single element of args or their parenthesized
// product.
func group(args []node.Node) node.Node {
	if len(args) == 1 {
		return args[0]
	}
	return node.Par(node.NewOp(node.Mul, args...))
}
