// Package term reads higher level algebraic structure out of plain
// node trees: polynomial terms (coefficient * symbol^exponent) and
// constant fractions (constant / constant). The views are computed on
// demand and are never cached on the nodes.
package term

import (
	"fmt"
	"math/big"

	"zappem.net/pub/math/steps/node"
)

// Poly is the polynomial term view of a node.
type Poly struct {
	name     string
	exponent node.Node // nil means 1
	coeff    node.Node // nil means 1; a constant or constant fraction
}

// IsFraction reports whether n is a constant divided by a constant.
func IsFraction(n node.Node) bool {
	_, _, ok := Fraction(n)
	return ok
}

// Fraction returns the numerator and denominator of a constant
// fraction.
func Fraction(n node.Node) (num, den *node.Constant, ok bool) {
	o, ok := node.AsOp(n, node.Div)
	if !ok || len(o.Args) != 2 {
		return nil, nil, false
	}
	num, ok1 := o.Args[0].(*node.Constant)
	den, ok2 := o.Args[1].(*node.Constant)
	if !ok1 || !ok2 || den.Value.Sign() == 0 {
		return nil, nil, false
	}
	return num, den, true
}

// IsIntegerFraction reports whether n is a constant fraction of two
// integers.
func IsIntegerFraction(n node.Node) bool {
	num, den, ok := Fraction(n)
	return ok && num.Value.IsInt() && den.Value.IsInt()
}

// IsConstantOrFraction reports whether n is a constant or a constant
// fraction.
func IsConstantOrFraction(n node.Node) bool {
	if _, ok := n.(*node.Constant); ok {
		return true
	}
	return IsFraction(n)
}

// Value returns the exact value of a constant or constant fraction.
func Value(n node.Node) (*big.Rat, bool) {
	if c, ok := n.(*node.Constant); ok {
		return new(big.Rat).Set(c.Value), true
	}
	num, den, ok := Fraction(n)
	if !ok {
		return nil, false
	}
	return new(big.Rat).Quo(num.Value, den.Value), true
}

// IsPolynomial reports whether n can be viewed as a polynomial term.
// With allowCoeff false only the bare forms x and x^e qualify.
func IsPolynomial(n node.Node, allowCoeff bool) bool {
	_, ok := Polynomial(n, allowCoeff)
	return ok
}

// Polynomial returns the polynomial term view of n. The accepted
// shapes are
//
//	x, x^e, c*x, c*x^e, -(x...), poly/c, (poly)/c
//
// where c is a constant or constant fraction and e is any node.
func Polynomial(n node.Node, allowCoeff bool) (*Poly, bool) {
	switch v := n.(type) {
	case *node.Symbol:
		return &Poly{name: v.Name}, true
	case *node.Neg:
		if !allowCoeff {
			return nil, false
		}
		if _, twice := v.Arg.(*node.Neg); twice {
			return nil, false
		}
		p, ok := Polynomial(v.Arg, true)
		if !ok || p.HasFractionCoeff() {
			return nil, false
		}
		p.coeff = negate(p.Coeff())
		return p, true
	case *node.Operator:
		switch v.Op {
		case node.Pow:
			if len(v.Args) != 2 {
				return nil, false
			}
			s, ok := v.Args[0].(*node.Symbol)
			if !ok {
				return nil, false
			}
			return &Poly{name: s.Name, exponent: v.Args[1]}, true
		case node.Mul:
			if !allowCoeff || len(v.Args) != 2 || !IsConstantOrFraction(v.Args[0]) {
				return nil, false
			}
			p, ok := Polynomial(v.Args[1], false)
			if !ok {
				return nil, false
			}
			p.coeff = v.Args[0]
			return p, true
		case node.Div:
			if !allowCoeff || len(v.Args) != 2 {
				return nil, false
			}
			den, ok := v.Args[1].(*node.Constant)
			if !ok || den.Value.Sign() == 0 {
				return nil, false
			}
			num := v.Args[0]
			if g, ok := num.(*node.Paren); ok {
				num = g.Content
			}
			p, ok := Polynomial(num, true)
			if !ok || p.HasFractionCoeff() {
				return nil, false
			}
			p.coeff = node.NewOp(node.Div, p.Coeff(), node.Rat(den.Value))
			return p, true
		}
	}
	return nil, false
}

// MustPolynomial is Polynomial for callers that have already
// classified n. A mismatch is a programming error.
func MustPolynomial(n node.Node) *Poly {
	p, ok := Polynomial(n, true)
	if !ok {
		panic(fmt.Sprintf("term: %q is not a polynomial term", node.String(n)))
	}
	return p
}

// Name is the symbol of the term.
func (p *Poly) Name() string {
	return p.name
}

// HasExponent reports whether an explicit exponent was present.
func (p *Poly) HasExponent() bool {
	return p.exponent != nil
}

// Exponent returns a copy of the exponent, 1 when absent.
func (p *Poly) Exponent() node.Node {
	if p.exponent == nil {
		return node.Int(1)
	}
	return node.Clone(p.exponent)
}

// HasCoeff reports whether the term carries a coefficient.
func (p *Poly) HasCoeff() bool {
	return p.coeff != nil
}

// Coeff returns a copy of the coefficient, 1 when absent.
func (p *Poly) Coeff() node.Node {
	if p.coeff == nil {
		return node.Int(1)
	}
	return node.Clone(p.coeff)
}

// HasFractionCoeff reports whether the coefficient is a fraction.
func (p *Poly) HasFractionCoeff() bool {
	return p.coeff != nil && IsFraction(p.coeff)
}

// CoeffValue is the exact value of the coefficient.
func (p *Poly) CoeffValue() *big.Rat {
	v, ok := Value(p.Coeff())
	if !ok {
		panic(fmt.Sprintf("term: bad coefficient %q", node.String(p.coeff)))
	}
	return v
}

// Base returns the symbol part of the term, x or x^e, without any
// coefficient.
func (p *Poly) Base() node.Node {
	if p.exponent == nil {
		return node.Sym(p.name)
	}
	return node.NewOp(node.Pow, node.Sym(p.name), node.Clone(p.exponent))
}

// Node rebuilds the term as a tree.
func (p *Poly) Node() node.Node {
	return Build(p.coeff, p.name, p.exponent)
}

// Negate returns the term with its coefficient negated.
func (p *Poly) Negate() node.Node {
	return Build(negate(p.Coeff()), p.name, p.exponent)
}

// Build constructs the canonical tree for coeff * name^exp. A nil
// coeff or exp means 1. A fractional coefficient a/b becomes
// (a name^exp) / b.
func Build(coeff node.Node, name string, exp node.Node) node.Node {
	var base node.Node = node.Sym(name)
	if exp != nil && !node.IsConstantValue(exp, 1) {
		base = node.NewOp(node.Pow, base, node.Clone(exp))
	}
	if coeff == nil {
		return base
	}
	if num, den, ok := Fraction(coeff); ok {
		n, d := num.Value, den.Value
		if d.Sign() < 0 {
			n, d = new(big.Rat).Neg(n), new(big.Rat).Neg(d)
		}
		return node.NewOp(node.Div, withCoeff(n, base), node.Rat(d))
	}
	c, ok := coeff.(*node.Constant)
	if !ok {
		panic(fmt.Sprintf("term: coefficient %q is not a constant", node.String(coeff)))
	}
	return withCoeff(c.Value, base)
}

func withCoeff(c *big.Rat, base node.Node) node.Node {
	switch {
	case c.Cmp(big.NewRat(1, 1)) == 0:
		return base
	case c.Cmp(big.NewRat(-1, 1)) == 0:
		return node.Minus(base)
	}
	return node.Implicit(node.Rat(c), base)
}

// BuildValue constructs a term from an exact coefficient. When
// asFraction is set a non-integer coefficient is kept as a fraction,
// otherwise it becomes a decimal constant.
func BuildValue(c *big.Rat, name string, exp node.Node, asFraction bool) node.Node {
	if c.IsInt() || !asFraction {
		return Build(node.Rat(c), name, exp)
	}
	frac := node.NewOp(node.Div, &node.Constant{Value: new(big.Rat).SetInt(c.Num())},
		&node.Constant{Value: new(big.Rat).SetInt(c.Denom())})
	return Build(frac, name, exp)
}

// negate flips the sign of a constant or constant fraction.
func negate(c node.Node) node.Node {
	if k, ok := c.(*node.Constant); ok {
		return &node.Constant{Value: new(big.Rat).Neg(k.Value)}
	}
	if num, den, ok := Fraction(c); ok {
		return node.NewOp(node.Div, &node.Constant{Value: new(big.Rat).Neg(num.Value)}, node.Rat(den.Value))
	}
	panic(fmt.Sprintf("term: cannot negate coefficient %q", node.String(c)))
}

// Negate returns the additive inverse of n in the simplest form the
// tree allows: constants and fractions change sign, polynomial terms
// have their coefficient negated, a unary minus is removed and
// anything else is wrapped in one.
func Negate(n node.Node) node.Node {
	switch v := n.(type) {
	case *node.Constant:
		return &node.Constant{Value: new(big.Rat).Neg(v.Value)}
	case *node.Neg:
		return node.Clone(v.Arg)
	}
	if IsFraction(n) {
		return negate(n)
	}
	if p, ok := Polynomial(n, true); ok {
		return p.Negate()
	}
	if o, ok := node.AsOp(n, node.Add, node.Sub); ok {
		return node.Minus(node.Par(node.Clone(o)))
	}
	return node.Minus(node.Clone(n))
}

// IsNegative reports whether n displays with a leading minus sign:
// a negative constant, a unary minus or a term with a negative
// coefficient.
func IsNegative(n node.Node) bool {
	switch v := n.(type) {
	case *node.Constant:
		return v.Value.Sign() < 0
	case *node.Neg:
		return true
	}
	if v, ok := Value(n); ok {
		return v.Sign() < 0
	}
	if p, ok := Polynomial(n, true); ok && p.HasCoeff() {
		return p.CoeffValue().Sign() < 0
	}
	return false
}
