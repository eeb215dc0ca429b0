package simplify

import (
	"math/big"

	"zappem.net/pub/math/steps/arith"
	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// likeKey identifies terms that can be added: same symbol, same
// exponent text.
func likeKey(p *term.Poly) string {
	return p.Name() + "^" + node.String(p.Exponent())
}

// likeTerms returns the polynomial views of the operands of o when all
// of them share one key.
func likeTerms(o *node.Operator, allowCoeff bool, key func(*term.Poly) string) ([]*term.Poly, bool) {
	if len(o.Args) < 2 {
		return nil, false
	}
	ps := make([]*term.Poly, len(o.Args))
	for i, a := range o.Args {
		p, ok := term.Polynomial(a, allowCoeff)
		if !ok || i > 0 && key(p) != key(ps[0]) {
			return nil, false
		}
		ps[i] = p
	}
	return ps, true
}

func nameKey(p *term.Poly) string {
	return p.Name()
}

func canAddLikeTerms(n node.Node) bool {
	o, ok := node.AsOp(n, node.Add)
	if !ok {
		return false
	}
	_, ok = likeTerms(o, true, likeKey)
	return ok
}

func canMultiplyLikeTerms(n node.Node) bool {
	o, ok := node.AsOp(n, node.Mul)
	if !ok {
		return false
	}
	_, ok = likeTerms(o, false, nameKey)
	return ok
}

// addPolynomialTerms sums the coefficients of like terms: 2x + 3x
// becomes 5x. A fractional coefficient survives as a fraction.
func addPolynomialTerms(n node.Node) Result {
	o, ok := node.AsOp(n, node.Add)
	if !ok {
		return noChange(n)
	}
	ps, ok := likeTerms(o, true, likeKey)
	if !ok {
		return noChange(n)
	}
	sum := new(big.Rat)
	fraction := false
	for _, p := range ps {
		sum.Add(sum, p.CoeffValue())
		fraction = fraction || p.HasFractionCoeff()
	}
	if sum.Sign() == 0 {
		return changed(node.Int(0), AddPolynomialTerms)
	}
	var exp node.Node
	if ps[0].HasExponent() {
		exp = ps[0].Exponent()
	}
	return changed(term.BuildValue(sum, ps[0].Name(), exp, fraction), AddPolynomialTerms)
}

// multiplyPolynomialTerms adds the exponents of a product of bare
// powers of one symbol: x^2 * x becomes x^(2 + 1).
func multiplyPolynomialTerms(n node.Node) Result {
	o, ok := node.AsOp(n, node.Mul)
	if !ok {
		return noChange(n)
	}
	ps, ok := likeTerms(o, false, nameKey)
	if !ok {
		return noChange(n)
	}
	exps := make([]node.Node, len(ps))
	for i, p := range ps {
		exps[i] = p.Exponent()
	}
	pow := node.NewOp(node.Pow, node.Sym(ps[0].Name()), node.Par(node.NewOp(node.Add, exps...)))
	return changed(pow, MultiplyPolynomialTerms)
}

// simplifyPolynomialFraction reduces the fractional coefficient of a
// term: 2x/4 becomes x/2. A coefficient fraction holding a decimal is
// evaluated instead, so 0.5x/2 becomes 0.25x.
func simplifyPolynomialFraction(n node.Node) Result {
	p, ok := term.Polynomial(n, true)
	if !ok || !p.HasFractionCoeff() {
		return noChange(n)
	}
	var exp node.Node
	if p.HasExponent() {
		exp = p.Exponent()
	}
	if !term.IsIntegerFraction(p.Coeff()) {
		v := p.CoeffValue()
		if !arith.Terminates(v) {
			v = arith.Round(v, arith.Places)
		}
		return changed(term.BuildValue(v, p.Name(), exp, false), SimplifyArithmetic)
	}
	res := SimplifyFraction(p.Coeff())
	if !res.Changed {
		return noChange(n)
	}
	return changed(term.Build(res.Node, p.Name(), exp), SimplifyPolynomialFraction)
}
