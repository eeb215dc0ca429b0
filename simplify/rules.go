package simplify

import "zappem.net/pub/math/steps/node"

// preRules fire on a node before its children are visited.
var preRules = []rule{
	removeDoubleUnaryMinus,
	reduceExponentByZero,
	removeAdditionOfZero,
	removeMultiplicationByOne,
	reduceMultiplicationByZero,
	reduceZeroNumerator,
}

// postRules fire on a node once none of its children changed. The
// order is significant: identities and sign rules win over arithmetic
// and arithmetic over fractions and polynomial terms.
var postRules = []rule{
	removeExponentByOne,
	removeDivisionByOne,
	divisionByNegativeOne,
	removeMultiplicationByNegativeOne,
	foldArithmetic,
	addFractions,
	multiplyFractions,
	divideByFraction,
	SimplifyFraction,
	addPolynomialTerms,
	multiplyPolynomialTerms,
	simplifyPolynomialFraction,
	rearrangeCoefficient,
}

// LocalRules applies the first matching rule of the local catalogue
// anywhere in n.
func LocalRules(n node.Node) Result {
	if res := first(n, preRules); res.Changed {
		return res
	}
	for i, c := range node.Children(n) {
		if res := LocalRules(c); res.Changed {
			return changed(node.WithChild(n, i, res.Node), res.Tag)
		}
	}
	return first(n, postRules)
}
