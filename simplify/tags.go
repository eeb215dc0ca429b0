// Package simplify rewrites expression trees one rule at a time,
// recording every applied rule as a step that can be shown to a
// student.
package simplify

import "zappem.net/pub/math/steps/node"

// Tag names one kind of rewrite. The values are stable: callers match
// on them to explain steps.
type Tag string

const (
	NoChange Tag = ""

	// Cosmetic step recorded when the input contains "+ -".
	ResolveAddUnaryMinus Tag = "RESOLVE_ADD_UNARY_MINUS"

	// Identities.
	RemoveAdditionOfZero       Tag = "REMOVE_ADDING_ZERO"
	RemoveMultiplicationByOne  Tag = "REMOVE_MULTIPLYING_BY_ONE"
	ReduceMultiplicationByZero Tag = "MULTIPLY_BY_ZERO"
	ReduceZeroNumerator        Tag = "REDUCE_ZERO_NUMERATOR"
	RemoveDivisionByOne        Tag = "DIVISION_BY_ONE"
	DivisionByNegativeOne      Tag = "DIVISION_BY_NEGATIVE_ONE"
	ReduceExponentByZero       Tag = "REDUCE_EXPONENT_BY_ZERO"
	RemoveExponentByOne        Tag = "REMOVE_EXPONENT_BY_ONE"

	// Signs.
	RemoveDoubleUnaryMinus            Tag = "DOUBLE_UNARY_MINUS"
	RemoveMultiplicationByNegativeOne Tag = "REMOVE_MULTIPLYING_BY_NEGATIVE_ONE"
	RearrangeCoefficient              Tag = "REARRANGE_COEFF"

	// Numbers and fractions.
	SimplifyArithmetic       Tag = "SIMPLIFY_ARITHMETIC"
	AddFractions             Tag = "ADD_FRACTIONS"
	CommonDenominator        Tag = "COMMON_DENOMINATOR"
	ConvertIntegerToFraction Tag = "CONVERT_INTEGER_TO_FRACTION"
	MultiplyFractions        Tag = "MULTIPLY_FRACTIONS"
	MultiplyByInverse        Tag = "MULTIPLY_BY_INVERSE"
	SimplifyFractionTag      Tag = "SIMPLIFY_FRACTION"

	// Polynomial terms.
	AddPolynomialTerms         Tag = "ADD_POLYNOMIAL_TERMS"
	MultiplyPolynomialTerms    Tag = "MULTIPLY_POLYNOMIAL_TERMS"
	SimplifyPolynomialFraction Tag = "SIMPLIFY_POLYNOMIAL_FRACTION"
	CollectLikeTerms           Tag = "COLLECT_AND_COMBINE_LIKE_TERMS"

	// Structure.
	Distribute            Tag = "DISTRIBUTE"
	DistributeNegativeOne Tag = "DISTRIBUTE_NEGATIVE_ONE"
	SimplifyDivisionChain Tag = "SIMPLIFY_DIVISION"

	// Equation moves.
	SimplifyLeftSide      Tag = "SIMPLIFY_LEFT_SIDE"
	SimplifyRightSide     Tag = "SIMPLIFY_RIGHT_SIDE"
	SwapSides             Tag = "SWAP_SIDES"
	AddToBothSides        Tag = "ADD_TO_BOTH_SIDES"
	SubtractFromBothSides Tag = "SUBTRACT_FROM_BOTH_SIDES"
	MultiplyToBothSides   Tag = "MULTIPLY_TO_BOTH_SIDES"
	DivideFromBothSides   Tag = "DIVIDE_FROM_BOTH_SIDES"
)

// Result is the outcome of one rewrite attempt. Callers always adopt
// Node, even when Changed is false, because silent restructuring may
// have happened; only a Changed result is reported as a step.
type Result struct {
	Node    node.Node
	Changed bool
	Tag     Tag
}

func noChange(n node.Node) Result {
	return Result{Node: n}
}

func changed(n node.Node, tag Tag) Result {
	return Result{Node: n, Changed: true, Tag: tag}
}

// rule is a single local rewrite.
type rule func(node.Node) Result

// first returns the first change made by rules at n itself.
func first(n node.Node, rules []rule) Result {
	for _, r := range rules {
		if res := r(n); res.Changed {
			return res
		}
	}
	return noChange(n)
}

// postOrder tries r on the children of n before n itself and returns
// the first change found.
func postOrder(n node.Node, r rule) Result {
	for i, c := range node.Children(n) {
		if res := postOrder(c, r); res.Changed {
			return changed(node.WithChild(n, i, res.Node), res.Tag)
		}
	}
	return r(n)
}
