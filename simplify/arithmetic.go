package simplify

import (
	"zappem.net/pub/math/steps/arith"
	"zappem.net/pub/math/steps/node"
)

// foldArithmetic evaluates an operator whose operands are all
// constants. Integer division only folds when it is exact; other
// quotients are left for the fraction rules.
func foldArithmetic(n node.Node) Result {
	o, ok := node.AsOp(n)
	if !ok || len(o.Args) < 2 {
		return noChange(n)
	}
	for _, a := range o.Args {
		if _, ok := a.(*node.Constant); !ok {
			return noChange(n)
		}
	}
	if o.Op == node.Div {
		num, den := o.Args[0].(*node.Constant), o.Args[1].(*node.Constant)
		if den.Value.Sign() == 0 || len(o.Args) != 2 {
			return noChange(n)
		}
		v, _ := arith.Apply(node.Div, num.Value, den.Value)
		if num.Value.IsInt() && den.Value.IsInt() {
			if !v.IsInt() {
				return noChange(n)
			}
		} else if !arith.Terminates(v) {
			v = arith.Round(v, arith.Places)
		}
		return changed(node.Rat(v), SimplifyArithmetic)
	}
	v, err := arith.Eval(o)
	if err != nil {
		// 2^0.5 and friends are left symbolic.
		return noChange(n)
	}
	return changed(node.Rat(v), SimplifyArithmetic)
}
