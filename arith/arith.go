// Package arith is the exact arithmetic used to fold constant
// sub-expressions. All values are big.Rat; nothing is rounded unless
// Round is called.
package arith

import (
	"errors"
	"fmt"
	"math/big"

	"zappem.net/pub/math/steps/node"
)

var (
	ErrNotConstant  = errors.New("expression is not constant")
	ErrDivideByZero = errors.New("division by zero")
	ErrBadExponent  = errors.New("exponent is not a small integer")
)

// maxExponent bounds the integer powers Eval will compute.
const maxExponent = 1024

// Places is the number of decimal places kept when a value has to be
// collapsed to a decimal.
const Places = 4

// GCD returns the greatest common divisor of a and b. It is never
// negative.
func GCD(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return g.Abs(g)
}

// LCM returns the least common multiple of a and b.
func LCM(a, b *big.Int) *big.Int {
	g := GCD(a, b)
	if g.Sign() == 0 {
		return new(big.Int)
	}
	l := new(big.Int).Mul(a, b)
	l = l.Abs(l)
	return l.Quo(l, g)
}

// IsInt reports whether n is a constant holding an integer.
func IsInt(n node.Node) bool {
	c, ok := n.(*node.Constant)
	return ok && c.Value.IsInt()
}

// Terminates reports whether r has a finite decimal expansion.
func Terminates(r *big.Rat) bool {
	d := new(big.Int).Set(r.Denom())
	m := new(big.Int)
	for _, p := range []int64{2, 5} {
		f := big.NewInt(p)
		for {
			q, rem := new(big.Int).QuoRem(d, f, m)
			if rem.Sign() != 0 {
				break
			}
			d = q
		}
	}
	return d.Cmp(big.NewInt(1)) == 0
}

// Round rounds r to places decimal places, halves away from zero.
func Round(r *big.Rat, places int) *big.Rat {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	x := new(big.Rat).Mul(r, new(big.Rat).SetInt(scale))
	num := new(big.Int).Abs(x.Num())
	q, m := new(big.Int).QuoRem(num, x.Denom(), new(big.Int))
	if new(big.Int).Mul(m, big.NewInt(2)).Cmp(x.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if x.Sign() < 0 {
		q.Neg(q)
	}
	return new(big.Rat).SetFrac(q, scale)
}

// Pow raises base to an integer power.
func Pow(base *big.Rat, exp *big.Rat) (*big.Rat, error) {
	if !exp.IsInt() || !exp.Num().IsInt64() {
		return nil, ErrBadExponent
	}
	e := exp.Num().Int64()
	if e > maxExponent || e < -maxExponent {
		return nil, ErrBadExponent
	}
	neg := e < 0
	if neg {
		if base.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		e = -e
	}
	n := big.NewInt(e)
	num := new(big.Int).Exp(base.Num(), n, nil)
	den := new(big.Int).Exp(base.Denom(), n, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den), nil
}

// Apply combines two values with op.
func Apply(op node.Op, a, b *big.Rat) (*big.Rat, error) {
	switch op {
	case node.Add:
		return new(big.Rat).Add(a, b), nil
	case node.Sub:
		return new(big.Rat).Sub(a, b), nil
	case node.Mul:
		return new(big.Rat).Mul(a, b), nil
	case node.Div:
		if b.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		return new(big.Rat).Quo(a, b), nil
	case node.Pow:
		return Pow(a, b)
	}
	panic(fmt.Sprintf("arith: unknown operator %q", op))
}

// Eval computes the exact value of a constant expression.
func Eval(n node.Node) (*big.Rat, error) {
	switch v := n.(type) {
	case *node.Constant:
		return new(big.Rat).Set(v.Value), nil
	case *node.Paren:
		return Eval(v.Content)
	case *node.Neg:
		x, err := Eval(v.Arg)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case *node.Operator:
		if len(v.Args) == 0 {
			return nil, fmt.Errorf("%w: empty %q", ErrNotConstant, v.Op)
		}
		acc, err := Eval(v.Args[0])
		if err != nil {
			return nil, err
		}
		for _, a := range v.Args[1:] {
			x, err := Eval(a)
			if err != nil {
				return nil, err
			}
			if acc, err = Apply(v.Op, acc, x); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotConstant, node.String(n))
}

// Resolves reports whether n evaluates to a number.
func Resolves(n node.Node) bool {
	_, err := Eval(n)
	return err == nil
}

// IsConstantExpr reports whether n contains no symbols or calls, that
// is whether it could be folded down to a number by arithmetic.
func IsConstantExpr(n node.Node) bool {
	return !node.Any(n, func(x node.Node) bool {
		switch x.(type) {
		case *node.Symbol, *node.Call:
			return true
		}
		return false
	})
}
