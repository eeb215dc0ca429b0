// Package expand multiplies expression trees out into sums of
// monomials with exact rational coefficients. Two trees that expand to
// the same sum are equal for every value of their symbols, which is
// how rewrites are checked to be sound.
package expand

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"zappem.net/pub/math/steps/node"
)

// ErrNotPolynomial reports a tree that has no expansion: a function
// call, a symbolic or fractional exponent, or a division by a sum.
var ErrNotPolynomial = errors.New("not a polynomial")

// ErrInexact reports a tree holding decimals. Decimals may have been
// rounded, so such trees are never compared.
var ErrInexact = errors.New("decimal values are not compared")

// maxPower bounds the integer powers that are multiplied out.
const maxPower = 32

// Term is a product of a coefficient and a set of symbol factors.
type Term struct {
	Coeff *big.Rat
	Fact  []Factor
}

// Exp is a sum of terms.
type Exp struct {
	terms map[string]Term
}

func newExp() *Exp {
	return &Exp{terms: make(map[string]Term)}
}

// NewExp builds the sum of the given products.
func NewExp(ts ...[]Factor) *Exp {
	e := newExp()
	for _, t := range ts {
		n, fs, s := segment(t...)
		if n == nil {
			continue
		}
		e.insert(n, fs, s)
	}
	return e
}

// Rat is the expansion of a number.
func Rat(r *big.Rat) *Exp {
	return NewExp([]Factor{R(r)})
}

// IsZero confirms an expression is zero.
func (e *Exp) IsZero() bool {
	return e == nil || len(e.terms) == 0
}

// String renders the sum with its terms in key order.
func (e *Exp) String() string {
	if e.IsZero() {
		return "0"
	}
	var s []string
	for x := range e.terms {
		s = append(s, x)
	}
	sort.Strings(s)
	for i, x := range s {
		f := e.terms[x]
		t := prod(append([]Factor{R(f.Coeff)}, f.Fact...)...)
		if i != 0 && t[0] != '-' {
			s[i] = "+" + t
		} else {
			s[i] = t
		}
	}
	return strings.Join(s, "")
}

// insert merges n times the product fs, keyed by s, into e.
func (e *Exp) insert(n *big.Rat, fs []Factor, s string) {
	old, ok := e.terms[s]
	if !ok {
		e.terms[s] = Term{Coeff: n, Fact: fs}
		return
	}
	old.Coeff = n.Add(n, old.Coeff)
	if old.Coeff.Sign() == 0 {
		delete(e.terms, s)
		return
	}
	e.terms[s] = old
}

// Sum adds together expressions.
func Sum(as ...*Exp) *Exp {
	e := newExp()
	for _, a := range as {
		if a == nil {
			continue
		}
		for s, t := range a.terms {
			e.insert(new(big.Rat).Set(t.Coeff), t.Fact, s)
		}
	}
	return e
}

// Add returns a+b.
func (a *Exp) Add(b *Exp) *Exp {
	return Sum(a, b)
}

// Sub returns a-b.
func (a *Exp) Sub(b *Exp) *Exp {
	e := Sum(a)
	for s, t := range b.terms {
		e.insert(new(big.Rat).Neg(t.Coeff), t.Fact, s)
	}
	return e
}

// Mul computes the product of a series of expressions.
func Mul(as ...*Exp) *Exp {
	var e *Exp
	for i, a := range as {
		if i == 0 {
			e = Sum(a)
			continue
		}
		f := newExp()
		for _, p := range a.terms {
			for _, q := range e.terms {
				x := []Factor{R(p.Coeff), R(q.Coeff)}
				n, fs, s := segment(append(x, append(append([]Factor{}, p.Fact...), q.Fact...)...)...)
				if n == nil {
					continue
				}
				f.insert(n, fs, s)
			}
		}
		e = f
	}
	return e
}

// Mul computes the product of e with some others.
func (e *Exp) Mul(es ...*Exp) *Exp {
	return Mul(append([]*Exp{e}, es...)...)
}

// Inverse returns 1/e. Only a single non-zero term has an inverse.
func (e *Exp) Inverse() (*Exp, error) {
	if len(e.terms) != 1 {
		return nil, fmt.Errorf("%w: division by %s", ErrNotPolynomial, e)
	}
	for _, t := range e.terms {
		inv := new(big.Rat).Inv(t.Coeff)
		return NewExp(append([]Factor{R(inv)}, invert(t.Fact)...)), nil
	}
	panic("unreachable")
}

// Pow raises e to an integer power.
func (e *Exp) Pow(n int) (*Exp, error) {
	if n > maxPower || n < -maxPower {
		return nil, fmt.Errorf("%w: power %d", ErrNotPolynomial, n)
	}
	base := e
	if n < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return nil, err
		}
		base, n = inv, -n
	}
	r := Rat(one)
	for i := 0; i < n; i++ {
		r = r.Mul(base)
	}
	return r, nil
}

// Equals reports whether e and x expand to the same sum.
func (e *Exp) Equals(x *Exp) bool {
	return e.Sub(x).IsZero()
}

// Node expands a tree.
func Node(n node.Node) (*Exp, error) {
	switch v := n.(type) {
	case *node.Constant:
		return Rat(v.Value), nil
	case *node.Symbol:
		return NewExp([]Factor{S(v.Name)}), nil
	case *node.Paren:
		return Node(v.Content)
	case *node.Neg:
		e, err := Node(v.Arg)
		if err != nil {
			return nil, err
		}
		return e.Mul(Rat(minusOne)), nil
	case *node.Operator:
		return operator(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotPolynomial, node.String(n))
}

func operator(o *node.Operator) (*Exp, error) {
	if len(o.Args) == 0 {
		return nil, fmt.Errorf("%w: empty %q", ErrNotPolynomial, o.Op)
	}
	if o.Op == node.Pow {
		return power(o)
	}
	acc, err := Node(o.Args[0])
	if err != nil {
		return nil, err
	}
	for _, a := range o.Args[1:] {
		x, err := Node(a)
		if err != nil {
			return nil, err
		}
		switch o.Op {
		case node.Add:
			acc = acc.Add(x)
		case node.Sub:
			acc = acc.Sub(x)
		case node.Mul:
			acc = acc.Mul(x)
		case node.Div:
			inv, err := x.Inverse()
			if err != nil {
				return nil, err
			}
			acc = acc.Mul(inv)
		default:
			return nil, fmt.Errorf("%w: operator %q", ErrNotPolynomial, o.Op)
		}
	}
	return acc, nil
}

// power expands a^b for a right associative chain of integer
// exponents.
func power(o *node.Operator) (*Exp, error) {
	acc, err := Node(o.Args[len(o.Args)-1])
	if err != nil {
		return nil, err
	}
	for i := len(o.Args) - 2; i >= 0; i-- {
		n, ok := acc.AsInt()
		if !ok {
			return nil, fmt.Errorf("%w: exponent %s", ErrNotPolynomial, acc)
		}
		base, err := Node(o.Args[i])
		if err != nil {
			return nil, err
		}
		if acc, err = base.Pow(n); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// AsInt returns the value of an expression that is a small integer.
func (e *Exp) AsInt() (int, bool) {
	if e.IsZero() {
		return 0, true
	}
	t, ok := e.terms["0"]
	if !ok || len(e.terms) != 1 || !t.Coeff.IsInt() || !t.Coeff.Num().IsInt64() {
		return 0, false
	}
	n := t.Coeff.Num().Int64()
	if n > maxPower || n < -maxPower {
		return 0, false
	}
	return int(n), true
}

// Equivalent reports whether a and b agree for every value of their
// symbols. It returns ErrNotPolynomial when either tree has no
// expansion and ErrInexact when either holds a decimal.
func Equivalent(a, b node.Node) (bool, error) {
	if hasDecimal(a) || hasDecimal(b) {
		return false, ErrInexact
	}
	x, err := Node(a)
	if err != nil {
		return false, err
	}
	y, err := Node(b)
	if err != nil {
		return false, err
	}
	return x.Equals(y), nil
}

// hasDecimal reports whether n holds a non-integer constant.
func hasDecimal(n node.Node) bool {
	return node.Any(n, func(x node.Node) bool {
		c, ok := x.(*node.Constant)
		return ok && !c.Value.IsInt()
	})
}
