package expand

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Factor is a single factor of a monomial. It is either a number or a
// symbol raised to a non-zero integer power.
type Factor struct {
	num *big.Rat

	pow int
	sym string
}

// IsNum indicates that v is a rational number.
func (v Factor) IsNum() bool {
	return v.num != nil
}

// String displays a single factor.
func (v Factor) String() string {
	if v.IsNum() {
		return v.num.RatString()
	}
	if v.pow == 1 {
		return v.sym
	}
	return fmt.Sprintf("%s^%d", v.sym, v.pow)
}

var (
	zero     = big.NewRat(0, 1)
	one      = big.NewRat(1, 1)
	minusOne = big.NewRat(-1, 1)
)

// R copies a rational value into a number factor.
func R(n *big.Rat) Factor {
	return Factor{num: new(big.Rat).Set(n)}
}

// D converts two integers to a number factor.
func D(num, den int64) Factor {
	return Factor{num: big.NewRat(num, den)}
}

// S converts a name into a symbol factor.
func S(sym string) Factor {
	return Factor{sym: sym, pow: 1}
}

// Sp is a symbol raised to pow. A zero power is the number 1.
func Sp(sym string, pow int) Factor {
	if pow == 0 {
		return D(1, 1)
	}
	return Factor{sym: sym, pow: pow}
}

type byAlpha []Factor

func (a byAlpha) Len() int      { return len(a) }
func (a byAlpha) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byAlpha) Less(i, j int) bool {
	if a[i].sym != a[j].sym {
		return a[i].sym < a[j].sym
	}
	return a[i].pow > a[j].pow
}

// condense reduces an unordered product to a leading number followed
// by the symbols in alphabetical order, each appearing once. A zero
// product is nil.
func condense(vs ...Factor) []Factor {
	if len(vs) == 0 {
		return nil
	}
	var syms []Factor
	n := big.NewRat(1, 1)
	for _, v := range vs {
		if v.IsNum() {
			if zero.Cmp(v.num) == 0 {
				return nil
			}
			n.Mul(n, v.num)
			continue
		}
		syms = append(syms, v)
	}
	sort.Sort(byAlpha(syms))

	res := []Factor{{num: n}}
	for _, s := range syms {
		i := len(res) - 1
		last := res[i]
		if last.IsNum() || last.sym != s.sym {
			res = append(res, s)
			continue
		}
		last.pow += s.pow
		if last.pow == 0 {
			res = res[:i]
			continue
		}
		res[i] = last
	}
	return res
}

// prod renders a product of factors without condensing it first.
func prod(vs ...Factor) string {
	if len(vs) == 0 {
		return "0"
	}
	var x []string
	prefix := ""
	for i, v := range vs {
		if v.IsNum() && i == 0 && len(vs) != 1 {
			if one.Cmp(v.num) == 0 {
				continue
			}
			if minusOne.Cmp(v.num) == 0 {
				prefix = "-"
				continue
			}
		}
		x = append(x, v.String())
	}
	return prefix + strings.Join(x, "*")
}

// segment condenses a product and splits it into its coefficient, its
// symbol factors and the key naming those symbol factors.
func segment(vs ...Factor) (*big.Rat, []Factor, string) {
	x := condense(vs...)
	if len(x) == 0 {
		return nil, nil, ""
	}
	return x[0].num, x[1:], prod(x[1:]...)
}

// invert negates the power of every symbol factor.
func invert(fs []Factor) []Factor {
	r := make([]Factor, 0, len(fs))
	for _, x := range fs {
		r = append(r, Factor{sym: x.sym, pow: -x.pow})
	}
	return r
}
