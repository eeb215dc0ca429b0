package simplify

import (
	"sort"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/term"
)

// Bucket keys that are not symbol names.
const (
	constantKey = "\x00constant"
	fractionKey = "\x00fraction"
	otherKey    = "\x00other"
)

type bucket struct {
	key  string
	name string
	exp  string
	args []node.Node
}

// buckets groups the operands of a sum or product by term name. The
// returned slice is in first-seen order.
func buckets(o *node.Operator) []*bucket {
	var bs []*bucket
	index := make(map[string]*bucket)
	add := func(key, name, exp string, n node.Node) {
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key, name: name, exp: exp}
			index[key] = b
			bs = append(bs, b)
		}
		b.args = append(b.args, n)
	}
	for _, a := range o.Args {
		switch {
		case isConstant(a):
			add(constantKey, "", "", a)
		case term.IsFraction(a):
			add(fractionKey, "", "", a)
		default:
			p, ok := term.Polynomial(a, true)
			if !ok {
				add(otherKey, "", "", a)
				continue
			}
			exp := node.String(p.Exponent())
			if o.Op == node.Add {
				add(likeKey(p), p.Name(), exp, a)
				continue
			}
			if p.HasCoeff() {
				c := p.Coeff()
				if term.IsFraction(c) {
					add(fractionKey, "", "", c)
				} else {
					add(constantKey, "", "", c)
				}
			}
			add(p.Name(), p.Name(), exp, p.Base())
		}
	}
	return bs
}

func isConstant(n node.Node) bool {
	_, ok := n.(*node.Constant)
	return ok
}

// CanCollect reports whether a sum or product has like terms that
// should be grouped together.
func CanCollect(n node.Node) bool {
	o, ok := node.AsOp(n, node.Add, node.Mul)
	if !ok {
		return false
	}
	bs := buckets(o)
	if len(bs) < 2 {
		return false
	}
	for _, b := range bs {
		if b.key != otherKey && len(b.args) > 1 {
			return true
		}
	}
	return false
}

// Collect groups like terms of a sum or product:
//
//	x + 4 + x + 5      -> (x + x) + (4 + 5)
//	2x^2 * y * x * y^3 -> 2 * (x^2 * x) * (y * y^3)
//
// Symbols come first, sorted by name and then by decreasing exponent.
// For sums the constants follow the symbols; for products they lead.
// Constant fractions come next and anything else keeps its place at
// the end.
func Collect(n node.Node) Result {
	if !CanCollect(n) {
		return noChange(n)
	}
	o := n.(*node.Operator)
	bs := buckets(o)
	var syms []*bucket
	byKey := make(map[string]*bucket)
	for _, b := range bs {
		switch b.key {
		case constantKey, fractionKey, otherKey:
			byKey[b.key] = b
		default:
			syms = append(syms, b)
		}
	}
	sort.SliceStable(syms, func(i, j int) bool {
		if syms[i].name != syms[j].name {
			return syms[i].name < syms[j].name
		}
		return syms[i].exp > syms[j].exp
	})
	var order []*bucket
	if b := byKey[constantKey]; b != nil && o.Op == node.Mul {
		order = append(order, b)
	}
	order = append(order, syms...)
	if b := byKey[constantKey]; b != nil && o.Op == node.Add {
		order = append(order, b)
	}
	for _, k := range []string{fractionKey, otherKey} {
		if b := byKey[k]; b != nil {
			order = append(order, b)
		}
	}

	var args []node.Node
	for _, b := range order {
		if b.key == otherKey || len(b.args) == 1 {
			args = append(args, b.args...)
			continue
		}
		args = append(args, node.Par(node.NewOp(o.Op, b.args...)))
	}
	return changed(node.NewOp(o.Op, args...), CollectLikeTerms)
}
