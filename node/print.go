package node

import (
	"math/big"
	"strings"
)

// PrintOptions adjusts how trees are rendered.
type PrintOptions struct {
	// KeepPlusMinus prints "x + -3" rather than "x - 3". It is
	// only useful when debugging the rewrite rules.
	KeepPlusMinus bool
	// LaTeX selects LaTeX output instead of plain ASCII math.
	LaTeX bool
}

// String renders n as plain ASCII math.
func String(n Node) string {
	return Print(n, PrintOptions{})
}

// LaTeX renders n as LaTeX.
func LaTeX(n Node) string {
	return Print(n, PrintOptions{LaTeX: true})
}

// Print renders n according to opts.
func Print(n Node, opts PrintOptions) string {
	p := printer{opts: opts}
	var b strings.Builder
	p.node(&b, n)
	return b.String()
}

// FormatRat renders a number. Integers print without a denominator,
// terminating decimals as decimals and anything else as p/q.
func FormatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	d := new(big.Int).Set(r.Denom())
	twos, fives := 0, 0
	two, five := big.NewInt(2), big.NewInt(5)
	m := new(big.Int)
	for {
		q, rem := new(big.Int).QuoRem(d, two, m)
		if rem.Sign() != 0 {
			break
		}
		d, twos = q, twos+1
	}
	for {
		q, rem := new(big.Int).QuoRem(d, five, m)
		if rem.Sign() != 0 {
			break
		}
		d, fives = q, fives+1
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return r.RatString()
	}
	places := twos
	if fives > places {
		places = fives
	}
	s := r.FloatString(places)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

type printer struct {
	opts PrintOptions
}

// negative returns the positive form of n when n displays with a
// leading minus sign.
func negative(n Node) (Node, bool) {
	switch v := n.(type) {
	case *Constant:
		if v.Value.Sign() < 0 {
			return &Constant{Value: new(big.Rat).Neg(v.Value)}, true
		}
	case *Neg:
		return v.Arg, true
	case *Operator:
		if v.Op != Mul && v.Op != Div || len(v.Args) == 0 {
			break
		}
		first, ok := negative(v.Args[0])
		if !ok {
			break
		}
		args := append([]Node{first}, v.Args[1:]...)
		return &Operator{Op: v.Op, Args: args, Implicit: v.Implicit}, true
	}
	return nil, false
}

func isSum(n Node) bool {
	_, ok := AsOp(n, Add, Sub)
	return ok
}

func (p printer) wrapped(b *strings.Builder, n Node, wrap bool) {
	if !wrap {
		p.node(b, n)
		return
	}
	if p.opts.LaTeX {
		b.WriteString(`\left(`)
		p.node(b, n)
		b.WriteString(`\right)`)
		return
	}
	b.WriteString("(")
	p.node(b, n)
	b.WriteString(")")
}

func (p printer) node(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Constant:
		b.WriteString(FormatRat(v.Value))
	case *Symbol:
		b.WriteString(v.Name)
	case *Paren:
		p.wrapped(b, v.Content, true)
	case *Neg:
		b.WriteString("-")
		_, inner := negative(v.Arg)
		p.wrapped(b, v.Arg, isSum(v.Arg) || inner)
	case *Call:
		p.call(b, v)
	case *Operator:
		p.operator(b, v)
	default:
		b.WriteString("<nil>")
	}
}

func (p printer) call(b *strings.Builder, c *Call) {
	if p.opts.LaTeX {
		if c.Name == "sqrt" && len(c.Args) == 1 {
			b.WriteString(`\sqrt{`)
			p.node(b, c.Args[0])
			b.WriteString("}")
			return
		}
		b.WriteString(`\mathrm{` + c.Name + `}\left(`)
	} else {
		b.WriteString(c.Name + "(")
	}
	for i, a := range c.Args {
		if i != 0 {
			b.WriteString(", ")
		}
		p.node(b, a)
	}
	if p.opts.LaTeX {
		b.WriteString(`\right)`)
	} else {
		b.WriteString(")")
	}
}

func (p printer) operator(b *strings.Builder, o *Operator) {
	switch o.Op {
	case Add:
		for i, a := range o.Args {
			if i == 0 {
				p.node(b, a)
				continue
			}
			if pos, ok := negative(a); ok && !p.opts.KeepPlusMinus {
				b.WriteString(" - ")
				p.wrapped(b, pos, isSum(pos))
				continue
			}
			b.WriteString(" + ")
			p.node(b, a)
		}
	case Sub:
		for i, a := range o.Args {
			if i != 0 {
				b.WriteString(" - ")
			}
			p.wrapped(b, a, i != 0 && isSum(a))
		}
	case Mul:
		implicit := o.Implicit && len(o.Args) == 2
		if implicit {
			_, lead := o.Args[0].(*Constant)
			_, group := o.Args[1].(*Paren)
			_, trail := o.Args[1].(*Constant)
			implicit = (lead || group) && !trail
		}
		sep := " * "
		if p.opts.LaTeX {
			sep = ` \cdot `
		}
		for i, a := range o.Args {
			if i != 0 && !implicit {
				b.WriteString(sep)
			}
			p.wrapped(b, a, isSum(a))
		}
	case Div:
		if p.opts.LaTeX && len(o.Args) == 2 {
			b.WriteString(`\frac{`)
			p.node(b, unparen(o.Args[0]))
			b.WriteString("}{")
			p.node(b, unparen(o.Args[1]))
			b.WriteString("}")
			return
		}
		for i, a := range o.Args {
			if i != 0 {
				b.WriteString(" / ")
			}
			_, product := AsOp(a, Mul, Div)
			p.wrapped(b, a, isSum(a) || i != 0 && product)
		}
	case Pow:
		for i, a := range o.Args {
			if i != 0 {
				b.WriteString("^")
			}
			if p.opts.LaTeX && i != 0 {
				b.WriteString("{")
				p.node(b, unparen(a))
				b.WriteString("}")
				continue
			}
			_, op := a.(*Operator)
			_, neg := negative(a)
			p.wrapped(b, a, op || neg)
		}
	default:
		for i, a := range o.Args {
			if i != 0 {
				b.WriteString(" " + string(o.Op) + " ")
			}
			p.node(b, a)
		}
	}
}

func unparen(n Node) Node {
	if p, ok := n.(*Paren); ok {
		return p.Content
	}
	return n
}
