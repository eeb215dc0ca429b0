package node

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	x := func() Node { return Sym("x") }
	vs := []struct {
		n     Node
		plain string
		latex string
	}{
		{n: NewOp(Add, x(), Int(-3)), plain: "x - 3", latex: "x - 3"},
		{n: Implicit(Int(2), x()), plain: "2x", latex: "2x"},
		{n: Implicit(Int(2), NewOp(Pow, x(), Int(2))), plain: "2x^2", latex: "2x^{2}"},
		{n: NewOp(Mul, Int(2), x()), plain: "2 * x", latex: `2 \cdot x`},
		{n: NewOp(Div, Implicit(Int(2), x()), Int(3)), plain: "2x / 3", latex: `\frac{2x}{3}`},
		{n: NewOp(Div, Int(3), Int(2)), plain: "3 / 2", latex: `\frac{3}{2}`},
		{n: NewOp(Pow, x(), Par(NewOp(Add, Int(2), Int(1)))), plain: "x^(2 + 1)", latex: "x^{2 + 1}"},
		{n: Minus(Par(NewOp(Add, x(), Int(1)))), plain: "-(x + 1)", latex: `-\left(x + 1\right)`},
		{n: Minus(NewOp(Add, x(), Int(1))), plain: "-(x + 1)", latex: `-\left(x + 1\right)`},
		{n: NewOp(Add, x(), Implicit(Int(-2), x())), plain: "x - 2x", latex: "x - 2x"},
		{n: Implicit(Int(3), Par(NewOp(Add, x(), Int(1)))), plain: "3(x + 1)", latex: `3\left(x + 1\right)`},
		{n: &Call{Name: "sqrt", Args: []Node{x()}}, plain: "sqrt(x)", latex: `\sqrt{x}`},
		{n: NewOp(Pow, Int(-2), Int(2)), plain: "(-2)^2", latex: `\left(-2\right)^{2}`},
	}
	for i, v := range vs {
		if s := String(v.n); s != v.plain {
			t.Errorf("[%d] got=%q want=%q", i, s, v.plain)
		}
		if s := LaTeX(v.n); s != v.latex {
			t.Errorf("[%d] latex got=%q want=%q", i, s, v.latex)
		}
	}
}

func TestKeepPlusMinus(t *testing.T) {
	n := NewOp(Add, Sym("x"), Int(-3), Minus(Sym("y")))
	assert.Equal(t, "x - 3 - y", String(n))
	assert.Equal(t, "x + -3 + -y", Print(n, PrintOptions{KeepPlusMinus: true}))
}

func TestFormatRat(t *testing.T) {
	vs := []struct {
		r    *big.Rat
		want string
	}{
		{big.NewRat(2, 1), "2"},
		{big.NewRat(-7, 1), "-7"},
		{big.NewRat(3, 2), "1.5"},
		{big.NewRat(1, 8), "0.125"},
		{big.NewRat(-1, 3), "-1/3"},
		{big.NewRat(5, 6), "5/6"},
	}
	for i, v := range vs {
		if s := FormatRat(v.r); s != v.want {
			t.Errorf("[%d] got=%q want=%q", i, s, v.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := Implicit(Int(2), Sym("x"))
	b := NewOp(Mul, Int(2), Sym("x"))
	assert.True(t, Equal(a, b), "implicit flag is cosmetic")
	assert.False(t, Equal(a, NewOp(Mul, Int(3), Sym("x"))))
	assert.False(t, Equal(Sym("x"), Par(Sym("x"))))
	assert.True(t, Equal(Clone(a), a))
}

func TestCloneIsDeep(t *testing.T) {
	a := NewOp(Add, Sym("x"), Int(1))
	b := Clone(a).(*Operator)
	b.Args[0] = Sym("y")
	assert.Equal(t, "x + 1", String(a))
	assert.Equal(t, "y + 1", String(b))
}

func TestWalkers(t *testing.T) {
	n := NewOp(Add, Implicit(Int(2), Sym("y")), Sym("x"), Minus(Sym("y")))
	assert.Equal(t, []string{"y", "x"}, Symbols(n))
	assert.True(t, Contains(n, "x"))
	assert.False(t, Contains(n, "z"))
	assert.True(t, Supported(n))
	assert.False(t, Supported(NewOp(Add, &Call{Name: "sqrt", Args: []Node{Int(4)}}, Int(2))))
	assert.False(t, Supported(NewOp(Op("%"), Int(4), Int(2))))
}

func TestWithChild(t *testing.T) {
	n := NewOp(Mul, Int(2), Sym("x"))
	m := WithChild(n, 1, Sym("y"))
	assert.Equal(t, "2 * x", String(n))
	assert.Equal(t, "2 * y", String(m))
	assert.Panics(t, func() { WithChild(Sym("x"), 0, Int(1)) })
}
