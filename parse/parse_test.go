package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/steps/node"
)

func TestExpression(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{"2+2", "2 + 2"},
		{"2x^2", "2x^2"},
		{"x+4+x+5", "x + 4 + x + 5"},
		{"2x - 3", "2x - 3"},
		{"(5+x)*(x+3)", "(5 + x) * (x + 3)"},
		{"-2x", "-2x"},
		{"3(x+1)", "3(x + 1)"},
		{"2x/3", "2x / 3"},
		{"sqrt(x)", "sqrt(x)"},
		{"max(x, 2)", "max(x, 2)"},
		{"2^-1", "2^(-1)"},
		{"1.25 * y", "1.25 * y"},
	}
	for i, v := range vs {
		n, err := Expression(v.in)
		if err != nil {
			t.Errorf("[%d] %q failed: %v", i, v.in, err)
			continue
		}
		if s := node.String(n); s != v.want {
			t.Errorf("[%d] got=%q want=%q", i, s, v.want)
		}
	}
}

func TestExpressionTree(t *testing.T) {
	got := MustExpression("2x^2 - y")
	want := node.NewOp(node.Sub,
		node.Implicit(node.Int(2), node.NewOp(node.Pow, node.Sym("x"), node.Int(2))),
		node.Sym("y"))
	eq := cmp.Comparer(func(a, b node.Node) bool { return node.Equal(a, b) })
	if diff := cmp.Diff(node.Node(want), got, eq); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	// Unary minus covers the whole implicit product.
	neg, ok := MustExpression("-2x").(*node.Neg)
	require.True(t, ok)
	_, ok = neg.Arg.(*node.Operator)
	assert.True(t, ok)
}

func TestExpressionErrors(t *testing.T) {
	vs := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"2 +", ErrSyntax},
		{"(x", ErrSyntax},
		{"x)", ErrSyntax},
		{"x $ 2", ErrSyntax},
		{".", ErrSyntax},
		{"f(x", ErrSyntax},
	}
	for i, v := range vs {
		_, err := Expression(v.in)
		if !errors.Is(err, v.want) {
			t.Errorf("[%d] %q got=%v want=%v", i, v.in, err, v.want)
		}
	}
	assert.Panics(t, func() { MustExpression("2 +") })
}

func TestEquation(t *testing.T) {
	vs := []struct {
		in          string
		left, right string
		cmp         string
	}{
		{"x + 1 <= 4", "x + 1", "4", "<="},
		{"2 = x", "2", "x", "="},
		{"x>=3", "x", "3", ">="},
		{"2x - 3 < 0", "2x - 3", "0", "<"},
		{"x > -1", "x", "-1", ">"},
	}
	for i, v := range vs {
		l, r, c, err := Equation(v.in)
		if err != nil {
			t.Errorf("[%d] %q failed: %v", i, v.in, err)
			continue
		}
		if got := node.String(l); got != v.left {
			t.Errorf("[%d] left got=%q want=%q", i, got, v.left)
		}
		if got := node.String(r); got != v.right {
			t.Errorf("[%d] right got=%q want=%q", i, got, v.right)
		}
		if c != v.cmp {
			t.Errorf("[%d] comparator got=%q want=%q", i, c, v.cmp)
		}
	}

	_, _, _, err := Equation("x + 1")
	assert.ErrorIs(t, err, ErrSyntax)
	_, _, _, err = Equation("= 2")
	assert.ErrorIs(t, err, ErrEmpty)
}
