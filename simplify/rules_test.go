package simplify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/parse"
)

func TestNextRules(t *testing.T) {
	vs := []struct {
		in   string
		tag  Tag
		want string
	}{
		{"x * 0", ReduceMultiplicationByZero, "0"},
		{"x * 1", RemoveMultiplicationByOne, "x"},
		{"x * -1", RemoveMultiplicationByNegativeOne, "-x"},
		{"x + 0", RemoveAdditionOfZero, "x"},
		{"x / 1", RemoveDivisionByOne, "x"},
		{"x / -1", DivisionByNegativeOne, "-x"},
		{"(x + 1) / -1", DivisionByNegativeOne, "-(x + 1)"},
		{"x^0", ReduceExponentByZero, "1"},
		{"x^1", RemoveExponentByOne, "x"},
		{"0 / x", ReduceZeroNumerator, "0"},
		{"--x", RemoveDoubleUnaryMinus, "x"},
		{"-1 * 5", SimplifyArithmetic, "-5"},
		{"0.5x / 0.5", SimplifyArithmetic, "x"},
		{"x / 0.5", SimplifyArithmetic, "2x"},
		{"0.5x / 2", SimplifyArithmetic, "0.25x"},
		{"(2x)/4", SimplifyPolynomialFraction, "x / 2"},
		{"2/(3/4)", MultiplyByInverse, "(2 * 4) / 3"},
	}
	for i, v := range vs {
		res := Next(parse.MustExpression(v.in))
		if !res.Changed {
			t.Errorf("[%d] %q unchanged", i, v.in)
			continue
		}
		if res.Tag != v.tag {
			t.Errorf("[%d] %q tag got=%s want=%s", i, v.in, res.Tag, v.tag)
		}
		if s := node.String(res.Node); s != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, s, v.want)
		}
	}
}

func TestSimplifyFraction(t *testing.T) {
	vs := []struct {
		in      string
		changed bool
		want    string
	}{
		{"-3/-2", true, "3 / 2"},
		{"1/-3", true, "-1 / 3"},
		{"12/27", true, "4 / 9"},
		{"6/-3", true, "-2"},
		{"2/4", true, "1 / 2"},
		{"3/5", false, "3 / 5"},
	}
	for i, v := range vs {
		res := SimplifyFraction(Normalize(parse.MustExpression(v.in)))
		if res.Changed != v.changed {
			t.Errorf("[%d] %q changed got=%v want=%v", i, v.in, res.Changed, v.changed)
		}
		if s := node.String(res.Node); s != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, s, v.want)
		}
	}

	got := SimplifyFraction(Normalize(parse.MustExpression("12/27"))).Node
	want := Normalize(parse.MustExpression("4/9"))
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b node.Node) bool { return node.Equal(a, b) })); diff != "" {
		t.Errorf("12/27 mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{"a - b + c", "a - b + c"},
		{"a / b / c", "a / (b * c)"},
		{"a * b / c", "a * b / c"},
		{"x - -3", "x + 3"},
		{"-3", "-3"},
	}
	for i, v := range vs {
		if s := node.String(Normalize(parse.MustExpression(v.in))); s != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, s, v.want)
		}
	}
}

func TestRemoveParens(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{"((x + 1))", "x + 1"},
		{"(x) + (2)", "x + 2"},
		{"2 * (x^2)", "2 * x^2"},
		{"x^(2)", "x^2"},
		{"x^(y + 1)", "x^(y + 1)"},
		{"(x + 4) + 12", "x + 4 + 12"},
		{"(2 + 3) + x", "(2 + 3) + x"},
	}
	for i, v := range vs {
		res := RemoveParens(Normalize(parse.MustExpression(v.in)))
		assert.False(t, res.Changed, "parenthesis removal is never a step")
		if s := node.String(res.Node); s != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, s, v.want)
		}
	}

	// Unwrapped sub-sums are spliced into the enclosing sum.
	o, ok := node.AsOp(RemoveParens(Normalize(parse.MustExpression("(x + 4) + 12"))).Node, node.Add)
	if assert.True(t, ok) {
		assert.Len(t, o.Args, 3)
	}
	assert.IsType(t, &node.Constant{}, RemoveParens(Normalize(parse.MustExpression("-(3)"))).Node)
}

func TestCollect(t *testing.T) {
	vs := []struct {
		in   string
		can  bool
		want string
	}{
		{"x + 4 + x + 5", true, "(x + x) + (4 + 5)"},
		{"2x^2 * y * x * y^3", true, "2 * (x^2 * x) * (y * y^3)"},
		{"x + y", false, "x + y"},
		{"x + x", false, "x + x"},
	}
	for i, v := range vs {
		n := RemoveParens(Normalize(parse.MustExpression(v.in))).Node
		if got := CanCollect(n); got != v.can {
			t.Errorf("[%d] %q can got=%v want=%v", i, v.in, got, v.can)
			continue
		}
		if !v.can {
			continue
		}
		res := Collect(n)
		assert.Equal(t, CollectLikeTerms, res.Tag)
		if s := node.String(res.Node); s != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, s, v.want)
		}
	}
}
