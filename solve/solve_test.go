package solve

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/simplify"
)

type move struct {
	tag simplify.Tag
	eq  string
}

func movesOf(steps []Step) []move {
	var ms []move
	for _, st := range steps {
		ms = append(ms, move{tag: st.Tag, eq: st.Plain})
	}
	return ms
}

func TestSolveSteps(t *testing.T) {
	vs := []struct {
		in       string
		want     []move
		solution string
	}{
		{in: "x = 1", solution: "x = 1"},
		{in: "2 = x", want: []move{{simplify.SwapSides, "x = 2"}}, solution: "x = 2"},
		{in: "x + 3 = 4", want: []move{
			{simplify.SubtractFromBothSides, "x + 3 - 3 = 4 - 3"},
			{simplify.SimplifyLeftSide, "x = 4 - 3"},
			{simplify.SimplifyRightSide, "x = 1"},
		}, solution: "x = 1"},
		{in: "2x - 3 = 0", want: []move{
			{simplify.AddToBothSides, "2x - 3 + 3 = 0 + 3"},
			{simplify.SimplifyLeftSide, "2x = 0 + 3"},
			{simplify.SimplifyRightSide, "2x = 3"},
			{simplify.DivideFromBothSides, "2x / 2 = 3 / 2"},
			{simplify.SimplifyLeftSide, "x = 3 / 2"},
		}, solution: "x = 3 / 2"},
		{in: "-x = 3", want: []move{
			{simplify.DivideFromBothSides, "-x / -1 = 3 / -1"},
			{simplify.SimplifyLeftSide, "x = 3 / -1"},
			{simplify.SimplifyRightSide, "x = -3"},
		}, solution: "x = -3"},
		{in: "0.5x = 2", want: []move{
			{simplify.DivideFromBothSides, "0.5x / 0.5 = 2 / 0.5"},
			{simplify.SimplifyLeftSide, "x = 2 / 0.5"},
			{simplify.SimplifyRightSide, "x = 4"},
		}, solution: "x = 4"},
		{in: "1 + 1 = 3", want: []move{{simplify.SimplifyLeftSide, "2 = 3"}}, solution: NoSolution},
	}
	for i, v := range vs {
		res, err := Solve(MustParse(v.in))
		if err != nil {
			t.Errorf("[%d] %q failed: %v", i, v.in, err)
			continue
		}
		if diff := cmp.Diff(v.want, movesOf(res.Steps), cmp.AllowUnexported(move{})); diff != "" {
			t.Errorf("[%d] %q moves mismatch (-want +got):\n%s", i, v.in, diff)
		}
		if res.Solution != v.solution {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, res.Solution, v.solution)
		}
		assert.False(t, res.Stuck, v.in)
	}
}

func TestSolutions(t *testing.T) {
	vs := []struct {
		in, want string
	}{
		{"2x/3 = 2", "x = 3"},
		{"2x + 1 > 5", "x > 2"},
		{"-3x <= 6", "x >= -2"},
		{"x - 4x = 6", "x = -2"},
		{"x - 4x < 6", "x > -2"},
		{"2x = x + 3", "x = 3"},
		{"2 = x + 1", "x = 1"},
		{"2 = 2", OneSolution},
		{"0 = 0", InfiniteSolutions},
		{"2 < 3", True},
		{"3 <= 2", False},
		{"x - x = 0", InfiniteSolutions},
		{"x/0.5 = 4", "x = 2"},
		{"0.5x + 1 = 2", "x = 2"},
		{"-x < 3", "x > -3"},
		{"y - (y + 1) = 2 - y", "y = 3"},
	}
	for i, v := range vs {
		res, err := Solve(MustParse(v.in))
		if err != nil {
			t.Errorf("[%d] %q failed: %v", i, v.in, err)
			continue
		}
		if res.Solution != v.want {
			t.Errorf("[%d] %q got=%q want=%q", i, v.in, res.Solution, v.want)
		}
	}
}

func TestSubsteps(t *testing.T) {
	res, err := Solve(MustParse("x + 3 = 4"))
	require.NoError(t, err)
	require.Len(t, res.Steps, 3)
	assert.Empty(t, res.Steps[0].Substeps)
	require.NotEmpty(t, res.Steps[1].Substeps)
	assert.Equal(t, "x", res.Steps[1].Substeps[len(res.Steps[1].Substeps)-1].Plain)
	for _, st := range res.Steps {
		for _, sub := range st.Substeps {
			assert.NotEqual(t, simplify.ResolveAddUnaryMinus, sub.Tag)
		}
	}
	assert.Equal(t, "x = 1", res.Steps[2].LaTeX)
}

func TestUnsupported(t *testing.T) {
	var buf bytes.Buffer
	s := New(Options{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	for _, in := range []string{"x + y = 1", "sqrt(x) = 2"} {
		res, err := s.Solve(MustParse(in))
		assert.NoError(t, err, in)
		assert.Equal(t, Result{}, res, in)
	}
	assert.Contains(t, buf.String(), "unsupported equation")
}

func TestStuck(t *testing.T) {
	for _, in := range []string{"x^2 = 4", "1/x = 2"} {
		res, err := Solve(MustParse(in))
		require.NoError(t, err, in)
		assert.True(t, res.Stuck, in)
		assert.Empty(t, res.Solution, in)
	}
}

func TestNonTerminating(t *testing.T) {
	_, err := New(Options{MaxSteps: 1}).Solve(MustParse("2x - 3 = 0"))
	assert.True(t, errors.Is(err, simplify.ErrNonTerminating), "got %v", err)
}

func TestComparator(t *testing.T) {
	vs := []struct {
		c    Comparator
		flip Comparator
		cmp  int
		want bool
	}{
		{Equal, Equal, 0, true},
		{Less, Greater, -1, true},
		{Greater, Less, -1, false},
		{LessEqual, GreaterEqual, 0, true},
		{GreaterEqual, LessEqual, 1, true},
	}
	for i, v := range vs {
		if got := v.c.Flip(); got != v.flip {
			t.Errorf("[%d] flip got=%q want=%q", i, got, v.flip)
		}
		if got := v.c.Holds(v.cmp); got != v.want {
			t.Errorf("[%d] holds(%d) got=%v want=%v", i, v.cmp, got, v.want)
		}
	}
	assert.Panics(t, func() { Comparator("!=").Holds(0) })
}

func TestParse(t *testing.T) {
	eq, err := Parse("2x - 3 <= 0")
	require.NoError(t, err)
	assert.Equal(t, LessEqual, eq.Comparator)
	assert.Equal(t, "2x - 3 <= 0", eq.String())
	assert.Equal(t, `2x - 3 \le 0`, eq.Print(node.PrintOptions{LaTeX: true}))

	_, err = Parse("2x - 3")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParse("= 3") })
}
