package solve

import (
	"errors"
	"fmt"
	"log/slog"

	"zappem.net/pub/math/steps/arith"
	"zappem.net/pub/math/steps/node"
	"zappem.net/pub/math/steps/simplify"
	"zappem.net/pub/math/steps/term"
)

// ErrNoSymbol indicates the solver lost track of the symbol it was
// isolating.
var ErrNoSymbol = errors.New("symbol on neither side")

// Verdicts for equations without a symbol.
const (
	NoSolution        = "No solution"
	InfiniteSolutions = "Infinite solutions"
	OneSolution       = "One solution"
	True              = "This is true"
	False             = "This is false"
)

// Step is one move applied to an equation. Side simplifications carry
// the expression steps that produced them.
type Step struct {
	Tag      simplify.Tag
	Equation Equation
	Plain    string
	LaTeX    string
	Substeps []simplify.Step
}

// Result is the outcome of solving an equation. An unsupported
// equation yields a zero Result. Stuck is set when the moves ran out
// before the symbol was isolated.
type Result struct {
	Steps    []Step
	Solution string
	Stuck    bool
}

// Options configure a Solver.
type Options struct {
	// MaxSteps bounds both the moves made on the equation and the
	// steps taken to simplify each side.
	MaxSteps      int
	KeepPlusMinus bool
	// Verify checks every side simplification for soundness.
	Verify bool
	Logger *slog.Logger
}

// Solver isolates symbols.
type Solver struct {
	max     int
	opts    node.PrintOptions
	log     *slog.Logger
	stepper *simplify.Stepper
}

// New returns a Solver configured by opts.
func New(opts Options) *Solver {
	s := &Solver{
		max:  opts.MaxSteps,
		opts: node.PrintOptions{KeepPlusMinus: opts.KeepPlusMinus},
		log:  opts.Logger,
		stepper: simplify.New(simplify.Options{
			MaxSteps:      opts.MaxSteps,
			KeepPlusMinus: opts.KeepPlusMinus,
			Verify:        opts.Verify,
			Logger:        opts.Logger,
		}),
	}
	if s.max <= 0 {
		s.max = simplify.DefaultMaxSteps
	}
	return s
}

func (s *Solver) logger() *slog.Logger {
	if s.log == nil {
		return slog.Default()
	}
	return s.log
}

// Solve solves eq with the default options.
func Solve(eq Equation) (Result, error) {
	return New(Options{}).Solve(eq)
}

func (s *Solver) record(tag simplify.Tag, eq Equation, sub []simplify.Step) Step {
	st := Step{
		Tag:      tag,
		Equation: eq,
		Plain:    eq.Print(s.opts),
		LaTeX:    eq.Print(node.PrintOptions{LaTeX: true}),
		Substeps: sub,
	}
	s.logger().Debug("equation step", "tag", string(tag), "equation", st.Plain)
	return st
}

func symbols(eq Equation) []string {
	names := node.Symbols(eq.Left)
	for _, n := range node.Symbols(eq.Right) {
		if !node.Contains(eq.Left, n) {
			names = append(names, n)
		}
	}
	return names
}

// Solve isolates the symbol of eq. Equations with more than one
// symbol, or with function calls, are not supported and produce an
// empty Result.
func (s *Solver) Solve(eq Equation) (Result, error) {
	names := symbols(eq)
	if len(names) > 1 || !node.Supported(eq.Left) || !node.Supported(eq.Right) {
		s.logger().Info("unsupported equation", "equation", eq.String(), "symbols", names)
		return Result{}, nil
	}
	eq.Left = normal(eq.Left)
	eq.Right = normal(eq.Right)

	var steps []Step
	if len(names) == 0 {
		return s.constant(eq, steps)
	}
	sym := names[0]
	for {
		if len(steps) == s.max {
			return Result{}, fmt.Errorf("%w after %d steps: %s", simplify.ErrNonTerminating, s.max, eq)
		}
		if !node.Contains(eq.Left, sym) && !node.Contains(eq.Right, sym) {
			// The symbol cancelled out.
			return s.constant(eq, steps)
		}
		st, ok, err := s.next(eq, sym)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		steps = append(steps, st)
		eq = st.Equation
	}

	res := Result{Steps: steps}
	if l, ok := eq.Left.(*node.Symbol); ok && l.Name == sym && !node.Contains(eq.Right, sym) {
		res.Solution = eq.String()
	} else {
		s.logger().Info("solver stuck", "equation", eq.String())
		res.Stuck = true
	}
	return res, nil
}

// normal is the silent normalization applied before every move.
func normal(n node.Node) node.Node {
	return simplify.RemoveParens(simplify.Normalize(n)).Node
}

// simplifySide fully simplifies one side. The cosmetic "+ -" step is
// not reported inside equations.
func (s *Solver) simplifySide(n node.Node) (node.Node, []simplify.Step, error) {
	all, err := s.stepper.StepThrough(n)
	if err != nil {
		return nil, nil, err
	}
	var sub []simplify.Step
	for _, st := range all {
		if st.Tag != simplify.ResolveAddUnaryMinus {
			sub = append(sub, st)
		}
	}
	if len(sub) == 0 {
		return normal(n), nil, nil
	}
	return sub[len(sub)-1].Node, sub, nil
}

// next makes the first applicable move: simplify the left side,
// simplify the right side, bring the symbol to the left, remove it
// from the right and finally isolate it on the left.
func (s *Solver) next(eq Equation, sym string) (Step, bool, error) {
	if st, ok, err := s.simplifyBoth(eq); err != nil || ok {
		return st, ok, err
	}
	eq.Left, eq.Right = normal(eq.Left), normal(eq.Right)

	inLeft, inRight := node.Contains(eq.Left, sym), node.Contains(eq.Right, sym)
	switch {
	case !inLeft && !inRight:
		return Step{}, false, fmt.Errorf("%w: %q in %s", ErrNoSymbol, sym, eq)
	case !inLeft:
		return s.record(simplify.SwapSides, eq.swap(), nil), true, nil
	case inRight:
		return s.removeFromRight(eq, sym), true, nil
	}
	return s.isolate(eq, sym)
}

// group parenthesizes a sum that is about to be multiplied or
// divided.
func group(n node.Node) node.Node {
	if _, ok := node.AsOp(n, node.Add, node.Sub); ok {
		return node.Par(n)
	}
	return n
}

func (s *Solver) subtract(eq Equation, t node.Node) Step {
	if term.IsNegative(t) {
		neg := term.Negate(t)
		eq.Left = node.NewOp(node.Add, eq.Left, neg)
		eq.Right = node.NewOp(node.Add, eq.Right, node.Clone(neg))
		return s.record(simplify.AddToBothSides, eq, nil)
	}
	eq.Left = node.NewOp(node.Sub, eq.Left, node.Clone(t))
	eq.Right = node.NewOp(node.Sub, eq.Right, node.Clone(t))
	return s.record(simplify.SubtractFromBothSides, eq, nil)
}

// removeFromRight moves the first right hand term holding the symbol
// over to the left.
func (s *Solver) removeFromRight(eq Equation, sym string) Step {
	t := eq.Right
	if o, ok := node.AsOp(eq.Right, node.Add); ok {
		for _, a := range o.Args {
			if node.Contains(a, sym) {
				t = a
				break
			}
		}
	}
	return s.subtract(eq, t)
}

// sign returns the sign of a constant factor, or 0 when it cannot be
// evaluated or is zero.
func sign(n node.Node) int {
	v, err := arith.Eval(n)
	if err != nil {
		return 0
	}
	return v.Sign()
}

// isolate undoes the outermost operation on the left side.
func (s *Solver) isolate(eq Equation, sym string) (Step, bool, error) {
	switch l := eq.Left.(type) {
	case *node.Neg:
		eq.Comparator = eq.Comparator.Flip()
		eq.Left = node.NewOp(node.Div, l, node.Int(-1))
		eq.Right = node.NewOp(node.Div, group(eq.Right), node.Int(-1))
		return s.record(simplify.DivideFromBothSides, eq, nil), true, nil
	case *node.Operator:
		switch l.Op {
		case node.Add:
			for i := len(l.Args) - 1; i >= 0; i-- {
				if !node.Contains(l.Args[i], sym) {
					return s.subtract(eq, l.Args[i]), true, nil
				}
			}
		case node.Mul:
			for i := len(l.Args) - 1; i >= 0; i-- {
				f := l.Args[i]
				if node.Contains(f, sym) {
					continue
				}
				sg := sign(f)
				if sg == 0 {
					break
				}
				if sg < 0 {
					eq.Comparator = eq.Comparator.Flip()
				}
				eq.Left = node.NewOp(node.Div, l, group(node.Clone(f)))
				eq.Right = node.NewOp(node.Div, group(eq.Right), group(node.Clone(f)))
				return s.record(simplify.DivideFromBothSides, eq, nil), true, nil
			}
		case node.Div:
			// A symbol in the denominator is not handled.
			if len(l.Args) != 2 || node.Contains(l.Args[1], sym) {
				break
			}
			d := l.Args[1]
			sg := sign(d)
			if sg == 0 {
				break
			}
			if sg < 0 {
				eq.Comparator = eq.Comparator.Flip()
			}
			eq.Left = node.NewOp(node.Mul, l, group(node.Clone(d)))
			eq.Right = node.NewOp(node.Mul, group(eq.Right), group(node.Clone(d)))
			return s.record(simplify.MultiplyToBothSides, eq, nil), true, nil
		}
	}
	return Step{}, false, nil
}

// constant decides an equation without symbols.
func (s *Solver) constant(eq Equation, steps []Step) (Result, error) {
	for {
		st, ok, err := s.simplifyBoth(eq)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		steps = append(steps, st)
		eq = st.Equation
	}
	l, err := arith.Eval(eq.Left)
	if err != nil {
		s.logger().Info("cannot evaluate", "equation", eq.String(), "err", err)
		return Result{Steps: steps, Stuck: true}, nil
	}
	r, err := arith.Eval(eq.Right)
	if err != nil {
		s.logger().Info("cannot evaluate", "equation", eq.String(), "err", err)
		return Result{Steps: steps, Stuck: true}, nil
	}
	cmp := l.Cmp(r)
	res := Result{Steps: steps}
	switch {
	case eq.Comparator != Equal:
		res.Solution = False
		if eq.Comparator.Holds(cmp) {
			res.Solution = True
		}
	case cmp != 0:
		res.Solution = NoSolution
	case l.Sign() == 0:
		res.Solution = InfiniteSolutions
	default:
		res.Solution = OneSolution
	}
	return res, nil
}

// simplifyBoth simplifies the left side, or failing that the right.
func (s *Solver) simplifyBoth(eq Equation) (Step, bool, error) {
	left, sub, err := s.simplifySide(eq.Left)
	if err != nil {
		return Step{}, false, err
	}
	if len(sub) != 0 {
		eq.Left = left
		return s.record(simplify.SimplifyLeftSide, eq, sub), true, nil
	}
	right, sub, err := s.simplifySide(eq.Right)
	if err != nil {
		return Step{}, false, err
	}
	if len(sub) != 0 {
		eq.Right = right
		return s.record(simplify.SimplifyRightSide, eq, sub), true, nil
	}
	return Step{}, false, nil
}
