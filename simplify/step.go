package simplify

import (
	"errors"
	"fmt"
	"log/slog"

	"zappem.net/pub/math/steps/expand"
	"zappem.net/pub/math/steps/node"
)

// ErrNonTerminating reports that the rules kept rewriting past the
// step ceiling. It always indicates a defect in the rule catalogue.
var ErrNonTerminating = errors.New("non-terminating rewrite")

// ErrUnsound reports a step that changed the value of the expression.
var ErrUnsound = errors.New("unsound rewrite")

// DefaultMaxSteps is the step ceiling used when Options.MaxSteps is
// not set.
const DefaultMaxSteps = 100

// Step is one recorded rule application.
type Step struct {
	Tag   Tag
	Node  node.Node
	Plain string
	LaTeX string
}

// Options configure a Stepper.
type Options struct {
	// MaxSteps bounds the number of rule applications.
	MaxSteps int
	// KeepPlusMinus renders "+ -" literally in Plain.
	KeepPlusMinus bool
	// Verify expands every step and fails with ErrUnsound when a
	// step is not equal to the one before it.
	Verify bool
	// Logger receives step traces at debug level. Nil selects
	// slog.Default().
	Logger *slog.Logger
}

// Stepper drives the rules to a fixpoint.
type Stepper struct {
	max    int
	opts   node.PrintOptions
	verify bool
	log    *slog.Logger
}

// New returns a Stepper configured by opts.
func New(opts Options) *Stepper {
	s := &Stepper{
		max:    opts.MaxSteps,
		opts:   node.PrintOptions{KeepPlusMinus: opts.KeepPlusMinus},
		verify: opts.Verify,
		log:    opts.Logger,
	}
	if s.max <= 0 {
		s.max = DefaultMaxSteps
	}
	return s
}

func (s *Stepper) logger() *slog.Logger {
	if s.log == nil {
		return slog.Default()
	}
	return s.log
}

var std = New(Options{})

// driver is the fixed priority order of the step driver.
var driver = []rule{
	DivisionChain,
	LocalRules,
	collectLikeTerms,
	Distribution,
}

func collectLikeTerms(n node.Node) Result {
	return postOrder(n, Collect)
}

// canonical is the silent clean up applied before and after every
// rule: flattened chains and no redundant parentheses.
func canonical(n node.Node) node.Node {
	return RemoveParens(Normalize(n)).Node
}

// Next normalizes n and applies the first rule, in driver order, that
// changes it. The changed tree is normalized again before it is
// returned.
func Next(n node.Node) Result {
	n = canonical(n)
	switch n.(type) {
	case *node.Operator, *node.Neg:
	default:
		return noChange(n)
	}
	for _, r := range driver {
		res := r(n)
		if res.Changed {
			return changed(canonical(res.Node), res.Tag)
		}
		n = RemoveParens(res.Node).Node
	}
	return noChange(n)
}

// hasAddUnaryMinus reports whether n contains a + - b.
func hasAddUnaryMinus(n node.Node) bool {
	return node.Any(n, func(x node.Node) bool {
		o, ok := node.AsOp(x, node.Add)
		if !ok {
			return false
		}
		for _, a := range o.Args[1:] {
			switch v := a.(type) {
			case *node.Neg:
				return true
			case *node.Constant:
				if v.Value.Sign() < 0 {
					return true
				}
			}
		}
		return false
	})
}

func (s *Stepper) record(n node.Node, tag Tag) Step {
	st := Step{
		Tag:   tag,
		Node:  n,
		Plain: node.Print(n, s.opts),
		LaTeX: node.LaTeX(n),
	}
	s.logger().Debug("step", "tag", string(tag), "expr", st.Plain)
	return st
}

// StepThrough applies rules until none fires and returns the steps
// taken. Trees holding function calls are not stepped: the result is
// empty and no error is returned.
func (s *Stepper) StepThrough(n node.Node) ([]Step, error) {
	if !node.Supported(n) {
		s.logger().Info("unsupported expression", "expr", node.String(n))
		return nil, nil
	}
	var steps []Step
	if hasAddUnaryMinus(n) {
		steps = append(steps, s.record(canonical(n), ResolveAddUnaryMinus))
	}
	cur := n
	for count := 0; ; count++ {
		res := Next(cur)
		if !res.Changed {
			return steps, nil
		}
		if count == s.max {
			return nil, fmt.Errorf("%w after %d steps: %s", ErrNonTerminating, s.max, node.String(n))
		}
		if s.verify {
			if err := s.check(cur, res); err != nil {
				return nil, err
			}
		}
		cur = res.Node
		steps = append(steps, s.record(cur, res.Tag))
	}
}

// check confirms that res.Node expands to the same polynomial as
// prev. Trees without an exact expansion are not checked.
func (s *Stepper) check(prev node.Node, res Result) error {
	ok, err := expand.Equivalent(prev, res.Node)
	switch {
	case errors.Is(err, expand.ErrNotPolynomial), errors.Is(err, expand.ErrInexact):
		s.logger().Debug("step not verified", "tag", string(res.Tag), "err", err)
		return nil
	case err != nil:
		return err
	case !ok:
		s.logger().Error("unsound step", "tag", string(res.Tag), "from", node.String(prev), "to", node.String(res.Node))
		return fmt.Errorf("%w: %s turned %q into %q", ErrUnsound, res.Tag, node.String(prev), node.String(res.Node))
	}
	return nil
}

// Simplify returns the fully simplified form of n. A tree that cannot
// be stepped is only normalized.
func (s *Stepper) Simplify(n node.Node) (node.Node, error) {
	if !node.Supported(n) {
		return canonical(n), nil
	}
	steps, err := s.StepThrough(n)
	if err != nil {
		return nil, err
	}
	if len(steps) != 0 {
		return steps[len(steps)-1].Node, nil
	}
	return Next(n).Node, nil
}

// StepThrough steps n with the default options.
func StepThrough(n node.Node) ([]Step, error) {
	return std.StepThrough(n)
}

// Simplify simplifies n with the default options.
func Simplify(n node.Node) (node.Node, error) {
	return std.Simplify(n)
}
