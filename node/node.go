// Package node defines the expression trees rewritten by the
// simplifier and the equation solver.
package node

import (
	"fmt"
	"math/big"
)

// Op names an arithmetic operator.
type Op string

const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"
	Pow Op = "^"
)

// Node is one vertex of an expression tree. Every node exclusively
// owns its children: no subtree is ever shared by two parents.
type Node interface {
	isNode()
}

// Operator applies Op to an ordered list of arguments. Implicit marks
// a product written without "*" (for example 2x), which only changes
// how the product is printed.
type Operator struct {
	Op       Op
	Args     []Node
	Implicit bool
}

// Paren is an explicit grouping.
type Paren struct {
	Content Node
}

// Neg is a unary minus.
type Neg struct {
	Arg Node
}

// Symbol is a named variable.
type Symbol struct {
	Name string
}

// Constant is a literal number. Value is never modified once the
// node is built.
type Constant struct {
	Value *big.Rat
}

// Call is a function application such as sqrt(x). The rewrite rules
// do not understand calls; their presence makes an expression
// ineligible for stepping.
type Call struct {
	Name string
	Args []Node
}

func (*Operator) isNode() {}
func (*Paren) isNode()    {}
func (*Neg) isNode()      {}
func (*Symbol) isNode()   {}
func (*Constant) isNode() {}
func (*Call) isNode()     {}

// NewOp builds an explicit operator node.
func NewOp(op Op, args ...Node) *Operator {
	return &Operator{Op: op, Args: args}
}

// Implicit builds a product printed without "*".
func Implicit(args ...Node) *Operator {
	return &Operator{Op: Mul, Args: args, Implicit: true}
}

// Sym builds a symbol.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// Int builds an integer constant.
func Int(n int64) *Constant {
	return &Constant{Value: big.NewRat(n, 1)}
}

// Rat copies r into a new constant.
func Rat(r *big.Rat) *Constant {
	return &Constant{Value: new(big.Rat).Set(r)}
}

// Par wraps n in parentheses.
func Par(n Node) *Paren {
	return &Paren{Content: n}
}

// Minus wraps n in a unary minus.
func Minus(n Node) *Neg {
	return &Neg{Arg: n}
}

// AsOp returns n as an operator node when its operator is one of ops
// (any operator when ops is empty).
func AsOp(n Node, ops ...Op) (*Operator, bool) {
	o, ok := n.(*Operator)
	if !ok {
		return nil, false
	}
	if len(ops) == 0 {
		return o, true
	}
	for _, op := range ops {
		if o.Op == op {
			return o, true
		}
	}
	return nil, false
}

// AsConstant returns n as a constant.
func AsConstant(n Node) (*Constant, bool) {
	c, ok := n.(*Constant)
	return c, ok
}

// IsConstantValue confirms n is a constant equal to v.
func IsConstantValue(n Node, v int64) bool {
	c, ok := n.(*Constant)
	return ok && c.Value.Cmp(big.NewRat(v, 1)) == 0
}

// Children returns the direct children of n in order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Operator:
		return v.Args
	case *Call:
		return v.Args
	case *Paren:
		return []Node{v.Content}
	case *Neg:
		return []Node{v.Arg}
	}
	return nil
}

// WithChild returns a shallow copy of n whose i'th child is c.
func WithChild(n Node, i int, c Node) Node {
	switch v := n.(type) {
	case *Operator:
		args := append([]Node(nil), v.Args...)
		args[i] = c
		return &Operator{Op: v.Op, Args: args, Implicit: v.Implicit}
	case *Call:
		args := append([]Node(nil), v.Args...)
		args[i] = c
		return &Call{Name: v.Name, Args: args}
	case *Paren:
		return &Paren{Content: c}
	case *Neg:
		return &Neg{Arg: c}
	}
	panic(fmt.Sprintf("node: %T has no children", n))
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Operator:
		args := make([]Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = Clone(a)
		}
		return &Operator{Op: v.Op, Args: args, Implicit: v.Implicit}
	case *Call:
		args := make([]Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = Clone(a)
		}
		return &Call{Name: v.Name, Args: args}
	case *Paren:
		return &Paren{Content: Clone(v.Content)}
	case *Neg:
		return &Neg{Arg: Clone(v.Arg)}
	case *Symbol:
		return &Symbol{Name: v.Name}
	case *Constant:
		return Rat(v.Value)
	case nil:
		return nil
	}
	panic(fmt.Sprintf("node: unknown node type %T", n))
}

// Equal reports whether a and b are structurally identical. The
// Implicit flag is ignored: it only affects printing.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Operator:
		y, ok := b.(*Operator)
		return ok && x.Op == y.Op && equalArgs(x.Args, y.Args)
	case *Call:
		y, ok := b.(*Call)
		return ok && x.Name == y.Name && equalArgs(x.Args, y.Args)
	case *Paren:
		y, ok := b.(*Paren)
		return ok && Equal(x.Content, y.Content)
	case *Neg:
		y, ok := b.(*Neg)
		return ok && Equal(x.Arg, y.Arg)
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Value.Cmp(y.Value) == 0
	}
	return a == nil && b == nil
}

func equalArgs(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for n or any node below it.
func Any(n Node, pred func(Node) bool) bool {
	if pred(n) {
		return true
	}
	for _, c := range Children(n) {
		if Any(c, pred) {
			return true
		}
	}
	return false
}

// Symbols returns the distinct symbol names found in n, in order of
// first appearance.
func Symbols(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	Any(n, func(x Node) bool {
		if s, ok := x.(*Symbol); ok && !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
		return false
	})
	return names
}

// Contains reports whether the symbol name occurs in n.
func Contains(n Node, name string) bool {
	return Any(n, func(x Node) bool {
		s, ok := x.(*Symbol)
		return ok && s.Name == name
	})
}

// Supported confirms n is built only from operators, parentheses,
// unary minus, symbols and constants.
func Supported(n Node) bool {
	return !Any(n, func(x Node) bool {
		switch v := x.(type) {
		case *Call:
			return true
		case *Operator:
			switch v.Op {
			case Add, Sub, Mul, Div, Pow:
				return false
			}
			return true
		}
		return false
	})
}
