// Package cyclomatic computes cyclomatic complexity bottom-up over a parsed
// Python syntax tree, producing immutable Function and Class records.
package cyclomatic

import (
	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

const anonymousBlockName = "anonymous"

// Option configures a Visitor.
type Option func(*Visitor)

// TreatFunctionsAsMethods tags every function found at this traversal's own
// level as a method of the named class.
func TreatFunctionsAsMethods(className string) Option {
	return func(v *Visitor) {
		v.toMethod = true
		v.className = className
	}
}

// WithZeroOffset starts the complexity counter at 0 instead of 1. The
// missing base unit is added back in TotalComplexity, so the total is
// identical either way.
func WithZeroOffset() Option {
	return func(v *Visitor) {
		v.off = false
		v.counter = 0
	}
}

// Visitor walks a tree once and accumulates cyclomatic complexity. Each
// function or class definition is analyzed by a fresh child Visitor scoped
// to one body statement, so a nested definition contributes exactly one
// number to its lexical parent while staying fully analyzed internally.
type Visitor struct {
	className string
	functions []Function
	classes   []Class
	counter   int
	toMethod  bool
	off       bool
}

// NewVisitor creates a Visitor. Without options the counter starts at 1,
// the user-facing configuration.
func NewVisitor(opts ...Option) *Visitor {
	v := &Visitor{counter: 1, off: true}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// FromTree constructs a Visitor, runs it over the given root, and returns it.
func FromTree(root *pyast.Node, opts ...Option) (*Visitor, error) {
	v := NewVisitor(opts...)

	err := v.Visit(root)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Visit runs the traversal over the given root. It rejects trees violating
// the minimal structural contract and is total over everything else.
func (v *Visitor) Visit(root *pyast.Node) error {
	err := pyast.Validate(root)
	if err != nil {
		return err
	}

	v.walk(root)

	return nil
}

// Complexity returns the running counter: the decision points found at this
// traversal's own level, plus the base unit when the counter started at 1.
func (v *Visitor) Complexity() int { return v.counter }

// Functions returns the functions discovered at this traversal's own level.
func (v *Visitor) Functions() []Function { return v.functions }

// Classes returns the classes discovered at this traversal's own level.
func (v *Visitor) Classes() []Class { return v.classes }

// FunctionsComplexity returns the total contribution of the discovered
// functions: the sum of their complexities minus one base unit each.
func (v *Visitor) FunctionsComplexity() int {
	total := 0
	for _, f := range v.functions {
		total += f.complexity
	}

	return total - len(v.functions)
}

// ClassesComplexity returns the total contribution of the discovered
// classes: the sum of their real complexities minus one base unit each.
func (v *Visitor) ClassesComplexity() int {
	total := 0
	for _, c := range v.classes {
		total += c.realComplexity
	}

	return total - len(v.classes)
}

// TotalComplexity returns the complexity of the whole traversed tree.
// Exactly one module-level base unit is always present: it lives in the
// counter when the start offset was 1, and is added here when it was 0.
func (v *Visitor) TotalComplexity() int {
	total := v.counter + v.FunctionsComplexity() + v.ClassesComplexity()
	if !v.off {
		total++
	}

	return total
}

// Blocks returns every discovered function, every discovered class, and
// every method of every discovered class. The list is unordered.
func (v *Visitor) Blocks() []Block {
	blocks := make([]Block, 0, len(v.functions)+len(v.classes))

	for _, f := range v.functions {
		blocks = append(blocks, f)
	}

	for _, c := range v.classes {
		blocks = append(blocks, c)

		for _, m := range c.methods {
			blocks = append(blocks, m)
		}
	}

	return blocks
}

// contribution returns the number of decision points a single node adds.
// Unmodeled kinds contribute zero.
var contribution = map[pyast.Type]func(*pyast.Node) int{
	// An exception block counts one per handler plus the else-clause statements.
	pyast.Try: func(n *pyast.Node) int {
		return n.CountChildrenOfType(pyast.ExceptHandler) + n.CountChildrenWithRole(pyast.RoleElse)
	},
	// A boolean chain counts one per short-circuit, i.e. operands minus one.
	pyast.BoolOp: func(n *pyast.Node) int {
		return max(len(n.Children)-1, 0)
	},
	pyast.Lambda: contributeOne,
	pyast.With:   contributeOne,
	pyast.If:     contributeOne,
	pyast.IfExp:  contributeOne,
	pyast.Assert: contributeOne,
	// Loops count one plus their else-clause statements.
	pyast.For:   contributeLoop,
	pyast.While: contributeLoop,
	// A generator clause counts one plus its filters.
	pyast.Comprehension: func(n *pyast.Node) int {
		return 1 + n.CountChildrenWithRole(pyast.RoleCondition)
	},
}

func contributeOne(_ *pyast.Node) int { return 1 }

func contributeLoop(n *pyast.Node) int {
	return 1 + n.CountChildrenWithRole(pyast.RoleElse)
}

// walk applies the per-kind contribution and recurses into every child.
// Function and class definitions are opaque to the caller's traversal and
// handled by scoped child visitors instead.
func (v *Visitor) walk(n *pyast.Node) {
	switch n.Type {
	case pyast.FunctionDef:
		v.visitFunctionDef(n)

		return
	case pyast.ClassDef:
		v.visitClassDef(n)

		return
	}

	if contribute, ok := contribution[n.Type]; ok {
		v.counter += contribute(n)
	}

	for _, child := range n.Children {
		v.walk(child)
	}
}

// visitFunctionDef analyzes a function definition with one zero-offset child
// visitor per body statement. Functions the children discover become the
// clojures of this function; their complexity is folded into the body total
// with the duplicate base units stripped.
func (v *Visitor) visitFunctionDef(n *pyast.Node) {
	var clojures []Function

	bodyComplexity := 1

	for _, stmt := range n.ChildrenWithRole(pyast.RoleBody) {
		child := NewVisitor(WithZeroOffset())
		child.walk(stmt)

		clojures = append(clojures, child.functions...)
		bodyComplexity += child.counter + child.FunctionsComplexity()
	}

	line, col := nodePos(n)
	fn := NewFunction(nodeName(n), line, col, v.toMethod, v.className, clojures, bodyComplexity)

	v.functions = append(v.functions, fn)
}

// visitClassDef analyzes a class definition the same way, collecting the
// discovered functions as methods of the class.
func (v *Visitor) visitClassDef(n *pyast.Node) {
	var methods []Function

	realComplexity := 1
	className := nodeName(n)

	for _, stmt := range n.ChildrenWithRole(pyast.RoleBody) {
		child := NewVisitor(WithZeroOffset(), TreatFunctionsAsMethods(className))
		child.walk(stmt)

		methods = append(methods, child.functions...)
		realComplexity += child.counter + child.FunctionsComplexity()
	}

	line, col := nodePos(n)
	cls := NewClass(className, line, col, methods, realComplexity)

	v.classes = append(v.classes, cls)
}

func nodeName(n *pyast.Node) string {
	if name, ok := n.Props["name"]; ok && name != "" {
		return name
	}

	if n.Token != "" {
		return n.Token
	}

	return anonymousBlockName
}

func nodePos(n *pyast.Node) (line, col uint) {
	if n.Pos == nil {
		return 0, 0
	}

	return n.Pos.Line, n.Pos.Col
}
