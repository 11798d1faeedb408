// Package halstead counts Halstead operators and operands over a parsed
// Python syntax tree. It produces the four raw numbers (distinct operators,
// distinct operands, total operators, total operands) that any downstream
// composite-formula computation needs; the composites themselves are out of
// scope here.
package halstead

import (
	"strings"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// operandKey identifies a distinct operand. Distinctness is scoped to the
// enclosing function: the same name in two functions is two operands.
type operandKey struct {
	context string
	value   string
}

// Option configures a Visitor.
type Option func(*Visitor)

// WithContext labels every operand found at this traversal's own level as
// belonging to the named enclosing function. Without it operands belong to
// module-level code.
func WithContext(name string) Option {
	return func(v *Visitor) {
		v.context = name
	}
}

// Visitor walks a tree once and accumulates operator and operand counts.
// Each function definition is analyzed by a fresh child Visitor per body
// statement, carrying the function name as operand context.
type Visitor struct {
	operatorsSeen map[string]struct{}
	operandsSeen  map[operandKey]struct{}
	context       string
	operators     int
	operands      int
}

// NewVisitor creates a Visitor.
func NewVisitor(opts ...Option) *Visitor {
	v := &Visitor{
		operatorsSeen: make(map[string]struct{}),
		operandsSeen:  make(map[operandKey]struct{}),
	}

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

// Operators returns the total operator count, repeats included.
func (v *Visitor) Operators() int { return v.operators }

// Operands returns the total operand count, repeats included.
func (v *Visitor) Operands() int { return v.operands }

// DistinctOperators returns the number of distinct operator labels seen.
func (v *Visitor) DistinctOperators() int { return len(v.operatorsSeen) }

// DistinctOperands returns the number of distinct (context, value) operand
// keys seen.
func (v *Visitor) DistinctOperands() int { return len(v.operandsSeen) }

// Context returns the enclosing function name operands are attributed to,
// or empty for module-level code.
func (v *Visitor) Context() string { return v.context }

// walk applies the per-kind contribution and recurses into every child.
// Function definitions are handled by scoped child visitors instead.
func (v *Visitor) walk(n *pyast.Node) {
	if n.Type == pyast.FunctionDef {
		v.visitFunctionDef(n)

		return
	}

	switch n.Type {
	case pyast.BinOp, pyast.UnaryOp, pyast.BoolOp, pyast.AugAssign:
		v.record([]string{operatorLabel(n)}, n.Children)
	case pyast.Compare:
		v.record(comparisonOperators(n), n.Children)
	}

	for _, child := range n.Children {
		v.walk(child)
	}
}

// record updates the running totals and distinct sets for one node's
// contribution: one operator count per label, one operand count per operand
// node, operand keys normalized and scoped to the current context.
func (v *Visitor) record(labels []string, operands []*pyast.Node) {
	v.operators += len(labels)

	for _, label := range labels {
		v.operatorsSeen[label] = struct{}{}
	}

	v.operands += len(operands)

	for _, operand := range operands {
		key := operandKey{context: v.context, value: operandValue(operand)}
		v.operandsSeen[key] = struct{}{}
	}
}

// visitFunctionDef analyzes a function definition with one child visitor
// per body statement, carrying the function name as context, and merges the
// child counts and sets into this visitor.
func (v *Visitor) visitFunctionDef(n *pyast.Node) {
	name := contextName(n)

	for _, stmt := range n.ChildrenWithRole(pyast.RoleBody) {
		child := NewVisitor(WithContext(name))
		child.walk(stmt)
		v.merge(child)
	}
}

// merge folds a child visitor's counts and distinct sets into this one.
func (v *Visitor) merge(child *Visitor) {
	v.operators += child.operators
	v.operands += child.operands

	for label := range child.operatorsSeen {
		v.operatorsSeen[label] = struct{}{}
	}

	for key := range child.operandsSeen {
		v.operandsSeen[key] = struct{}{}
	}
}

// operatorLabel returns the operator kind of an operator-bearing node.
func operatorLabel(n *pyast.Node) string {
	if op, ok := n.Props["operator"]; ok && op != "" {
		return op
	}

	if n.Token != "" {
		return n.Token
	}

	return string(n.Type)
}

// comparisonOperators returns the operator kinds of a comparison chain.
// The parser stores them comma-joined because operators like "not in"
// contain spaces.
func comparisonOperators(n *pyast.Node) []string {
	ops, ok := n.Props["operators"]
	if !ok || ops == "" {
		return nil
	}

	return strings.Split(ops, ",")
}

// operandValue normalizes an operand node into its distinctness key:
// numeric literals and identifiers by token, attribute accesses by the
// accessed attribute name, everything else by structural fingerprint.
func operandValue(n *pyast.Node) string {
	switch n.Type {
	case pyast.Num, pyast.Name:
		return n.Token
	case pyast.Attribute:
		if attr, ok := n.Props["attr"]; ok && attr != "" {
			return attr
		}

		return n.Token
	default:
		var b strings.Builder

		fingerprint(n, &b)

		return b.String()
	}
}

// fingerprint writes a stable structural key for a node: kind, token, and
// the fingerprints of its children. Structurally equal sub-expressions in
// one context therefore deduplicate.
func fingerprint(n *pyast.Node, b *strings.Builder) {
	b.WriteString(string(n.Type))
	b.WriteByte('(')
	b.WriteString(n.Token)

	for _, child := range n.Children {
		b.WriteByte(' ')
		fingerprint(child, b)
	}

	b.WriteByte(')')
}

func contextName(n *pyast.Node) string {
	if name, ok := n.Props["name"]; ok && name != "" {
		return name
	}

	return n.Token
}
