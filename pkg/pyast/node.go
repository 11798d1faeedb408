// Package pyast provides the canonical syntax tree node structure for Python
// sources and the operations the metric engines need: kind dispatch, role
// filtered child access, and pre-order traversal.
package pyast

import "errors"

// Node kind constants. The engines dispatch on these tags; a tag outside
// this set contributes nothing and is still recursed into.
const (
	Module        Type = "Module"
	FunctionDef   Type = "FunctionDef"
	Lambda        Type = "Lambda"
	ClassDef      Type = "ClassDef"
	If            Type = "If"
	IfExp         Type = "IfExp"
	For           Type = "For"
	While         Type = "While"
	Try           Type = "Try"
	ExceptHandler Type = "ExceptHandler"
	With          Type = "With"
	Assert        Type = "Assert"
	BoolOp        Type = "BoolOp"
	BinOp         Type = "BinOp"
	UnaryOp       Type = "UnaryOp"
	AugAssign     Type = "AugAssign"
	Compare       Type = "Compare"
	Comprehension Type = "Comprehension"
	ListComp      Type = "ListComp"
	SetComp       Type = "SetComp"
	DictComp      Type = "DictComp"
	GeneratorExp  Type = "GeneratorExp"
	Name          Type = "Name"
	Attribute     Type = "Attribute"
	Num           Type = "Num"
	Str           Type = "Str"
	Const         Type = "Const"
	Call          Type = "Call"
	Return        Type = "Return"
	Assign        Type = "Assign"
	ExprStmt      Type = "ExprStmt"
	Parameter     Type = "Parameter"
	Decorator     Type = "Decorator"
)

// Role constants for slot labeling. A role marks which syntactic slot of the
// parent a child occupies; the contribution tables count role-tagged children
// (else-clause statements, comprehension filters) without kind-specific
// child layouts.
const (
	RoleBody      Role = "Body"
	RoleElse      Role = "Else"
	RoleCondition Role = "Condition"
	RoleTarget    Role = "Target"
	RoleValue     Role = "Value"
	RoleName      Role = "Name"
	RoleParameter Role = "Parameter"
	RoleDecorator Role = "Decorator"
)

// Type represents a kind tag for a node.
type Type string

// Role represents a slot label for a node.
type Role string

// Positions holds the 1-based source position of a node.
type Positions struct {
	Line uint `json:"line,omitempty"`
	Col  uint `json:"col,omitempty"`
}

// Node is a single syntax tree node.
//
// Fields:
//
//	Type: kind tag (e.g. "If", "BinOp").
//	Token: source text for leaf nodes and operators.
//	Roles: slot labels relative to the parent (see Role).
//	Pos: source position (optional).
//	Props: kind-specific string properties (e.g. "operator", "name").
//	Children: child nodes (ordered).
type Node struct {
	Token    string            `json:"token,omitempty"`
	Type     Type              `json:"type,omitempty"`
	Roles    []Role            `json:"roles,omitempty"`
	Pos      *Positions        `json:"pos,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// ErrMalformedTree is returned when a tree violates the minimal structural
// contract: a nil root or a node without a kind tag.
var ErrMalformedTree = errors.New("pyast: malformed tree")

// New creates a node with the given kind tag.
func New(t Type) *Node {
	return &Node{Type: t}
}

// NewWithToken creates a leaf node with the given kind tag and token.
func NewWithToken(t Type, token string) *Node {
	return &Node{Type: t, Token: token}
}

// AddChild appends a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)

	return n
}

// AddChildWithRole appends a child tagged with the given role.
func (n *Node) AddChildWithRole(child *Node, role Role) *Node {
	child.Roles = append(child.Roles, role)

	return n.AddChild(child)
}

// Kind returns the kind tag of the node. It is the uniform dispatch
// accessor used by every engine.
func (n *Node) Kind() Type {
	return n.Type
}

// HasAnyType reports whether the node's kind tag matches any of the given kinds.
func (n *Node) HasAnyType(types ...Type) bool {
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}

	return false
}

// HasAnyRole reports whether the node carries any of the given roles.
func (n *Node) HasAnyRole(roles ...Role) bool {
	for _, role := range n.Roles {
		for _, want := range roles {
			if role == want {
				return true
			}
		}
	}

	return false
}

// ChildrenWithRole returns the children tagged with the given role, in order.
func (n *Node) ChildrenWithRole(role Role) []*Node {
	var out []*Node

	for _, child := range n.Children {
		if child.HasAnyRole(role) {
			out = append(out, child)
		}
	}

	return out
}

// CountChildrenWithRole returns the number of children tagged with the given role.
func (n *Node) CountChildrenWithRole(role Role) int {
	count := 0

	for _, child := range n.Children {
		if child.HasAnyRole(role) {
			count++
		}
	}

	return count
}

// ChildrenOfType returns the children whose kind tag matches t, in order.
func (n *Node) ChildrenOfType(t Type) []*Node {
	var out []*Node

	for _, child := range n.Children {
		if child.Type == t {
			out = append(out, child)
		}
	}

	return out
}

// CountChildrenOfType returns the number of children whose kind tag matches t.
func (n *Node) CountChildrenOfType(t Type) int {
	count := 0

	for _, child := range n.Children {
		if child.Type == t {
			count++
		}
	}

	return count
}

// VisitPreOrder calls fn for the node and every descendant, parent first.
func (n *Node) VisitPreOrder(fn func(*Node)) {
	if n == nil {
		return
	}

	fn(n)

	for _, child := range n.Children {
		child.VisitPreOrder(fn)
	}
}

// Validate checks the minimal structural contract required by the engines:
// the root is non-nil and every node carries a kind tag. Well-formedness
// beyond that is the parser's responsibility and is not checked.
func Validate(root *Node) error {
	if root == nil {
		return ErrMalformedTree
	}

	valid := true

	root.VisitPreOrder(func(n *Node) {
		if n.Type == "" {
			valid = false
		}
	})

	if !valid {
		return ErrMalformedTree
	}

	return nil
}
