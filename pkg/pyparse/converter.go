package pyparse

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// comprehensionKinds maps tree-sitter comprehension containers to pyast kinds.
//
//nolint:gochecknoglobals // Static lookup table.
var comprehensionKinds = map[string]pyast.Type{
	"list_comprehension":       pyast.ListComp,
	"set_comprehension":        pyast.SetComp,
	"dictionary_comprehension": pyast.DictComp,
	"generator_expression":     pyast.GeneratorExp,
}

// converter walks a tree-sitter CST and builds the pyast tree. Kind-specific
// slots (bodies, else clauses, comprehension filters) become role-tagged
// children; operator tokens become node properties.
type converter struct {
	source []byte
}

func (c *converter) convert(ts sitter.Node) *pyast.Node {
	switch ts.Type() {
	case "comment":
		return nil
	case "module":
		return c.withNamedChildren(c.newNode(pyast.Module, ts), ts)
	case "decorated_definition":
		return c.convertDecorated(ts)
	case "function_definition":
		return c.convertFunctionDef(ts)
	case "class_definition":
		return c.convertClassDef(ts)
	case "lambda":
		return c.convertLambda(ts)
	case "if_statement":
		return c.convertIf(ts)
	case "conditional_expression":
		return c.withNamedChildren(c.newNode(pyast.IfExp, ts), ts)
	case "for_statement":
		return c.convertFor(ts)
	case "while_statement":
		return c.convertWhile(ts)
	case "try_statement":
		return c.convertTry(ts)
	case "except_clause":
		return c.convertExcept(ts)
	case "with_statement":
		return c.convertWith(ts)
	case "assert_statement":
		return c.withNamedChildren(c.newNode(pyast.Assert, ts), ts)
	case "boolean_operator":
		return c.convertBoolOp(ts)
	case "binary_operator":
		return c.convertBinOp(ts)
	case "unary_operator":
		return c.convertUnaryOp(ts)
	case "not_operator":
		return c.convertNotOp(ts)
	case "comparison_operator":
		return c.convertCompare(ts)
	case "augmented_assignment":
		return c.convertAugAssign(ts)
	case "assignment":
		return c.convertAssign(ts)
	case "attribute":
		return c.convertAttribute(ts)
	case "call":
		return c.withNamedChildren(c.newNode(pyast.Call, ts), ts)
	case "return_statement":
		return c.withNamedChildren(c.newNode(pyast.Return, ts), ts)
	case "expression_statement":
		return c.withNamedChildren(c.newNode(pyast.ExprStmt, ts), ts)
	case "identifier":
		return c.newLeaf(pyast.Name, ts)
	case "integer", "float":
		return c.newLeaf(pyast.Num, ts)
	case "string":
		return c.newStringLeaf(ts)
	case "true", "false", "none":
		return c.newLeaf(pyast.Const, ts)
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		return c.convertComprehension(ts)
	default:
		return c.convertGeneric(ts)
	}
}

// convertGeneric keeps the CST kind as the tag. The engines treat unknown
// kinds as zero-contribution nodes and still recurse into them.
func (c *converter) convertGeneric(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Type(ts.Type()), ts)

	if ts.NamedChildCount() == 0 {
		n.Token = c.text(ts)

		return n
	}

	return c.withNamedChildren(n, ts)
}

func (c *converter) convertDecorated(ts sitter.Node) *pyast.Node {
	def := ts.ChildByFieldName("definition")
	if def.IsNull() {
		return c.convertGeneric(ts)
	}

	n := c.convert(def)
	if n == nil {
		return nil
	}

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}

		if dec := c.convert(child); dec != nil {
			n.AddChildWithRole(dec, pyast.RoleDecorator)
		}
	}

	return n
}

func (c *converter) convertFunctionDef(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.FunctionDef, ts)
	c.setProp(n, "name", c.fieldText(ts, "name"))

	if params := ts.ChildByFieldName("parameters"); !params.IsNull() {
		c.appendChildren(n, params, pyast.RoleParameter)
	}

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	return n
}

func (c *converter) convertClassDef(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.ClassDef, ts)
	c.setProp(n, "name", c.fieldText(ts, "name"))

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	return n
}

func (c *converter) convertLambda(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Lambda, ts)

	if params := ts.ChildByFieldName("parameters"); !params.IsNull() {
		c.appendChildren(n, params, pyast.RoleParameter)
	}

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		if child := c.convert(body); child != nil {
			n.AddChild(child)
		}
	}

	return n
}

// convertIf attaches elif clauses as nested If children and else-clause
// statements as role-tagged children, all under the outer If. The layout is
// flat where the Python grammar nests, which preserves every per-node
// contribution.
func (c *converter) convertIf(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.If, ts)

	if cond := ts.ChildByFieldName("condition"); !cond.IsNull() {
		if child := c.convert(cond); child != nil {
			n.AddChildWithRole(child, pyast.RoleCondition)
		}
	}

	if body := ts.ChildByFieldName("consequence"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)

		switch child.Type() {
		case "elif_clause":
			n.AddChildWithRole(c.convertElif(child), pyast.RoleElse)
		case "else_clause":
			c.appendElse(n, child)
		}
	}

	return n
}

func (c *converter) convertElif(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.If, ts)

	if cond := ts.ChildByFieldName("condition"); !cond.IsNull() {
		if child := c.convert(cond); child != nil {
			n.AddChildWithRole(child, pyast.RoleCondition)
		}
	}

	if body := ts.ChildByFieldName("consequence"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	return n
}

func (c *converter) convertFor(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.For, ts)

	c.appendField(n, ts, "left", pyast.RoleTarget)
	c.appendField(n, ts, "right", pyast.RoleValue)

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	c.appendElseClauses(n, ts)

	return n
}

func (c *converter) convertWhile(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.While, ts)

	c.appendField(n, ts, "condition", pyast.RoleCondition)

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	c.appendElseClauses(n, ts)

	return n
}

// convertTry emits one Try node whether or not a finally clause is present.
// Handlers keep their own kind; else-clause statements carry the else role;
// finally-clause statements become plain children.
func (c *converter) convertTry(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Try, ts)

	if body := ts.ChildByFieldName("body"); !body.IsNull() {
		c.appendChildren(n, body, pyast.RoleBody)
	}

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)

		switch child.Type() {
		case "except_clause", "except_group_clause":
			if handler := c.convertExcept(child); handler != nil {
				n.AddChild(handler)
			}
		case "else_clause":
			c.appendElse(n, child)
		case "finally_clause":
			if block := child.ChildByFieldName("body"); !block.IsNull() {
				c.appendChildren(n, block, "")
			} else {
				c.appendNamedBlocks(n, child)
			}
		}
	}

	return n
}

func (c *converter) convertExcept(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.ExceptHandler, ts)

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)

		if child.Type() == "block" {
			c.appendChildren(n, child, pyast.RoleBody)

			continue
		}

		if converted := c.convert(child); converted != nil {
			n.AddChild(converted)
		}
	}

	return n
}

func (c *converter) convertWith(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.With, ts)

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)

		if child.Type() == "with_clause" {
			c.appendChildren(n, child, "")

			continue
		}

		if child.Type() == "block" {
			c.appendChildren(n, child, pyast.RoleBody)
		}
	}

	return n
}

// convertBoolOp flattens a same-operator chain into one node whose children
// are the operands, so `a and b and c` counts as one chain of three values.
func (c *converter) convertBoolOp(ts sitter.Node) *pyast.Node {
	op := c.operatorText(ts)
	n := c.newNode(pyast.BoolOp, ts)
	c.setProp(n, "operator", op)

	c.flattenBoolOperand(n, ts.ChildByFieldName("left"), op)
	c.flattenBoolOperand(n, ts.ChildByFieldName("right"), op)

	return n
}

func (c *converter) flattenBoolOperand(n *pyast.Node, ts sitter.Node, op string) {
	if ts.IsNull() {
		return
	}

	if ts.Type() == "boolean_operator" && c.operatorText(ts) == op {
		c.flattenBoolOperand(n, ts.ChildByFieldName("left"), op)
		c.flattenBoolOperand(n, ts.ChildByFieldName("right"), op)

		return
	}

	if child := c.convert(ts); child != nil {
		n.AddChild(child)
	}
}

func (c *converter) convertBinOp(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.BinOp, ts)
	c.setProp(n, "operator", c.operatorText(ts))

	c.appendField(n, ts, "left", "")
	c.appendField(n, ts, "right", "")

	return n
}

func (c *converter) convertUnaryOp(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.UnaryOp, ts)
	c.setProp(n, "operator", c.operatorText(ts))

	c.appendField(n, ts, "argument", "")

	return n
}

func (c *converter) convertNotOp(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.UnaryOp, ts)
	c.setProp(n, "operator", "not")

	c.appendField(n, ts, "argument", "")

	return n
}

// convertCompare collects the operand expressions as children and the
// operator tokens into a comma-joined property ("not in" and "is not"
// contain spaces, so a space join would be ambiguous).
func (c *converter) convertCompare(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Compare, ts)

	ops := ""

	for i := range ts.ChildCount() {
		child := ts.Child(i)

		if child.IsNamed() {
			if converted := c.convert(child); converted != nil {
				n.AddChild(converted)
			}

			continue
		}

		if ops != "" {
			ops += ","
		}

		ops += child.Type()
	}

	c.setProp(n, "operators", ops)

	return n
}

func (c *converter) convertAugAssign(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.AugAssign, ts)
	c.setProp(n, "operator", c.operatorText(ts))

	c.appendField(n, ts, "left", pyast.RoleTarget)
	c.appendField(n, ts, "right", pyast.RoleValue)

	return n
}

func (c *converter) convertAssign(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Assign, ts)

	c.appendField(n, ts, "left", pyast.RoleTarget)
	c.appendField(n, ts, "right", pyast.RoleValue)

	return n
}

// convertAttribute mirrors the shape the engines expect: the accessed
// attribute name is a property, not a child, so recursion only descends
// into the object expression.
func (c *converter) convertAttribute(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Attribute, ts)

	attr := c.fieldText(ts, "attribute")
	n.Token = attr
	c.setProp(n, "attr", attr)

	c.appendField(n, ts, "object", "")

	return n
}

// convertComprehension builds one Comprehension child per for-in clause and
// attaches each if clause to the nearest preceding for-in clause as a
// condition-tagged filter.
func (c *converter) convertComprehension(ts sitter.Node) *pyast.Node {
	n := c.newNode(comprehensionKinds[ts.Type()], ts)

	var lastClause *pyast.Node

	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)

		switch child.Type() {
		case "for_in_clause":
			clause := c.newNode(pyast.Comprehension, child)
			c.appendField(clause, child, "left", pyast.RoleTarget)
			c.appendField(clause, child, "right", pyast.RoleValue)

			n.AddChild(clause)
			lastClause = clause
		case "if_clause":
			cond := c.firstNamedChild(child)
			if cond == nil {
				continue
			}

			if lastClause != nil {
				lastClause.AddChildWithRole(cond, pyast.RoleCondition)
			} else {
				n.AddChild(cond)
			}
		default:
			if converted := c.convert(child); converted != nil {
				n.AddChild(converted)
			}
		}
	}

	return n
}

func (c *converter) newNode(t pyast.Type, ts sitter.Node) *pyast.Node {
	n := pyast.New(t)
	n.Pos = c.pos(ts)

	return n
}

func (c *converter) newLeaf(t pyast.Type, ts sitter.Node) *pyast.Node {
	n := c.newNode(t, ts)
	n.Token = c.text(ts)

	return n
}

// newStringLeaf keeps the whole literal as one token and drops the inner
// interpolation structure.
func (c *converter) newStringLeaf(ts sitter.Node) *pyast.Node {
	n := c.newNode(pyast.Str, ts)
	n.Token = c.text(ts)

	return n
}

func (c *converter) pos(ts sitter.Node) *pyast.Positions {
	start := ts.StartPoint()

	return &pyast.Positions{Line: start.Row + 1, Col: start.Column + 1}
}

func (c *converter) text(ts sitter.Node) string {
	start := ts.StartByte()
	end := ts.EndByte()

	if int(end) <= len(c.source) && start <= end {
		return string(c.source[start:end])
	}

	return ""
}

func (c *converter) fieldText(ts sitter.Node, field string) string {
	child := ts.ChildByFieldName(field)
	if child.IsNull() {
		return ""
	}

	return c.text(child)
}

func (c *converter) operatorText(ts sitter.Node) string {
	return c.fieldText(ts, "operator")
}

func (c *converter) setProp(n *pyast.Node, key, value string) {
	if value == "" {
		return
	}

	if n.Props == nil {
		n.Props = make(map[string]string)
	}

	n.Props[key] = value
}

// appendField converts one field child and appends it, optionally role-tagged.
func (c *converter) appendField(n *pyast.Node, ts sitter.Node, field string, role pyast.Role) {
	child := ts.ChildByFieldName(field)
	if child.IsNull() {
		return
	}

	converted := c.convert(child)
	if converted == nil {
		return
	}

	if role == "" {
		n.AddChild(converted)

		return
	}

	n.AddChildWithRole(converted, role)
}

// appendChildren converts the named children of a container (a block, a
// parameter list, a with clause) and appends them, optionally role-tagged.
func (c *converter) appendChildren(n *pyast.Node, container sitter.Node, role pyast.Role) {
	for i := range container.NamedChildCount() {
		child := c.convert(container.NamedChild(i))
		if child == nil {
			continue
		}

		if role == "" {
			n.AddChild(child)

			continue
		}

		n.AddChildWithRole(child, role)
	}
}

// appendElse appends the statements of an else clause, tagged with the else
// role the contribution tables count.
func (c *converter) appendElse(n *pyast.Node, elseClause sitter.Node) {
	if block := elseClause.ChildByFieldName("body"); !block.IsNull() {
		c.appendChildren(n, block, pyast.RoleElse)

		return
	}

	c.appendChildren(n, elseClause, pyast.RoleElse)
}

func (c *converter) appendElseClauses(n *pyast.Node, ts sitter.Node) {
	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)
		if child.Type() == "else_clause" {
			c.appendElse(n, child)
		}
	}
}

func (c *converter) appendNamedBlocks(n *pyast.Node, ts sitter.Node) {
	for i := range ts.NamedChildCount() {
		child := ts.NamedChild(i)
		if child.Type() == "block" {
			c.appendChildren(n, child, "")
		}
	}
}

func (c *converter) firstNamedChild(ts sitter.Node) *pyast.Node {
	for i := range ts.NamedChildCount() {
		if converted := c.convert(ts.NamedChild(i)); converted != nil {
			return converted
		}
	}

	return nil
}

// withNamedChildren converts the named children and appends them untagged.
func (c *converter) withNamedChildren(n *pyast.Node, ts sitter.Node) *pyast.Node {
	c.appendChildren(n, ts, "")

	return n
}
