package halstead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

func binOp(op string, left, right *pyast.Node) *pyast.Node {
	n := pyast.New(pyast.BinOp)
	n.Props = map[string]string{"operator": op}
	n.AddChild(left)
	n.AddChild(right)

	return n
}

func name(token string) *pyast.Node {
	return pyast.NewWithToken(pyast.Name, token)
}

func num(token string) *pyast.Node {
	return pyast.NewWithToken(pyast.Num, token)
}

func funcDef(fnName string, body ...*pyast.Node) *pyast.Node {
	n := pyast.New(pyast.FunctionDef)
	n.Props = map[string]string{"name": fnName}

	for _, stmt := range body {
		n.AddChildWithRole(stmt, pyast.RoleBody)
	}

	return n
}

func TestVisitor_SingleBinaryOperation(t *testing.T) {
	t.Parallel()

	// x = a + b
	assign := pyast.New(pyast.Assign)
	assign.AddChildWithRole(name("x"), pyast.RoleTarget)
	assign.AddChildWithRole(binOp("+", name("a"), name("b")), pyast.RoleValue)

	root := pyast.New(pyast.Module)
	root.AddChild(assign)

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 1, v.Operators())
	assert.Equal(t, 1, v.DistinctOperators())
	assert.Equal(t, 2, v.Operands())
	assert.Equal(t, 2, v.DistinctOperands())
}

func TestVisitor_RepeatedOperandInOneContext(t *testing.T) {
	t.Parallel()

	// a + a: two operand occurrences, one distinct operand.
	root := pyast.New(pyast.Module)
	root.AddChild(binOp("+", name("a"), name("a")))

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Operands())
	assert.Equal(t, 1, v.DistinctOperands())
}

func TestVisitor_OperandContextScoping(t *testing.T) {
	t.Parallel()

	// The same name inside two different functions is two distinct operands.
	root := pyast.New(pyast.Module)
	root.AddChild(funcDef("f", binOp("+", name("a"), num("1"))))
	root.AddChild(funcDef("g", binOp("+", name("a"), num("1"))))

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Operators())
	assert.Equal(t, 1, v.DistinctOperators())
	assert.Equal(t, 4, v.Operands())
	assert.Equal(t, 4, v.DistinctOperands())
}

func TestVisitor_NestedOperations(t *testing.T) {
	t.Parallel()

	// a + b * c: the inner product is one operand of the sum and is also
	// traversed as an operation of its own.
	root := pyast.New(pyast.Module)
	root.AddChild(binOp("+", name("a"), binOp("*", name("b"), name("c"))))

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Operators())
	assert.Equal(t, 2, v.DistinctOperators())
	assert.Equal(t, 4, v.Operands())
	assert.Equal(t, 4, v.DistinctOperands())
}

func TestVisitor_ComparisonChain(t *testing.T) {
	t.Parallel()

	// a < b not in c: two operators, three operands.
	cmp := pyast.New(pyast.Compare)
	cmp.Props = map[string]string{"operators": "<,not in"}
	cmp.AddChild(name("a"))
	cmp.AddChild(name("b"))
	cmp.AddChild(name("c"))

	root := pyast.New(pyast.Module)
	root.AddChild(cmp)

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Operators())
	assert.Equal(t, 2, v.DistinctOperators())
	assert.Equal(t, 3, v.Operands())
	assert.Equal(t, 3, v.DistinctOperands())
}

func TestVisitor_BooleanAndUnaryAndAugmented(t *testing.T) {
	t.Parallel()

	boolOp := pyast.New(pyast.BoolOp)
	boolOp.Props = map[string]string{"operator": "and"}
	boolOp.AddChild(name("a"))
	boolOp.AddChild(name("b"))
	boolOp.AddChild(name("c"))

	unary := pyast.New(pyast.UnaryOp)
	unary.Props = map[string]string{"operator": "-"}
	unary.AddChild(name("a"))

	aug := pyast.New(pyast.AugAssign)
	aug.Props = map[string]string{"operator": "+="}
	aug.AddChild(name("a"))
	aug.AddChild(num("1"))

	root := pyast.New(pyast.Module)
	root.AddChild(boolOp)
	root.AddChild(unary)
	root.AddChild(aug)

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 3, v.Operators())
	assert.Equal(t, 3, v.DistinctOperators())
	// Operands: a, b, c from the chain, a from the negation, a and 1 from
	// the augmented assignment, all module-scoped.
	assert.Equal(t, 6, v.Operands())
	assert.Equal(t, 4, v.DistinctOperands())
}

func TestVisitor_AttributeOperand(t *testing.T) {
	t.Parallel()

	// self.count + other.count deduplicates on the attribute name.
	left := pyast.NewWithToken(pyast.Attribute, "count")
	left.Props = map[string]string{"attr": "count"}
	left.AddChild(name("self"))

	right := pyast.NewWithToken(pyast.Attribute, "count")
	right.Props = map[string]string{"attr": "count"}
	right.AddChild(name("other"))

	root := pyast.New(pyast.Module)
	root.AddChild(binOp("+", left, right))

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Operands())
	assert.Equal(t, 1, v.DistinctOperands())
}

func TestVisitor_StructuralOperandFingerprint(t *testing.T) {
	t.Parallel()

	// f(x) + f(x): structurally equal call operands deduplicate; a call
	// with a different argument does not.
	call := func(arg string) *pyast.Node {
		c := pyast.New(pyast.Call)
		c.AddChild(name("f"))
		c.AddChild(name(arg))

		return c
	}

	root := pyast.New(pyast.Module)
	root.AddChild(binOp("+", call("x"), call("x")))
	root.AddChild(binOp("+", call("x"), call("y")))

	v, err := FromTree(root)
	require.NoError(t, err)

	assert.Equal(t, 4, v.Operands())
	assert.Equal(t, 2, v.DistinctOperands())
}

func TestVisitor_MalformedTree(t *testing.T) {
	t.Parallel()

	_, err := FromTree(nil)
	require.ErrorIs(t, err, pyast.ErrMalformedTree)

	root := pyast.New(pyast.Module)
	root.AddChild(&pyast.Node{})

	_, err = FromTree(root)
	require.ErrorIs(t, err, pyast.ErrMalformedTree)
}
