package cyclomatic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

func funcDef(name string, body ...*pyast.Node) *pyast.Node {
	n := pyast.New(pyast.FunctionDef)
	n.Props = map[string]string{"name": name}

	for _, stmt := range body {
		n.AddChildWithRole(stmt, pyast.RoleBody)
	}

	return n
}

func classDef(name string, body ...*pyast.Node) *pyast.Node {
	n := pyast.New(pyast.ClassDef)
	n.Props = map[string]string{"name": name}

	for _, stmt := range body {
		n.AddChildWithRole(stmt, pyast.RoleBody)
	}

	return n
}

func ifStmt() *pyast.Node {
	n := pyast.New(pyast.If)
	n.AddChildWithRole(pyast.NewWithToken(pyast.Name, "x"), pyast.RoleCondition)
	n.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)

	return n
}

func TestVisitor_EmptyModule(t *testing.T) {
	t.Parallel()

	v, err := FromTree(pyast.New(pyast.Module))
	require.NoError(t, err)

	assert.Equal(t, 1, v.TotalComplexity())
	assert.Empty(t, v.Functions())
	assert.Empty(t, v.Classes())
	assert.Empty(t, v.Blocks())
}

func TestVisitor_StartOffsetIdentity(t *testing.T) {
	t.Parallel()

	build := func() *pyast.Node {
		root := pyast.New(pyast.Module)
		root.AddChild(ifStmt())
		root.AddChild(funcDef("f", ifStmt(), ifStmt()))
		root.AddChild(classDef("C", funcDef("m", ifStmt())))

		return root
	}

	withOne, err := FromTree(build())
	require.NoError(t, err)

	withZero, err := FromTree(build(), WithZeroOffset())
	require.NoError(t, err)

	// Exactly one module-level base unit regardless of the start offset.
	assert.Equal(t, withOne.TotalComplexity(), withZero.TotalComplexity())
}

func TestVisitor_FunctionWithSingleIf(t *testing.T) {
	t.Parallel()

	root := pyast.New(pyast.Module)
	root.AddChild(funcDef("f", ifStmt()))

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Functions(), 1)
	fn := v.Functions()[0]

	assert.Equal(t, "f", fn.Name())
	assert.Equal(t, 2, fn.Complexity())
	assert.Equal(t, 2, v.TotalComplexity())
}

func TestVisitor_ConditionalExpressionInFunction(t *testing.T) {
	t.Parallel()

	// def f(): return 1 if x else 2
	ret := pyast.New(pyast.Return)
	ifExp := pyast.New(pyast.IfExp)
	ifExp.AddChild(pyast.NewWithToken(pyast.Num, "1"))
	ifExp.AddChild(pyast.NewWithToken(pyast.Name, "x"))
	ifExp.AddChild(pyast.NewWithToken(pyast.Num, "2"))
	ret.AddChild(ifExp)

	root := pyast.New(pyast.Module)
	root.AddChild(funcDef("f", ret))

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Functions(), 1)
	assert.Equal(t, 2, v.Functions()[0].Complexity())
}

func TestVisitor_NestedFunctionIsClojure(t *testing.T) {
	t.Parallel()

	inner := funcDef("g", ifStmt())
	outer := funcDef("f", inner, ifStmt())

	root := pyast.New(pyast.Module)
	root.AddChild(outer)

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Functions(), 1)
	f := v.Functions()[0]

	assert.Equal(t, "f", f.Name())
	require.Len(t, f.Clojures(), 1)
	assert.Equal(t, "g", f.Clojures()[0].Name())
	assert.Equal(t, 2, f.Clojures()[0].Complexity())

	// g's decision point and finalized complexity fold into f without a
	// second base unit: 1 (base) + 1 (if) + (2 - 1) (clojure g).
	assert.Equal(t, 3, f.Complexity())
}

func TestVisitor_ClassWithoutMethods(t *testing.T) {
	t.Parallel()

	root := pyast.New(pyast.Module)
	root.AddChild(classDef("C", ifStmt()))

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Classes(), 1)
	cls := v.Classes()[0]

	assert.Equal(t, 2, cls.RealComplexity())
	assert.Equal(t, cls.RealComplexity(), cls.Complexity())
}

func TestVisitor_ClassWithMethods(t *testing.T) {
	t.Parallel()

	// Methods of complexity 3 and 5.
	m1 := funcDef("a", ifStmt(), ifStmt())
	m2 := funcDef("b", ifStmt(), ifStmt(), ifStmt(), ifStmt())

	root := pyast.New(pyast.Module)
	root.AddChild(classDef("C", m1, m2))

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Classes(), 1)
	cls := v.Classes()[0]

	require.Len(t, cls.Methods(), 2)
	assert.Equal(t, 3, cls.Methods()[0].Complexity())
	assert.Equal(t, 5, cls.Methods()[1].Complexity())

	// Base unit plus per-method contributions with their bases stripped.
	assert.Equal(t, 7, cls.RealComplexity())
	assert.Equal(t, cls.RealComplexity()/len(cls.Methods())+1, cls.Complexity())
	assert.Equal(t, 4, cls.Complexity())
}

func TestVisitor_MethodTagging(t *testing.T) {
	t.Parallel()

	loop := pyast.New(pyast.For)
	loop.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)

	root := pyast.New(pyast.Module)
	root.AddChild(classDef("C", funcDef("m", loop)))

	v, err := FromTree(root)
	require.NoError(t, err)

	require.Len(t, v.Classes(), 1)
	cls := v.Classes()[0]
	require.Len(t, cls.Methods(), 1)
	method := cls.Methods()[0]

	assert.True(t, method.IsMethod())
	assert.Equal(t, "M", method.Letter())
	assert.Equal(t, "C.m", method.FullName())
	assert.Equal(t, 2, method.Complexity())
	assert.Equal(t, 3, cls.Complexity())
}

func TestVisitor_ContributionTable(t *testing.T) {
	t.Parallel()

	tryStmt := pyast.New(pyast.Try)
	tryStmt.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)
	tryStmt.AddChild(pyast.New(pyast.ExceptHandler))
	tryStmt.AddChild(pyast.New(pyast.ExceptHandler))
	tryStmt.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleElse)

	boolOp := pyast.New(pyast.BoolOp)
	boolOp.AddChild(pyast.NewWithToken(pyast.Name, "a"))
	boolOp.AddChild(pyast.NewWithToken(pyast.Name, "b"))
	boolOp.AddChild(pyast.NewWithToken(pyast.Name, "c"))

	loopWithElse := pyast.New(pyast.While)
	loopWithElse.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)
	loopWithElse.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleElse)

	clause := pyast.New(pyast.Comprehension)
	clause.AddChildWithRole(pyast.NewWithToken(pyast.Name, "x"), pyast.RoleTarget)
	clause.AddChildWithRole(pyast.NewWithToken(pyast.Name, "xs"), pyast.RoleValue)
	clause.AddChildWithRole(pyast.NewWithToken(pyast.Name, "p"), pyast.RoleCondition)
	clause.AddChildWithRole(pyast.NewWithToken(pyast.Name, "q"), pyast.RoleCondition)
	comp := pyast.New(pyast.ListComp)
	comp.AddChild(pyast.NewWithToken(pyast.Name, "x"))
	comp.AddChild(clause)

	cases := []struct {
		name string
		node *pyast.Node
		want int
	}{
		{"try counts handlers plus else statements", tryStmt, 3},
		{"boolean chain counts operands minus one", boolOp, 2},
		{"lambda counts one", pyast.New(pyast.Lambda), 1},
		{"with counts one", pyast.New(pyast.With), 1},
		{"assert counts one", pyast.New(pyast.Assert), 1},
		{"loop counts one plus else statements", loopWithElse, 2},
		{"comprehension clause counts one plus filters", comp, 3},
		{"unknown kind counts zero", pyast.New("Match"), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := pyast.New(pyast.Module)
			root.AddChild(tc.node)

			v, err := FromTree(root, WithZeroOffset())
			require.NoError(t, err)

			assert.Equal(t, tc.want, v.Complexity())
		})
	}
}

func TestVisitor_Blocks(t *testing.T) {
	t.Parallel()

	root := pyast.New(pyast.Module)
	root.AddChild(funcDef("f"))
	root.AddChild(classDef("C", funcDef("m")))

	v, err := FromTree(root)
	require.NoError(t, err)

	blocks := v.Blocks()
	require.Len(t, blocks, 3)

	names := make(map[string]string, len(blocks))
	for _, block := range blocks {
		names[block.FullName()] = block.Letter()
	}

	assert.Equal(t, map[string]string{"f": "F", "C": "C", "C.m": "M"}, names)
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
