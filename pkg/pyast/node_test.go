package pyast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

func TestNode_RoleHelpers(t *testing.T) {
	t.Parallel()

	loop := pyast.New(pyast.For)
	loop.AddChildWithRole(pyast.NewWithToken(pyast.Name, "x"), pyast.RoleTarget)
	loop.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)
	loop.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleElse)
	loop.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleElse)

	assert.Equal(t, 2, loop.CountChildrenWithRole(pyast.RoleElse))
	assert.Equal(t, 1, loop.CountChildrenWithRole(pyast.RoleBody))
	assert.Len(t, loop.ChildrenWithRole(pyast.RoleElse), 2)
	assert.Empty(t, loop.ChildrenWithRole(pyast.RoleCondition))
}

func TestNode_TypeHelpers(t *testing.T) {
	t.Parallel()

	try := pyast.New(pyast.Try)
	try.AddChild(pyast.New(pyast.ExceptHandler))
	try.AddChild(pyast.New(pyast.ExceptHandler))
	try.AddChildWithRole(pyast.New(pyast.ExprStmt), pyast.RoleBody)

	assert.Equal(t, 2, try.CountChildrenOfType(pyast.ExceptHandler))
	assert.Len(t, try.ChildrenOfType(pyast.ExceptHandler), 2)
	assert.True(t, try.HasAnyType(pyast.Try, pyast.If))
	assert.False(t, try.HasAnyType(pyast.If))
	assert.Equal(t, pyast.Type(pyast.Try), try.Kind())
}

func TestNode_VisitPreOrder(t *testing.T) {
	t.Parallel()

	root := pyast.New(pyast.Module)
	ifNode := pyast.New(pyast.If)
	ifNode.AddChild(pyast.NewWithToken(pyast.Name, "x"))
	root.AddChild(ifNode)

	var kinds []pyast.Type

	root.VisitPreOrder(func(n *pyast.Node) {
		kinds = append(kinds, n.Type)
	})

	assert.Equal(t, []pyast.Type{pyast.Module, pyast.If, pyast.Name}, kinds)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, pyast.Validate(nil), pyast.ErrMalformedTree)

	missingKind := pyast.New(pyast.Module)
	missingKind.AddChild(&pyast.Node{})
	require.ErrorIs(t, pyast.Validate(missingKind), pyast.ErrMalformedTree)

	ok := pyast.New(pyast.Module)
	ok.AddChild(pyast.New(pyast.ExprStmt))
	require.NoError(t, pyast.Validate(ok))
}
