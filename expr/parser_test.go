package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducesExpectedPrecedence(t *testing.T) {
	node, err := Parse("1 + 2 * 3")
	require.NoError(t, err)

	bin, ok := node.(BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	assert.Equal(t, LiteralNode{Value: float64(1)}, bin.Left)

	rhs, ok := bin.Right.(BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseConditional(t *testing.T) {
	node, err := Parse(`a ? 1 : 2`)
	require.NoError(t, err)
	cond, ok := node.(ConditionalNode)
	require.True(t, ok)
	assert.Equal(t, IdentifierNode{Name: "a"}, cond.Cond)
	assert.Equal(t, LiteralNode{Value: float64(1)}, cond.Then)
	assert.Equal(t, LiteralNode{Value: float64(2)}, cond.Else)
}

func TestParseMemberAndIndexChain(t *testing.T) {
	node, err := Parse(`a.b[0]`)
	require.NoError(t, err)
	idx, ok := node.(IndexNode)
	require.True(t, ok)
	assert.Equal(t, LiteralNode{Value: float64(0)}, idx.Index)

	member, ok := idx.Target.(MemberNode)
	require.True(t, ok)
	assert.Equal(t, "b", member.Name)
	assert.Equal(t, IdentifierNode{Name: "a"}, member.Target)
}

func TestParseFunctionCallWithArgs(t *testing.T) {
	node, err := Parse(`max(1, 2, 3)`)
	require.NoError(t, err)
	call, ok := node.(CallNode)
	require.True(t, ok)
	assert.Equal(t, "max", call.Func)
	assert.Len(t, call.Args, 3)
}

func TestParseBooleanAndNullLiterals(t *testing.T) {
	node, err := Parse(`true`)
	require.NoError(t, err)
	assert.Equal(t, LiteralNode{Value: true}, node)

	node, err = Parse(`null`)
	require.NoError(t, err)
	assert.Equal(t, LiteralNode{Value: nil}, node)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse(`1 1`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseRejectsUnclosedParen(t *testing.T) {
	_, err := Parse(`(1 + 2`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseRejectsMissingColonInConditional(t *testing.T) {
	_, err := Parse(`a ? 1 2`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseWordOperators(t *testing.T) {
	node, err := Parse(`a and not b`)
	require.NoError(t, err)
	bin, ok := node.(BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "and", bin.Op)
	unary, ok := bin.Right.(UnaryNode)
	require.True(t, ok)
	assert.Equal(t, "not", unary.Op)
}
