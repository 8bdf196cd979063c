package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteralEmitsConst(t *testing.T) {
	prog, err := Compile(LiteralNode{Value: float64(42)})
	require.NoError(t, err)
	require.Len(t, prog.Instrs, 1)
	assert.Equal(t, OpConst, prog.Instrs[0].Op)
	assert.Equal(t, float64(42), prog.Instrs[0].Value)
}

func TestCompileConditionalPatchesJumpTargets(t *testing.T) {
	node, err := Parse(`a ? 1 : 2`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)

	var jumpIfFalse, jump *Instr
	for i := range prog.Instrs {
		switch prog.Instrs[i].Op {
		case OpJumpIfFalse:
			jumpIfFalse = &prog.Instrs[i]
		case OpJump:
			jump = &prog.Instrs[i]
		}
	}
	require.NotNil(t, jumpIfFalse)
	require.NotNil(t, jump)
	assert.Equal(t, jump.N, len(prog.Instrs))
	assert.True(t, jumpIfFalse.N > 0 && jumpIfFalse.N < len(prog.Instrs))
}

func TestCompileAndEvalRoundTrip(t *testing.T) {
	node, err := Parse(`1 + 2 * 3`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	result, err := Eval(prog, map[string]any{}, systemClock{}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, float64(7), result)
}

func TestEvalMemberAndIndexAccess(t *testing.T) {
	node, err := Parse(`person.tags[1]`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	ctx := map[string]any{
		"person": map[string]any{
			"tags": []any{"a", "b", "c"},
		},
	}
	result, err := Eval(prog, ctx, systemClock{}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, "b", result)
}

func TestEvalIndexOutOfRangeFails(t *testing.T) {
	node, err := Parse(`list[5]`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	ctx := map[string]any{"list": []any{"a"}}
	_, err = Eval(prog, ctx, systemClock{}, DefaultLimits())
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvalDivisionByZeroFails(t *testing.T) {
	node, err := Parse(`1 / 0`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	_, err = Eval(prog, map[string]any{}, systemClock{}, DefaultLimits())
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvalStringConcatenation(t *testing.T) {
	node, err := Parse(`"a" + "b"`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	result, err := Eval(prog, map[string]any{}, systemClock{}, DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, "ab", result)
}

func TestEvalMixedStringAndNumberConcatenationFails(t *testing.T) {
	node, err := Parse(`"a" + 1`)
	require.NoError(t, err)
	prog, err := Compile(node)
	require.NoError(t, err)
	_, err = Eval(prog, map[string]any{}, systemClock{}, DefaultLimits())
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestCompileUnknownNodeTypeFails(t *testing.T) {
	_, err := Compile(nil)
	assert.ErrorIs(t, err, ErrParse)
}
