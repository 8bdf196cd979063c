package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCompilerCompilesProgram(t *testing.T) {
	sv, err := Elaborate(buildPersonSchema())
	require.NoError(t, err)

	c := NewValidatorCompiler()
	prog, err := c.Compile(sv, "Person")
	require.NoError(t, err)
	assert.Equal(t, "Person", prog.ClassName)
	assert.Contains(t, prog.Slots, "name")
	assert.Contains(t, prog.Slots["name"].Actions, ActionRequired)
}

func TestValidatorCompilerCachesByFingerprintAndClass(t *testing.T) {
	sv, err := Elaborate(buildPersonSchema())
	require.NoError(t, err)

	c := NewValidatorCompiler()
	first, err := c.Compile(sv, "Person")
	require.NoError(t, err)
	second, err := c.Compile(sv, "Person")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestValidatorCompilerUnknownClassFails(t *testing.T) {
	sv, err := Elaborate(buildPersonSchema())
	require.NoError(t, err)

	c := NewValidatorCompiler()
	_, err = c.Compile(sv, "Ghost")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestValidatorCompilerDifferentSchemasGetDifferentPrograms(t *testing.T) {
	sv1, err := Elaborate(buildPersonSchema())
	require.NoError(t, err)
	schema2 := buildPersonSchema()
	schema2.Slots["age"].Range = "string"
	sv2, err := Elaborate(schema2)
	require.NoError(t, err)

	c := NewValidatorCompiler()
	p1, err := c.Compile(sv1, "Person")
	require.NoError(t, err)
	p2, err := c.Compile(sv2, "Person")
	require.NoError(t, err)
	assert.NotEqual(t, p1.Fingerprint, p2.Fingerprint)
}

func TestNewResourceLimitsRejectsZeroMaxIssues(t *testing.T) {
	_, err := NewResourceLimits(WithMaxIssues(0))
	assert.ErrorIs(t, err, ErrReportTruncated)
}

func TestNewResourceLimitsAppliesOptions(t *testing.T) {
	rl, err := NewResourceLimits(WithRecursionLimit(5), WithProgramCacheSize(10))
	require.NoError(t, err)
	assert.Equal(t, 5, rl.RecursionLimit)
	assert.Equal(t, 10, rl.ProgramCacheSize)
}
