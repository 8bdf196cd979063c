package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCacheCompilesAndCaches(t *testing.T) {
	c := newPatternCache(8, nil)
	re1, err := c.compile(`^\d+$`)
	require.NoError(t, err)
	re2, err := c.compile(`^\d+$`)
	require.NoError(t, err)
	assert.Same(t, re1, re2)
}

func TestPatternCacheInvalidPatternFails(t *testing.T) {
	c := newPatternCache(8, nil)
	_, err := c.compile(`(`)
	assert.ErrorIs(t, err, ErrPatternTooComplex)
}

func TestPatternCacheAppliesTransformerBeforeCompile(t *testing.T) {
	c := newPatternCache(8, nil)
	c.transform = func(p string) string { return "^(?:" + p + ")$" }
	re, err := c.compile("ab")
	require.NoError(t, err)
	assert.True(t, re.MatchString("ab"))
	assert.False(t, re.MatchString("xabx"), "the transformer anchors the pattern before compilation")
}

func TestNewResourceLimitsDefaults(t *testing.T) {
	rl, err := NewResourceLimits()
	require.NoError(t, err)
	assert.Equal(t, 1000, rl.MaxIssues)
	assert.Equal(t, 64, rl.RecursionLimit)
	assert.Equal(t, 1_000_000, rl.ExpressionInstrLimit)
	assert.Equal(t, 128, rl.ExpressionStackLimit)
}
