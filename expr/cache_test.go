package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrBuildReturnsSameASTOnRepeatedCalls(t *testing.T) {
	c := NewCache(16, nil)
	first, err := c.getOrBuild("1 + 2", OptimizationNone)
	require.NoError(t, err)
	second, err := c.getOrBuild("1 + 2", OptimizationNone)
	require.NoError(t, err)
	assert.Equal(t, first.ast, second.ast)
	assert.Nil(t, second.program)
}

func TestCacheGetOrBuildCompilesWhenRequested(t *testing.T) {
	c := NewCache(16, nil)
	entry, err := c.getOrBuild("1 + 2", OptimizationCompile)
	require.NoError(t, err)
	assert.NotNil(t, entry.program)
}

func TestCacheKeyDistinguishesOptimizationLevel(t *testing.T) {
	assert.NotEqual(t, cacheKey("x", OptimizationNone), cacheKey("x", OptimizationCompile))
}

func TestCacheGetOrBuildSurfacesParseError(t *testing.T) {
	c := NewCache(16, nil)
	_, err := c.getOrBuild("1 +", OptimizationNone)
	assert.ErrorIs(t, err, ErrParse)
}

func TestCacheGetOrBuildDoesNotCacheFailedParse(t *testing.T) {
	c := NewCache(16, nil)
	_, err := c.getOrBuild("1 +", OptimizationNone)
	require.Error(t, err)
	assert.Equal(t, 0, c.lru.Len())
}
