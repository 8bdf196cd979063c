package linkml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandURICURIEWithBoundPrefix(t *testing.T) {
	prefixes := map[string]string{"ex": "https://example.org/"}
	got, err := expandURI("ex:Person", "", prefixes)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/Person", got)
}

func TestExpandURIAbsoluteURIKeptUnchanged(t *testing.T) {
	got, err := expandURI("https://example.org/Person", "ex", map[string]string{"ex": "https://example.org/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/Person", got)
}

func TestExpandURIWellKnownSchemePassesThroughUnbound(t *testing.T) {
	got, err := expandURI("urn:isbn:0451450523", "", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "urn:isbn:0451450523", got)
}

func TestExpandURIUnboundPrefixFails(t *testing.T) {
	_, err := expandURI("nope:Person", "", map[string]string{})
	assert.ErrorIs(t, err, ErrUnresolvedPrefix)
}

func TestExpandURIBareNameUsesDefaultPrefix(t *testing.T) {
	prefixes := map[string]string{"ex": "https://example.org/"}
	got, err := expandURI("Person", "ex", prefixes)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/Person", got)
}

func TestExpandURIBareNameUnboundDefaultPrefixStaysCURIE(t *testing.T) {
	got, err := expandURI("Person", "ex", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "ex:Person", got)
}

func TestSplitCURIERejectsAuthorityForm(t *testing.T) {
	_, _, ok := splitCURIE("https://example.org/x")
	assert.False(t, ok)
}

func TestSplitCURIESplitsOnFirstColon(t *testing.T) {
	prefix, local, ok := splitCURIE("ex:a:b")
	require.True(t, ok)
	assert.Equal(t, "ex", prefix)
	assert.Equal(t, "a:b", local)
}
