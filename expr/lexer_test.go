package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexTokenizesOperatorsAndDelimiters(t *testing.T) {
	toks, err := lex(`age >= 18 && name != "bob"`)
	require.NoError(t, err)

	var kinds []tokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}
	assert.Equal(t, []tokenKind{
		tokIdent, tokOp, tokNumber, tokOp, tokIdent, tokOp, tokString, tokEOF,
	}, kinds)
}

func TestLexReadsTwoCharOperatorsGreedily(t *testing.T) {
	toks, err := lex(`a <= b`)
	require.NoError(t, err)
	assert.Equal(t, "<=", toks[1].text)
}

func TestLexHandlesEscapedQuoteInString(t *testing.T) {
	toks, err := lex(`"a\"b"`)
	require.NoError(t, err)
	assert.Equal(t, `a"b`, toks[0].text)
}

func TestLexUnterminatedStringFails(t *testing.T) {
	_, err := lex(`"abc`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLexUnexpectedCharacterFails(t *testing.T) {
	_, err := lex(`a @ b`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLexReadsDotLeadingDecimal(t *testing.T) {
	toks, err := lex(`.5`)
	require.NoError(t, err)
	assert.Equal(t, tokNumber, toks[0].kind)
	assert.Equal(t, ".5", toks[0].text)
}
