package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptlab/eidos/ident"
	"github.com/scriptlab/eidos/token"
)

func TestIsIDWithPrefixIsLoose(t *testing.T) {
	assert.True(t, ident.IsIDWithPrefix("s3", 's'))
	assert.True(t, ident.IsIDWithPrefix("s", 's'))
	assert.True(t, ident.IsIDWithPrefix("subpop", 's'))
	assert.False(t, ident.IsIDWithPrefix("p1", 's'))
}

func tok(text string) token.Token {
	return token.NewLiteral(token.IDENT, text, 0, len(text))
}

func TestExtractIDFromPrefixOK(t *testing.T) {
	n, err := ident.ExtractIDFromPrefix("s3", 's', tok("s3"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestExtractIDFromPrefixRejectsEmptySuffix(t *testing.T) {
	_, err := ident.ExtractIDFromPrefix("s", 's', tok("s"))
	assert.Error(t, err)
}

func TestExtractIDFromPrefixRejectsNonDigitSuffix(t *testing.T) {
	_, err := ident.ExtractIDFromPrefix("subpop", 's', tok("subpop"))
	assert.Error(t, err)
}

func TestExtractIDFromPrefixRejectsOutOfRange(t *testing.T) {
	_, err := ident.ExtractIDFromPrefix("s999999999999", 's', tok("s999999999999"))
	assert.Error(t, err)
}

func TestExtractIDFromPrefixIsLeftInverseOfFormat(t *testing.T) {
	for _, n := range []int64{0, 1, 42, ident.MaxID} {
		s := "m" + itoa(n)
		got, err := ident.ExtractIDFromPrefix(s, 'm', tok(s))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
