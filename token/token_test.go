package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tok := New(LPAREN, 4, 5)
	assert.Equal(t, "(", tok.Text)
	assert.Equal(t, 4, tok.Start)
	assert.Equal(t, 5, tok.End)
	assert.True(t, tok.Is(LPAREN))
}

func TestNewEOF(t *testing.T) {
	tok := NewEOF(12)
	assert.Equal(t, EOF, tok.Kind)
	assert.Equal(t, 12, tok.Start)
	assert.Equal(t, 12, tok.End)
}

func TestNewVirtual(t *testing.T) {
	tok := NewVirtual(ContextFile, 0)
	assert.True(t, tok.Kind.IsVirtual())
	assert.Equal(t, 0, tok.Start)
	assert.Equal(t, 0, tok.End)
}

func TestKeywordKind(t *testing.T) {
	assert.Equal(t, IF, KeywordKind("if"))
	assert.Equal(t, WHILE, KeywordKind("while"))
	assert.Equal(t, IDENT, KeywordKind("sim"))
	// Callback names are contextual, not reserved words.
	assert.Equal(t, IDENT, KeywordKind("initialize"))
	assert.Equal(t, IDENT, KeywordKind("fitness"))
}

func TestIsLiteralChar(t *testing.T) {
	assert.True(t, IsLiteralChar('a'))
	assert.True(t, IsLiteralChar('9'))
	assert.True(t, IsLiteralChar('_'))
	assert.False(t, IsLiteralChar(' '))
	assert.False(t, IsLiteralChar('-'))
}

func TestCallbackName(t *testing.T) {
	for _, name := range []string{"initialize", "fitness", "mateChoice", "modifyChild"} {
		assert.True(t, CallbackName(name), name)
	}
	assert.False(t, CallbackName("sim"))
}

func TestPrecedenceOrdering(t *testing.T) {
	assert.Less(t, ASSIGN.Precedence(), OR.Precedence())
	assert.Less(t, OR.Precedence(), AND.Precedence())
	assert.Less(t, AND.Precedence(), EQ.Precedence())
	assert.Less(t, EQ.Precedence(), LT.Precedence())
	assert.Less(t, LT.Precedence(), PLUS.Precedence())
	assert.Less(t, PLUS.Precedence(), STAR.Precedence())
	assert.Less(t, STAR.Precedence(), CARET.Precedence())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IDENT.IsValid())
	assert.False(t, kindBegin.IsValid())
	assert.False(t, kindEnd.IsValid())
	assert.False(t, Kind(9999).IsValid())
}
