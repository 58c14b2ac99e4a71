package token

import "fmt"

// NoPosition marks a position that does not refer to real source text,
// e.g. the published error range while no error is pending
// (spec.md §3).
const NoPosition = -1

// Token is an atomic lexical unit: its kind, the exact source slice it
// was scanned from, and a half-open [Start, End) character range into
// the owning Script's source buffer (spec.md §3). Tokens are immutable
// once emitted.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// New builds a token whose literal text is the kind's canonical
// spelling (operators, punctuators, keywords).
func New(kind Kind, start, end int) Token {
	return Token{Kind: kind, Text: kind.String(), Start: start, End: end}
}

// NewLiteral builds a token whose literal text differs from the kind's
// canonical spelling (identifiers, numbers, strings, comments).
func NewLiteral(kind Kind, text string, start, end int) Token {
	return Token{Kind: kind, Text: text, Start: start, End: end}
}

// NewEOF builds the sentinel end-of-file token: a zero-length slice at
// the offset where input terminated (spec.md §4.1, §8 invariant 2).
func NewEOF(at int) Token {
	return Token{Kind: EOF, Text: "", Start: at, End: at}
}

// NewVirtual builds a token for a synthetic AST anchor (ContextFile or
// ContextBlock) with no backing source range.
func NewVirtual(kind Kind, at int) Token {
	return Token{Kind: kind, Text: "", Start: at, End: at}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d,%d)", t.Kind, t.Text, t.Start, t.End)
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// IsLiteral reports whether the token can stand as a primary literal
// value (number or string); booleans and null are plain identifiers in
// this language (recognized as language constants by the symbol
// scanner, spec.md §4.8, not as their own token kind).
func (t Token) IsLiteral() bool {
	return t.Kind == NUMBER || t.Kind == STRING
}
