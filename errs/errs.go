// Package errs defines the closed set of error kinds raised across
// parsing, script-block construction, and the registry (spec.md §7;
// lexical errors are lexer.Error), plus
// the process-wide error-position publication contract used by editor
// shells to highlight the offending source range (spec.md §4.9).
package errs

import (
	"fmt"

	"github.com/scriptlab/eidos/token"
)

// ParseErrorStart and ParseErrorEnd mirror the most recently raised
// error's source range. They are reset to token.NoPosition on every
// successful top-level parse. This is process-wide mutable state
// guarded only by the single-threaded scheduling model
// (spec.md §5) — callers must not parse concurrently.
var (
	ParseErrorStart = token.NoPosition
	ParseErrorEnd   = token.NoPosition
)

func publish(start, end int) {
	ParseErrorStart = start
	ParseErrorEnd = end
}

// ResetErrorPosition clears the published error range after a
// successful parse.
func ResetErrorPosition() {
	publish(token.NoPosition, token.NoPosition)
}

// SyntaxError reports an unexpected token given the current grammar
// rule. Context is a caller-supplied label such as "SLiM fitness()
// callback", used only to make the message legible.
type SyntaxError struct {
	Tok     token.Token
	Context string
	Detail  string
}

func NewSyntaxError(tok token.Token, context, detail string) *SyntaxError {
	publish(tok.Start, tok.End)
	return &SyntaxError{Tok: tok, Context: context, Detail: detail}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s: %s (got %s)", e.Context, e.Detail, e.Tok)
}

// RangeError reports a numeric literal or identifier id outside its
// documented range.
type RangeError struct {
	Tok    token.Token
	Detail string
}

func NewRangeError(tok token.Token, detail string) *RangeError {
	publish(tok.Start, tok.End)
	return &RangeError{Tok: tok, Detail: detail}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s (%s)", e.Detail, e.Tok)
}

// ShapeError reports a structural violation discovered during
// script-block construction (e.g. a generation range on an
// initialize() callback, or the wrong argument count for a callback).
type ShapeError struct {
	Tok    token.Token
	Detail string
}

func NewShapeError(tok token.Token, detail string) *ShapeError {
	publish(tok.Start, tok.End)
	return &ShapeError{Tok: tok, Detail: detail}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s (%s)", e.Detail, e.Tok)
}

// ConfigError reports misuse of the string-ID registry: registering a
// name or id twice, or registering after the registry has been frozen.
// Lookups never raise it; a missing name is reported by Lookup's bool.
// It carries no token and does not publish an error position.
type ConfigError struct {
	Detail string
}

func NewConfigError(detail string) *ConfigError {
	return &ConfigError{Detail: detail}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Detail)
}
