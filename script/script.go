// Package script implements Script and ScriptBlock: the semantic
// layer built on top of the extended parser's AST (spec.md §3, §4.6).
// A Script owns a source buffer, its token stream, and its parsed
// tree. A ScriptBlock is built either by borrowing a ContextBlock
// subtree from an existing Script, or by owning a private Script
// constructed from a standalone string (spec.md §5's two explicit
// construction paths).
package script

import (
	"github.com/scriptlab/eidos/ast"
	"github.com/scriptlab/eidos/lexer"
	"github.com/scriptlab/eidos/parser"
	"github.com/scriptlab/eidos/token"
)

// Script owns a source buffer plus its (optional) token stream and
// parse tree. Tokens and tree become invalid if the Script is dropped,
// since any ScriptBlock borrowing from it holds a pointer into the
// same tree, not a copy.
type Script struct {
	text                string
	startCharacterIndex int
	tokens              []token.Token
	parseRoot           *ast.Node
}

// NewScript creates a script over text. startIndex lets a nested
// script point back into a larger enclosing file's coordinates
// (spec.md §3).
func NewScript(text string, startIndex int) *Script {
	return &Script{text: text, startCharacterIndex: startIndex}
}

// Text returns the script's backing source string.
func (s *Script) Text() string { return s.text }

// StartCharacterIndex returns the offset this script's positions are
// reported relative to.
func (s *Script) StartCharacterIndex() int { return s.startCharacterIndex }

// Tokenize lexes the script's text. keepNonSignificant only controls
// whether comments are retained as COMMENT tokens; no semicolon is
// appended (see AppendOptionalSemicolon).
func (s *Script) Tokenize(keepNonSignificant bool) error {
	var toks []token.Token
	var err error
	if keepNonSignificant {
		l := lexer.New(s.text, s.startCharacterIndex).KeepNonSignificant(true)
		for {
			tok := l.Scan()
			toks = append(toks, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
	} else {
		toks, err = lexer.Tokens(s.text, s.startCharacterIndex)
		if err != nil {
			return err
		}
	}
	s.tokens = toks
	return nil
}

// Tokens returns the script's token stream. It is empty until
// Tokenize has run.
func (s *Script) Tokens() []token.Token { return s.tokens }

// AppendOptionalSemicolon appends a synthetic semicolon before EOF if
// one is not already present, supporting REPL-style single-expression
// input (spec.md §4.1).
func (s *Script) AppendOptionalSemicolon() {
	s.tokens = lexer.AppendSemicolon(s.tokens)
}

// ParseInterpreterBlock parses the script's token stream as a REPL
// statement sequence and caches the resulting tree.
func (s *Script) ParseInterpreterBlock() (*ast.Node, error) {
	root, err := parser.ParseInterpreterBlock(s.tokens)
	if err != nil {
		return nil, err
	}
	s.parseRoot = root
	return root, nil
}

// ParseFile parses the script's token stream as a whole simulation
// file and caches the resulting tree.
func (s *Script) ParseFile() (*ast.Node, error) {
	root, err := parser.ParseFile(s.tokens)
	if err != nil {
		return nil, err
	}
	s.parseRoot = root
	return root, nil
}

// AST returns the script's cached parse tree, or nil if it has not
// been parsed.
func (s *Script) AST() *ast.Node { return s.parseRoot }
