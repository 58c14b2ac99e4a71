// Package parser builds an AST from a token stream using recursive
// descent with one-token lookahead (spec.md §4.3). Parser is a value
// with a token cursor; the extended simulation-file grammar in
// file.go is layered on top by calling back into these entry points
// rather than by sub-classing (spec.md §9, "prefer function-level
// composition over sub-classing").
package parser

import (
	"github.com/scriptlab/eidos/ast"
	"github.com/scriptlab/eidos/errs"
	"github.com/scriptlab/eidos/token"
)

// Parser holds a token stream and a cursor into it. It is not safe for
// concurrent use (spec.md §5).
type Parser struct {
	tokens []token.Token
	pos    int
	cur    token.Token
}

// New creates a parser over a complete token stream (including its
// trailing EOF token).
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.cur = tokens[0]
	} else {
		p.cur = token.NewEOF(0)
	}
	return p
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.cur = p.tokens[p.pos]
}

// match consumes the current token if it has the expected kind,
// otherwise raises a SyntaxError labeled with context.
func (p *Parser) match(kind token.Kind, context string) (token.Token, error) {
	if p.cur.Kind != kind {
		return token.Token{}, errs.NewSyntaxError(p.cur, context, "expected "+kind.String())
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

func (p *Parser) at(kind token.Kind) bool { return p.cur.Kind == kind }

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur.Kind == k {
			return true
		}
	}
	return false
}

// ParseInterpreterBlock parses a REPL-style statement sequence:
// statement* EOF, per spec.md §6's parse_interpreter_block.
func ParseInterpreterBlock(tokens []token.Token) (*ast.Node, error) {
	errs.ResetErrorPosition()
	p := New(tokens)

	root := ast.NewVirtual(token.ContextBlock, 0)
	for !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		root.AddChild(stmt)
	}
	if _, err := p.match(token.EOF, "interpreter block"); err != nil {
		return nil, err
	}

	ast.OptimizeTree(root)
	return root, nil
}

// --- Statements ---

func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.NEXT, token.BREAK, token.RETURN:
		return p.parseJumpStatement()
	case token.SEMICOLON:
		tok := p.cur
		p.advance()
		return ast.New(tok), nil
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseCompoundStatement() (*ast.Node, error) {
	brace, err := p.match(token.LBRACE, "compound statement")
	if err != nil {
		return nil, err
	}
	node := ast.New(brace)
	for !p.atAny(token.RBRACE, token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(stmt)
	}
	if _, err := p.match(token.RBRACE, "compound statement"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseExprStatement() (*ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.SEMICOLON, "expression statement"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIfStatement() (*ast.Node, error) {
	ifTok, err := p.match(token.IF, "if statement")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, "if statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.RPAREN, "if statement"); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	node := ast.New(ifTok)
	node.AddChildren(cond, thenStmt)

	if p.at(token.ELSE) {
		p.advance()
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.AddChild(elseStmt)
	}
	return node, nil
}

func (p *Parser) parseDoWhileStatement() (*ast.Node, error) {
	doTok, err := p.match(token.DO, "do-while statement")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.WHILE, "do-while statement"); err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, "do-while statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.RPAREN, "do-while statement"); err != nil {
		return nil, err
	}
	if _, err := p.match(token.SEMICOLON, "do-while statement"); err != nil {
		return nil, err
	}

	node := ast.New(doTok)
	node.AddChildren(body, cond)
	return node, nil
}

func (p *Parser) parseWhileStatement() (*ast.Node, error) {
	whileTok, err := p.match(token.WHILE, "while statement")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, "while statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.RPAREN, "while statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	node := ast.New(whileTok)
	node.AddChildren(cond, body)
	return node, nil
}

func (p *Parser) parseForStatement() (*ast.Node, error) {
	forTok, err := p.match(token.FOR, "for statement")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, "for statement"); err != nil {
		return nil, err
	}
	ident, err := p.match(token.IDENT, "for statement")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.IN, "for statement"); err != nil {
		return nil, err
	}
	rangeExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.RPAREN, "for statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	node := ast.New(forTok)
	node.AddChildren(ast.New(ident), rangeExpr, body)
	return node, nil
}

func (p *Parser) parseJumpStatement() (*ast.Node, error) {
	jumpTok := p.cur
	p.advance()

	node := ast.New(jumpTok)
	if jumpTok.Kind == token.RETURN && !p.at(token.SEMICOLON) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.AddChild(expr)
	}
	if _, err := p.match(token.SEMICOLON, "jump statement"); err != nil {
		return nil, err
	}
	return node, nil
}

// --- Expressions ---

// parseExpr is the grammar's single expression entry point.
func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseAssignmentExpr()
}

func (p *Parser) parseAssignmentExpr() (*ast.Node, error) {
	left, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.ASSIGN) {
		opTok := p.cur
		p.advance()
		right, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}
		node := ast.New(opTok)
		node.AddChildren(left, right)
		return node, nil
	}
	return left, nil
}

func (p *Parser) parseLogicalOrExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary(token.OR, p.parseLogicalAndExpr)
}

func (p *Parser) parseLogicalAndExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary(token.AND, p.parseEqualityExpr)
}

func (p *Parser) parseEqualityExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary2(p.parseRelationalExpr, token.EQ, token.NE)
}

func (p *Parser) parseRelationalExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary2(p.parseAddExpr, token.LT, token.LE, token.GT, token.GE)
}

func (p *Parser) parseAddExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary2(p.parseMultExpr, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary2(p.parseSeqExpr, token.STAR, token.SLASH, token.PERCENT)
}

// parseSeqExpr implements the range/sequence operator `a:b`, sitting
// between multiplicative and exponent precedence (spec.md §4.3).
func (p *Parser) parseSeqExpr() (*ast.Node, error) {
	return p.parseLeftAssocBinary(token.COLON, p.parseExpExpr)
}

// parseExpExpr implements right-associative exponentiation.
func (p *Parser) parseExpExpr() (*ast.Node, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.CARET) {
		opTok := p.cur
		p.advance()
		right, err := p.parseExpExpr()
		if err != nil {
			return nil, err
		}
		node := ast.New(opTok)
		node.AddChildren(left, right)
		return node, nil
	}
	return left, nil
}

func (p *Parser) parseUnaryExpr() (*ast.Node, error) {
	if p.atAny(token.MINUS, token.PLUS, token.NOT) {
		opTok := p.cur
		p.advance()
		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		node := ast.New(opTok)
		node.AddChild(operand)
		return node, nil
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (*ast.Node, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur.Kind {
		case token.DOT:
			dotTok := p.cur
			p.advance()
			member, err := p.match(token.IDENT, "member access")
			if err != nil {
				return nil, err
			}
			node := ast.New(dotTok)
			node.AddChildren(expr, ast.New(member))
			expr = node

		case token.LPAREN:
			lparen := p.cur
			p.advance()
			node := ast.New(lparen)
			node.AddChild(expr)
			if !p.at(token.RPAREN) {
				args, err := p.parseArgumentExprList()
				if err != nil {
					return nil, err
				}
				node.AddChildren(args...)
			}
			if _, err := p.match(token.RPAREN, "call expression"); err != nil {
				return nil, err
			}
			expr = node

		case token.LBRACK:
			lbrack := p.cur
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.match(token.RBRACK, "subscript expression"); err != nil {
				return nil, err
			}
			node := ast.New(lbrack)
			node.AddChildren(expr, index)
			expr = node

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgumentExprList() ([]*ast.Node, error) {
	var args []*ast.Node
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, first)
	for p.at(token.COMMA) {
		p.advance()
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}

func (p *Parser) parsePrimaryExpr() (*ast.Node, error) {
	switch p.cur.Kind {
	case token.IDENT:
		tok := p.cur
		p.advance()
		return ast.New(tok), nil

	case token.NUMBER, token.STRING:
		tok := p.cur
		p.advance()
		return ast.New(tok), nil

	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(token.RPAREN, "parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil

	case token.LBRACE:
		return p.parseCompoundStatement()

	default:
		return nil, errs.NewSyntaxError(p.cur, "primary expression", "expected identifier, literal, '(', or '{'")
	}
}

// parseLeftAssocBinary folds a single left-associative binary operator
// kind at one precedence level.
func (p *Parser) parseLeftAssocBinary(kind token.Kind, next func() (*ast.Node, error)) (*ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.at(kind) {
		opTok := p.cur
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		node := ast.New(opTok)
		node.AddChildren(left, right)
		left = node
	}
	return left, nil
}

// parseLeftAssocBinary2 folds any of several left-associative operator
// kinds sharing one precedence level (equality, relational, additive,
// multiplicative).
func (p *Parser) parseLeftAssocBinary2(next func() (*ast.Node, error), kinds ...token.Kind) (*ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.atAny(kinds...) {
		opTok := p.cur
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		node := ast.New(opTok)
		node.AddChildren(left, right)
		left = node
	}
	return left, nil
}
