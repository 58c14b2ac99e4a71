package parser

import (
	"github.com/scriptlab/eidos/ast"
	"github.com/scriptlab/eidos/errs"
	"github.com/scriptlab/eidos/ident"
	"github.com/scriptlab/eidos/token"
)

// MaxGeneration bounds the documented generation range (spec.md §4.4).
// Go has no integer type matching the original system's narrow
// generation counter, so this is expressed directly as an int64 over
// ident.MaxID's ceiling.
const MaxGeneration int64 = ident.MaxID

// ParseFile parses a whole simulation file: File := Block* EOF
// (spec.md §4.4), producing a synthetic ContextFile root whose
// children are ContextBlock subtrees.
func ParseFile(tokens []token.Token) (*ast.Node, error) {
	errs.ResetErrorPosition()
	p := New(tokens)

	root := ast.NewVirtual(token.ContextFile, 0)
	for !p.at(token.EOF) {
		block, err := p.parseScriptBlock()
		if err != nil {
			return nil, err
		}
		root.AddChild(block)
	}
	if _, err := p.match(token.EOF, "simulation file"); err != nil {
		return nil, err
	}

	ast.OptimizeTree(root)
	return root, nil
}

// parseScriptBlock parses one Block:
//
//	Block := Identifier? (Number (":" Number)?)? Callback? CompoundStatement
//
// Children are appended in the fixed order documented in spec.md
// §4.4: optional id, optional start, optional end, optional
// callback-info node, mandatory compound statement.
func (p *Parser) parseScriptBlock() (*ast.Node, error) {
	node := ast.NewVirtual(token.ContextBlock, p.cur.Start)

	// Optional block id: an identifier only if it matches the "s"
	// prefix convention; anything else is left for the callback rule.
	if p.at(token.IDENT) && ident.IsIDWithPrefix(p.cur.Text, 's') {
		idTok, err := p.match(token.IDENT, "SLiM script block")
		if err != nil {
			return nil, err
		}
		node.AddChild(ast.New(idTok))
	}

	// Optional generation or generation range.
	if p.at(token.NUMBER) {
		startTok, err := p.match(token.NUMBER, "SLiM script block")
		if err != nil {
			return nil, err
		}
		node.AddChild(ast.New(startTok))

		if p.at(token.COLON) {
			p.advance()
			if !p.at(token.NUMBER) {
				return nil, errs.NewSyntaxError(p.cur, "SLiM script block", "expected an integer for the generation range end")
			}
			endTok, err := p.match(token.NUMBER, "SLiM script block")
			if err != nil {
				return nil, err
			}
			node.AddChild(ast.New(endTok))
		}
	}

	// Optional callback signature.
	if p.at(token.IDENT) && token.CallbackName(p.cur.Text) {
		callback, err := p.parseCallback()
		if err != nil {
			return nil, err
		}
		node.AddChild(callback)
	}

	compound, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	node.AddChild(compound)

	return node, nil
}

// parseCallback parses one of the four recognized callback
// signatures. The callback-info node's anchor is the callback
// keyword; its children are the argument identifier tokens.
func (p *Parser) parseCallback() (*ast.Node, error) {
	switch p.cur.Text {
	case "initialize":
		return p.parseInitializeCallback()
	case "fitness":
		return p.parseFitnessCallback()
	case "mateChoice":
		return p.parseSubpopOptionalCallback("SLiM mateChoice() callback")
	case "modifyChild":
		return p.parseSubpopOptionalCallback("SLiM modifyChild() callback")
	default:
		return nil, errs.NewSyntaxError(p.cur, "SLiM script block", "expected a callback declaration (initialize, fitness, mateChoice, or modifyChild)")
	}
}

func (p *Parser) parseInitializeCallback() (*ast.Node, error) {
	const context = "SLiM initialize() callback"
	nameTok, err := p.match(token.IDENT, context)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, context); err != nil {
		return nil, err
	}
	if _, err := p.match(token.RPAREN, context); err != nil {
		return nil, err
	}
	return ast.New(nameTok), nil
}

// parseFitnessCallback parses fitness([mN[, pN]]). Argument count (0,
// 1, or 2 identifiers) is accepted here unconditionally; whether a
// given count is actually valid is a block-construction concern
// (script.resolveCallback raises ShapeError for the wrong arity), the
// same shape-vs-semantics split used for initialize()'s range check.
func (p *Parser) parseFitnessCallback() (*ast.Node, error) {
	const context = "SLiM fitness() callback"
	nameTok, err := p.match(token.IDENT, context)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, context); err != nil {
		return nil, err
	}

	node := ast.New(nameTok)

	if p.at(token.IDENT) {
		mutTok, err := p.match(token.IDENT, context)
		if err != nil {
			return nil, err
		}
		node.AddChild(ast.New(mutTok))

		if p.at(token.COMMA) {
			p.advance()
			subpopTok, err := p.match(token.IDENT, context)
			if err != nil {
				return nil, errs.NewSyntaxError(p.cur, context, "subpopulation id expected")
			}
			node.AddChild(ast.New(subpopTok))
		}
	}

	if _, err := p.match(token.RPAREN, context); err != nil {
		return nil, err
	}
	return node, nil
}

// parseSubpopOptionalCallback parses mateChoice([p_id]) and
// modifyChild([p_id]), which share the same shape: an optional single
// subpopulation id argument.
func (p *Parser) parseSubpopOptionalCallback(context string) (*ast.Node, error) {
	nameTok, err := p.match(token.IDENT, context)
	if err != nil {
		return nil, err
	}
	if _, err := p.match(token.LPAREN, context); err != nil {
		return nil, err
	}

	node := ast.New(nameTok)
	if p.at(token.IDENT) {
		subpopTok, err := p.match(token.IDENT, context)
		if err != nil {
			return nil, err
		}
		node.AddChild(ast.New(subpopTok))
	}

	if _, err := p.match(token.RPAREN, context); err != nil {
		return nil, err
	}
	return node, nil
}
