package script

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"

	"github.com/scriptlab/eidos/ast"
	"github.com/scriptlab/eidos/errs"
	"github.com/scriptlab/eidos/ident"
	"github.com/scriptlab/eidos/parser"
	"github.com/scriptlab/eidos/scanner"
	"github.com/scriptlab/eidos/token"
)

// Kind is a script block's callback classification (spec.md §3).
type Kind int

const (
	Event Kind = iota
	Initialize
	Fitness
	MateChoice
	ModifyChild
)

func (k Kind) String() string {
	switch k {
	case Event:
		return "event"
	case Initialize:
		return "initialize"
	case Fitness:
		return "fitness"
	case MateChoice:
		return "mateChoice"
	case ModifyChild:
		return "modifyChild"
	default:
		return "unknown"
	}
}

// UnassignedID is the sentinel value for an anonymous block id, a
// fitness callback with no mutation-type argument (never valid, but
// used as the zero state before validation), or a callback with no
// subpopulation argument.
const UnassignedID int64 = -1

// MaxGeneration bounds the documented generation range.
const MaxGeneration = parser.MaxGeneration

// ScriptBlock is a semantic object built from a parsed ContextBlock
// subtree: kind, generation range, id, callback parameters, the
// compound-statement subtree, and a conservative symbol-use summary
// (spec.md §3).
type ScriptBlock struct {
	BlockID         int64
	Kind            Kind
	StartGeneration int64
	EndGeneration   int64
	MutationTypeID  int64
	SubpopulationID int64

	CompoundStatement *ast.Node
	IdentifierToken   token.Token

	Bits *bitset.BitSet

	Active   int64
	TagValue int64

	// ownedScript is non-nil only when this block was built from a
	// standalone string (spec.md §4.6 path 2); it keeps the private
	// Script alive for as long as CompoundStatement is borrowed from it.
	ownedScript *Script
}

// Contains reports whether the block's symbol-use scan observed bit.
func (b *ScriptBlock) Contains(bit scanner.Bit) bool {
	return b.Bits != nil && b.Bits.Test(uint(bit))
}

// BuildScriptBlock constructs a ScriptBlock from the children of a
// ContextBlock node produced by parser.ParseFile, in the fixed order
// documented in spec.md §4.4: optional id, optional start, optional
// end, optional callback-info node, mandatory compound statement. The
// subtree is borrowed, not owned (spec.md §4.6 path 1).
func BuildScriptBlock(blockNode *ast.Node) (*ScriptBlock, error) {
	children := blockNode.Children
	n := len(children)
	idx := 0

	blockID := UnassignedID
	if idx < n && children[idx].Kind() == token.IDENT && ident.IsIDWithPrefix(children[idx].Token.Text, 's') {
		id, err := ident.ExtractIDFromPrefix(children[idx].Token.Text, 's', children[idx].Token)
		if err != nil {
			return nil, err
		}
		blockID = id
		idx++
	}

	const rangeUnset = int64(-1)
	startGeneration, endGeneration := rangeUnset, rangeUnset

	if idx < n && children[idx].Kind() == token.NUMBER {
		startTok := children[idx].Token
		start, err := parseGenerationNumber(startTok)
		if err != nil {
			return nil, err
		}
		startGeneration, endGeneration = start, start
		idx++

		if idx < n && children[idx].Kind() == token.NUMBER {
			endTok := children[idx].Token
			end, err := parseGenerationNumber(endTok)
			if err != nil {
				return nil, err
			}
			if end < startGeneration {
				return nil, errs.NewRangeError(endTok, "the end generation is less than the start generation")
			}
			endGeneration = end
			idx++
		}
	}

	kind := Event
	mutationTypeID, subpopulationID := UnassignedID, UnassignedID
	var identifierToken token.Token
	var callbackNode *ast.Node

	if idx < n && children[idx].Kind() != token.LBRACE {
		callbackNode = children[idx]
		identifierToken = callbackNode.Token

		var err error
		kind, mutationTypeID, subpopulationID, err = resolveCallback(callbackNode, startGeneration != rangeUnset)
		if err != nil {
			return nil, err
		}
		idx++
	}

	if idx >= n || children[idx].Kind() != token.LBRACE {
		var blame token.Token
		if idx > 0 {
			blame = children[idx-1].Token
		} else {
			blame = blockNode.Token
		}
		return nil, errs.NewShapeError(blame, "no compound statement found for script block")
	}
	compound := children[idx]
	idx++

	if idx != n {
		return nil, errs.NewShapeError(children[idx].Token, "unexpected node in script block")
	}

	if kind == Initialize {
		startGeneration, endGeneration = 0, 0
	} else if startGeneration == rangeUnset {
		startGeneration, endGeneration = 1, MaxGeneration
	}

	// The callback's argument ids (mN, pN) count as symbol uses too.
	bits := scanner.Scan(compound)
	if callbackNode != nil {
		bits.InPlaceUnion(scanner.Scan(callbackNode))
	}

	return &ScriptBlock{
		BlockID:           blockID,
		Kind:              kind,
		StartGeneration:   startGeneration,
		EndGeneration:     endGeneration,
		MutationTypeID:    mutationTypeID,
		SubpopulationID:   subpopulationID,
		CompoundStatement: compound,
		IdentifierToken:   identifierToken,
		Bits:              bits,
		Active:            1,
	}, nil
}

// resolveCallback validates one of the four recognized callback
// signatures and returns the block kind and extracted parameters.
// rangeGiven lets initialize() reject a generation range that
// preceded it in the block's preamble.
func resolveCallback(callbackNode *ast.Node, rangeGiven bool) (kind Kind, mutationTypeID, subpopulationID int64, err error) {
	mutationTypeID, subpopulationID = UnassignedID, UnassignedID
	name := callbackNode.Token.Text
	nc := len(callbackNode.Children)

	switch name {
	case "initialize":
		if nc != 0 {
			return 0, 0, 0, errs.NewShapeError(callbackNode.Token, "initialize() callback needs 0 parameters")
		}
		if rangeGiven {
			return 0, 0, 0, errs.NewShapeError(callbackNode.Token, "a generation range cannot be specified for an initialize() callback")
		}
		return Initialize, UnassignedID, UnassignedID, nil

	case "fitness":
		if nc != 1 && nc != 2 {
			return 0, 0, 0, errs.NewShapeError(callbackNode.Token, "fitness() callback needs 1 or 2 parameters")
		}
		mutTok := callbackNode.Child(0).Token
		mid, err := ident.ExtractIDFromPrefix(mutTok.Text, 'm', mutTok)
		if err != nil {
			return 0, 0, 0, err
		}
		if nc == 2 {
			subTok := callbackNode.Child(1).Token
			sid, err := ident.ExtractIDFromPrefix(subTok.Text, 'p', subTok)
			if err != nil {
				return 0, 0, 0, err
			}
			subpopulationID = sid
		}
		return Fitness, mid, subpopulationID, nil

	case "mateChoice", "modifyChild":
		if nc != 0 && nc != 1 {
			return 0, 0, 0, errs.NewShapeError(callbackNode.Token, name+"() callback needs 0 or 1 parameters")
		}
		if nc == 1 {
			subTok := callbackNode.Child(0).Token
			sid, err := ident.ExtractIDFromPrefix(subTok.Text, 'p', subTok)
			if err != nil {
				return 0, 0, 0, err
			}
			subpopulationID = sid
		}
		if name == "mateChoice" {
			return MateChoice, UnassignedID, subpopulationID, nil
		}
		return ModifyChild, UnassignedID, subpopulationID, nil

	default:
		return 0, 0, 0, errs.NewShapeError(callbackNode.Token, "unknown callback type")
	}
}

func parseGenerationNumber(tok token.Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, errs.NewRangeError(tok, "the generation "+tok.Text+" was not parseable")
	}
	if n < 1 || n > MaxGeneration {
		return 0, errs.NewRangeError(tok, "the generation "+tok.Text+" is out of range")
	}
	return n, nil
}

// BuildScriptBlockFromSource lexes and parses text as a single
// compound statement and builds an owned ScriptBlock from it (spec.md
// §4.6 path 2). Fails with ShapeError if the parsed result is not
// exactly one compound statement.
func BuildScriptBlockFromSource(id int64, text string, kind Kind, start, end int64) (*ScriptBlock, error) {
	s := NewScript(text, 0)
	if err := s.Tokenize(false); err != nil {
		return nil, err
	}
	root, err := s.ParseInterpreterBlock()
	if err != nil {
		return nil, err
	}

	if len(root.Children) != 1 || root.Children[0].Kind() != token.LBRACE {
		blame := root.Token
		if len(root.Children) > 0 {
			blame = root.Children[0].Token
		}
		return nil, errs.NewShapeError(blame, "script blocks must be compound statements")
	}
	compound := root.Children[0]

	if kind == Initialize {
		start, end = 0, 0
	}

	return &ScriptBlock{
		BlockID:           id,
		Kind:              kind,
		StartGeneration:   start,
		EndGeneration:     end,
		MutationTypeID:    UnassignedID,
		SubpopulationID:   UnassignedID,
		CompoundStatement: compound,
		Bits:              scanner.Scan(compound),
		Active:            1,
		ownedScript:       s,
	}, nil
}
