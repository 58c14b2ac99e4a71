// Package scanner implements the conservative symbol-use scanner
// (spec.md §4.8): a post-order walk of a script block's compound
// statement that records which well-known identifiers the block may
// reference, so the evaluator can skip binding globals a block never
// touches. False positives are benign; false negatives are not.
//
// The recognized-identifier list is table-driven (spelling -> bit
// index) rather than a chain of if-statements, so that new callback
// parameters can be added without touching the walker (spec.md §9).
package scanner

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/scriptlab/eidos/ast"
	"github.com/scriptlab/eidos/token"
)

// Bit indexes one recognized identifier into the result bitset.
type Bit uint

const (
	BitWildcard Bit = iota

	BitT
	BitF
	BitNULL
	BitPI
	BitE
	BitINF
	BitNAN

	BitSim
	BitSelf

	BitMut
	BitRelFitness
	BitGenome1
	BitGenome2
	BitSubpop
	BitHomozygous
	BitSourceSubpop
	BitWeights
	BitChildGenome1
	BitChildGenome2
	BitChildIsFemale
	BitParent1Genome1
	BitParent1Genome2
	BitParent2Genome1
	BitParent2Genome2
	BitIsCloning
	BitIsSelfing

	BitPX
	BitGX
	BitMX
	BitSX

	bitCount
)

// wildcardTriggers are identifiers whose presence defeats the
// analysis: seeing any of them sets BitWildcard, which after the walk
// is OR'd into every other recognized bit (spec.md §4.8, invariant 6).
var wildcardTriggers = map[string]bool{
	"executeLambda": true,
	"ls":            true,
	"rm":            true,
}

// exactMatch is the table of (spelling -> bit) for language constants
// and host-provided symbols. Instance-class identifiers (pX/gX/mX/sX)
// are matched structurally, not by exact spelling, and are handled
// separately in scanIdentifier.
var exactMatch = map[string]Bit{
	"T":    BitT,
	"F":    BitF,
	"NULL": BitNULL,
	"PI":   BitPI,
	"E":    BitE,
	"INF":  BitINF,
	"NAN":  BitNAN,

	"sim":  BitSim,
	"self": BitSelf,

	"mut":            BitMut,
	"relFitness":     BitRelFitness,
	"genome1":        BitGenome1,
	"genome2":        BitGenome2,
	"subpop":         BitSubpop,
	"homozygous":     BitHomozygous,
	"sourceSubpop":   BitSourceSubpop,
	"weights":        BitWeights,
	"childGenome1":   BitChildGenome1,
	"childGenome2":   BitChildGenome2,
	"childIsFemale":  BitChildIsFemale,
	"parent1Genome1": BitParent1Genome1,
	"parent1Genome2": BitParent1Genome2,
	"parent2Genome1": BitParent2Genome1,
	"parent2Genome2": BitParent2Genome2,
	"isCloning":      BitIsCloning,
	"isSelfing":      BitIsSelfing,
}

// Scan walks root post-order and returns the bitset of recognized
// identifiers it observed (spec.md §4.8). root is typically a script
// block's compound-statement subtree.
func Scan(root *ast.Node) *bitset.BitSet {
	bits := bitset.New(uint(bitCount))
	if root != nil {
		walk(root, bits)
	}

	if bits.Test(uint(BitWildcard)) {
		for i := uint(0); i < uint(bitCount); i++ {
			bits.Set(i)
		}
	}
	return bits
}

func walk(n *ast.Node, bits *bitset.BitSet) {
	for _, c := range n.Children {
		walk(c, bits)
	}
	if n.Kind() == token.IDENT {
		scanIdentifier(n.Token.Text, bits)
	}
}

func scanIdentifier(name string, bits *bitset.BitSet) {
	if wildcardTriggers[name] {
		bits.Set(uint(BitWildcard))
	}
	if bit, ok := exactMatch[name]; ok {
		bits.Set(uint(bit))
	}

	// Instance-class heuristic: any identifier of length >= 2 whose
	// first character is p/g/m/s and second character is a digit is
	// treated as an instance reference, deliberately over-broad
	// (spec.md §4.8; also flags p0/s0, which are not valid ids —
	// see spec.md §9 open question, left as the documented
	// over-approximation).
	if len(name) >= 2 && name[1] >= '0' && name[1] <= '9' {
		switch name[0] {
		case 'p':
			bits.Set(uint(BitPX))
		case 'g':
			bits.Set(uint(BitGX))
		case 'm':
			bits.Set(uint(BitMX))
		case 's':
			bits.Set(uint(BitSX))
		}
	}
}
