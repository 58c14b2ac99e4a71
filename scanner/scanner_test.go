package scanner_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptlab/eidos/lexer"
	"github.com/scriptlab/eidos/parser"
	"github.com/scriptlab/eidos/scanner"
)

func scanSource(t *testing.T, src string) *bitset.BitSet {
	t.Helper()
	toks, err := lexer.Tokens(src, 0)
	require.NoError(t, err)
	root, err := parser.ParseInterpreterBlock(toks)
	require.NoError(t, err)
	return scanner.Scan(root)
}

func has(bits *bitset.BitSet, b scanner.Bit) bool { return bits.Test(uint(b)) }

func TestScanRecognizesSim(t *testing.T) {
	bits := scanSource(t, `sim.addSubpop("p1", 500);`)
	assert.True(t, has(bits, scanner.BitSim))
	assert.False(t, has(bits, scanner.BitPX)) // "p1" only occurs inside a string literal
}

func TestScanRecognizesInstanceClasses(t *testing.T) {
	bits := scanSource(t, "fitness(m1, p2);")
	assert.True(t, has(bits, scanner.BitMX))
	assert.True(t, has(bits, scanner.BitPX))
}

func TestScanRecognizesLanguageConstants(t *testing.T) {
	bits := scanSource(t, "x = T; y = PI;")
	assert.True(t, has(bits, scanner.BitT))
	assert.True(t, has(bits, scanner.BitPI))
	assert.False(t, has(bits, scanner.BitF))
}

func TestScanWildcardEscalatesEveryBit(t *testing.T) {
	bits := scanSource(t, `executeLambda("x = 1;");`)
	assert.True(t, has(bits, scanner.BitWildcard))
	assert.True(t, has(bits, scanner.BitSim))
	assert.True(t, has(bits, scanner.BitPX))
	assert.True(t, has(bits, scanner.BitIsSelfing))
}

func TestScanSoundnessNoFalseNegatives(t *testing.T) {
	bits := scanSource(t, "return relFitness;")
	assert.True(t, has(bits, scanner.BitRelFitness))
}
