package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptlab/eidos/errs"
	"github.com/scriptlab/eidos/lexer"
	"github.com/scriptlab/eidos/parser"
	"github.com/scriptlab/eidos/scanner"
	"github.com/scriptlab/eidos/script"
	"github.com/scriptlab/eidos/token"
)

func parseBlocks(t *testing.T, src string) []*script.ScriptBlock {
	t.Helper()
	toks, err := lexer.Tokens(src, 0)
	require.NoError(t, err)
	file, err := parser.ParseFile(toks)
	require.NoError(t, err)

	blocks := make([]*script.ScriptBlock, len(file.Children))
	for i, blockNode := range file.Children {
		b, err := script.BuildScriptBlock(blockNode)
		require.NoError(t, err)
		blocks[i] = b
	}
	return blocks
}

func parseOneBlock(t *testing.T, src string) *script.ScriptBlock {
	t.Helper()
	blocks := parseBlocks(t, src)
	require.Len(t, blocks, 1)
	return blocks[0]
}

func parseBlockErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Tokens(src, 0)
	require.NoError(t, err)
	file, err := parser.ParseFile(toks)
	if err != nil {
		return err
	}
	require.Len(t, file.Children, 1)
	_, err = script.BuildScriptBlock(file.Children[0])
	return err
}

// S1 — event block, implicit range.
func TestS1EventBlockImplicitRange(t *testing.T) {
	b := parseOneBlock(t, `1 { sim.addSubpop("p1", 500); }`)
	assert.Equal(t, script.Event, b.Kind)
	assert.Equal(t, int64(1), b.StartGeneration)
	assert.Equal(t, int64(1), b.EndGeneration)
	assert.Equal(t, script.UnassignedID, b.BlockID)
	assert.True(t, b.Contains(scanner.BitSim))
	assert.False(t, b.Contains(scanner.BitPX)) // "p1" is a string literal, not scanned
}

// S2 — named range.
func TestS2NamedRange(t *testing.T) {
	b := parseOneBlock(t, "s3 100:200 { x = 1; }")
	assert.Equal(t, int64(3), b.BlockID)
	assert.Equal(t, int64(100), b.StartGeneration)
	assert.Equal(t, int64(200), b.EndGeneration)
	assert.Equal(t, script.Event, b.Kind)
}

// S3 — initialize callback.
func TestS3InitializeCallback(t *testing.T) {
	b := parseOneBlock(t, "initialize() { initializeMutationRate(1e-7); }")
	assert.Equal(t, script.Initialize, b.Kind)
	assert.Equal(t, int64(0), b.StartGeneration)
	assert.Equal(t, int64(0), b.EndGeneration)
}

func TestS3InitializeWithRangeFails(t *testing.T) {
	err := parseBlockErr(t, "1:5 initialize() {}")
	require.Error(t, err)
	var shapeErr *errs.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

// S4 — fitness callback, both args.
func TestS4FitnessCallbackBothArgs(t *testing.T) {
	b := parseOneBlock(t, "fitness(m1, p2) { return relFitness; }")
	assert.Equal(t, script.Fitness, b.Kind)
	assert.Equal(t, int64(1), b.MutationTypeID)
	assert.Equal(t, int64(2), b.SubpopulationID)
	assert.True(t, b.Contains(scanner.BitRelFitness))
	assert.True(t, b.Contains(scanner.BitMX))
	assert.True(t, b.Contains(scanner.BitPX))
}

// S5 — wildcard escalation.
func TestS5WildcardEscalation(t *testing.T) {
	b := parseOneBlock(t, `1 { executeLambda("x=1;"); }`)
	assert.True(t, b.Contains(scanner.BitWildcard))
	assert.True(t, b.Contains(scanner.BitSim))
	assert.True(t, b.Contains(scanner.BitIsSelfing))
}

// S6 — syntax error carries position (missing end generation).
func TestS6SyntaxErrorCarriesPosition(t *testing.T) {
	toks, err := lexer.Tokens("s2 10: { }", 0)
	require.NoError(t, err)
	_, err = parser.ParseFile(toks)
	require.Error(t, err)
	var synErr *errs.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, token.LBRACE, synErr.Tok.Kind)
}

// S7 — range inversion.
func TestS7RangeInversion(t *testing.T) {
	err := parseBlockErr(t, "5:3 {}")
	require.Error(t, err)
	var rangeErr *errs.RangeError
	require.ErrorAs(t, err, &rangeErr)
}

// S8 — id overflow.
func TestS8IDOverflow(t *testing.T) {
	err := parseBlockErr(t, "s999999999999 1 {}")
	require.Error(t, err)
	var rangeErr *errs.RangeError
	require.ErrorAs(t, err, &rangeErr)
}

// S9 — fitness missing required arg.
func TestS9FitnessMissingRequiredArg(t *testing.T) {
	err := parseBlockErr(t, "fitness() {}")
	require.Error(t, err)
	var shapeErr *errs.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestMateChoiceDefaultsSubpopulationUnassigned(t *testing.T) {
	b := parseOneBlock(t, "mateChoice() { return weights; }")
	assert.Equal(t, script.MateChoice, b.Kind)
	assert.Equal(t, script.UnassignedID, b.SubpopulationID)
}

func TestModifyChildWithSubpop(t *testing.T) {
	b := parseOneBlock(t, "modifyChild(p1) { return T; }")
	assert.Equal(t, script.ModifyChild, b.Kind)
	assert.Equal(t, int64(1), b.SubpopulationID)
}

func TestGivenOnlyStartDefaultsEndToStart(t *testing.T) {
	b := parseOneBlock(t, "42 {}")
	assert.Equal(t, int64(42), b.StartGeneration)
	assert.Equal(t, int64(42), b.EndGeneration)
}

func TestBuildScriptBlockFromSource(t *testing.T) {
	b, err := script.BuildScriptBlockFromSource(5, "{ x = 1; }", script.Event, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.BlockID)
	assert.Equal(t, int64(10), b.StartGeneration)
	assert.Equal(t, int64(20), b.EndGeneration)
}

func TestBuildScriptBlockFromSourceForcesInitializeRangeToZero(t *testing.T) {
	b, err := script.BuildScriptBlockFromSource(-1, "{ initializeMutationRate(1e-7); }", script.Initialize, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.StartGeneration)
	assert.Equal(t, int64(0), b.EndGeneration)
}

func TestBuildScriptBlockFromSourceRejectsNonCompoundStatement(t *testing.T) {
	_, err := script.BuildScriptBlockFromSource(-1, "x = 1;", script.Event, 1, 1)
	require.Error(t, err)
	var shapeErr *errs.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestMultipleBlocksInOneFile(t *testing.T) {
	blocks := parseBlocks(t, "1 { x = 1; } s7 2:3 { y = 2; }")
	require.Len(t, blocks, 2)
	assert.Equal(t, script.UnassignedID, blocks[0].BlockID)
	assert.Equal(t, int64(7), blocks[1].BlockID)
}
