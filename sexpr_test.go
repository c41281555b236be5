package closet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSExprTerminals(t *testing.T) {
	a := NewNodeArena()
	assert.Equal(t, "(A)", FormatSExpr(a, TrueLeaf))
	assert.Equal(t, "(N)", FormatSExpr(a, FalseLeaf))
}

func TestFormatSExprBranch(t *testing.T) {
	a := NewNodeArena()
	node := MkZDD(a, 0, FalseLeaf, TrueLeaf)
	assert.Equal(t, "(0 (N) (A))", FormatSExpr(a, node))
}

func TestParseSExprRoundTrip(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1})
	original := u.UniqueTree(a, []Item{"red", "blue"})

	text := FormatSExpr(a, original)
	got, err := ParseSExpr(a, text)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestParseSExprToleratesWhitespace(t *testing.T) {
	a := NewNodeArena()
	node, err := ParseSExpr(a, "  (  0   (N)\n\t(A)  )  ")
	require.NoError(t, err)
	assert.Equal(t, "(0 (N) (A))", FormatSExpr(a, node))
}

func TestParseSExprRejectsTrailingGarbage(t *testing.T) {
	a := NewNodeArena()
	_, err := ParseSExpr(a, "(A) extra")
	assert.Error(t, err)
}

func TestParseSExprRejectsMalformedInput(t *testing.T) {
	a := NewNodeArena()
	_, err := ParseSExpr(a, "(0 (N))")
	assert.Error(t, err)

	_, err = ParseSExpr(a, "(X)")
	assert.Error(t, err)

	_, err = ParseSExpr(a, "")
	assert.Error(t, err)
}

// TestParseSExprToleratesNonCanonicalOrder checks that parsing is total over
// every syntactically valid input per spec.md §6, even when the encoded
// priorities are not in canonical increasing order: the grammar imposes no
// ordering, so a non-canonical branch must be rotated into shape by MkZDD
// rather than rejected or panicked on.
func TestParseSExprToleratesNonCanonicalOrder(t *testing.T) {
	a := NewNodeArena()
	node, err := ParseSExpr(a, "(5 (3 (N) (A)) (A))")
	require.NoError(t, err)

	combos := combinationsRecursive(a, node)
	assert.ElementsMatch(t, [][]Priority{{5}, {3}}, combos)
}
