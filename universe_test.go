package closet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniverseByInsertionOrdersByFirstSeen(t *testing.T) {
	u := NewUniverseByInsertion([]Item{"red", "blue", "red", "green"})
	assert.Equal(t, 3, u.Len())

	pRed, ok := u.Priority("red")
	require.True(t, ok)
	pBlue, _ := u.Priority("blue")
	pGreen, _ := u.Priority("green")
	assert.Equal(t, Priority(0), pRed)
	assert.Equal(t, Priority(1), pBlue)
	assert.Equal(t, Priority(2), pGreen)
}

func TestNewUniverseByFrequencyOrdersDescendingWithTiebreak(t *testing.T) {
	u := NewUniverseByFrequency(map[Item]int{"rare": 1, "common": 5, "also-rare": 1})

	pCommon, _ := u.Priority("common")
	assert.Equal(t, Priority(0), pCommon, "highest occurrence count sits at priority 0")

	pAlsoRare, _ := u.Priority("also-rare")
	pRare, _ := u.Priority("rare")
	assert.Less(t, pAlsoRare, pRare, "ties break by natural string order")
}

func TestUniversePriorityAndItemAreInverses(t *testing.T) {
	u := NewUniverseByInsertion([]Item{"a", "b", "c"})
	for p := Priority(0); p < 3; p++ {
		it, ok := u.Item(p)
		require.True(t, ok)
		roundTrip, ok := u.Priority(it)
		require.True(t, ok)
		assert.Equal(t, p, roundTrip)
	}
	_, ok := u.Item(Priority(99))
	assert.False(t, ok)
}

func TestUniverseTreeEncodesSingleCombination(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1, "jeans": 1})
	combo := u.Tree(a, []Item{"red", "jeans"})

	got := prioritiesToItems(u, combinationsRecursive(a, combo))
	require.Len(t, got, 1)
	assert.ElementsMatch(t, []Item{"red", "jeans"}, got[0])
}

func TestUniverseHyperTreeRebuildsFilteredCombinations(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1, "jeans": 1, "slacks": 1})
	kept := [][]Item{{"jeans", "red"}, {"blue", "slacks"}}
	node := u.HyperTree(a, kept)

	got := prioritiesToItems(u, combinationsRecursive(a, node))
	assert.ElementsMatch(t, kept, got)
}

func TestMergeUniversesRewritePriorities(t *testing.T) {
	a := NewNodeArena()
	uA := NewUniverseByInsertion([]Item{"red", "blue"})
	uB := NewUniverseByInsertion([]Item{"jeans", "blue"})

	treeA := uA.UniqueTree(a, []Item{"red", "blue"})
	treeB := uB.UniqueTree(a, []Item{"jeans", "blue"})

	merged, remapA, remapB := MergeUniverses(uA, uB)
	assert.Equal(t, 3, merged.Len(), "blue is shared across both universes")

	rewrittenA := RewritePriorities(a, treeA, remapA, MkZDD)
	rewrittenB := RewritePriorities(a, treeB, remapB, MkZDD)

	combosA := prioritiesToItems(merged, combinationsRecursive(a, rewrittenA))
	combosB := prioritiesToItems(merged, combinationsRecursive(a, rewrittenB))
	assert.ElementsMatch(t, [][]Item{{"red"}, {"blue"}}, combosA)
	assert.ElementsMatch(t, [][]Item{{"jeans"}, {"blue"}}, combosB)
}
