package closet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkZDDZeroSuppression(t *testing.T) {
	a := NewNodeArena()
	id := MkZDD(a, 0, TrueLeaf, FalseLeaf)
	assert.Equal(t, TrueLeaf, id, "high == FalseLeaf must suppress the branch")
}

func TestMkZDDKeepsLiveHighArc(t *testing.T) {
	a := NewNodeArena()
	id := MkZDD(a, 0, FalseLeaf, TrueLeaf)
	n := a.Resolve(id)
	require.False(t, n.Leaf)
	assert.Equal(t, Priority(0), n.Priority)
}

// TestMkZDDRotatesInvertedOrder covers spec.md §4.2's rotation rule: a
// Branch built with a child whose own top variable precedes the requested
// id is an inversion, not an invariant violation, and MkZDD must rotate the
// two levels rather than panic. ParseSExpr relies on this to stay total
// over every syntactically valid s-expression regardless of priority order.
func TestMkZDDRotatesInvertedOrder(t *testing.T) {
	a := NewNodeArena()
	inner := MkZDD(a, 1, FalseLeaf, TrueLeaf)
	id := MkZDD(a, 2, FalseLeaf, inner)

	n := a.Resolve(id)
	require.False(t, n.Leaf)
	assert.Equal(t, Priority(1), n.Priority, "rotation must bring the smaller priority to the top")

	combos := combinationsRecursive(a, id)
	assert.ElementsMatch(t, [][]Priority{{1, 2}}, combos)
}

func TestProductCrossesTwoFamilies(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1, "jeans": 1, "slacks": 1})
	shirts := u.UniqueTree(a, []Item{"red", "blue"})
	pants := u.UniqueTree(a, []Item{"jeans", "slacks"})
	product := Product(a, shirts, pants)

	combos := prioritiesToItems(u, combinationsRecursive(a, product))
	assert.Len(t, combos, 4)
	for _, combo := range combos {
		assert.Len(t, combo, 2)
	}
}

func TestSubsetProjectsOntoCombinationsContainingItem(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1, "jeans": 1, "slacks": 1})
	shirts := u.UniqueTree(a, []Item{"red", "blue"})
	pants := u.UniqueTree(a, []Item{"jeans", "slacks"})
	product := Product(a, shirts, pants)

	redPriority, ok := u.Priority("red")
	require.True(t, ok)
	sub := Subset(a, product, redPriority)

	combos := prioritiesToItems(u, combinationsRecursive(a, sub))
	assert.Len(t, combos, 2)
	for _, combo := range combos {
		assert.Contains(t, combo, Item("red"))
	}
}

func TestRestrictZDD(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByFrequency(map[Item]int{"red": 1, "blue": 1})
	tree := u.UniqueTree(a, []Item{"red", "blue"})
	redPriority, _ := u.Priority("red")

	selected := restrictZDD(a, tree, redPriority, true)
	assert.Equal(t, TrueLeaf, selected)

	excluded := restrictZDD(a, tree, redPriority, false)
	bluePriority, _ := u.Priority("blue")
	assert.Equal(t, mkZDDSingleton(a, bluePriority), excluded)
}

func mkZDDSingleton(a *NodeArena, p Priority) NodeID {
	return MkZDD(a, p, FalseLeaf, TrueLeaf)
}
