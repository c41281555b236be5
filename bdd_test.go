package closet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMkBDDCollapsesEqualChildren(t *testing.T) {
	a := NewNodeArena()
	id := MkBDD(a, 0, TrueLeaf, TrueLeaf)
	assert.Equal(t, TrueLeaf, id, "low == high must collapse to the shared child")
}

func TestMkBDDKeepsDistinctChildren(t *testing.T) {
	a := NewNodeArena()
	id := mkBDDVar(a, 0)
	n := a.Resolve(id)
	assert.False(t, n.Leaf)
	assert.Equal(t, FalseLeaf, n.Low)
	assert.Equal(t, TrueLeaf, n.High)
}

func TestRestrictBDD(t *testing.T) {
	a := NewNodeArena()
	x0 := mkBDDVar(a, 0)
	x1 := mkBDDVar(a, 1)
	and := Apply(a, x0, x1, AndOp)

	assert.Equal(t, x1, Restrict(a, and, 0, true), "restricting x0=true leaves x1")
	assert.Equal(t, FalseLeaf, Restrict(a, and, 0, false), "restricting x0=false forces false")
	assert.Equal(t, and, Restrict(a, and, 5, true), "restricting an absent variable is a no-op")
}

func TestReduceIsNoOpOnCanonicalDiagram(t *testing.T) {
	a := NewNodeArena()
	x0 := mkBDDVar(a, 0)
	x1 := mkBDDVar(a, 1)
	and := Apply(a, x0, x1, AndOp)
	assert.Equal(t, and, Reduce(a, and))
}

func TestReduceCollapsesHandAssembledRedundancy(t *testing.T) {
	a := NewNodeArena()
	// Hand-assemble a Branch whose children happen to be equal, bypassing
	// MkBDD the way deserializing untrusted Structure/Content input would.
	leafBranch := a.Intern(Node{Priority: 0, Low: TrueLeaf, High: TrueLeaf})
	assert.Equal(t, TrueLeaf, Reduce(a, leafBranch))
}

func TestVariablesReturnsSortedDistinctPriorities(t *testing.T) {
	a := NewNodeArena()
	x0 := mkBDDVar(a, 0)
	x2 := mkBDDVar(a, 2)
	combined := Apply(a, x0, x2, OrOp)
	assert.Equal(t, []Priority{0, 2}, Variables(a, combined))
}
