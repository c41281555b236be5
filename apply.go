package closet

import "math"

// infinitePriority stands in for a leaf's "phantom node with infinite id"
// when comparing top variables during apply: a leaf never wins a
// min-priority comparison against a real Branch.
const infinitePriority = Priority(math.MaxUint32)

// ApplyOp names a binary operator recognized by Apply: a terminal rule that
// short-circuits whenever one or both operands are leaves, plus the smart
// constructor used to rebuild a Branch on the way back up the recursion.
// ZDD marks set-semantics operators, whose operands contain no combination
// with a variable they do not mention.
type ApplyOp struct {
	Name     string
	Terminal func(x, y NodeID) (NodeID, bool)
	Build    func(a *NodeArena, id Priority, low, high NodeID) NodeID
	ZDD      bool
}

type applyKey struct {
	x, y NodeID
	op   string
}

// Apply is the single recursive kernel behind every binary operator except
// Product (which needs a three-way union to preserve zero-suppression, see
// zdd.go) and Subset (a unary structural projection). At each step it picks
// the lower of the two operands' top priorities — ties mean both operands
// split on the same variable, so which operand's id is "picked" is moot —
// cofactors each operand against that priority (a leaf or an operand whose
// own top priority is strictly greater cofactors to itself on both sides
// for a BDD operator, and to itself on the low side and FalseLeaf on the
// high side for a ZDD operator), recurses, and rebuilds through op.Build. Results are memoized per call by
// (x, y, op) since the same subproblem can recur many times in a shared
// arena.
func Apply(a *NodeArena, x, y NodeID, op ApplyOp) NodeID {
	return applyMemo(a, x, y, op, make(map[applyKey]NodeID))
}

func applyMemo(a *NodeArena, x, y NodeID, op ApplyOp, memo map[applyKey]NodeID) NodeID {
	key := applyKey{x, y, op.Name}
	if v, ok := memo[key]; ok {
		return v
	}
	if res, ok := op.Terminal(x, y); ok {
		memo[key] = res
		return res
	}
	nx, ny := a.Resolve(x), a.Resolve(y)
	px, py := topPriority(nx), topPriority(ny)
	first := px
	if py < first {
		first = py
	}

	absentHigh := func(id NodeID) NodeID {
		if op.ZDD {
			return FalseLeaf
		}
		return id
	}
	xlo, xhi := x, absentHigh(x)
	if !nx.Leaf && nx.Priority == first {
		xlo, xhi = nx.Low, nx.High
	}
	ylo, yhi := y, absentHigh(y)
	if !ny.Leaf && ny.Priority == first {
		ylo, yhi = ny.Low, ny.High
	}

	lo := applyMemo(a, xlo, ylo, op, memo)
	hi := applyMemo(a, xhi, yhi, op, memo)
	res := op.Build(a, first, lo, hi)
	memo[key] = res
	return res
}

func topPriority(n Node) Priority {
	if n.Leaf {
		return infinitePriority
	}
	return n.Priority
}

// AndOp is BDD conjunction: F ∧ x = F, T ∧ x = x.
var AndOp = ApplyOp{
	Name: "and",
	Build: MkBDD,
	Terminal: func(x, y NodeID) (NodeID, bool) {
		if x == FalseLeaf || y == FalseLeaf {
			return FalseLeaf, true
		}
		if x == TrueLeaf {
			return y, true
		}
		if y == TrueLeaf {
			return x, true
		}
		return 0, false
	},
}

// OrOp is BDD disjunction: T ∨ x = T, F ∨ x = x.
var OrOp = ApplyOp{
	Name: "or",
	Build: MkBDD,
	Terminal: func(x, y NodeID) (NodeID, bool) {
		if x == TrueLeaf || y == TrueLeaf {
			return TrueLeaf, true
		}
		if x == FalseLeaf {
			return y, true
		}
		if y == FalseLeaf {
			return x, true
		}
		return 0, false
	},
}

// Not is BDD negation, the one unary operator in the algebra; it walks the
// diagram once rather than going through Apply's two-operand kernel.
func Not(a *NodeArena, x NodeID) NodeID {
	memo := make(map[NodeID]NodeID)
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		n := a.Resolve(id)
		if n.Leaf {
			out := TrueLeaf
			if n.Value {
				out = FalseLeaf
			}
			memo[id] = out
			return out
		}
		lo := walk(n.Low)
		hi := walk(n.High)
		out := MkBDD(a, n.Priority, lo, hi)
		memo[id] = out
		return out
	}
	return walk(x)
}

// Xor is derived, not primitive: (x ∧ ¬y) ∨ (¬x ∧ y).
func Xor(a *NodeArena, x, y NodeID) NodeID {
	left := Apply(a, x, Not(a, y), AndOp)
	right := Apply(a, Not(a, x), y, AndOp)
	return Apply(a, left, right, OrOp)
}

// UnionOp is ZDD union: empty ∪ x = x; two terminals combine via OR of
// their flags. A leaf paired against a real Branch falls through to the
// generic recursion, which keeps the leaf on the low side and pairs
// FalseLeaf with the Branch's high side.
var UnionOp = ApplyOp{
	Name: "union",
	Build: MkZDD,
	ZDD:   true,
	Terminal: func(x, y NodeID) (NodeID, bool) {
		if x == FalseLeaf {
			return y, true
		}
		if y == FalseLeaf {
			return x, true
		}
		if x == TrueLeaf && y == TrueLeaf {
			return TrueLeaf, true
		}
		return 0, false
	},
}

// IntersectOp is ZDD intersection, with terminal rules taken literally from
// the governing specification's operator table (empty ∩ x = empty, unit ∩
// x = x) rather than from original_source's intersect.rs, whose own test
// suite flags its unit-case behavior as suspect
// (*_THIS_MIGHT_BE_A_BUG-named tests). See DESIGN.md.
var IntersectOp = ApplyOp{
	Name: "intersect",
	Build: MkZDD,
	ZDD:   true,
	Terminal: func(x, y NodeID) (NodeID, bool) {
		if x == FalseLeaf || y == FalseLeaf {
			return FalseLeaf, true
		}
		if x == TrueLeaf {
			return y, true
		}
		if y == TrueLeaf {
			return x, true
		}
		return 0, false
	},
}
