package closet

import "sort"

// MkBDD builds a Branch node honoring the BDD reduction invariant: a
// Branch whose low and high children are identical carries no information
// and is replaced by that shared child instead of being interned.
func MkBDD(a *NodeArena, id Priority, low, high NodeID) NodeID {
	if low == high {
		return low
	}
	return a.Intern(Node{Priority: id, Low: low, High: high})
}

// mkBDDVar returns the single-variable Branch(id, FalseLeaf, TrueLeaf): the
// node representing "this item is selected".
func mkBDDVar(a *NodeArena, id Priority) NodeID {
	return MkBDD(a, id, FalseLeaf, TrueLeaf)
}

// Restrict substitutes a fixed truth value for one variable throughout the
// diagram rooted at node, returning its cofactor.
func Restrict(a *NodeArena, node NodeID, id Priority, selected bool) NodeID {
	return restrictGeneric(a, node, id, selected, MkBDD)
}

// Reduce performs a defensive bottom-up re-canonicalization, collapsing any
// Branch whose children turn out equal. It is a no-op on an already
// canonical diagram (every diagram built exclusively through MkBDD is); it
// exists for diagrams rebuilt from untrusted Structure/Content codec input.
func Reduce(a *NodeArena, node NodeID) NodeID {
	memo := make(map[NodeID]NodeID)
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		n := a.Resolve(id)
		if n.Leaf {
			memo[id] = id
			return id
		}
		lo := walk(n.Low)
		hi := walk(n.High)
		out := MkBDD(a, n.Priority, lo, hi)
		memo[id] = out
		return out
	}
	return walk(node)
}

// Variables returns the sorted set of priorities that appear as a decision
// variable anywhere in the diagram rooted at node. Ported from
// original_source's summarize.rs, which answers "which items can this
// subtree's outcome possibly depend on".
func Variables(a *NodeArena, node NodeID) []Priority {
	seen := make(map[NodeID]bool)
	var out []Priority
	var walk func(NodeID)
	walk = func(id NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		n := a.Resolve(id)
		if n.Leaf {
			return
		}
		out = append(out, n.Priority)
		walk(n.Low)
		walk(n.High)
	}
	walk(node)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
