package closet

// MkZDD builds a Branch node honoring the ZDD invariants: zero-suppression
// (no Branch has high == FalseLeaf — such a node carries no information
// beyond its low child and is replaced by it), duplication collapse (a
// child whose own top variable equals id is redundant and is skipped), and
// rotation (a child whose top variable precedes id in priority is an
// inversion; the two affected levels are swapped so the result's top
// variable is the smaller priority, per spec section 4.2). The compiler and
// the set operators build bottom-up in increasing priority order and never
// trigger rotation. Two callers can: ParseSExpr, which rebuilds externally
// supplied priority/low/high triples (a syntactically valid but
// non-canonical s-expression), and RewritePriorities, whose remapped
// priorities need not preserve the original order.
func MkZDD(a *NodeArena, id Priority, low, high NodeID) NodeID {
	if high == FalseLeaf {
		return low
	}
	ln, hn := a.Resolve(low), a.Resolve(high)
	lp, hp := topPriority(ln), topPriority(hn)

	if lp < id || hp < id {
		rotate := lp
		if hp < rotate {
			rotate = hp
		}
		lowLo, lowHi := zddRotateCofactor(low, ln, rotate)
		highLo, highHi := zddRotateCofactor(high, hn, rotate)
		newLow := MkZDD(a, id, lowLo, highLo)
		newHigh := MkZDD(a, id, lowHi, highHi)
		return MkZDD(a, rotate, newLow, newHigh)
	}

	if lp == id {
		low = ln.Low
	}
	if hp == id {
		high = hn.High
	}
	if high == FalseLeaf {
		// Duplication collapse on the high side can re-trigger
		// zero-suppression.
		return low
	}
	return a.Intern(Node{Priority: id, Low: low, High: high})
}

// zddRotateCofactor cofactors an already-resolved child against target
// using ZDD set semantics: a child whose own top variable is target splits
// normally into its two children; one whose top variable is strictly
// greater (or a leaf) does not mention target at all, so per the
// strictly-increasing-priority invariant it contains no combination with
// target present (cofactors to FalseLeaf on the "included" side) and is
// unchanged on the "excluded" side.
func zddRotateCofactor(node NodeID, n Node, target Priority) (lo, hi NodeID) {
	if !n.Leaf && n.Priority == target {
		return n.Low, n.High
	}
	return node, FalseLeaf
}

// restrictZDD is Restrict's ZDD counterpart: same cofactor substitution,
// rebuilt through the ZDD smart constructor.
func restrictZDD(a *NodeArena, node NodeID, id Priority, selected bool) NodeID {
	return restrictGeneric(a, node, id, selected, MkZDD)
}

// restrictGeneric implements spec's restrict recursion once, parameterized
// by which smart constructor rebuilds the Branch on the way back up:
// reached the target variable -> take the matching cofactor; passed it
// without a match -> node is unaffected; otherwise recurse and rebuild.
func restrictGeneric(a *NodeArena, node NodeID, id Priority, selected bool, build func(*NodeArena, Priority, NodeID, NodeID) NodeID) NodeID {
	n := a.Resolve(node)
	if n.Leaf {
		return node
	}
	switch {
	case n.Priority == id:
		if selected {
			return n.High
		}
		return n.Low
	case n.Priority > id:
		return node
	default:
		lo := restrictGeneric(a, n.Low, id, selected, build)
		hi := restrictGeneric(a, n.High, id, selected, build)
		return build(a, n.Priority, lo, hi)
	}
}

// Product computes the ZDD cross-product {p ∪ q : p ∈ P, q ∈ Q}, used to
// combine per-family unique-trees into the cross-family diagram. Unlike
// AND/OR/UNION/INTERSECT, Product's recursive case is not a simple
// same-shape cofactor split: the combined high branch must union three
// sub-products together to preserve zero-suppression, following
// original_source's product.rs (itself Minato's standard ZDD product
// algorithm), so it is implemented directly rather than through Apply's
// generic two-child template.
func Product(a *NodeArena, x, y NodeID) NodeID {
	return productMemo(a, x, y, make(map[[2]NodeID]NodeID))
}

func productMemo(a *NodeArena, x, y NodeID, memo map[[2]NodeID]NodeID) NodeID {
	if x == FalseLeaf || y == FalseLeaf {
		return FalseLeaf
	}
	if x == TrueLeaf {
		return y
	}
	if y == TrueLeaf {
		return x
	}
	if x == y {
		return x
	}
	key := [2]NodeID{x, y}
	if v, ok := memo[key]; ok {
		return v
	}
	nx, ny := a.Resolve(x), a.Resolve(y)
	top := nx.Priority
	if ny.Priority < top {
		top = ny.Priority
	}
	x0, x1 := x, NodeID(FalseLeaf)
	if nx.Priority == top {
		x0, x1 = nx.Low, nx.High
	}
	y0, y1 := y, NodeID(FalseLeaf)
	if ny.Priority == top {
		y0, y1 = ny.Low, ny.High
	}
	lo := productMemo(a, x0, y0, memo)
	h1 := productMemo(a, x0, y1, memo)
	h2 := productMemo(a, x1, y0, memo)
	h3 := productMemo(a, x1, y1, memo)
	hi := Apply(a, Apply(a, h1, h2, UnionOp), h3, UnionOp)
	res := MkZDD(a, top, lo, hi)
	memo[key] = res
	return res
}

// Subset projects a diagram onto the combinations that contain item e: the
// recursion descends until it reaches the branch whose priority equals e,
// then forbids the low path (e must be present) and otherwise leaves the
// structure untouched; any branch passed without reaching e means e is
// unreachable down that path, so it contributes nothing.
func Subset(a *NodeArena, node NodeID, e Priority) NodeID {
	memo := make(map[NodeID]NodeID)
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if v, ok := memo[id]; ok {
			return v
		}
		n := a.Resolve(id)
		var out NodeID
		switch {
		case n.Leaf:
			out = FalseLeaf
		case n.Priority == e:
			out = MkZDD(a, e, FalseLeaf, n.High)
		case n.Priority > e:
			out = FalseLeaf
		default:
			lo := walk(n.Low)
			hi := walk(n.High)
			out = MkZDD(a, n.Priority, lo, hi)
		}
		memo[id] = out
		return out
	}
	return walk(node)
}
