package closet

// combinationsRecursive enumerates every root-to-TrueLeaf path as a set of
// priorities via plain tree recursion (no explicit stack). The closet
// compiler's rule-filtering step (builder.go) and Closet.Combinations both
// rely on the two enumeration strategies below agreeing, per the invariant
// that their result sets must be identical regardless of how the walk is
// implemented.
func combinationsRecursive(a *NodeArena, node NodeID) [][]Priority {
	n := a.Resolve(node)
	if n.Leaf {
		if n.Value {
			return [][]Priority{{}}
		}
		return nil
	}
	var out [][]Priority
	out = append(out, combinationsRecursive(a, n.Low)...)
	for _, suffix := range combinationsRecursive(a, n.High) {
		combo := make([]Priority, 0, len(suffix)+1)
		combo = append(combo, n.Priority)
		combo = append(combo, suffix...)
		out = append(out, combo)
	}
	return out
}

type combinationsFrame struct {
	node NodeID
	path []Priority
}

// combinationsIterative is combinationsRecursive's explicit-stack
// counterpart, used to cross-check the recursive implementation and to
// avoid stack depth concerns on very deep diagrams.
func combinationsIterative(a *NodeArena, node NodeID) [][]Priority {
	var out [][]Priority
	stack := []combinationsFrame{{node: node}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.Resolve(f.node)
		if n.Leaf {
			if n.Value {
				out = append(out, append([]Priority(nil), f.path...))
			}
			continue
		}
		stack = append(stack, combinationsFrame{node: n.Low, path: f.path})
		withHigh := make([]Priority, 0, len(f.path)+1)
		withHigh = append(withHigh, f.path...)
		withHigh = append(withHigh, n.Priority)
		stack = append(stack, combinationsFrame{node: n.High, path: withHigh})
	}
	return out
}

func prioritiesToItems(u *Universe, combos [][]Priority) [][]Item {
	out := make([][]Item, 0, len(combos))
	for _, combo := range combos {
		items := make([]Item, 0, len(combo))
		for _, p := range combo {
			if it, ok := u.Item(p); ok {
				items = append(items, it)
			}
		}
		out = append(out, sortedItemsCopy(items))
	}
	return out
}

// Combinations enumerates every outfit encoded by the closet's diagram.
func (c *Closet) Combinations() [][]Item {
	return prioritiesToItems(c.universe, combinationsRecursive(c.arena, c.root))
}

// CombinationsIterative is Combinations computed via the explicit-stack
// walk; it must return the same set (order may differ).
func (c *Closet) CombinationsIterative() [][]Item {
	return prioritiesToItems(c.universe, combinationsIterative(c.arena, c.root))
}

// CombinationsWith filters Combinations down to outfits that contain every
// item in selections and none of the items in exclusions.
func (c *Closet) CombinationsWith(selections, exclusions []Item) ([][]Item, error) {
	all := append(append([]Item{}, selections...), exclusions...)
	if unknown := c.unknownItems(all); len(unknown) > 0 {
		return nil, &UnknownItemsError{Items: sortedItemsCopy(unknown)}
	}

	selSet := map[Item]bool{}
	for _, it := range selections {
		selSet[it] = true
	}
	exSet := map[Item]bool{}
	for _, it := range exclusions {
		exSet[it] = true
	}

	var out [][]Item
	for _, combo := range c.Combinations() {
		present := map[Item]bool{}
		for _, it := range combo {
			present[it] = true
		}
		ok := true
		for s := range selSet {
			if !present[s] {
				ok = false
				break
			}
		}
		if ok {
			for e := range exSet {
				if present[e] {
					ok = false
					break
				}
			}
		}
		if ok {
			out = append(out, combo)
		}
	}
	return out, nil
}

// NodeCount returns the number of distinct Branch nodes reachable from the
// closet's root.
func (c *Closet) NodeCount() int {
	seen := map[NodeID]bool{}
	count := 0
	var walk func(NodeID)
	walk = func(id NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		n := c.arena.Resolve(id)
		if n.Leaf {
			return
		}
		count++
		walk(n.Low)
		walk(n.High)
	}
	walk(c.root)
	return count
}

// LeafCount returns the number of distinct leaves reachable from the
// closet's root (0, 1, or 2).
func (c *Closet) LeafCount() int {
	seen := map[NodeID]bool{}
	count := 0
	var walk func(NodeID)
	walk = func(id NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		n := c.arena.Resolve(id)
		if n.Leaf {
			count++
			return
		}
		walk(n.Low)
		walk(n.High)
	}
	walk(c.root)
	return count
}

// Depth returns the number of nodes (branches plus the terminal) along the
// longest root-to-leaf path.
func (c *Closet) Depth() int {
	memo := map[NodeID]int{}
	var walk func(NodeID) int
	walk = func(id NodeID) int {
		if v, ok := memo[id]; ok {
			return v
		}
		n := c.arena.Resolve(id)
		var d int
		if n.Leaf {
			d = 1
		} else {
			d = 1 + max(walk(n.Low), walk(n.High))
		}
		memo[id] = d
		return d
	}
	return walk(c.root)
}

// OutfitCount returns the number of distinct outfits the closet encodes.
func (c *Closet) OutfitCount() int {
	return len(c.Combinations())
}
