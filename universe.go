package closet

import "sort"

// Universe assigns a unique Priority to every known item, defining the
// total variable order used throughout the node algebra. A BDD universe
// orders items by first-insertion order; a ZDD universe orders by
// descending occurrence count (items with a higher count sit closer to the
// root, since they are more likely to prune large subtrees early; the
// closet compiler counts family memberships), ties broken by natural string
// order for determinism.
type Universe struct {
	priorities map[Item]Priority
	items      []Item // indexed by Priority
}

// NewUniverseByInsertion builds a BDD-style universe: priority follows
// first-seen order in items, duplicates ignored.
func NewUniverseByInsertion(items []Item) *Universe {
	u := &Universe{priorities: make(map[Item]Priority, len(items))}
	for _, it := range items {
		if _, ok := u.priorities[it]; ok {
			continue
		}
		u.priorities[it] = Priority(len(u.items))
		u.items = append(u.items, it)
	}
	return u
}

// NewUniverseByFrequency builds a ZDD-style universe: priority follows
// descending occurrence count, ties broken by natural item order.
func NewUniverseByFrequency(occurrences map[Item]int) *Universe {
	items := make([]Item, 0, len(occurrences))
	for it := range occurrences {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if occurrences[items[i]] != occurrences[items[j]] {
			return occurrences[items[i]] > occurrences[items[j]]
		}
		return items[i] < items[j]
	})
	u := &Universe{priorities: make(map[Item]Priority, len(items)), items: items}
	for p, it := range items {
		u.priorities[it] = Priority(p)
	}
	return u
}

// Priority returns the priority assigned to it, or false if it is unknown
// to this universe.
func (u *Universe) Priority(it Item) (Priority, bool) {
	p, ok := u.priorities[it]
	return p, ok
}

// Item returns the item assigned to priority p, or false if p is out of
// range.
func (u *Universe) Item(p Priority) (Item, bool) {
	if int(p) >= len(u.items) {
		return "", false
	}
	return u.items[p], true
}

// Len returns the number of items known to this universe.
func (u *Universe) Len() int { return len(u.items) }

// Items returns every item in priority order.
func (u *Universe) Items() []Item {
	return append([]Item(nil), u.items...)
}

// Tree returns the ZDD representing the single combination containing
// exactly the given items: a chain of required-branches built from the
// highest priority (innermost) up to the lowest (the root), each wrapping
// the previous with low == FalseLeaf.
func (u *Universe) Tree(a *NodeArena, combo []Item) NodeID {
	prios := make([]Priority, 0, len(combo))
	for _, it := range combo {
		if p, ok := u.Priority(it); ok {
			prios = append(prios, p)
		}
	}
	sort.Slice(prios, func(i, j int) bool { return prios[i] > prios[j] })
	node := TrueLeaf
	for _, p := range prios {
		node = MkZDD(a, p, FalseLeaf, node)
	}
	return node
}

// UniqueTree returns the union of the singleton Tree for each item
// individually: the "exactly one of these items" sibling relationship for
// a single family.
func (u *Universe) UniqueTree(a *NodeArena, items []Item) NodeID {
	node := FalseLeaf
	for _, it := range items {
		node = Apply(a, node, u.Tree(a, []Item{it}), UnionOp)
	}
	return node
}

// HyperTree returns the union of Tree(combo) for every combination in
// combos, used to rebuild a rule-filtered combination list back into a
// single ZDD.
func (u *Universe) HyperTree(a *NodeArena, combos [][]Item) NodeID {
	node := FalseLeaf
	for _, c := range combos {
		node = Apply(a, node, u.Tree(a, c), UnionOp)
	}
	return node
}

// MergeUniverses combines two universes that may assign different
// priorities to the same item (or disagree about which items exist at
// all) into one consistent order, appending b's priority-ordered items
// that a does not already know about after all of a's. It returns the
// merged universe plus one priority-remapping map per input universe,
// for use with RewritePriorities.
func MergeUniverses(a, b *Universe) (merged *Universe, remapA, remapB map[Priority]Priority) {
	merged = &Universe{priorities: make(map[Item]Priority)}
	add := func(it Item) Priority {
		if p, ok := merged.priorities[it]; ok {
			return p
		}
		p := Priority(len(merged.items))
		merged.priorities[it] = p
		merged.items = append(merged.items, it)
		return p
	}
	remapA = make(map[Priority]Priority, a.Len())
	for _, it := range a.items {
		remapA[a.priorities[it]] = add(it)
	}
	remapB = make(map[Priority]Priority, b.Len())
	for _, it := range b.items {
		remapB[b.priorities[it]] = add(it)
	}
	return merged, remapA, remapB
}

// RewritePriorities walks node bottom-up, replacing every Branch's priority
// through remap and re-interning via build (MkBDD or MkZDD). Used after
// MergeUniverses to bring a diagram built under the old universe in line
// with the merged one.
func RewritePriorities(a *NodeArena, node NodeID, remap map[Priority]Priority, build func(*NodeArena, Priority, NodeID, NodeID) NodeID) NodeID {
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
		newPriority, ok := remap[n.Priority]
		if !ok {
			newPriority = n.Priority
		}
		out := build(a, newPriority, lo, hi)
		memo[id] = out
		return out
	}
	return walk(node)
}
