package closet

// SelectItem returns a new Closet with item fixed as selected, restricting
// the diagram accordingly.
func (c *Closet) SelectItem(item Item) (*Closet, error) {
	p, ok := c.universe.Priority(item)
	if !ok {
		return nil, &UnknownItemsError{Items: []Item{item}}
	}
	newRoot := restrictGeneric(c.arena, c.root, p, true, c.buildFunc())
	return c.clone(newRoot, appendUniqueItem(c.selections, item)), nil
}

// ExcludeItem returns a new Closet with item fixed as excluded.
func (c *Closet) ExcludeItem(item Item) (*Closet, error) {
	p, ok := c.universe.Priority(item)
	if !ok {
		return nil, &UnknownItemsError{Items: []Item{item}}
	}
	newRoot := restrictGeneric(c.arena, c.root, p, false, c.buildFunc())
	return c.clone(newRoot, c.selections), nil
}

// CompleteOutfit validates selections (no unknown items, no two items from
// the same family), restricts the diagram by every selection in turn, and
// greedily descends the remainder to a full outfit: at each branch it
// prefers the high arc (selecting that item) since zero-suppression (ZDD)
// and the exactly-one-per-family sibling relationship (BDD) both guarantee
// that whenever a branch's high arc is not FalseLeaf it leads to a live,
// still-relevant choice, falling back to low only when high is dead.
//
// Per the governing specification's design notes, a completed outfit that
// does not select exactly one item per family indicates a violated
// internal invariant (a malformed diagram), not a reportable user error,
// and is treated as such: see assertOnePerFamily.
func (c *Closet) CompleteOutfit(selections []Item) (*Outfit, error) {
	if unknown := c.unknownItems(selections); len(unknown) > 0 {
		return nil, &UnknownItemsError{Items: sortedItemsCopy(unknown)}
	}

	byFamily := map[Family][]Item{}
	for _, it := range selections {
		fam := c.itemFamily[it]
		byFamily[fam] = append(byFamily[fam], it)
	}
	for fam, items := range byFamily {
		if len(items) > 1 {
			return nil, &MultipleItemsPerFamilyError{Family: fam, Items: sortedItemsCopy(items)}
		}
	}

	build := c.buildFunc()
	node := c.root
	for _, it := range selections {
		p, _ := c.universe.Priority(it)
		node = restrictGeneric(c.arena, node, p, true, build)
	}
	if node == FalseLeaf {
		return nil, &IncompatibleSelectionsError{Items: sortedItemsCopy(selections)}
	}

	outfit := dedupeItemsKeepOrder(append([]Item{}, selections...))
	cur := node
	for {
		n := c.arena.Resolve(cur)
		if n.Leaf {
			if !n.Value {
				return nil, &IncompatibleSelectionsError{Items: sortedItemsCopy(selections)}
			}
			break
		}
		if n.High != FalseLeaf {
			item, _ := c.universe.Item(n.Priority)
			outfit = appendUniqueItem(outfit, item)
			cur = n.High
		} else {
			cur = n.Low
		}
	}

	outfit = sortedItemsCopy(outfit)
	c.assertOnePerFamily(outfit)
	return &Outfit{Items: outfit}, nil
}

// assertOnePerFamily panics, wrapping ErrInvariant, if outfit does not
// select exactly one item per known family. This is an internal-invariant
// check, not user-input validation: a correctly compiled Closet can never
// produce a completion that fails it, so a failure here means the diagram
// itself is malformed.
func (c *Closet) assertOnePerFamily(outfit []Item) {
	seen := map[Family]bool{}
	for _, it := range outfit {
		fam, ok := c.itemFamily[it]
		if !ok {
			panic(errInvariantf("outfit item %q has no known family", it))
		}
		if seen[fam] {
			panic(errInvariantf("outfit selects more than one item from family %q", fam))
		}
		seen[fam] = true
	}
	if len(seen) != len(c.familyOrder) {
		panic(errInvariantf("outfit selects %d families, want %d", len(seen), len(c.familyOrder)))
	}
}

// ItemStatusKind classifies an item's role across the outfits compatible
// with a selection/exclusion context.
type ItemStatusKind int

const (
	// StatusExcluded means no compatible outfit contains the item.
	StatusExcluded ItemStatusKind = iota
	// StatusSelected means the item was part of the query's selections.
	StatusSelected
	// StatusRequired means every compatible outfit contains the item.
	StatusRequired
	// StatusAvailable means some but not all compatible outfits contain
	// the item.
	StatusAvailable
)

func (k ItemStatusKind) String() string {
	switch k {
	case StatusExcluded:
		return "excluded"
	case StatusSelected:
		return "selected"
	case StatusRequired:
		return "required"
	case StatusAvailable:
		return "available"
	default:
		return "unknown"
	}
}

// ItemStatus is one entry of a Summarize result.
type ItemStatus struct {
	Item Item
	Kind ItemStatusKind
}

// Summarize classifies every known item against the set of outfits
// compatible with selections and exclusions.
func (c *Closet) Summarize(selections, exclusions []Item) ([]ItemStatus, error) {
	combos, err := c.CombinationsWith(selections, exclusions)
	if err != nil {
		return nil, err
	}
	total := len(combos)

	selSet := map[Item]bool{}
	for _, it := range selections {
		selSet[it] = true
	}
	counts := map[Item]int{}
	for _, combo := range combos {
		for _, it := range combo {
			counts[it]++
		}
	}

	items := c.Items()
	out := make([]ItemStatus, 0, len(items))
	for _, it := range items {
		cnt := counts[it]
		switch {
		case cnt == 0:
			out = append(out, ItemStatus{Item: it, Kind: StatusExcluded})
		case selSet[it]:
			out = append(out, ItemStatus{Item: it, Kind: StatusSelected})
		case cnt == total:
			out = append(out, ItemStatus{Item: it, Kind: StatusRequired})
		default:
			out = append(out, ItemStatus{Item: it, Kind: StatusAvailable})
		}
	}
	return out, nil
}
