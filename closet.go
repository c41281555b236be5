package closet

import "github.com/google/uuid"

// Closet wraps a compiled feasibility diagram together with the item/family
// index needed to translate between diagram priorities and domain items.
// It is immutable: SelectItem and ExcludeItem return a new Closet sharing
// the same underlying arena rather than mutating the receiver, and
// CompleteOutfit returns an Outfit without changing the receiver.
type Closet struct {
	arena       *NodeArena
	universe    *Universe
	itemFamily  map[Item]Family
	familyItems map[Family][]Item
	familyOrder []Family
	root        NodeID
	rep         Representation
	buildID     uuid.UUID
	selections  []Item
}

// Root returns the diagram node this closet's feasibility predicate is
// rooted at.
func (c *Closet) Root() NodeID { return c.root }

// Arena returns the NodeArena backing this closet's diagram.
func (c *Closet) Arena() *NodeArena { return c.arena }

// Representation reports whether this closet compiled to a BDD or a ZDD.
func (c *Closet) Representation() Representation { return c.rep }

// BuildID returns the identifier assigned when this closet (or the
// ancestor it was derived from via SelectItem/ExcludeItem) was compiled.
func (c *Closet) BuildID() uuid.UUID { return c.buildID }

// Families returns every family in the order items were first added under
// it.
func (c *Closet) Families() []Family {
	return append([]Family(nil), c.familyOrder...)
}

// FamilyOf reports which family item belongs to.
func (c *Closet) FamilyOf(item Item) (Family, bool) {
	fam, ok := c.itemFamily[item]
	return fam, ok
}

// Items returns every known item, sorted.
func (c *Closet) Items() []Item {
	items := make([]Item, 0, len(c.itemFamily))
	for it := range c.itemFamily {
		items = append(items, it)
	}
	return sortedItemsCopy(items)
}

// ItemsInFamily returns the items registered under family, in registration
// order.
func (c *Closet) ItemsInFamily(family Family) []Item {
	return append([]Item(nil), c.familyItems[family]...)
}

// Categorize groups items by family, bucketing any item this closet does
// not recognize under the family "UNKNOWN".
func (c *Closet) Categorize(items []Item) map[Family][]Item {
	const unknownFamily Family = "UNKNOWN"
	out := map[Family][]Item{}
	for _, it := range items {
		fam, ok := c.itemFamily[it]
		if !ok {
			fam = unknownFamily
		}
		out[fam] = append(out[fam], it)
	}
	return out
}

func (c *Closet) unknownItems(items []Item) []Item {
	var unknown []Item
	for _, it := range items {
		if _, ok := c.itemFamily[it]; !ok {
			unknown = append(unknown, it)
		}
	}
	return unknown
}

func (c *Closet) buildFunc() func(*NodeArena, Priority, NodeID, NodeID) NodeID {
	if c.rep == RepresentationBDD {
		return MkBDD
	}
	return MkZDD
}

func (c *Closet) clone(root NodeID, selections []Item) *Closet {
	cp := *c
	cp.root = root
	cp.selections = append([]Item(nil), selections...)
	cp.buildID = uuid.New()
	return &cp
}
