package closet

import (
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Representation selects which decision-diagram realisation ClosetBuilder
// compiles into.
type Representation int

const (
	// RepresentationZDD compiles into a zero-suppressed diagram: one
	// combination per outfit, families encoded as unions of singleton
	// trees combined by Product. The default — ZDDs stay compact when
	// most items are excluded from most outfits, which is the common
	// case for a closet of any size.
	RepresentationZDD Representation = iota
	// RepresentationBDD compiles into a reduced ordered boolean diagram:
	// one boolean variable per item, families encoded as "exactly one
	// of" sibling relationships ANDed together.
	RepresentationBDD
)

func (r Representation) String() string {
	switch r {
	case RepresentationZDD:
		return "zdd"
	case RepresentationBDD:
		return "bdd"
	default:
		return "unknown"
	}
}

type rule struct {
	kind string // "exclusion" or "inclusion"
	a, b Item
}

// ClosetBuilder accumulates families, items, and rules, compiling them into
// a single feasibility diagram via Build. The zero value is not usable;
// construct one with NewClosetBuilder.
type ClosetBuilder struct {
	arena        *NodeArena
	rep          Representation
	familyItems  map[Family][]Item
	familyOrder  []Family
	itemFamily   map[Item]Family
	itemFamilies map[Item][]Family
	rules        []rule
}

// BuilderOption configures a ClosetBuilder at construction time.
type BuilderOption func(*ClosetBuilder)

// WithRepresentation selects BDD or ZDD compilation. Default ZDD.
func WithRepresentation(r Representation) BuilderOption {
	return func(b *ClosetBuilder) { b.rep = r }
}

// WithArena shares an existing NodeArena instead of allocating a fresh one,
// letting multiple closets interning into the same arena share structure.
func WithArena(a *NodeArena) BuilderOption {
	return func(b *ClosetBuilder) { b.arena = a }
}

// NewClosetBuilder returns an empty builder ready for AddItem/AddExclusionRule/
// AddInclusionRule calls.
func NewClosetBuilder(opts ...BuilderOption) *ClosetBuilder {
	b := &ClosetBuilder{
		rep:          RepresentationZDD,
		familyItems:  make(map[Family][]Item),
		itemFamily:   make(map[Item]Family),
		itemFamilies: make(map[Item][]Family),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.arena == nil {
		b.arena = NewNodeArena()
	}
	return b
}

// AddItem registers item under family. Registering the same item under two
// different families is allowed at this stage — Build reports it as
// ConflictingFamiliesError rather than panicking here, so a caller can
// batch all registrations before learning about every conflict at once.
func (b *ClosetBuilder) AddItem(family Family, item Item) *ClosetBuilder {
	if _, seen := b.familyItems[family]; !seen {
		b.familyOrder = append(b.familyOrder, family)
	}
	b.familyItems[family] = append(b.familyItems[family], item)
	if _, ok := b.itemFamily[item]; !ok {
		b.itemFamily[item] = family
	}
	b.itemFamilies[item] = append(b.itemFamilies[item], family)
	return b
}

// AddItems registers every item under family.
func (b *ClosetBuilder) AddItems(family Family, items ...Item) *ClosetBuilder {
	for _, it := range items {
		b.AddItem(family, it)
	}
	return b
}

// AddExclusionRule records that a and b may never both be selected.
func (b *ClosetBuilder) AddExclusionRule(a, bItem Item) *ClosetBuilder {
	b.rules = append(b.rules, rule{kind: "exclusion", a: a, b: bItem})
	return b
}

// AddExclusionRules records a batch of exclusion pairs.
func (b *ClosetBuilder) AddExclusionRules(pairs ...[2]Item) *ClosetBuilder {
	for _, p := range pairs {
		b.AddExclusionRule(p[0], p[1])
	}
	return b
}

// AddInclusionRule records that selecting a forces b to also be selected.
// Inclusion is one-way: selecting b does not force a.
func (b *ClosetBuilder) AddInclusionRule(a, bItem Item) *ClosetBuilder {
	b.rules = append(b.rules, rule{kind: "inclusion", a: a, b: bItem})
	return b
}

// AddInclusionRules records a batch of inclusion pairs.
func (b *ClosetBuilder) AddInclusionRules(pairs ...[2]Item) *ClosetBuilder {
	for _, p := range pairs {
		b.AddInclusionRule(p[0], p[1])
	}
	return b
}

// Build validates the accumulated definition and compiles it into a
// Closet. Per the governing error-aggregation policy: zero errors succeed,
// exactly one error is returned directly, more than one is wrapped in a
// CompoundError.
func (b *ClosetBuilder) Build() (*Closet, error) {
	if err := b.validate(); err != nil {
		glog.Warningf("closet build rejected: %v", err)
		return nil, err
	}

	var root NodeID
	var universe *Universe
	switch b.rep {
	case RepresentationBDD:
		root, universe = b.compileBDD()
	default:
		root, universe = b.compileZDD()
	}

	familyItems := make(map[Family][]Item, len(b.familyItems))
	for fam, items := range b.familyItems {
		familyItems[fam] = append([]Item(nil), items...)
	}
	itemFamily := make(map[Item]Family, len(b.itemFamily))
	for it, fam := range b.itemFamily {
		itemFamily[it] = fam
	}

	c := &Closet{
		arena:       b.arena,
		universe:    universe,
		itemFamily:  itemFamily,
		familyItems: familyItems,
		familyOrder: append([]Family(nil), b.familyOrder...),
		root:        root,
		rep:         b.rep,
		buildID:     uuid.New(),
	}
	glog.V(2).Infof("closet %s compiled: representation=%d nodes=%d families=%d",
		c.buildID, b.rep, b.arena.Size(), len(b.familyOrder))
	return c, nil
}

func (b *ClosetBuilder) compileBDD() (NodeID, *Universe) {
	var items []Item
	for _, fam := range b.familyOrder {
		items = append(items, b.familyItems[fam]...)
	}
	universe := NewUniverseByInsertion(items)

	root := TrueLeaf
	for _, fam := range b.familyOrder {
		root = Apply(b.arena, root, b.siblingRelationship(universe, b.familyItems[fam]), AndOp)
	}
	for _, r := range b.rules {
		pa, _ := universe.Priority(r.a)
		pb, _ := universe.Priority(r.b)
		na := mkBDDVar(b.arena, pa)
		nb := mkBDDVar(b.arena, pb)
		switch r.kind {
		case "exclusion":
			// ¬a ∨ ¬b
			clause := Apply(b.arena, Not(b.arena, na), Not(b.arena, nb), OrOp)
			root = Apply(b.arena, root, clause, AndOp)
		case "inclusion":
			// ¬a ∨ b
			clause := Apply(b.arena, Not(b.arena, na), nb, OrOp)
			root = Apply(b.arena, root, clause, AndOp)
		}
	}
	return root, universe
}

// siblingRelationship builds "exactly one of items": the OR, over each
// candidate i, of (i AND NOT every other item in the family).
func (b *ClosetBuilder) siblingRelationship(u *Universe, items []Item) NodeID {
	result := FalseLeaf
	for _, i := range items {
		pi, _ := u.Priority(i)
		term := mkBDDVar(b.arena, pi)
		for _, j := range items {
			if j == i {
				continue
			}
			pj, _ := u.Priority(j)
			term = Apply(b.arena, term, Not(b.arena, mkBDDVar(b.arena, pj)), AndOp)
		}
		result = Apply(b.arena, result, term, OrOp)
	}
	return result
}

func (b *ClosetBuilder) compileZDD() (NodeID, *Universe) {
	occurrences := make(map[Item]int)
	for _, items := range b.familyItems {
		for _, it := range items {
			occurrences[it]++
		}
	}
	universe := NewUniverseByFrequency(occurrences)

	root := TrueLeaf
	for _, fam := range b.familyOrder {
		root = Product(b.arena, root, universe.UniqueTree(b.arena, b.familyItems[fam]))
	}
	if len(b.rules) == 0 {
		return root, universe
	}

	combos := prioritiesToItems(universe, combinationsRecursive(b.arena, root))
	filtered := make([][]Item, 0, len(combos))
combo:
	for _, combo := range combos {
		present := make(map[Item]bool, len(combo))
		for _, it := range combo {
			present[it] = true
		}
		for _, r := range b.rules {
			switch r.kind {
			case "exclusion":
				if present[r.a] && present[r.b] {
					continue combo
				}
			case "inclusion":
				if present[r.a] && !present[r.b] {
					continue combo
				}
			}
		}
		filtered = append(filtered, combo)
	}
	root = universe.HyperTree(b.arena, filtered)
	return root, universe
}
