package closet

// Structure describes a diagram's shape without naming any item: every
// depth-indexed Branch records only whether its low and/or high arc is
// forbidden (FalseLeaf), never which item sits at that depth. Content
// supplies that missing piece, so the round-trip law Decode(Encode(n)) ==
// n relies on the two always being produced and consumed together.
type Structure interface {
	isStructure()
}

// OutcomeStructure is a terminal: Value true for TrueLeaf, false for
// FalseLeaf.
type OutcomeStructure struct {
	Value bool
}

func (OutcomeStructure) isStructure() {}

// RequiredStructure is a Branch whose low arc is forbidden: whatever item
// sits at Depth must be selected for this path to succeed.
type RequiredStructure struct {
	Depth int
	High  Structure
}

func (RequiredStructure) isStructure() {}

// ExcludedStructure is a Branch whose high arc is forbidden: whatever item
// sits at Depth must not be selected.
type ExcludedStructure struct {
	Depth int
	Low   Structure
}

func (ExcludedStructure) isStructure() {}

// AvailableStructure is a Branch where both arcs remain live.
type AvailableStructure struct {
	Depth int
	Low   Structure
	High  Structure
}

func (AvailableStructure) isStructure() {}

// Content maps a Structure's depth indices back to the item each Branch at
// that depth decides on.
type Content map[int]Item

// Encode splits the diagram rooted at node into its shape (Structure) and
// its item assignment (Content).
func Encode(arena *NodeArena, universe *Universe, node NodeID) (Structure, Content) {
	content := Content{}
	s := toStructure(arena, universe, node, 0, content)
	return s, content
}

func toStructure(arena *NodeArena, universe *Universe, node NodeID, depth int, content Content) Structure {
	n := arena.Resolve(node)
	if n.Leaf {
		return OutcomeStructure{Value: n.Value}
	}
	if it, ok := universe.Item(n.Priority); ok {
		content[depth] = it
	}
	switch {
	case n.Low == FalseLeaf:
		return RequiredStructure{Depth: depth, High: toStructure(arena, universe, n.High, depth+1, content)}
	case n.High == FalseLeaf:
		return ExcludedStructure{Depth: depth, Low: toStructure(arena, universe, n.Low, depth+1, content)}
	default:
		return AvailableStructure{
			Depth: depth,
			Low:   toStructure(arena, universe, n.Low, depth+1, content),
			High:  toStructure(arena, universe, n.High, depth+1, content),
		}
	}
}

// Decode reverses Encode, rebuilding an interned node from a Structure and
// its matching Content. build selects the representation-specific smart
// constructor (MkBDD or MkZDD); it must match whichever built the original
// diagram for the round-trip law to hold, since MkBDD and MkZDD apply
// different reduction rules.
func Decode(arena *NodeArena, universe *Universe, s Structure, content Content, build func(*NodeArena, Priority, NodeID, NodeID) NodeID) NodeID {
	switch v := s.(type) {
	case OutcomeStructure:
		if v.Value {
			return TrueLeaf
		}
		return FalseLeaf
	case RequiredStructure:
		p := priorityAtDepth(universe, content, v.Depth)
		high := Decode(arena, universe, v.High, content, build)
		return build(arena, p, FalseLeaf, high)
	case ExcludedStructure:
		p := priorityAtDepth(universe, content, v.Depth)
		low := Decode(arena, universe, v.Low, content, build)
		return build(arena, p, low, FalseLeaf)
	case AvailableStructure:
		p := priorityAtDepth(universe, content, v.Depth)
		low := Decode(arena, universe, v.Low, content, build)
		high := Decode(arena, universe, v.High, content, build)
		return build(arena, p, low, high)
	default:
		panic(errInvariantf("unknown structure variant %T", s))
	}
}

func priorityAtDepth(universe *Universe, content Content, depth int) Priority {
	it, ok := content[depth]
	if !ok {
		panic(errInvariantf("no item recorded at depth %d", depth))
	}
	p, ok := universe.Priority(it)
	if !ok {
		panic(errInvariantf("item %q not present in universe", it))
	}
	return p
}
