package closet

// Family identifies a non-empty class of mutually exclusive items: a
// closet outfit selects at most (and, once validated, exactly) one item
// per family.
type Family string

// Item is an opaque identifier for a single selectable thing. Its position
// in the total variable order is assigned by a Universe, not by Item
// itself.
type Item string

// Outfit is a completed, sorted selection with exactly one item per family.
type Outfit struct {
	Items []Item
}
