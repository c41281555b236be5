package closet

import "sort"

// RankedOutfit pairs one combination's items with its total cost under a
// caller-supplied per-item cost map.
type RankedOutfit struct {
	Items []Item
	Cost  float64
}

// RankByCost sorts combos ascending by total cost under costs (an item
// absent from costs contributes zero), breaking ties by the items'
// lexicographic order for determinism, and truncates to topK entries.
// topK <= 0 returns every ranked combination.
func RankByCost(combos [][]Item, costs map[Item]float64, topK int) []RankedOutfit {
	ranked := make([]RankedOutfit, 0, len(combos))
	for _, combo := range combos {
		items := sortedItemsCopy(combo)
		var total float64
		for _, it := range items {
			total += costs[it]
		}
		ranked = append(ranked, RankedOutfit{Items: items, Cost: total})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Cost != ranked[j].Cost {
			return ranked[i].Cost < ranked[j].Cost
		}
		return itemsLess(ranked[i].Items, ranked[j].Items)
	})
	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}

func itemsLess(a, b []Item) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// RankOutfits ranks every outfit this closet encodes by ascending total
// cost, the query-layer counterpart of RankByCost over Combinations.
func (c *Closet) RankOutfits(costs map[Item]float64, topK int) []RankedOutfit {
	return RankByCost(c.Combinations(), costs, topK)
}

// BestOutfit returns the single lowest-cost outfit, mirroring the
// teacher's minimum-cost evaluator but computed over an already-enumerated
// combination set rather than a bottom-up fold over the diagram itself —
// the combination count in a closet-sized diagram makes the simpler
// approach practical without sacrificing the ranking semantics.
func (c *Closet) BestOutfit(costs map[Item]float64) (*RankedOutfit, bool) {
	ranked := c.RankOutfits(costs, 1)
	if len(ranked) == 0 {
		return nil, false
	}
	return &ranked[0], true
}
