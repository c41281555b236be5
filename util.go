package closet

import "sort"

func sortedItemsCopy(items []Item) []Item {
	out := append([]Item(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedItemSet(set map[Item]bool) []Item {
	out := make([]Item, 0, len(set))
	for it := range set {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func uniqueSortedFamilies(families []Family) []Family {
	seen := map[Family]bool{}
	var out []Family
	for _, f := range families {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupeItemsKeepOrder(items []Item) []Item {
	seen := map[Item]bool{}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

func appendUniqueItem(items []Item, it Item) []Item {
	for _, existing := range items {
		if existing == it {
			return items
		}
	}
	return append(append([]Item(nil), items...), it)
}
