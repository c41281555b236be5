package closet

import "sort"

// validate runs every independent check over the accumulated definition
// and aggregates the results per the builder's error policy.
func (b *ClosetBuilder) validate() error {
	var errs []BuildError

	for item, fams := range b.itemFamilies {
		distinct := uniqueSortedFamilies(fams)
		if len(distinct) > 1 {
			errs = append(errs, &ConflictingFamiliesError{Item: item, Families: distinct})
		}
	}

	exclConflicts := map[Family]map[Item]bool{}
	inclConflicts := map[Family]map[Item]bool{}
	missing := map[Item]bool{}

	for _, r := range b.rules {
		famA, okA := b.itemFamily[r.a]
		famB, okB := b.itemFamily[r.b]
		if !okA {
			missing[r.a] = true
		}
		if !okB {
			missing[r.b] = true
		}
		if !okA || !okB || famA != famB {
			continue
		}
		bucket := exclConflicts
		if r.kind == "inclusion" {
			bucket = inclConflicts
		}
		if bucket[famA] == nil {
			bucket[famA] = map[Item]bool{}
		}
		bucket[famA][r.a] = true
		bucket[famA][r.b] = true
	}

	for it := range missing {
		errs = append(errs, &MissingFamilyError{Item: it})
	}
	for fam, items := range exclConflicts {
		errs = append(errs, &ExclusionFamilyConflictError{Family: fam, Items: sortedItemSet(items)})
	}
	for fam, items := range inclConflicts {
		errs = append(errs, &InclusionFamilyConflictError{Family: fam, Items: sortedItemSet(items)})
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &CompoundError{Errors: errs}
	}
}
