// Package closet implements a configuration engine over items partitioned
// into families with inclusion/exclusion rules, built on a decision-diagram
// engine shared between a reduced ordered BDD and a zero-suppressed ZDD
// representation.
package closet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for invariant violations and resource limits. These never
// arise from valid external input; callers match them with errors.Is.
var (
	// ErrInvalidNode indicates a NodeID was resolved that the arena never
	// produced via Intern.
	ErrInvalidNode = errors.New("invalid node id")

	// ErrInvariant indicates the node algebra detected a violated
	// decision-diagram invariant: a programmer bug, not recoverable
	// external input.
	ErrInvariant = errors.New("decision diagram invariant violated")

	// ErrInfeasible indicates that no feasible solution exists.
	// BuildFromSpec does not return it: an infeasible branch becomes
	// FalseLeaf.
	ErrInfeasible = errors.New("no feasible solution")

	// ErrMemoryLimit indicates a configured memory limit was exceeded.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// BuildError is returned by ClosetBuilder.Build when the family/item/rule
// definition cannot be compiled into a Closet.
type BuildError interface {
	error
	buildError()
}

// ConflictingFamiliesError reports an item registered under more than one
// family.
type ConflictingFamiliesError struct {
	Item     Item
	Families []Family
}

func (e *ConflictingFamiliesError) Error() string {
	names := make([]string, len(e.Families))
	for i, f := range e.Families {
		names[i] = string(f)
	}
	sort.Strings(names)
	return fmt.Sprintf("item %q is registered under multiple families: %s", e.Item, strings.Join(names, ", "))
}
func (*ConflictingFamiliesError) buildError() {}

// MissingFamilyError reports a rule referencing an item never added to any
// family.
type MissingFamilyError struct {
	Item Item
}

func (e *MissingFamilyError) Error() string {
	return fmt.Sprintf("item %q is not registered under any family", e.Item)
}
func (*MissingFamilyError) buildError() {}

// InclusionFamilyConflictError reports an inclusion rule relating two items
// of the same family.
type InclusionFamilyConflictError struct {
	Family Family
	Items  []Item
}

func (e *InclusionFamilyConflictError) Error() string {
	return fmt.Sprintf("inclusion rule relates items %v from the same family %q", e.Items, e.Family)
}
func (*InclusionFamilyConflictError) buildError() {}

// ExclusionFamilyConflictError reports an exclusion rule relating two items
// of the same family.
type ExclusionFamilyConflictError struct {
	Family Family
	Items  []Item
}

func (e *ExclusionFamilyConflictError) Error() string {
	return fmt.Sprintf("exclusion rule relates items %v from the same family %q", e.Items, e.Family)
}
func (*ExclusionFamilyConflictError) buildError() {}

// CompoundError aggregates more than one independent BuildError. A builder
// with exactly one error reports that error directly, never wrapped in a
// CompoundError of size one.
type CompoundError struct {
	Errors []BuildError
}

func (e *CompoundError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d build errors: %s", len(e.Errors), strings.Join(parts, "; "))
}
func (*CompoundError) buildError() {}

// OutfitError is returned by query operations (CompleteOutfit, SelectItem,
// ExcludeItem, CombinationsWith) on invalid input.
type OutfitError interface {
	error
	outfitError()
}

// UnknownItemsError reports selections or exclusions referring to items the
// Closet has never heard of.
type UnknownItemsError struct {
	Items []Item
}

func (e *UnknownItemsError) Error() string {
	return fmt.Sprintf("unknown items: %v", e.Items)
}
func (*UnknownItemsError) outfitError() {}

// MultipleItemsPerFamilyError reports two or more selections from the same
// family in a single query.
type MultipleItemsPerFamilyError struct {
	Family Family
	Items  []Item
}

func (e *MultipleItemsPerFamilyError) Error() string {
	return fmt.Sprintf("multiple items selected from family %q: %v", e.Family, e.Items)
}
func (*MultipleItemsPerFamilyError) outfitError() {}

func errInvariantf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvariant}, args...)...)
}

// IncompatibleSelectionsError reports a selection set whose restriction
// collapses to the FALSE leaf: no feasible outfit contains it.
type IncompatibleSelectionsError struct {
	Items []Item
}

func (e *IncompatibleSelectionsError) Error() string {
	return fmt.Sprintf("incompatible selections: %v", e.Items)
}
func (*IncompatibleSelectionsError) outfitError() {}
