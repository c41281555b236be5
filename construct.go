package closet

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// estimatedNodeBytes approximates the arena footprint of one interned
// Branch, for WithMemoryLimit's coarse accounting. It need not be exact —
// only monotonic in node count.
const estimatedNodeBytes = 24

// State is application-defined construction state threaded through
// BuildFromSpec's top-down recursion. Implementations must be immutable
// once returned from Clone: the same State value may be cached and reused
// across independent branches of the construction.
type State interface {
	// Clone returns an independent copy suitable for branching.
	Clone() State
	// Hash returns a value consistent with Equal: Equal states must hash
	// equal, though the converse need not hold.
	Hash() uint64
	// Equal reports whether other represents the same construction state,
	// for state-dedup memoisation.
	Equal(other State) bool
}

// ConstraintSpec is the problem definition BuildFromSpec walks: how many
// levels to descend, the state at the root, how a level transitions under
// take/skip, and which terminal states are feasible.
type ConstraintSpec interface {
	// Variables returns the number of decision levels, numbered from
	// Variables() (the root) down to 1.
	Variables() int
	// InitialState returns the state BuildFromSpec starts from at the root.
	InitialState() State
	// GetChild computes the state after deciding the variable at level
	// (1-based): take true selects it, take false excludes it. Returning
	// an error prunes that branch (it becomes FalseLeaf), not a
	// propagated failure.
	GetChild(ctx context.Context, state State, level int, take bool) (State, error)
	// IsValid reports whether a level-0 terminal state is feasible.
	IsValid(state State) bool
}

// IntState is a ready-made State for integer-counter constructions (item
// counts, running totals expressed as whole numbers).
type IntState struct {
	Values []int
}

// NewIntState returns an IntState carrying a copy of values.
func NewIntState(values ...int) *IntState {
	v := make([]int, len(values))
	copy(v, values)
	return &IntState{Values: v}
}

func (s *IntState) Clone() State {
	v := make([]int, len(s.Values))
	copy(v, s.Values)
	return &IntState{Values: v}
}

func (s *IntState) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range s.Values {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (s *IntState) Equal(other State) bool {
	o, ok := other.(*IntState)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i, v := range s.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}

// FloatState is a ready-made State for running-total constructions
// expressed as floating point (costs, weights, budgets).
type FloatState struct {
	Values []float64
}

// NewFloatState returns a FloatState carrying a copy of values.
func NewFloatState(values ...float64) *FloatState {
	v := make([]float64, len(values))
	copy(v, values)
	return &FloatState{Values: v}
}

func (s *FloatState) Clone() State {
	v := make([]float64, len(s.Values))
	copy(v, s.Values)
	return &FloatState{Values: v}
}

func (s *FloatState) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range s.Values {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v*1e6)))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (s *FloatState) Equal(other State) bool {
	o, ok := other.(*FloatState)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i, v := range s.Values {
		diff := v - o.Values[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-9 {
			return false
		}
	}
	return true
}

// SkipState wraps an inner state and instructs BuildFromSpec to jump
// straight to level SkipTo instead of descending one level at a time —
// needed when a decision at one level makes every level beneath it down
// to SkipTo irrelevant. SkipTo == 0 jumps straight to the terminal check.
type SkipState struct {
	State  State
	SkipTo int
}

// NewSkipState wraps state with a jump target.
func NewSkipState(state State, skipTo int) *SkipState {
	return &SkipState{State: state, SkipTo: skipTo}
}

func (s *SkipState) Clone() State {
	return &SkipState{State: s.State.Clone(), SkipTo: s.SkipTo}
}

func (s *SkipState) Hash() uint64 { return s.State.Hash() }

func (s *SkipState) Equal(other State) bool {
	o, ok := other.(*SkipState)
	return ok && s.SkipTo == o.SkipTo && s.State.Equal(o.State)
}

type stateCacheEntry struct {
	state State
	node  NodeID
}

// stateMemo deduplicates States reached at the same level: two equal
// states reached via different decision paths build the same subdiagram,
// so the second arrival can reuse the first's result instead of
// re-descending. Keyed by level then by hash bucket, equality-checked
// within the bucket since Hash need not be collision-free.
type stateMemo struct {
	byLevel map[int]map[uint64][]stateCacheEntry
}

func newStateMemo() *stateMemo {
	return &stateMemo{byLevel: make(map[int]map[uint64][]stateCacheEntry)}
}

func (m *stateMemo) lookup(level int, s State) (NodeID, bool) {
	bucket := m.byLevel[level]
	if bucket == nil {
		return FalseLeaf, false
	}
	for _, e := range bucket[s.Hash()] {
		if e.state.Equal(s) {
			return e.node, true
		}
	}
	return FalseLeaf, false
}

func (m *stateMemo) store(level int, s State, node NodeID) {
	bucket := m.byLevel[level]
	if bucket == nil {
		bucket = make(map[uint64][]stateCacheEntry)
		m.byLevel[level] = bucket
	}
	h := s.Hash()
	bucket[h] = append(bucket[h], stateCacheEntry{state: s, node: node})
}

// BuildFromSpec constructs a ZDD directly from spec's top-down variable
// assignment walk, without going through ClosetBuilder. Level vars (the
// root) maps to the lowest Priority so the result honors the arena's
// variable order; level 1 sits deepest, immediately above the terminals.
// Unlike Closet compilation, the caller is responsible for choosing an
// arena whose priority numbering does not collide with another diagram's,
// since BuildFromSpec does not consult a Universe.
func BuildFromSpec(ctx context.Context, a *NodeArena, spec ConstraintSpec, opts ...Option) (NodeID, error) {
	cfg := newConfig(opts...)
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	vars := spec.Variables()
	if vars < 0 {
		vars = 0
	}
	startSize := a.Size()
	memo := newStateMemo()
	return buildRecursive(ctx, a, spec, spec.InitialState(), vars, vars, memo, cfg, startSize)
}

func buildRecursive(ctx context.Context, a *NodeArena, spec ConstraintSpec, state State, vars, level int, memo *stateMemo, cfg *Config, startSize int) (NodeID, error) {
	select {
	case <-ctx.Done():
		return FalseLeaf, ctx.Err()
	default:
	}
	if level == 0 {
		if spec.IsValid(state) {
			return TrueLeaf, nil
		}
		return FalseLeaf, nil
	}
	if id, ok := memo.lookup(level, state); ok {
		return id, nil
	}
	if cfg.MemoryLimit > 0 {
		used := int64(a.Size()-startSize) * estimatedNodeBytes
		if used > cfg.MemoryLimit {
			return FalseLeaf, fmt.Errorf("level %d: %w", level, ErrMemoryLimit)
		}
	}
	lo, err := descend(ctx, a, spec, state, vars, level, false, memo, cfg, startSize)
	if err != nil {
		return FalseLeaf, err
	}
	hi, err := descend(ctx, a, spec, state, vars, level, true, memo, cfg, startSize)
	if err != nil {
		return FalseLeaf, err
	}
	node := MkZDD(a, priorityForLevel(vars, level), lo, hi)
	memo.store(level, state, node)
	return node, nil
}

// descend computes one arc (take or not) out of level, honoring both
// ordinary pruning (GetChild's error return) and SkipState's jump.
func descend(ctx context.Context, a *NodeArena, spec ConstraintSpec, state State, vars, level int, take bool, memo *stateMemo, cfg *Config, startSize int) (NodeID, error) {
	child, err := spec.GetChild(ctx, state, level, take)
	if err != nil {
		return FalseLeaf, nil
	}
	if skip, ok := child.(*SkipState); ok {
		if skip.SkipTo <= 0 {
			if spec.IsValid(skip.State) {
				return TrueLeaf, nil
			}
			return FalseLeaf, nil
		}
		return buildRecursive(ctx, a, spec, skip.State, vars, skip.SkipTo, memo, cfg, startSize)
	}
	return buildRecursive(ctx, a, spec, child, vars, level-1, memo, cfg, startSize)
}

func priorityForLevel(vars, level int) Priority {
	return Priority(vars - level)
}
