package closet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// budgetSpec builds a ZDD over n boolean items where a combination is valid
// iff its selected-item count does not exceed a fixed budget. Grounded the
// same way the teacher's constraint-state machines describe a running
// total threaded level by level.
type budgetSpec struct {
	n, budget int
}

func (s *budgetSpec) Variables() int        { return s.n }
func (s *budgetSpec) InitialState() State   { return NewIntState(0) }
func (s *budgetSpec) IsValid(st State) bool { return st.(*IntState).Values[0] <= s.budget }

func (s *budgetSpec) GetChild(ctx context.Context, st State, level int, take bool) (State, error) {
	cur := st.(*IntState)
	if !take {
		return cur.Clone(), nil
	}
	next := NewIntState(cur.Values[0] + 1)
	if next.Values[0] > s.budget {
		return nil, errors.New("budget exceeded")
	}
	return next, nil
}

func TestBuildFromSpecEnumeratesBudgetConstrainedCombinations(t *testing.T) {
	spec := &budgetSpec{n: 3, budget: 2}
	a := NewNodeArena()
	root, err := BuildFromSpec(context.Background(), a, spec)
	require.NoError(t, err)

	combos := combinationsRecursive(a, root)
	assert.Len(t, combos, 7, "3 items, budget 2 excludes only the all-three combination")
	for _, combo := range combos {
		assert.LessOrEqual(t, len(combo), 2)
	}
}

// skipSpec ignores the remaining levels once a running total reaches a
// threshold, using SkipState to jump straight to the terminal check.
type skipSpec struct {
	n, threshold int
}

func (s *skipSpec) Variables() int      { return s.n }
func (s *skipSpec) InitialState() State { return NewIntState(0) }
func (s *skipSpec) IsValid(st State) bool {
	switch v := st.(type) {
	case *IntState:
		return v.Values[0] >= s.threshold
	case *SkipState:
		return v.State.(*IntState).Values[0] >= s.threshold
	default:
		return false
	}
}

func (s *skipSpec) GetChild(ctx context.Context, st State, level int, take bool) (State, error) {
	cur := st.(*IntState)
	if !take {
		return cur.Clone(), nil
	}
	next := NewIntState(cur.Values[0] + 1)
	if next.Values[0] >= s.threshold {
		return NewSkipState(next, 0), nil
	}
	return next, nil
}

func TestBuildFromSpecSkipStateJumpsToTerminal(t *testing.T) {
	spec := &skipSpec{n: 5, threshold: 2}
	a := NewNodeArena()
	root, err := BuildFromSpec(context.Background(), a, spec)
	require.NoError(t, err)

	combos := combinationsRecursive(a, root)
	for _, combo := range combos {
		assert.GreaterOrEqual(t, len(combo), 2, "every valid combination reaches the threshold")
	}
}

// blockingSpec never reaches a terminal on its own within the deadline,
// modelling a construction that a caller wants bounded by WithTimeout.
type blockingSpec struct{ n int }

func (s *blockingSpec) Variables() int      { return s.n }
func (s *blockingSpec) InitialState() State { return NewIntState(0) }
func (s *blockingSpec) IsValid(State) bool  { return true }
func (s *blockingSpec) GetChild(ctx context.Context, st State, level int, take bool) (State, error) {
	time.Sleep(2 * time.Millisecond)
	return st.Clone(), nil
}

func TestBuildFromSpecTimeoutPropagatesContextError(t *testing.T) {
	spec := &blockingSpec{n: 20}
	a := NewNodeArena()
	_, err := BuildFromSpec(context.Background(), a, spec, WithTimeout(time.Microsecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuildFromSpecMemoryLimitStopsConstruction(t *testing.T) {
	spec := &budgetSpec{n: 12, budget: 12}
	a := NewNodeArena()
	_, err := BuildFromSpec(context.Background(), a, spec, WithMemoryLimit(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMemoryLimit)
}

func TestIntStateHashAndEqual(t *testing.T) {
	s1 := NewIntState(1, 2, 3)
	s2 := NewIntState(1, 2, 3)
	s3 := NewIntState(1, 2, 4)

	assert.True(t, s1.Equal(s2))
	assert.Equal(t, s1.Hash(), s2.Hash())
	assert.False(t, s1.Equal(s3))
}

func TestFloatStateEqualToleratesFloatingPointNoise(t *testing.T) {
	s1 := NewFloatState(1.0000000001)
	s2 := NewFloatState(1.0000000002)
	assert.True(t, s1.Equal(s2))

	s3 := NewFloatState(1.1)
	assert.False(t, s1.Equal(s3))
}
