package closet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// assertStructuresEqual compares two Structure trees field-by-field via
// cmp, rather than relying on Go's == over the unexported interface value,
// since Structure's variants nest arbitrarily deep.
func assertStructuresEqual(t *testing.T, want, got Structure) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Structure mismatch (-want +got):\n%s", diff)
	}
}

// TestCodecRoundTripZDD checks testable property #9: decode(encode(d)) == d.
// The check goes beyond NodeId equality: re-encoding the decoded node must
// reproduce the exact same Structure and Content, not just an
// interned id that happens to match.
func TestCodecRoundTripZDD(t *testing.T) {
	c := buildScenarioA(t, RepresentationZDD)
	s, content := Encode(c.Arena(), c.universe, c.Root())
	got := Decode(c.Arena(), c.universe, s, content, MkZDD)
	assert.Equal(t, c.Root(), got)

	gotStructure, gotContent := Encode(c.Arena(), c.universe, got)
	assertStructuresEqual(t, s, gotStructure)
	if diff := cmp.Diff(content, gotContent); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecRoundTripBDD(t *testing.T) {
	c := buildScenarioA(t, RepresentationBDD)
	s, content := Encode(c.Arena(), c.universe, c.Root())
	got := Decode(c.Arena(), c.universe, s, content, MkBDD)
	assert.Equal(t, c.Root(), got)

	gotStructure, gotContent := Encode(c.Arena(), c.universe, got)
	assertStructuresEqual(t, s, gotStructure)
	if diff := cmp.Diff(content, gotContent); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecRoundTripWithRules(t *testing.T) {
	b := NewClosetBuilder().
		AddItems("shirts", "red", "blue").
		AddItems("pants", "jeans", "slacks").
		AddExclusionRule("red", "jeans")
	c, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	s, content := Encode(c.Arena(), c.universe, c.Root())
	got := Decode(c.Arena(), c.universe, s, content, MkZDD)
	assert.Equal(t, c.Root(), got)
}

func TestCodecEncodesTerminalsDirectly(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByInsertion(nil)

	sTrue, contentTrue := Encode(a, u, TrueLeaf)
	assertStructuresEqual(t, OutcomeStructure{Value: true}, sTrue)
	assert.Empty(t, contentTrue)
	assert.Equal(t, TrueLeaf, Decode(a, u, sTrue, contentTrue, MkZDD))

	sFalse, contentFalse := Encode(a, u, FalseLeaf)
	assertStructuresEqual(t, OutcomeStructure{Value: false}, sFalse)
	assert.Equal(t, FalseLeaf, Decode(a, u, sFalse, contentFalse, MkZDD))
}

func TestCodecRequiredAndExcludedStructureVariants(t *testing.T) {
	a := NewNodeArena()
	u := NewUniverseByInsertion([]Item{"red", "blue"})

	required := MkZDD(a, 0, FalseLeaf, TrueLeaf)
	s, content := Encode(a, u, required)
	rs, ok := s.(RequiredStructure)
	if !ok {
		t.Fatalf("expected RequiredStructure, got %T", s)
	}
	assert.Equal(t, Item("red"), content[rs.Depth])
	assert.Equal(t, required, Decode(a, u, s, content, MkZDD))

	excluded := MkBDD(a, 0, TrueLeaf, FalseLeaf)
	s2, content2 := Encode(a, u, excluded)
	es, ok := s2.(ExcludedStructure)
	if !ok {
		t.Fatalf("expected ExcludedStructure, got %T", s2)
	}
	assert.Equal(t, Item("red"), content2[es.Depth])
	assert.Equal(t, excluded, Decode(a, u, s2, content2, MkBDD))
}
