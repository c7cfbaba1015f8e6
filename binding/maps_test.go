package binding

import (
	"testing"

	"github.com/bindgraph/dicore"
)

func TestMapPutReportsExisting(t *testing.T) {
	m := make(Map)
	id := dicore.NewTypeID("binding.MapT1")
	first := NewNeedsAllocation(id, CreateFunc{ID: 1}, nil)

	if _, present := m.Put(first); present {
		t.Fatalf("expected no existing entry on first insert")
	}

	second := NewNeedsAllocation(id, CreateFunc{ID: 2}, nil)
	existing, present := m.Put(second)
	if !present {
		t.Fatalf("expected Put to report the existing entry on collision")
	}
	if !existing.SemanticallyEqual(first) {
		t.Fatalf("expected Put to leave the original entry in place")
	}
	if len(m) != 1 {
		t.Fatalf("len(m) = %d, want 1", len(m))
	}
}

func TestMapVectorLength(t *testing.T) {
	m := make(Map)
	m.Put(NewNeedsAllocation(dicore.NewTypeID("binding.MapT2"), CreateFunc{ID: 1}, nil))
	m.Put(NewNeedsAllocation(dicore.NewTypeID("binding.MapT3"), CreateFunc{ID: 2}, nil))

	vec := m.Vector()
	if len(vec) != 2 {
		t.Fatalf("len(vec) = %d, want 2", len(vec))
	}
}
