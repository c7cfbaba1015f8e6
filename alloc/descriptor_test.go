package alloc

import (
	"testing"

	"github.com/bindgraph/dicore"
)

func TestAddTypeReservesBudget(t *testing.T) {
	d := NewDescriptor()
	id := dicore.NewTypeID("alloc.T1")

	d.AddType(id)

	if !d.Has(id) {
		t.Fatal("expected Has to report true after AddType")
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	rs := d.Reservations()
	if len(rs) != 1 || rs[0].ByInjector {
		t.Fatalf("expected one injector-allocated reservation, got %+v", rs)
	}
}

func TestAddExternallyAllocatedType(t *testing.T) {
	d := NewDescriptor()
	id := dicore.NewTypeID("alloc.T2")

	d.AddExternallyAllocatedType(id)

	rs := d.Reservations()
	if len(rs) != 1 || !rs[0].ByInjector {
		t.Fatalf("expected one externally-allocated reservation, got %+v", rs)
	}
}

func TestReserveIsIdempotentPerType(t *testing.T) {
	d := NewDescriptor()
	id := dicore.NewTypeID("alloc.T3")

	d.AddType(id)
	d.AddType(id)

	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (duplicate AddType must not double-reserve)", d.Len())
	}
}

func TestAddContributionNeverDedupes(t *testing.T) {
	d := NewDescriptor()
	id := dicore.NewTypeID("alloc.T6")

	d.AddContribution(id, false)
	d.AddContribution(id, false)
	d.AddContribution(id, true)

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (each contribution reserves its own slot)", d.Len())
	}
}

func TestReleaseThenReserveReusesSlot(t *testing.T) {
	d := NewDescriptor()
	a := dicore.NewTypeID("alloc.T4")
	b := dicore.NewTypeID("alloc.T5")

	d.AddType(a)
	d.Release(a)
	d.AddExternallyAllocatedType(b)

	if d.Has(a) {
		t.Fatal("expected a to no longer be reserved after Release")
	}
	if !d.Has(b) {
		t.Fatal("expected b to be reserved")
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
}
