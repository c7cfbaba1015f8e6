// Package alloc implements the allocator budget descriptor that
// normalization reports type reservations to: each final binding that
// needs allocation reserves exactly one slot via AddType or
// AddExternallyAllocatedType.
//
// Normalization never allocates storage itself; it only tells the
// descriptor how much budget the injector will need later, so objects
// can be constructed in a single fixed-size block rather than
// individually heap-allocated.
package alloc

import "github.com/bindgraph/dicore"

// Reservation records why a TypeID reserved allocator budget.
type Reservation struct {
	TypeID     dicore.TypeID
	ByInjector bool // true if AddExternallyAllocatedType reserved it
}

// Descriptor is the allocator budget-reservation contract normalization
// reports to. The fixed-size allocator itself lives outside this
// package; Descriptor only needs to remember which TypeIDs were reserved
// and how, using an append-only, handle-indexed table with a freelist so
// slots can be reused across repeated normalization runs sharing one
// descriptor.
type Descriptor struct {
	entries  []Reservation
	freeList []int
	byType   map[dicore.TypeID]int
}

// NewDescriptor returns an empty allocator descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{
		byType: make(map[dicore.TypeID]int),
	}
}

// AddType reserves allocator budget for a type that will be allocated and
// constructed on first use.
func (d *Descriptor) AddType(id dicore.TypeID) {
	d.reserve(id, false)
}

// AddExternallyAllocatedType reserves allocator budget for a type whose
// storage is provided externally rather than heap-allocated by the
// injector.
func (d *Descriptor) AddExternallyAllocatedType(id dicore.TypeID) {
	d.reserve(id, true)
}

func (d *Descriptor) reserve(id dicore.TypeID, byInjector bool) {
	if idx, ok := d.byType[id]; ok {
		d.entries[idx].ByInjector = byInjector
		return
	}

	r := Reservation{TypeID: id, ByInjector: byInjector}

	if len(d.freeList) > 0 {
		idx := d.freeList[len(d.freeList)-1]
		d.freeList = d.freeList[:len(d.freeList)-1]
		d.entries[idx] = r
		d.byType[id] = idx
		return
	}

	d.entries = append(d.entries, r)
	d.byType[id] = len(d.entries) - 1
}

// Len returns the number of reservations currently held, including
// per-contribution reservations made via AddContribution that do not
// participate in the by-type dedup index.
func (d *Descriptor) Len() int {
	return len(d.entries) - len(d.freeList)
}

// Has reports whether id has reserved allocator budget.
func (d *Descriptor) Has(id dicore.TypeID) bool {
	_, ok := d.byType[id]
	return ok
}

// Reservations returns a snapshot of the reservation table in slot
// order. A slot freed by Release still appears until a later reservation
// reuses it, and a reused slot holds that later reservation.
func (d *Descriptor) Reservations() []Reservation {
	out := make([]Reservation, len(d.entries))
	copy(out, d.entries)
	return out
}

// AddContribution reserves budget for one multibinding contribution.
// Unlike AddType/AddExternallyAllocatedType it never dedupes by TypeID:
// a multibinding vector can hold several distinct instances bound to the
// same aggregate TypeID, each needing its own storage slot.
func (d *Descriptor) AddContribution(id dicore.TypeID, byInjector bool) {
	r := Reservation{TypeID: id, ByInjector: byInjector}

	if len(d.freeList) > 0 {
		idx := d.freeList[len(d.freeList)-1]
		d.freeList = d.freeList[:len(d.freeList)-1]
		d.entries[idx] = r
		return
	}

	d.entries = append(d.entries, r)
}

// Release frees id's reservation, allowing a future AddType /
// AddExternallyAllocatedType to reuse its slot. This supports
// normalize.NormalizeWithoutCompression callers that re-run normalization
// against the same descriptor after a compression rewrite removes a
// type's standalone binding.
func (d *Descriptor) Release(id dicore.TypeID) {
	idx, ok := d.byType[id]
	if !ok {
		return
	}
	delete(d.byType, id)
	d.freeList = append(d.freeList, idx)
}
