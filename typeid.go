package dicore

import (
	"fmt"
	"sync"
)

// TypeID is an opaque handle uniquely identifying a type known to the
// binding normalization core. It is comparable, usable as a map key, and
// totally ordered by assignment order, so a deterministic iteration
// order exists given identical inputs.
//
// TypeIDs are produced by the compile-time type machinery that sits in
// front of this core via NewTypeID; the core never invents one on its
// own.
type TypeID struct {
	id uint64
}

// TypeInfo is the descriptive metadata a TypeID's back-pointer resolves
// to, sufficient to render a human-readable name in diagnostics.
type TypeInfo struct {
	Name string
}

var registry = struct {
	mu     sync.Mutex
	next   uint64
	byID   map[uint64]TypeInfo
	byName map[string]TypeID
}{
	byID:   make(map[uint64]TypeInfo),
	byName: make(map[string]TypeID),
}

// NewTypeID interns name and returns its TypeID, reusing the existing
// handle if name was already registered. This is the only way to mint a
// TypeID; the normalization core itself never creates one.
func NewTypeID(name string) TypeID {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if id, ok := registry.byName[name]; ok {
		return id
	}

	registry.next++
	id := TypeID{id: registry.next}
	registry.byID[id.id] = TypeInfo{Name: name}
	registry.byName[name] = id
	return id
}

// IsZero reports whether t is the zero TypeID, which no registered type
// ever equals.
func (t TypeID) IsZero() bool {
	return t.id == 0
}

// Less reports whether t sorts before other in assignment order. Useful
// for producing a deterministic iteration order over a set of TypeIDs for
// display or test comparison.
func (t TypeID) Less(other TypeID) bool {
	return t.id < other.id
}

// Info returns the descriptive metadata registered for t.
func (t TypeID) Info() TypeInfo {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.byID[t.id]
}

// String renders a human-readable name for diagnostics.
func (t TypeID) String() string {
	info := t.Info()
	if info.Name == "" {
		return fmt.Sprintf("TypeID(%d)", t.id)
	}
	return info.Name
}

// DependencyList is an ordered sequence of TypeIDs referenced by a
// binding: its constructor arguments or injection points.
type DependencyList []TypeID
