package binding

import (
	"fmt"

	"github.com/bindgraph/dicore"
)

// FuncID is an opaque function identity. Two CreateFuncs (or ErasedFuns)
// with the same FuncID are considered the same constructor by the
// normalization core's equality rules; the core never calls through to
// the underlying implementation.
type FuncID uint64

// CreateFunc is a constructor's identity plus its (opaque, uninvoked)
// implementation. Impl is carried only so it can be handed back to the
// injector later; normalization compares CreateFuncs solely by ID.
type CreateFunc struct {
	ID   FuncID
	Impl any
}

// Equal reports whether two CreateFuncs share the same identity.
func (f CreateFunc) Equal(other CreateFunc) bool {
	return f.ID == other.ID
}

// ErasedFun is the bare function-identity payload of a
// LazyComponentNoArgs entry. Equality/hashing for the no-args variant is
// by function identity alone; here that is just FuncID equality, so
// ErasedFun is a single comparable value.
type ErasedFun struct {
	ID   FuncID
	Name string
}

// String renders a human-readable identity for diagnostics, falling back
// to the raw FuncID when no name was supplied.
func (f ErasedFun) String() string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("func#%d", f.ID)
}

// BindingSink is the work stack, as seen by a Component or a no-args
// expander: the only operation they need is pushing more entries onto
// it. normalize/internal/expand.Stack implements this.
type BindingSink interface {
	Push(entries ...Entry)
}

// NoArgsExpander is the free function a LazyComponentNoArgs entry uses to
// push its own bindings onto the stack.
type NoArgsExpander func(sink BindingSink)

// Component is the owned, polymorphic payload of a LazyComponentWithArgs
// entry. Implementations incorporate their constructor arguments into
// HashCode and Equal, since argument values distinguish otherwise-same
// sub-components; identity and deduplication are entirely delegated to
// these two methods rather than decided by this package.
type Component interface {
	HashCode() uint64
	Equal(other Component) bool
	FunTypeID() dicore.TypeID
	AddBindings(sink BindingSink)
}

// entryPayload is the sealed-interface tag for the per-kind payload,
// following this codebase's EntitySource pattern: one unexported marker
// method per concrete variant so no payload can be constructed outside
// this package.
type entryPayload interface {
	isEntryPayload()
}

type constructedPayload struct {
	Object any
}

func (constructedPayload) isEntryPayload() {}

type allocationPayload struct {
	Create CreateFunc
	Deps   dicore.DependencyList
}

func (allocationPayload) isEntryPayload() {}

type compressedPayload struct {
	CTypeID dicore.TypeID
	Create  CreateFunc
}

func (compressedPayload) isEntryPayload() {}

type vectorCreatorPayload struct {
	GetVector CreateFunc
}

func (vectorCreatorPayload) isEntryPayload() {}

type lazyNoArgsPayload struct {
	Fun    ErasedFun
	Expand NoArgsExpander
}

func (lazyNoArgsPayload) isEntryPayload() {}

type lazyWithArgsPayload struct {
	Component Component
}

func (lazyWithArgsPayload) isEntryPayload() {}

// Entry is a single tagged binding entry: a TypeID, a Kind, and the
// payload that Kind implies.
type Entry struct {
	TypeID  dicore.TypeID
	Kind    Kind
	payload entryPayload
}

// NewConstructedObject binds id directly to a pre-built object.
func NewConstructedObject(id dicore.TypeID, object any) Entry {
	return Entry{TypeID: id, Kind: ConstructedObject, payload: constructedPayload{Object: object}}
}

// NewNeedsAllocation binds id to a constructor that must allocate storage.
func NewNeedsAllocation(id dicore.TypeID, create CreateFunc, deps dicore.DependencyList) Entry {
	return Entry{TypeID: id, Kind: NeedsAllocation, payload: allocationPayload{Create: create, Deps: deps}}
}

// NewNeedsNoAllocation binds id to a constructor that places its result
// in externally provided storage.
func NewNeedsNoAllocation(id dicore.TypeID, create CreateFunc, deps dicore.DependencyList) Entry {
	return Entry{TypeID: id, Kind: NeedsNoAllocation, payload: allocationPayload{Create: create, Deps: deps}}
}

// NewCompressed proposes collapsing id (I) onto cTypeID (C) via create,
// the constructor that allocates C-sized storage and constructs C there.
func NewCompressed(id dicore.TypeID, cTypeID dicore.TypeID, create CreateFunc) Entry {
	return Entry{TypeID: id, Kind: Compressed, payload: compressedPayload{CTypeID: cTypeID, Create: create}}
}

// NewMultibindingConstructed contributes a pre-built instance to id's
// multibinding set.
func NewMultibindingConstructed(id dicore.TypeID, object any) Entry {
	return Entry{TypeID: id, Kind: MultibindingConstructed, payload: constructedPayload{Object: object}}
}

// NewMultibindingNeedsAllocation contributes an allocated instance to
// id's multibinding set.
func NewMultibindingNeedsAllocation(id dicore.TypeID, create CreateFunc, deps dicore.DependencyList) Entry {
	return Entry{TypeID: id, Kind: MultibindingNeedsAllocation, payload: allocationPayload{Create: create, Deps: deps}}
}

// NewMultibindingNeedsNoAllocation contributes an externally allocated
// instance to id's multibinding set.
func NewMultibindingNeedsNoAllocation(id dicore.TypeID, create CreateFunc, deps dicore.DependencyList) Entry {
	return Entry{TypeID: id, Kind: MultibindingNeedsNoAllocation, payload: allocationPayload{Create: create, Deps: deps}}
}

// NewMultibindingVectorCreator describes how to materialize id's
// aggregated multibinding vector.
func NewMultibindingVectorCreator(id dicore.TypeID, getVector CreateFunc) Entry {
	return Entry{TypeID: id, Kind: MultibindingVectorCreator, payload: vectorCreatorPayload{GetVector: getVector}}
}

// NewLazyComponentNoArgs defers expansion of a sub-component identified
// only by a function identity.
func NewLazyComponentNoArgs(fun ErasedFun, expand NoArgsExpander) Entry {
	return Entry{Kind: LazyComponentNoArgs, payload: lazyNoArgsPayload{Fun: fun, Expand: expand}}
}

// NewLazyComponentWithArgs defers expansion of a sub-component
// parameterized by arguments, carried in component.
func NewLazyComponentWithArgs(component Component) Entry {
	return Entry{Kind: LazyComponentWithArgs, payload: lazyWithArgsPayload{Component: component}}
}

// ToEndMarker returns a copy of a LazyComponentNoArgs/WithArgs entry with
// its kind rewritten to the matching end-marker kind, keeping the same
// payload; the receiver itself is not modified. The end-marker
// kind is what the work stack sees once a lazy component's own bindings
// have been pushed on top of it, so its completion can be detected when
// the stack unwinds back to it.
func (e Entry) ToEndMarker() Entry {
	switch e.Kind {
	case LazyComponentNoArgs:
		e.Kind = EndMarkerNoArgs
	case LazyComponentWithArgs:
		e.Kind = EndMarkerWithArgs
	}
	return e
}

// Constructed returns the object payload for ConstructedObject and
// MultibindingConstructed entries.
func (e Entry) Constructed() (object any, ok bool) {
	p, ok := e.payload.(constructedPayload)
	if !ok {
		return nil, false
	}
	return p.Object, true
}

// Allocation returns the create function and dependency list for
// NeedsAllocation, NeedsNoAllocation, and their multibinding equivalents.
func (e Entry) Allocation() (create CreateFunc, deps dicore.DependencyList, ok bool) {
	p, ok := e.payload.(allocationPayload)
	if !ok {
		return CreateFunc{}, nil, false
	}
	return p.Create, p.Deps, true
}

// Compression returns the C TypeID and compressed constructor of a
// Compressed entry.
func (e Entry) Compression() (cTypeID dicore.TypeID, create CreateFunc, ok bool) {
	p, ok := e.payload.(compressedPayload)
	if !ok {
		return dicore.TypeID{}, CreateFunc{}, false
	}
	return p.CTypeID, p.Create, true
}

// VectorCreator returns the get-vector constructor of a
// MultibindingVectorCreator entry.
func (e Entry) VectorCreator() (getVector CreateFunc, ok bool) {
	p, ok := e.payload.(vectorCreatorPayload)
	if !ok {
		return CreateFunc{}, false
	}
	return p.GetVector, true
}

// LazyNoArgs returns the function identity and expander of a
// LazyComponentNoArgs or EndMarkerNoArgs entry.
func (e Entry) LazyNoArgs() (fun ErasedFun, expand NoArgsExpander, ok bool) {
	p, ok := e.payload.(lazyNoArgsPayload)
	if !ok {
		return ErasedFun{}, nil, false
	}
	return p.Fun, p.Expand, true
}

// LazyWithArgs returns the component of a LazyComponentWithArgs or
// EndMarkerWithArgs entry.
func (e Entry) LazyWithArgs() (component Component, ok bool) {
	p, ok := e.payload.(lazyWithArgsPayload)
	if !ok {
		return nil, false
	}
	return p.Component, true
}

// SemanticallyEqual reports whether two entries for the same TypeID are
// consistent duplicates: they must agree on kind and, for
// ConstructedObject, point at the same object, or otherwise share the
// same create function identity.
func (e Entry) SemanticallyEqual(other Entry) bool {
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case ConstructedObject, MultibindingConstructed:
		obj1, _ := e.Constructed()
		obj2, _ := other.Constructed()
		return obj1 == obj2
	case NeedsAllocation, NeedsNoAllocation, MultibindingNeedsAllocation, MultibindingNeedsNoAllocation:
		c1, _, _ := e.Allocation()
		c2, _, _ := other.Allocation()
		return c1.Equal(c2)
	case Compressed:
		c1Type, c1, _ := e.Compression()
		c2Type, c2, _ := other.Compression()
		return c1Type == c2Type && c1.Equal(c2)
	case MultibindingVectorCreator:
		c1, _ := e.VectorCreator()
		c2, _ := other.VectorCreator()
		return c1.Equal(c2)
	default:
		return false
	}
}
