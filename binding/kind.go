// Package binding defines the binding-entry data model consumed and
// produced by the normalization pipeline: the tagged BindingEntry
// variant, dependency-carrying payloads, and the maps/lists each stage
// of normalization builds.
package binding

// Kind tags which of the twelve BindingEntry variants an Entry carries.
type Kind uint8

const (
	// ConstructedObject is a direct binding to a pre-built instance.
	ConstructedObject Kind = iota
	// NeedsAllocation means the object must be allocated and constructed
	// on first use.
	NeedsAllocation
	// NeedsNoAllocation means the object will be placed in externally
	// provided storage.
	NeedsNoAllocation
	// Compressed is a candidate binding I -> C awaiting eligibility
	// analysis by the Compressor.
	Compressed
	// MultibindingConstructed is a contribution of a pre-built instance
	// to a multibinding set.
	MultibindingConstructed
	// MultibindingNeedsAllocation is a multibinding contribution to be
	// allocated.
	MultibindingNeedsAllocation
	// MultibindingNeedsNoAllocation is a multibinding contribution to be
	// placed in externally allocated storage.
	MultibindingNeedsNoAllocation
	// MultibindingVectorCreator describes how to materialize the
	// aggregated multibinding vector for a type.
	MultibindingVectorCreator
	// LazyComponentNoArgs is a deferred sub-component parameterized only
	// by a function identity.
	LazyComponentNoArgs
	// LazyComponentWithArgs is a deferred sub-component parameterized by
	// arguments.
	LazyComponentWithArgs
	// EndMarkerNoArgs is the sentinel pushed in place of a
	// LazyComponentNoArgs entry once its expansion has begun.
	EndMarkerNoArgs
	// EndMarkerWithArgs is the sentinel pushed in place of a
	// LazyComponentWithArgs entry once its expansion has begun.
	EndMarkerWithArgs
)

// String renders the kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case ConstructedObject:
		return "ConstructedObject"
	case NeedsAllocation:
		return "NeedsAllocation"
	case NeedsNoAllocation:
		return "NeedsNoAllocation"
	case Compressed:
		return "Compressed"
	case MultibindingConstructed:
		return "MultibindingConstructed"
	case MultibindingNeedsAllocation:
		return "MultibindingNeedsAllocation"
	case MultibindingNeedsNoAllocation:
		return "MultibindingNeedsNoAllocation"
	case MultibindingVectorCreator:
		return "MultibindingVectorCreator"
	case LazyComponentNoArgs:
		return "LazyComponentNoArgs"
	case LazyComponentWithArgs:
		return "LazyComponentWithArgs"
	case EndMarkerNoArgs:
		return "EndMarkerNoArgs"
	case EndMarkerWithArgs:
		return "EndMarkerWithArgs"
	default:
		return "Unknown"
	}
}

// IsMultibindingContribution reports whether k is one of the three
// multibinding-contribution kinds (the ones that must be immediately
// followed by a MultibindingVectorCreator on the work stack).
func (k Kind) IsMultibindingContribution() bool {
	switch k {
	case MultibindingConstructed, MultibindingNeedsAllocation, MultibindingNeedsNoAllocation:
		return true
	default:
		return false
	}
}

// IsLazyComponent reports whether k is one of the two lazy-component
// kinds (as opposed to their matching end markers).
func (k Kind) IsLazyComponent() bool {
	return k == LazyComponentNoArgs || k == LazyComponentWithArgs
}

// IsEndMarker reports whether k is one of the two end-marker kinds.
func (k Kind) IsEndMarker() bool {
	return k == EndMarkerNoArgs || k == EndMarkerWithArgs
}

// IsAllocating reports whether k is one of the two direct kinds that
// require allocator bookkeeping (NeedsAllocation, NeedsNoAllocation).
func (k Kind) IsAllocating() bool {
	return k == NeedsAllocation || k == NeedsNoAllocation
}
