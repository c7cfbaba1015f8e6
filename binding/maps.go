package binding

import "github.com/bindgraph/dicore"

// Map is a TypeID -> Entry binding table. Keys are unique; every value
// must carry one of the three direct binding kinds (ConstructedObject,
// NeedsAllocation, NeedsNoAllocation).
type Map map[dicore.TypeID]Entry

// Put inserts entry, returning the entry already present at that TypeID
// (if any) and whether one was present. Put does not itself enforce the
// semantic-equality invariant: callers (normalize/internal/expand) decide
// what to do about a collision, since only they have the diagnostic
// machinery to report it.
func (m Map) Put(entry Entry) (existing Entry, present bool) {
	existing, present = m[entry.TypeID]
	if !present {
		m[entry.TypeID] = entry
	}
	return existing, present
}

// Vector returns the map's values as a slice. Order follows Go's map
// iteration and is not sorted; callers that need a stable ordering for
// display or comparison should sort by TypeID themselves.
func (m Map) Vector() []Entry {
	out := make([]Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	return out
}

// CompressionCandidate is the payload of a CandidateMap entry: the I
// binding a candidate C is proposed to be compressed into, plus the
// constructor that allocates C-sized storage and constructs C there.
type CompressionCandidate struct {
	I      dicore.TypeID
	Create CreateFunc
}

// CandidateMap maps a candidate C TypeID to the compression proposed for
// it.
type CandidateMap map[dicore.TypeID]CompressionCandidate

// MultibindingPair is one (contribution, vector-creator) pair as produced
// by the Expander's multibinding handler.
type MultibindingPair struct {
	Contribution  Entry
	VectorCreator Entry
}

// List is the ordered sequence of multibinding pairs the Expander
// accumulates.
type List []MultibindingPair

// Contribution is one element of a NormalizedMultibindingSet's ordered
// contribution list.
type Contribution struct {
	Create        CreateFunc
	Object        any
	Deps          dicore.DependencyList
	IsConstructed bool
}

// MultibindingSet is the per-type aggregation a multibinding type
// normalizes to: a vector-creator identity plus its ordered
// contributions. Contributions form a multiset: duplicates are kept, not
// collapsed.
type MultibindingSet struct {
	VectorCreator CreateFunc
	Contributions []Contribution
}

// MultibindingSets maps each multibinding TypeID to its normalized set.
type MultibindingSets map[dicore.TypeID]*MultibindingSet

// UndoInfo records what a single compression collapsed, so it can be
// reversed if the injector later needs to expose C directly.
type UndoInfo struct {
	ITypeID  dicore.TypeID
	IBinding Entry
	CBinding Entry
}

// UndoMap maps a compressed C TypeID to the information needed to
// reverse that compression.
type UndoMap map[dicore.TypeID]UndoInfo
