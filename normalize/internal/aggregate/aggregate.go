// Package aggregate implements the Multibinding aggregator: it merges
// the Expander's (contribution, vector-creator) pairs into a per-type
// ordered set of contributions, reserving allocator space for each
// contribution that needs it.
package aggregate

import (
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
)

// Run consumes multibindings and returns the normalized set for every
// type that received at least one contribution. allocDesc receives one
// AddContribution call per to-construct contribution.
func Run(multibindings binding.List, allocDesc *alloc.Descriptor) binding.MultibindingSets {
	sets := make(binding.MultibindingSets)

	for _, pair := range multibindings {
		typeID := pair.Contribution.TypeID
		set, ok := sets[typeID]
		if !ok {
			set = &binding.MultibindingSet{}
			sets[typeID] = set
		}

		getVector, _ := pair.VectorCreator.VectorCreator()
		set.VectorCreator = getVector

		set.Contributions = append(set.Contributions, contributionOf(pair.Contribution, allocDesc))
	}

	return sets
}

func contributionOf(entry binding.Entry, allocDesc *alloc.Descriptor) binding.Contribution {
	switch entry.Kind {
	case binding.MultibindingConstructed:
		object, _ := entry.Constructed()
		return binding.Contribution{Object: object, IsConstructed: true}

	case binding.MultibindingNeedsAllocation:
		create, deps, _ := entry.Allocation()
		allocDesc.AddContribution(entry.TypeID, false)
		return binding.Contribution{Create: create, Deps: deps}

	case binding.MultibindingNeedsNoAllocation:
		create, deps, _ := entry.Allocation()
		allocDesc.AddContribution(entry.TypeID, true)
		return binding.Contribution{Create: create, Deps: deps}

	default:
		panic("aggregate: unexpected contribution kind " + entry.Kind.String())
	}
}
