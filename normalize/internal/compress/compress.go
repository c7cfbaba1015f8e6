// Package compress implements the Compressor: given the Expander's
// outputs plus a list of exposed types, it decides which candidate I->C
// compressions are safe, rewrites the surviving ones in place, and
// records undo information for each collapse.
package compress

import (
	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
	"github.com/bindgraph/dicore/diag"
)

// Run prunes candidates down to the ones safe to apply, rewrites
// bindings and allocDesc in place for each survivor, and returns the
// undo map describing every collapse performed.
func Run(
	bindings binding.Map,
	candidates binding.CandidateMap,
	multibindings binding.List,
	exposed []dicore.TypeID,
	allocDesc *alloc.Descriptor,
) (binding.UndoMap, error) {
	vetoByMultibindingDependency(candidates, multibindings)
	vetoByExposedType(candidates, exposed)
	vetoByForeignConsumer(candidates, bindings)

	undo := make(binding.UndoMap, len(candidates))
	for c, candidate := range candidates {
		if err := apply(bindings, allocDesc, undo, c, candidate); err != nil {
			return nil, err
		}
	}
	return undo, nil
}

// vetoByMultibindingDependency removes every candidate that a
// to-construct multibinding contribution depends on: a type feeding a
// multibinding set can have more than one consumer by construction, so
// it can never be a safe I->C collapse target.
func vetoByMultibindingDependency(candidates binding.CandidateMap, multibindings binding.List) {
	for _, pair := range multibindings {
		if pair.Contribution.Kind == binding.MultibindingConstructed {
			continue
		}
		_, deps, ok := pair.Contribution.Allocation()
		if !ok {
			continue
		}
		for _, dep := range deps {
			delete(candidates, dep)
		}
	}
}

// vetoByExposedType removes every candidate named in the enclosing
// component's public signature: an exposed type must remain
// independently observable.
func vetoByExposedType(candidates binding.CandidateMap, exposed []dicore.TypeID) {
	for _, id := range exposed {
		delete(candidates, id)
	}
}

// vetoByForeignConsumer removes every candidate depended on by some
// bound type other than its own proposed I: once any consumer besides I
// needs C directly, C must stay a first-class binding.
func vetoByForeignConsumer(candidates binding.CandidateMap, bindings binding.Map) {
	for x, bindingX := range bindings {
		if bindingX.Kind == binding.ConstructedObject {
			continue
		}
		_, deps, ok := bindingX.Allocation()
		if !ok {
			continue
		}
		for _, c := range deps {
			candidate, isCandidate := candidates[c]
			if isCandidate && candidate.I != x {
				delete(candidates, c)
			}
		}
	}
}

// apply performs one I->C collapse: it records undo information for
// the original payloads, rewrites I's binding in place to C's kind and
// dependencies, removes C's standalone binding, and reconciles the
// allocator descriptor so C's reservation is inherited by I rather
// than double-counted.
func apply(bindings binding.Map, allocDesc *alloc.Descriptor, undo binding.UndoMap, c dicore.TypeID, candidate binding.CompressionCandidate) error {
	i := candidate.I

	iBinding, ok := bindings[i]
	if !ok || iBinding.Kind != binding.NeedsNoAllocation {
		return diag.InvalidCompressionTarget(i)
	}

	cBinding, ok := bindings[c]
	if !ok || !cBinding.Kind.IsAllocating() {
		return diag.InvalidCompressionTarget(c)
	}

	undo[c] = binding.UndoInfo{
		ITypeID:  i,
		IBinding: iBinding,
		CBinding: cBinding,
	}

	_, cDeps, _ := cBinding.Allocation()

	var rewritten binding.Entry
	switch cBinding.Kind {
	case binding.NeedsAllocation:
		rewritten = binding.NewNeedsAllocation(i, candidate.Create, cDeps)
	default:
		rewritten = binding.NewNeedsNoAllocation(i, candidate.Create, cDeps)
	}
	bindings[i] = rewritten
	delete(bindings, c)

	allocDesc.Release(i)
	allocDesc.Release(c)
	if cBinding.Kind == binding.NeedsAllocation {
		allocDesc.AddType(i)
	} else {
		allocDesc.AddExternallyAllocatedType(i)
	}

	return nil
}
