package aggregate

import (
	"testing"

	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
)

func TestAggregatesContributionsInArrivalOrder(t *testing.T) {
	plugins := dicore.NewTypeID("aggregate.Plugins")
	vc := binding.NewMultibindingVectorCreator(plugins, binding.CreateFunc{ID: 1})

	multibindings := binding.List{
		{Contribution: binding.NewMultibindingConstructed(plugins, "first"), VectorCreator: vc},
		{Contribution: binding.NewMultibindingNeedsAllocation(plugins, binding.CreateFunc{ID: 2}, dicore.DependencyList{dicore.NewTypeID("aggregate.Dep")}), VectorCreator: vc},
		{Contribution: binding.NewMultibindingConstructed(plugins, "first"), VectorCreator: vc},
	}

	allocDesc := alloc.NewDescriptor()
	sets := Run(multibindings, allocDesc)

	set, ok := sets[plugins]
	if !ok {
		t.Fatalf("expected a set for %v", plugins)
	}
	if len(set.Contributions) != 3 {
		t.Fatalf("len(Contributions) = %d, want 3 (duplicates are not deduped)", len(set.Contributions))
	}
	if set.Contributions[0].Object != "first" || !set.Contributions[0].IsConstructed {
		t.Errorf("Contributions[0] = %+v, want constructed %q", set.Contributions[0], "first")
	}
	if set.Contributions[1].IsConstructed {
		t.Errorf("Contributions[1] should be a to-construct contribution")
	}
	if set.Contributions[1].Create.ID != 2 {
		t.Errorf("Contributions[1].Create.ID = %v, want 2", set.Contributions[1].Create.ID)
	}
	if set.VectorCreator.ID != 1 {
		t.Errorf("VectorCreator.ID = %v, want 1", set.VectorCreator.ID)
	}

	if allocDesc.Len() != 1 {
		t.Fatalf("allocDesc.Len() = %d, want 1 reservation for the single to-construct contribution", allocDesc.Len())
	}
}

func TestMultipleTypesGetDistinctSets(t *testing.T) {
	a := dicore.NewTypeID("aggregate.A")
	b := dicore.NewTypeID("aggregate.B")

	multibindings := binding.List{
		{
			Contribution:  binding.NewMultibindingNeedsNoAllocation(a, binding.CreateFunc{ID: 1}, nil),
			VectorCreator: binding.NewMultibindingVectorCreator(a, binding.CreateFunc{ID: 10}),
		},
		{
			Contribution:  binding.NewMultibindingNeedsAllocation(b, binding.CreateFunc{ID: 2}, nil),
			VectorCreator: binding.NewMultibindingVectorCreator(b, binding.CreateFunc{ID: 20}),
		},
	}

	sets := Run(multibindings, alloc.NewDescriptor())
	if len(sets) != 2 {
		t.Fatalf("len(sets) = %d, want 2", len(sets))
	}
	if len(sets[a].Contributions) != 1 || len(sets[b].Contributions) != 1 {
		t.Fatalf("expected one contribution each, got a=%d b=%d", len(sets[a].Contributions), len(sets[b].Contributions))
	}
}

func TestSharedTypeIDContributionsReserveDistinctSlots(t *testing.T) {
	plugins := dicore.NewTypeID("aggregate.SharedSlots")
	vc := binding.NewMultibindingVectorCreator(plugins, binding.CreateFunc{ID: 1})

	multibindings := binding.List{
		{Contribution: binding.NewMultibindingNeedsAllocation(plugins, binding.CreateFunc{ID: 2}, nil), VectorCreator: vc},
		{Contribution: binding.NewMultibindingNeedsAllocation(plugins, binding.CreateFunc{ID: 3}, nil), VectorCreator: vc},
	}

	allocDesc := alloc.NewDescriptor()
	Run(multibindings, allocDesc)

	if allocDesc.Len() != 2 {
		t.Fatalf("allocDesc.Len() = %d, want 2 (each contribution reserves its own slot even sharing a TypeID)", allocDesc.Len())
	}
}
