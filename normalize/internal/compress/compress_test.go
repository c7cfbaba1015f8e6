package compress

import (
	"testing"

	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
)

func setupS3(t *testing.T) (dicore.TypeID, dicore.TypeID, binding.Map, binding.CandidateMap, *alloc.Descriptor) {
	t.Helper()
	i := dicore.NewTypeID("compress.I")
	c := dicore.NewTypeID("compress.C")

	bindings := binding.Map{
		i: binding.NewNeedsNoAllocation(i, binding.CreateFunc{ID: 1}, nil),
		c: binding.NewNeedsAllocation(c, binding.CreateFunc{ID: 2}, nil),
	}
	candidates := binding.CandidateMap{
		c: {I: i, Create: binding.CreateFunc{ID: 3}},
	}

	allocDesc := alloc.NewDescriptor()
	allocDesc.AddExternallyAllocatedType(i)
	allocDesc.AddType(c)

	return i, c, bindings, candidates, allocDesc
}

func TestSimpleCompressionApplied(t *testing.T) {
	i, c, bindings, candidates, allocDesc := setupS3(t)

	undo, err := Run(bindings, candidates, nil, nil, allocDesc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(bindings))
	}
	rewritten, ok := bindings[i]
	if !ok {
		t.Fatalf("expected I's binding to survive")
	}
	if rewritten.Kind != binding.NeedsAllocation {
		t.Errorf("rewritten kind = %v, want NeedsAllocation", rewritten.Kind)
	}
	create, _, _ := rewritten.Allocation()
	if create.ID != 3 {
		t.Errorf("rewritten create = %v, want fn 3 (the compression constructor)", create.ID)
	}
	if _, stillThere := bindings[c]; stillThere {
		t.Errorf("expected C's standalone binding to be removed")
	}

	info, ok := undo[c]
	if !ok {
		t.Fatalf("expected undo info for C")
	}
	if info.ITypeID != i {
		t.Errorf("undo.ITypeID = %v, want %v", info.ITypeID, i)
	}
	if info.IBinding.Kind != binding.NeedsNoAllocation {
		t.Errorf("undo.IBinding.Kind = %v, want NeedsNoAllocation", info.IBinding.Kind)
	}
	if info.CBinding.Kind != binding.NeedsAllocation {
		t.Errorf("undo.CBinding.Kind = %v, want NeedsAllocation", info.CBinding.Kind)
	}

	if allocDesc.Len() != 1 {
		t.Errorf("allocDesc.Len() = %d, want 1 (C's reservation inherited by I)", allocDesc.Len())
	}
	if !allocDesc.Has(i) {
		t.Errorf("expected I to hold the inherited reservation")
	}
}

func TestCompressionVetoedByExposedType(t *testing.T) {
	i, c, bindings, candidates, allocDesc := setupS3(t)

	undo, err := Run(bindings, candidates, nil, []dicore.TypeID{c}, allocDesc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(undo) != 0 {
		t.Errorf("expected no compression to be performed, got undo map %v", undo)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2 (both I and C survive)", len(bindings))
	}
	if _, ok := bindings[i]; !ok {
		t.Errorf("expected I to remain bound")
	}
	if _, ok := bindings[c]; !ok {
		t.Errorf("expected C to remain bound")
	}
}

func TestCompressionVetoedByForeignConsumer(t *testing.T) {
	_, c, bindings, candidates, allocDesc := setupS3(t)

	x := dicore.NewTypeID("compress.X")
	bindings[x] = binding.NewNeedsAllocation(x, binding.CreateFunc{ID: 4}, dicore.DependencyList{c})
	allocDesc.AddType(x)

	undo, err := Run(bindings, candidates, nil, nil, allocDesc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(undo) != 0 {
		t.Errorf("expected no compression, got undo map %v", undo)
	}
	if len(bindings) != 3 {
		t.Fatalf("len(bindings) = %d, want 3 (I, C, X all survive)", len(bindings))
	}
}

func TestCompressionVetoedByMultibindingDependency(t *testing.T) {
	i, c, bindings, candidates, allocDesc := setupS3(t)

	multi := dicore.NewTypeID("compress.Multi")
	multibindings := binding.List{
		{
			Contribution:  binding.NewMultibindingNeedsAllocation(multi, binding.CreateFunc{ID: 5}, dicore.DependencyList{c}),
			VectorCreator: binding.NewMultibindingVectorCreator(multi, binding.CreateFunc{ID: 6}),
		},
	}

	undo, err := Run(bindings, candidates, multibindings, nil, allocDesc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(undo) != 0 {
		t.Errorf("expected no compression, got undo map %v", undo)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2", len(bindings))
	}
	_ = i
}

func TestMultibindingConstructedContributionDoesNotVeto(t *testing.T) {
	_, c, bindings, candidates, allocDesc := setupS3(t)

	multi := dicore.NewTypeID("compress.Multi2")
	multibindings := binding.List{
		{
			Contribution:  binding.NewMultibindingConstructed(multi, "some object"),
			VectorCreator: binding.NewMultibindingVectorCreator(multi, binding.CreateFunc{ID: 6}),
		},
	}

	undo, err := Run(bindings, candidates, multibindings, nil, allocDesc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(undo) != 1 {
		t.Errorf("expected the compression to proceed (constructed contributions carry no deps), got undo map %v", undo)
	}
	if _, stillThere := bindings[c]; stillThere {
		t.Errorf("expected C to be compressed away")
	}
}
