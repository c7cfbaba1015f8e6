// Package normalize is the public entry point to the binding
// normalization core: it wires the Expander, Compressor, and
// Multibinding aggregator together behind Normalize and
// NormalizeWithoutCompression, and renders the dependency graph
// downstream object-creation code will walk.
package normalize

import (
	"go.uber.org/zap"

	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
	"github.com/bindgraph/dicore/normalize/internal/aggregate"
	"github.com/bindgraph/dicore/normalize/internal/compress"
	"github.com/bindgraph/dicore/normalize/internal/depgraph"
	"github.com/bindgraph/dicore/normalize/internal/expand"
)

// Result bundles everything the injector needs after normalization.
// Undo is only populated by Normalize; NormalizeWithoutCompression
// leaves it nil.
type Result struct {
	BindingsVector []binding.Entry
	Multibindings  binding.MultibindingSets
	Undo           binding.UndoMap
	Graph          *depgraph.Graph
}

// Normalize runs the full pipeline: expansion, compression against
// exposed, then multibinding aggregation.
func Normalize(
	entries []binding.Entry,
	allocDesc *alloc.Descriptor,
	topFunID dicore.TypeID,
	exposed []dicore.TypeID,
) (Result, error) {
	return run(entries, allocDesc, topFunID, exposed, true)
}

// NormalizeWithoutCompression runs expansion and aggregation only,
// skipping the Compressor — used when the caller already has a
// normalized parent component and only needs a delta.
func NormalizeWithoutCompression(
	entries []binding.Entry,
	allocDesc *alloc.Descriptor,
	topFunID dicore.TypeID,
) (Result, error) {
	return run(entries, allocDesc, topFunID, nil, false)
}

func run(
	entries []binding.Entry,
	allocDesc *alloc.Descriptor,
	topFunID dicore.TypeID,
	exposed []dicore.TypeID,
	compressEnabled bool,
) (Result, error) {
	log := Logger()
	log.Debug("expansion starting", zap.Int("entries", len(entries)))

	candidates := make(binding.CandidateMap)
	var multibindings binding.List

	compressedHandler := func(entry binding.Entry) {
		if !compressEnabled {
			return
		}
		cTypeID, create, _ := entry.Compression()
		candidates[cTypeID] = binding.CompressionCandidate{I: entry.TypeID, Create: create}
	}
	multibindingHandler := func(contribution, vectorCreator binding.Entry) {
		multibindings = append(multibindings, binding.MultibindingPair{
			Contribution:  contribution,
			VectorCreator: vectorCreator,
		})
	}

	x := expand.New(entries, allocDesc, topFunID, compressedHandler, multibindingHandler)
	bindings, err := x.Run()
	if err != nil {
		log.Error("expansion failed", zap.Error(err))
		return Result{}, err
	}
	log.Debug("expansion complete", zap.Int("bindings", len(bindings)), zap.Int("candidates", len(candidates)), zap.Int("multibindings", len(multibindings)))

	var undo binding.UndoMap
	if compressEnabled {
		undo, err = compress.Run(bindings, candidates, multibindings, exposed, allocDesc)
		if err != nil {
			log.Error("compression failed", zap.Error(err))
			return Result{}, err
		}
		log.Debug("compression complete", zap.Int("collapsed", len(undo)))
	}

	sets := aggregate.Run(multibindings, allocDesc)

	graph := depgraph.New()
	for _, e := range bindings {
		graph.AddNode(e.TypeID)
		_, deps, ok := e.Allocation()
		if !ok {
			continue
		}
		for _, dep := range deps {
			graph.AddEdge(e.TypeID, dep)
		}
	}

	return Result{
		BindingsVector: bindings.Vector(),
		Multibindings:  sets,
		Undo:           undo,
		Graph:          graph,
	}, nil
}
