// Package dicore provides the shared vocabulary for the binding
// normalization core of a dependency-injection framework: opaque type
// identifiers and dependency lists.
//
// # Architecture Overview
//
// The core is organized into several packages with distinct
// responsibilities:
//
//	dicore/             Root package: TypeID, DependencyList
//	├── binding/         BindingEntry kinds and the maps/lists normalization produces
//	├── alloc/           Fixed-size allocator descriptor (AddType bookkeeping)
//	├── normalize/        Public API: Normalize, NormalizeWithoutCompression
//	│   └── internal/
//	│       ├── expand/     Lazy component expansion + cycle detection
//	│       ├── compress/   Binding compression eligibility + rewrite
//	│       ├── aggregate/  Multibinding aggregation
//	│       └── depgraph/   TypeID dependency graph + topological sort
//	├── diag/            Structured errors and the fatal diagnostics
//	└── cmd/dicore-inspect/ Interactive binding-table browser
//
// # Quick Start
//
//	result, err := normalize.Normalize(entries, allocDesc, topFunID, exposed)
//	if err != nil {
//	    var fatal *diag.FatalError
//	    if errors.As(err, &fatal) {
//	        log.Fatal(fatal)
//	    }
//	    return err
//	}
//	// result.BindingsVector is ready for the injector's object-creation routines.
//
// # Thread Safety
//
// Normalization is single-threaded and non-suspending: it runs to
// completion before its outputs are observed by anything else. There is
// no shared mutable state with other calls and no cancellation.
package dicore
