package diag

import (
	"strings"

	"github.com/bindgraph/dicore"
)

// FatalError signals a condition normalization cannot recover from: the
// binding graph itself is inconsistent or cyclic, not just a candidate
// that got vetoed. The process is expected to terminate once the caller
// has had a chance to observe the diagnostic. Library callers get this
// back as a normal Go error (errors.As); normalize.Normalize never calls
// os.Exit itself — see cmd/dicore-inspect for the one caller in this
// repo that does.
type FatalError struct {
	Kind Kind

	// TypeID is set for KindMultipleBindings and KindInvalidCompressionTarget.
	TypeID dicore.TypeID

	// Chain is set for KindLazyComponentCycle: every lazy-component
	// identity encountered between the loop's start and the duplicate,
	// inclusive, in stack order (bottom to top). A string rather than a
	// TypeID because LazyComponentNoArgs components are identified by a
	// bare function identity, not a TypeID.
	Chain []string

	// LoopStart is the index into Chain marking where the cycle begins,
	// so Error can annotate it for the reader.
	LoopStart int
}

// MultipleBindings builds the "multiple inconsistent bindings" fatal
// diagnostic for the given type.
func MultipleBindings(id dicore.TypeID) *FatalError {
	return &FatalError{Kind: KindMultipleBindings, TypeID: id}
}

// LazyComponentCycle builds the "lazy component installation loop" fatal
// diagnostic. chain lists every in-progress component between the loop's
// start and the current (duplicate) component, inclusive; loopStart is
// chain's index of the component that is encountered twice.
func LazyComponentCycle(chain []string, loopStart int) *FatalError {
	return &FatalError{Kind: KindLazyComponentCycle, Chain: chain, LoopStart: loopStart}
}

// InvalidCompressionTarget builds the diagnostic for a compression
// candidate whose I side was not bound as NeedsNoAllocation, or whose C
// side was not bound as one of the two allocating kinds; id names the
// offending side.
func InvalidCompressionTarget(id dicore.TypeID) *FatalError {
	return &FatalError{Kind: KindInvalidCompressionTarget, TypeID: id}
}

func (e *FatalError) Error() string {
	switch e.Kind {
	case KindMultipleBindings:
		return "multiple bindings for type " + e.TypeID.String() +
			": all bindings for a type must be consistent" +
			"; consider exposing " + e.TypeID.String() + " in the component's signature"
	case KindLazyComponentCycle:
		var b strings.Builder
		b.WriteString("component installation loop detected:\n")
		for i, name := range e.Chain {
			b.WriteString("  ")
			b.WriteString(name)
			if i == e.LoopStart {
				b.WriteString(" <- the loop starts here")
			}
			b.WriteByte('\n')
		}
		return strings.TrimRight(b.String(), "\n")
	case KindInvalidCompressionTarget:
		return "compression target " + e.TypeID.String() +
			": the I side of a compression must be bound as NeedsNoAllocation" +
			" and the C side as NeedsAllocation or NeedsNoAllocation"
	default:
		return "unknown fatal diagnostic"
	}
}
