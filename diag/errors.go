// Package diag provides structured error types for the binding
// normalization core and its tooling.
//
// Errors are categorized by Phase (which stage raised them) and Kind
// (the error category). Use Builder for general, recoverable
// diagnostics such as a malformed input file; use FatalError (fatal.go)
// for the conditions that mean normalization itself cannot proceed.
package diag

import (
	"fmt"
	"strings"

	"github.com/bindgraph/dicore"
)

// Phase indicates which normalization stage raised the error.
type Phase string

const (
	PhaseExpand    Phase = "expand"    // lazy component expansion
	PhaseCompress  Phase = "compress"  // binding compression
	PhaseAggregate Phase = "aggregate" // multibinding aggregation
	PhaseFixture   Phase = "fixture"   // dicore-inspect's input loading
)

// Kind categorizes the error.
type Kind string

const (
	// KindMultipleBindings: two entries for the same TypeID disagree.
	KindMultipleBindings Kind = "multiple_bindings"
	// KindLazyComponentCycle: a lazy component is already in progress.
	KindLazyComponentCycle Kind = "lazy_component_cycle"
	// KindInvalidCompressionTarget: the I side of a compression candidate
	// was not bound as NeedsNoAllocation, or the C side was not bound as
	// NeedsAllocation or NeedsNoAllocation.
	KindInvalidCompressionTarget Kind = "invalid_compression_target"
	// KindUnreadableFixture: the fixture file could not be read from disk.
	KindUnreadableFixture Kind = "unreadable_fixture"
	// KindUnparsableFixture: the fixture file isn't valid JSON.
	KindUnparsableFixture Kind = "unparsable_fixture"
	// KindUnsupportedEntryKind: a fixture entry names a binding kind this
	// loader can't construct (typically a lazy component, which needs a
	// live Go value no text format can express).
	KindUnsupportedEntryKind Kind = "unsupported_entry_kind"
)

// Error is the general structured error type used throughout this
// module.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	TypeID dicore.TypeID
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if !e.TypeID.IsZero() {
		b.WriteString(": ")
		b.WriteString(e.TypeID.String())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by Phase and Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// TypeID sets the offending TypeID.
func (b *Builder) TypeID(id dicore.TypeID) *Builder {
	b.err.TypeID = id
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}
