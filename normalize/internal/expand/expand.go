// Package expand implements the Expander: it drives a recursive
// expansion of deferred lazy sub-components using an explicit work
// stack, detects cycles in that expansion, and unifies or rejects
// duplicate direct bindings — producing a populated BindingMap plus,
// via the two handler callbacks, the compressed-candidate map and the
// multibinding list.
package expand

import (
	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/binding"
	"github.com/bindgraph/dicore/diag"
)

// CompressedHandler is invoked once per Compressed entry popped off the
// stack.
type CompressedHandler func(entry binding.Entry)

// MultibindingHandler is invoked once per (contribution, vector-creator)
// pair popped off the stack, in whichever order they appeared.
type MultibindingHandler func(contribution, vectorCreator binding.Entry)

// Expander holds the state of one expansion run. It is not safe for
// concurrent use or reuse across runs: its sets and stack accumulate
// state that is only meaningful for a single normalization pass.
type Expander struct {
	stack     *Stack
	allocDesc *alloc.Descriptor
	topFunID  dicore.TypeID

	compressedHandler   CompressedHandler
	multibindingHandler MultibindingHandler

	bindings binding.Map

	fullyExpandedNoArgs map[binding.FuncID]bool
	inProgressNoArgs    map[binding.FuncID]bool
	noArgsNames         map[binding.FuncID]string

	fullyExpandedWithArgs *componentSet
	inProgressWithArgs    *componentSet
}

// New creates an Expander over entries, ready to run.
func New(
	entries []binding.Entry,
	allocDesc *alloc.Descriptor,
	topFunID dicore.TypeID,
	compressedHandler CompressedHandler,
	multibindingHandler MultibindingHandler,
) *Expander {
	return &Expander{
		stack:                 NewStack(entries),
		allocDesc:             allocDesc,
		topFunID:              topFunID,
		compressedHandler:     compressedHandler,
		multibindingHandler:   multibindingHandler,
		bindings:              make(binding.Map),
		fullyExpandedNoArgs:   make(map[binding.FuncID]bool),
		inProgressNoArgs:      make(map[binding.FuncID]bool),
		noArgsNames:           make(map[binding.FuncID]string),
		fullyExpandedWithArgs: newComponentSet(),
		inProgressWithArgs:    newComponentSet(),
	}
}

// Run drives the expansion to completion (stack empty) or returns the
// first fatal diagnostic encountered. The compressed-candidate map and
// multibinding list are not returned directly: they are built by the
// caller inside compressedHandler/multibindingHandler as entries are
// popped.
func (x *Expander) Run() (binding.Map, error) {
	for {
		top, ok := x.stack.Top()
		if !ok {
			break
		}

		switch {
		case top.Kind == binding.ConstructedObject,
			top.Kind == binding.NeedsAllocation,
			top.Kind == binding.NeedsNoAllocation:
			if err := x.processDirectBinding(top); err != nil {
				return nil, err
			}

		case top.Kind == binding.Compressed:
			x.stack.Pop()
			x.compressedHandler(top)

		case top.Kind.IsMultibindingContribution():
			x.stack.Pop()
			vc, ok := x.stack.Pop()
			if !ok || vc.Kind != binding.MultibindingVectorCreator {
				panic("expand: expected MultibindingVectorCreator atop a multibinding contribution")
			}
			x.multibindingHandler(top, vc)

		case top.Kind == binding.MultibindingVectorCreator:
			x.stack.Pop()
			contribution, ok := x.stack.Pop()
			if !ok || !contribution.Kind.IsMultibindingContribution() {
				panic("expand: expected a multibinding contribution atop a MultibindingVectorCreator")
			}
			x.multibindingHandler(contribution, top)

		case top.Kind == binding.LazyComponentNoArgs:
			if err := x.processLazyNoArgs(top); err != nil {
				return nil, err
			}

		case top.Kind == binding.LazyComponentWithArgs:
			if err := x.processLazyWithArgs(top); err != nil {
				return nil, err
			}

		case top.Kind == binding.EndMarkerNoArgs:
			x.stack.Pop()
			fun, _, _ := top.LazyNoArgs()
			delete(x.inProgressNoArgs, fun.ID)
			x.fullyExpandedNoArgs[fun.ID] = true

		case top.Kind == binding.EndMarkerWithArgs:
			x.stack.Pop()
			component, _ := top.LazyWithArgs()
			x.inProgressWithArgs.Remove(component)
			x.fullyExpandedWithArgs.Add(component)

		default:
			panic("expand: unreachable binding kind")
		}
	}

	return x.bindings, nil
}

func (x *Expander) processDirectBinding(top binding.Entry) error {
	x.stack.Pop()

	existing, present := x.bindings.Put(top)
	if present {
		if !existing.SemanticallyEqual(top) {
			return diag.MultipleBindings(top.TypeID)
		}
		return nil
	}

	switch top.Kind {
	case binding.NeedsAllocation:
		x.allocDesc.AddType(top.TypeID)
	case binding.NeedsNoAllocation:
		x.allocDesc.AddExternallyAllocatedType(top.TypeID)
	}
	return nil
}

func (x *Expander) processLazyNoArgs(top binding.Entry) error {
	fun, expander, _ := top.LazyNoArgs()

	if x.fullyExpandedNoArgs[fun.ID] {
		x.stack.Pop()
		return nil
	}

	if x.inProgressNoArgs[fun.ID] {
		return diag.LazyComponentCycle(x.buildCycleChain(fun.String()), x.loopStartIndex(fun.String()))
	}

	x.inProgressNoArgs[fun.ID] = true
	x.noArgsNames[fun.ID] = fun.String()
	x.stack.ReplaceTop(top.ToEndMarker())
	expander(x.stack)
	return nil
}

func (x *Expander) processLazyWithArgs(top binding.Entry) error {
	component, _ := top.LazyWithArgs()

	if x.fullyExpandedWithArgs.Contains(component) {
		x.stack.Pop()
		return nil
	}

	if x.inProgressWithArgs.Contains(component) {
		name := component.FunTypeID().String()
		return diag.LazyComponentCycle(x.buildCycleChain(name), x.loopStartIndex(name))
	}

	x.inProgressWithArgs.Add(component)
	x.stack.ReplaceTop(top.ToEndMarker())
	component.AddBindings(x.stack)
	return nil
}

// buildCycleChain walks the current stack bottom-to-top collecting the
// display name of every in-progress lazy component (every EndMarker entry
// currently on the stack represents exactly one), drops the names below
// the first one equal to duplicateName, then appends the duplicate's
// name, producing every component identity encountered between and
// including the loop's start.
func (x *Expander) buildCycleChain(duplicateName string) []string {
	var chain []string
	for _, e := range x.stack.Snapshot() {
		switch e.Kind {
		case binding.EndMarkerNoArgs:
			fun, _, _ := e.LazyNoArgs()
			chain = append(chain, fun.String())
		case binding.EndMarkerWithArgs:
			component, _ := e.LazyWithArgs()
			chain = append(chain, component.FunTypeID().String())
		}
	}
	for i, name := range chain {
		if name == duplicateName {
			chain = chain[i:]
			break
		}
	}
	chain = append(chain, duplicateName)
	return chain
}

func (x *Expander) loopStartIndex(duplicateName string) int {
	for i, name := range x.buildCycleChain(duplicateName) {
		if name == duplicateName {
			return i
		}
	}
	return 0
}
