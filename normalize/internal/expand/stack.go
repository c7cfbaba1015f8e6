package expand

import "github.com/bindgraph/dicore/binding"

// Stack is the explicit LIFO work stack the Expander drives, initialized
// with the top-level entries in their given order. It implements
// binding.BindingSink so lazy components can push their own bindings
// onto it via AddBindings.
type Stack struct {
	items []binding.Entry
}

// NewStack returns a stack pre-loaded with initial, in the given order.
func NewStack(initial []binding.Entry) *Stack {
	s := &Stack{items: make([]binding.Entry, 0, len(initial))}
	s.items = append(s.items, initial...)
	return s
}

// Push implements binding.BindingSink: entries are pushed on top, in the
// given order (so the first of entries ends up processed last among
// them, consistent with ordinary LIFO push semantics).
func (s *Stack) Push(entries ...binding.Entry) {
	s.items = append(s.items, entries...)
}

// Top returns the entry at the top of the stack without removing it.
func (s *Stack) Top() (binding.Entry, bool) {
	if len(s.items) == 0 {
		return binding.Entry{}, false
	}
	return s.items[len(s.items)-1], true
}

// Pop removes and returns the entry at the top of the stack.
func (s *Stack) Pop() (binding.Entry, bool) {
	if len(s.items) == 0 {
		return binding.Entry{}, false
	}
	idx := len(s.items) - 1
	e := s.items[idx]
	s.items = s.items[:idx]
	return e, true
}

// ReplaceTop rewrites the entry currently at the top of the stack without
// changing the stack's depth.
func (s *Stack) ReplaceTop(e binding.Entry) {
	if len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = e
}

// Len returns the number of entries currently on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// Snapshot returns a copy of the stack's contents, bottom to top.
func (s *Stack) Snapshot() []binding.Entry {
	out := make([]binding.Entry, len(s.items))
	copy(out, s.items)
	return out
}
