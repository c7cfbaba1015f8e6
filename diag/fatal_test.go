package diag

import (
	"strings"
	"testing"

	"github.com/bindgraph/dicore"
)

func TestMultipleBindingsMessageNamesTypeAndSuggestsExposing(t *testing.T) {
	id := dicore.NewTypeID("diag.Conflicted")
	err := MultipleBindings(id)

	msg := err.Error()
	if !strings.Contains(msg, "diag.Conflicted") {
		t.Errorf("expected message to name the type, got %q", msg)
	}
	if !strings.Contains(msg, "exposing") {
		t.Errorf("expected message to suggest exposing the type, got %q", msg)
	}
}

func TestLazyComponentCycleMarksLoopStart(t *testing.T) {
	a := dicore.NewTypeID("diag.A")
	b := dicore.NewTypeID("diag.B")
	chain := []string{a.String(), b.String(), a.String()}

	err := LazyComponentCycle(chain, 0)
	msg := err.Error()

	lines := strings.Split(msg, "\n")
	if len(lines) != 4 { // header + 3 entries
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), msg)
	}
	if !strings.Contains(lines[1], "the loop starts here") {
		t.Errorf("expected the marked loop start on the first chain line, got %q", lines[1])
	}
	if strings.Contains(lines[3], "the loop starts here") {
		t.Errorf("expected only the loop start to be marked, got %q", lines[3])
	}
}

func TestErrorIsMatchesByPhaseAndKind(t *testing.T) {
	e1 := New(PhaseExpand, KindMultipleBindings).Build()
	e2 := New(PhaseExpand, KindMultipleBindings).Detail("different detail").Build()
	e3 := New(PhaseCompress, KindMultipleBindings).Build()

	if !e1.Is(e2) {
		t.Errorf("expected errors with same phase/kind to match via Is")
	}
	if e1.Is(e3) {
		t.Errorf("expected errors with different phases not to match")
	}
}
