package bookings

import "testing"

func TestCanTransition_TableEdges(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusRejected},
		{StatusAccepted, StatusCompleted},
	}
	for _, e := range legal {
		if !CanTransition(e.from, e.to) {
			t.Fatalf("expected %s -> %s legal", e.from, e.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusAccepted, StatusRejected},
		{StatusRejected, StatusAccepted},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusAccepted},
		{StatusAccepted, StatusAccepted},
	}
	for _, e := range illegal {
		if CanTransition(e.from, e.to) {
			t.Fatalf("expected %s -> %s illegal", e.from, e.to)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		if !s.IsTerminal() {
			t.Fatalf("expected %s terminal", s)
		}
		if got := NextStatuses(s); len(got) != 0 {
			t.Fatalf("expected no actions from %s, got %v", s, got)
		}
	}
	for _, s := range []Status{StatusPending, StatusAccepted} {
		if s.IsTerminal() {
			t.Fatalf("expected %s not terminal", s)
		}
	}
}

func TestParseStatus_NormalizesCase(t *testing.T) {
	if got := ParseStatus("  Pending "); got != StatusPending {
		t.Fatalf("expected pending, got %q", got)
	}
	// Un valor fuera del conjunto se conserva tal cual.
	if got := ParseStatus("In Progress"); got != Status("in progress") {
		t.Fatalf("expected raw lowercase value, got %q", got)
	}
}
