package dialog

import "testing"

type captureListener struct {
	events []StateChange
}

func (c *captureListener) OnStateChange(ev StateChange) {
	c.events = append(c.events, ev)
}

func TestTrackerStartsIdle(t *testing.T) {
	tr := NewTracker()
	if tr.State() != Idle {
		t.Fatalf("expected Idle, got %v", tr.State())
	}
	if tr.Consume("turn") {
		t.Fatalf("nothing should be pending")
	}
}

func TestAwaitThenConsume(t *testing.T) {
	tr := NewTracker()
	tr.Await("create without name")
	if tr.State() != AwaitingName {
		t.Fatalf("expected AwaitingName, got %v", tr.State())
	}
	if !tr.Consume("next turn") {
		t.Fatalf("expected pending marker")
	}
	if tr.State() != Idle {
		t.Fatalf("consume must return to Idle, got %v", tr.State())
	}
	if tr.Consume("another turn") {
		t.Fatalf("marker must clear after one consume")
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Await("create without name")
	tr.Reset("session dropped")
	if tr.State() != Idle {
		t.Fatalf("expected Idle, got %v", tr.State())
	}
}

func TestListenerSeesTransitions(t *testing.T) {
	tr := NewTracker()
	cap := &captureListener{}
	tr.AddListener(cap)

	tr.Await("ask")
	tr.Consume("answer")
	tr.Reset("noop") // already Idle, no event

	if len(cap.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(cap.events))
	}
	if cap.events[0].FromState != Idle || cap.events[0].ToState != AwaitingName {
		t.Fatalf("unexpected first event: %#v", cap.events[0])
	}
	if cap.events[1].FromState != AwaitingName || cap.events[1].ToState != Idle {
		t.Fatalf("unexpected second event: %#v", cap.events[1])
	}
	if cap.events[0].Reason != "ask" {
		t.Fatalf("unexpected reason: %q", cap.events[0].Reason)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "IDLE" || AwaitingName.String() != "AWAITING_NAME" {
		t.Fatalf("unexpected state names: %q %q", Idle.String(), AwaitingName.String())
	}
}
