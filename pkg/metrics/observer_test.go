package metrics

import (
	"testing"
	"time"
)

func TestAsyncObserverDelivers(t *testing.T) {
	sink := NewMemoryObserver()
	async := NewAsyncObserver(sink, 8)
	async.RecordEvent(MetricsEvent{Name: "a"})
	async.RecordEvent(MetricsEvent{Name: "b"})
	async.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(sink.Snapshot()) == 2 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("events not delivered")
}

func TestAsyncObserverDropsWhenFull(t *testing.T) {
	// A nil-safe observer that never drains forces the buffer to fill.
	blocked := make(chan struct{})
	slow := observerFunc(func(MetricsEvent) { <-blocked })
	async := NewAsyncObserver(slow, 1)
	defer close(blocked)
	defer async.Close()

	for i := 0; i < 10; i++ {
		async.RecordEvent(MetricsEvent{Name: "x"})
	}
	if async.Dropped() == 0 {
		t.Fatalf("expected drops with a full buffer")
	}
}

func TestAsyncObserverIgnoresAfterClose(t *testing.T) {
	sink := NewMemoryObserver()
	async := NewAsyncObserver(sink, 8)
	async.Close()
	async.RecordEvent(MetricsEvent{Name: "late"}) // must not panic
}

func TestSamplingObserverRateOne(t *testing.T) {
	sink := NewMemoryObserver()
	s := NewSamplingObserver(sink, 1.0)
	for i := 0; i < 5; i++ {
		s.RecordEvent(MetricsEvent{Name: "x"})
	}
	if len(sink.Events) != 5 {
		t.Fatalf("rate 1.0 must pass everything, got %d", len(sink.Events))
	}
}

func TestSamplingObserverRateZero(t *testing.T) {
	sink := NewMemoryObserver()
	s := NewSamplingObserver(sink, 0)
	for i := 0; i < 5; i++ {
		s.RecordEvent(MetricsEvent{Name: "x"})
	}
	if len(sink.Events) != 0 {
		t.Fatalf("rate 0 must drop everything, got %d", len(sink.Events))
	}
}

func TestSamplingObserverHalfRate(t *testing.T) {
	sink := NewMemoryObserver()
	s := NewSamplingObserver(sink, 0.5)
	for i := 0; i < 10; i++ {
		s.RecordEvent(MetricsEvent{Name: "x"})
	}
	if len(sink.Events) != 5 {
		t.Fatalf("expected every other event, got %d", len(sink.Events))
	}
}

type observerFunc func(MetricsEvent)

func (f observerFunc) RecordEvent(ev MetricsEvent) { f(ev) }
