package metrics

import (
	"sync"
	"sync/atomic"
)

// AsyncObserver decouples event producers from a possibly slow sink.
// Events are handed off through a bounded channel; when the channel is
// full the event is dropped rather than stalling a command turn.
type AsyncObserver struct {
	sink  Observer
	queue chan MetricsEvent
	drops atomic.Int64

	closed    atomic.Bool
	closeOnce sync.Once
}

func NewAsyncObserver(sink Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = 256
	}
	a := &AsyncObserver{
		sink:  sink,
		queue: make(chan MetricsEvent, buffer),
	}
	go a.drain()
	return a
}

func (a *AsyncObserver) RecordEvent(ev MetricsEvent) {
	if a == nil || a.closed.Load() {
		return
	}
	select {
	case a.queue <- ev:
	default:
		a.drops.Add(1)
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (a *AsyncObserver) Dropped() int64 {
	return a.drops.Load()
}

func (a *AsyncObserver) Close() {
	if a == nil {
		return
	}
	a.closeOnce.Do(func() {
		a.closed.Store(true)
		close(a.queue)
	})
}

func (a *AsyncObserver) drain() {
	for ev := range a.queue {
		a.sink.RecordEvent(ev)
	}
}
