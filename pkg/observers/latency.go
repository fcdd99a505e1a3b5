package observers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mckayn10/ai-chat-app/pkg/metrics"
)

// LatencyObserver correlates the events of one command turn and logs how
// long the completion call and the full resolution took.
type LatencyObserver struct {
	mu     sync.Mutex
	traces map[string]*trace
	log    *slog.Logger
}

type trace struct {
	received   time.Time
	completion time.Time
	traceID    string
}

func NewLatencyObserver(log *slog.Logger) *LatencyObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LatencyObserver{
		traces: make(map[string]*trace),
		log:    log,
	}
}

func (o *LatencyObserver) RecordEvent(ev metrics.MetricsEvent) {
	sessionID := ""
	if ev.Tags != nil {
		sessionID = ev.Tags["session_id"]
	}
	if sessionID == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	t := o.traces[sessionID]
	if t == nil {
		t = &trace{}
		o.traces[sessionID] = t
	}
	switch ev.Name {
	case metrics.EventCommandReceived:
		t.received = ev.Time
		t.completion = time.Time{}
		if ev.Tags != nil {
			t.traceID = ev.Tags["trace_id"]
		}
	case metrics.EventCompletionDone:
		if t.completion.IsZero() {
			t.completion = ev.Time
		}
	case metrics.EventCommandResolved:
		o.log.Info("latency",
			"session_id", sessionID,
			"trace_id", t.traceID,
			"completion_ms", durationMs(t.received, t.completion),
			"total_ms", durationMs(t.received, ev.Time),
		)
		delete(o.traces, sessionID)
	}
}

func durationMs(a, b time.Time) int64 {
	if a.IsZero() || b.IsZero() {
		return -1
	}
	return b.Sub(a).Milliseconds()
}
