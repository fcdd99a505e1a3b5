// Package metrics carries per-turn telemetry for command resolution:
// completion latency, confidence gates, breaker trips. Observers are
// fire-and-forget; the engine never blocks on them.
package metrics

import "time"

// MetricsEvent is a single named measurement. Tags hold low-cardinality
// correlation keys (session_id, trace_id); Fields hold everything else.
type MetricsEvent struct {
	Name   string
	Time   time.Time
	Value  float64
	Tags   map[string]string
	Fields map[string]any
}

type Observer interface {
	RecordEvent(ev MetricsEvent)
}

// NoopObserver discards every event. Used when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) RecordEvent(MetricsEvent) {}
