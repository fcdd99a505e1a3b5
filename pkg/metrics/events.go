package metrics

// Event names emitted by the command resolution path.
const (
	EventCommandReceived = "command_received"
	EventCommandResolved = "command_resolved"
	EventCompletionDone  = "completion_done"
	EventCompletionError = "completion_error"
	EventLowConfidence   = "low_confidence"
	EventIntentInvalid   = "intent_invalid"
	EventStoreError      = "store_error"
	EventRateLimit       = "rate_limit"
	EventBreakerOpen     = "breaker_open"
	EventBreakerClose    = "breaker_close"
	EventBreakerDenied   = "breaker_denied"
)
