package resilience

import "time"

// RetryPolicy is a simple blocking retry with a fixed backoff, used for
// startup work like the initial database dial. Per-completion retries go
// through the context-aware retry in pkg/llm instead.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

func NewRetryPolicy(maxRetries int, backoff time.Duration) RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = 2
	}
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	return RetryPolicy{MaxRetries: maxRetries, Backoff: backoff}
}

// Do runs fn up to MaxRetries+1 times, sleeping Backoff between attempts,
// and returns the last error.
func (r RetryPolicy) Do(fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt >= r.MaxRetries {
			return err
		}
		time.Sleep(r.Backoff)
	}
}
