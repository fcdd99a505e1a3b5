package llm

import (
	"context"
	"sync"
	"time"

	"github.com/mckayn10/ai-chat-app/pkg/metrics"
	"github.com/mckayn10/ai-chat-app/pkg/resilience"
)

// CircuitBreakerClient wraps a Client with rate-limit circuit breaking.
type CircuitBreakerClient struct {
	inner   Client
	breaker *resilience.CircuitBreaker
	obs     metrics.Observer
	open    bool
	mu      sync.Mutex
}

func NewCircuitBreakerClient(inner Client, breaker *resilience.CircuitBreaker) *CircuitBreakerClient {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(3, 30*time.Second)
	}
	return &CircuitBreakerClient{inner: inner, breaker: breaker}
}

func (c *CircuitBreakerClient) Name() string { return c.inner.Name() }

// SetObserver allows metrics emission for breaker events.
func (c *CircuitBreakerClient) SetObserver(obs metrics.Observer) { c.obs = obs }

func (c *CircuitBreakerClient) Generate(ctx context.Context, input Context) (Response, error) {
	if !c.breaker.Allow() {
		c.setOpen(true)
		c.record(metrics.EventBreakerDenied)
		return Response{}, resilience.RateLimitError{Provider: c.Name(), Message: "degraded"}
	}
	c.setOpen(false)
	resp, err := c.inner.Generate(ctx, input)
	if err != nil {
		if resilience.IsRateLimit(err) {
			c.record(metrics.EventRateLimit)
		}
		c.breaker.OnError(err)
		return Response{}, err
	}
	c.breaker.OnSuccess()
	return resp, nil
}

func (c *CircuitBreakerClient) record(name string) {
	if c.obs == nil {
		return
	}
	c.obs.RecordEvent(metrics.MetricsEvent{
		Name: name,
		Time: time.Now(),
		Tags: map[string]string{
			"provider":  c.inner.Name(),
			"component": "llm",
		},
	})
}

func (c *CircuitBreakerClient) setOpen(open bool) {
	c.mu.Lock()
	changed := c.open != open
	c.open = open
	c.mu.Unlock()
	if !changed {
		return
	}
	if open {
		c.record(metrics.EventBreakerOpen)
		return
	}
	c.record(metrics.EventBreakerClose)
}

var _ Client = (*CircuitBreakerClient)(nil)
