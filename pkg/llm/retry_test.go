package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	attempts := 0
	resp, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 3,
		Sleep:       func(time.Duration) {},
	}, func(ctx context.Context) (Response, error) {
		attempts++
		if attempts < 3 {
			return Response{}, errors.New("transient")
		}
		return Response{Text: "ok"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" || attempts != 3 {
		t.Fatalf("unexpected outcome: %q after %d attempts", resp.Text, attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 2,
		Sleep:       func(time.Duration) {},
	}, func(ctx context.Context) (Response, error) {
		attempts++
		return Response{}, errors.New("still down")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 3,
		Sleep:       func(time.Duration) {},
		IsRetryable: func(error) bool { return false },
	}, func(ctx context.Context) (Response, error) {
		attempts++
		return Response{}, errors.New("fatal")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("non-retryable error must not be retried, got %d attempts", attempts)
	}
}

func TestRetryHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, RetryConfig{MaxAttempts: 3}, func(ctx context.Context) (Response, error) {
		t.Fatalf("fn must not run with a cancelled context")
		return Response{}, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultIsRetryable(t *testing.T) {
	if DefaultIsRetryable(context.Canceled) {
		t.Fatalf("cancellation must not retry")
	}
	if DefaultIsRetryable(context.DeadlineExceeded) {
		t.Fatalf("deadline must not retry")
	}
	if !DefaultIsRetryable(errors.New("connection reset")) {
		t.Fatalf("generic errors should retry")
	}
}
