package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/inspectkit/apierror"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	cfg := DefaultRetryConfig()
	callCount := 0

	result, err := Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetry_SucceedsAfterNetworkFailures(t *testing.T) {
	callCount := 0

	result, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", refused()
		}
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_ExceedsMaxAttempts(t *testing.T) {
	callCount := 0
	testErr := outage(503)

	_, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		callCount++
		return "", testErr
	})

	if !errors.Is(err, testErr) {
		t.Errorf("expected testErr, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_FollowsRetryPolicy(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		calls int
	}{
		{"network", refused(), 3},
		{"rate limited", outage(429), 3},
		{"request timeout", outage(408), 3},
		{"service unavailable", outage(503), 3},
		{"not found", outage(404), 1},
		{"bad request", outage(400), 1},
		{"validation", outage(422), 1},
		{"plain exception", errors.New("plain failure"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callCount := 0
			_ = RetryFunc(context.Background(), fastRetry(3), func() error {
				callCount++
				return tt.err
			})
			if callCount != tt.calls {
				t.Errorf("expected %d calls, got %d", tt.calls, callCount)
			}
		})
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    10,
		InitialBackoff: 100 * time.Millisecond,
		BackoffFactor:  2.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	callCount := 0
	_, err := Retry(ctx, cfg, func() (string, error) {
		callCount++
		return "", refused()
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if callCount >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", callCount)
	}
}

func TestRetry_CustomRetryIf(t *testing.T) {
	cfg := fastRetry(3)
	cfg.RetryIf = func(p *apierror.ParsedError) bool {
		return p.IsNotFound()
	}

	callCount := 0
	_, err := Retry(context.Background(), cfg, func() (int, error) {
		callCount++
		return 0, outage(404)
	})
	if callCount != 3 {
		t.Errorf("expected 3 calls for custom retryable error, got %d", callCount)
	}
	if err == nil {
		t.Error("expected error")
	}

	callCount = 0
	_, _ = Retry(context.Background(), cfg, func() (int, error) {
		callCount++
		return 0, outage(503)
	})
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetry_OnRetryReceivesClassification(t *testing.T) {
	var retries []int
	var codes []apierror.ErrorCode
	var mu sync.Mutex

	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, p *apierror.ParsedError, backoff time.Duration) {
		mu.Lock()
		retries = append(retries, attempt)
		codes = append(codes, p.Code)
		mu.Unlock()
	}

	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", outage(503)
	})

	mu.Lock()
	defer mu.Unlock()

	// Called before each retry, not before the first attempt.
	if len(retries) != 2 {
		t.Fatalf("expected 2 OnRetry calls, got %d", len(retries))
	}
	if retries[0] != 1 || retries[1] != 2 {
		t.Errorf("expected attempts [1, 2], got %v", retries)
	}
	for _, c := range codes {
		if c != apierror.CodeServiceUnavailable {
			t.Errorf("expected %s, got %s", apierror.CodeServiceUnavailable, c)
		}
	}
}

func TestDefaultRetryIf_Nil(t *testing.T) {
	if DefaultRetryIf(nil) {
		t.Error("expected nil classification not to be retried")
	}
}

func TestDefaultRetryIf_UsesClassificationOnly(t *testing.T) {
	cancelled := apierror.Classify(&apierror.TransportError{Op: "GET /x", Err: context.Canceled})
	timedOut := apierror.Classify(&apierror.TransportError{Op: "GET /x", Code: apierror.TransportCodeAborted})

	if cancelled.Code != timedOut.Code || cancelled.Status != timedOut.Status {
		t.Fatalf("expected identical classifications, got %s/%d and %s/%d",
			cancelled.Code, cancelled.Status, timedOut.Code, timedOut.Status)
	}
	if DefaultRetryIf(cancelled) != DefaultRetryIf(timedOut) {
		t.Error("expected the same decision for identical classifications")
	}
}

func TestRetry_StopsWhenContextCancelledDuringAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callCount := 0
	_, err := Retry(ctx, fastRetry(5), func() (string, error) {
		callCount++
		cancel()
		return "", fmt.Errorf("submit: %w", ctx.Err())
	})

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_ReturnsLastResultOnFailure(t *testing.T) {
	callCount := 0
	result, err := Retry(context.Background(), fastRetry(3), func() (int, error) {
		callCount++
		return callCount, outage(503)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if result != 3 {
		t.Errorf("expected result of the last attempt, got %d", result)
	}

	result, _ = Retry(context.Background(), fastRetry(3), func() (int, error) {
		return 42, outage(404)
	})
	if result != 42 {
		t.Errorf("expected result of the rejected attempt, got %d", result)
	}
}

func TestRetryConfig_ApplyDefaults(t *testing.T) {
	var cfg RetryConfig
	cfg.ApplyDefaults()

	if cfg.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", cfg.InitialBackoff)
	}
	if cfg.MaxBackoff != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.MaxBackoff)
	}
	if cfg.RetryIf == nil {
		t.Error("expected RetryIf default")
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     1 * time.Second,
		BackoffFactor:  2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second}, // capped
		{6, 1 * time.Second},
	}

	for _, tt := range tests {
		got := calculateBackoff(tt.attempt, cfg)
		if got != tt.expected {
			t.Errorf("attempt %d: expected %v, got %v", tt.attempt, tt.expected, got)
		}
	}
}

func TestCalculateBackoff_JitterBounds(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.5,
	}
	for i := 0; i < 50; i++ {
		got := calculateBackoff(2, cfg)
		if got < 100*time.Millisecond || got > 300*time.Millisecond {
			t.Fatalf("expected backoff within [100ms, 300ms], got %v", got)
		}
	}
}
