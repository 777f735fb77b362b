package httputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestRetrySucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("not found")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return Retryable(errTransient)
	})
	if !errors.Is(err, errTransient) || !IsRetryable(err) {
		t.Errorf("Retry() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error { return Retryable(errTransient) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestPolicyHonoursRetryAfterCap(t *testing.T) {
	p := Policy{Attempts: 2, Delay: time.Hour, MaxDelay: time.Millisecond}
	start := time.Now()
	attempts := 0
	_ = p.Do(context.Background(), func(int) error {
		attempts++
		return &RetryableError{Err: errTransient, After: time.Hour}
	})
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if time.Since(start) > time.Second {
		t.Error("MaxDelay should cap the wait")
	}
}

func TestRetryableNil(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set("Retry-After", tt.value)
		}
		if got := RetryAfter(h); got != tt.want {
			t.Errorf("RetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
