package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// RetryableError marks a transient failure. After, when positive, is the
// delay the server asked for.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is or wraps a RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy controls how often and how long Do waits between attempts.
type Policy struct {
	Attempts int
	Delay    time.Duration // first wait, doubled after each failure
	MaxDelay time.Duration // cap for both backoff and Retry-After; 0 means no cap
}

// DefaultPolicy is used by RetryWithBackoff.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempts run out. attempt counts from 0. It returns the last error, or
// ctx.Err() when cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		err := fn(i)
		if err == nil {
			return nil
		}
		lastErr = err
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if p.MaxDelay > 0 && wait > p.MaxDelay {
			wait = p.MaxDelay
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return lastErr
}

// Retry runs fn up to attempts times starting with delay between tries.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Policy{Attempts: attempts, Delay: delay}.Do(ctx, func(int) error { return fn() })
}

// RetryWithBackoff runs fn under DefaultPolicy.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultPolicy.Do(ctx, func(int) error { return fn() })
}

// RetryAfter parses a Retry-After header given in seconds. HTTP dates are
// not supported and yield 0.
func RetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
