// Package httputil provides the retry policy used by the icon API clients.
//
// Only errors wrapped in [RetryableError] are retried: connection failures,
// 5xx responses and 429 rate limits. Everything else, including 404 for an
// unknown icon set, is returned on the first attempt.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(ctx)
//	})
//
// A server may ask for a specific wait with Retry-After; [RetryableError.After]
// carries that hint and overrides the backoff for that attempt, bounded by
// [Policy.MaxDelay].
package httputil
