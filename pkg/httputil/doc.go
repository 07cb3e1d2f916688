// Package httputil provides HTTP utilities shared by the GitHub clients.
//
// # Retry
//
// [Retry] wraps a request with automatic retry for transient failures.
// Only errors wrapped in [RetryableError] are retried; the registry client
// wraps network errors and 5xx responses, never 4xx responses:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(ctx)
//	})
//
// Defaults are 3 attempts with a 1 second initial delay that doubles
// after each attempt. A [RetryableError] with After set overrides the
// next delay.
//
// # Pagination
//
// [NextLink] extracts the rel="next" URL from a Link response header so
// callers can walk every page of a GitHub list endpoint.
package httputil
