package integrations

import (
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a release or asset doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for 401 responses, which GitHub sends for
	// a missing, expired or malformed token ("Bad credentials").
	ErrUnauthorized = errors.New("bad credentials")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewDownloadHTTPClient creates an HTTP client for release downloads.
// It has no overall timeout since artifact size is unbounded; the request
// context still cancels it.
func NewDownloadHTTPClient() *http.Client {
	return &http.Client{}
}
