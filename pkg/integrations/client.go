package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/matzehuels/jarl-action/pkg/buildinfo"
	apperrors "github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/httputil"
	"github.com/matzehuels/jarl-action/pkg/observability"
)

// Client provides shared HTTP functionality for the GitHub API and release
// downloads. It handles retry logic, status mapping and common request headers.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client for API requests with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(headers map[string]string) *Client {
	return &Client{http: NewHTTPClient(), headers: headers}
}

// NewDownloadClient creates a Client for artifact downloads (no overall timeout).
func NewDownloadClient(headers map[string]string) *Client {
	return &Client{http: NewDownloadHTTPClient(), headers: headers}
}

// WithHTTPClient returns a copy of c that sends requests through h.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	return &Client{http: h, headers: c.headers}
}

// WithHeader returns a copy of c that also sends the default header key.
func (c *Client) WithHeader(key, value string) *Client {
	headers := maps.Clone(c.headers)
	if headers == nil {
		headers = make(map[string]string)
	}
	headers[key] = value
	return &Client{http: c.http, headers: headers}
}

// Without returns a copy of c with the default header key removed.
// It is used to retry a request anonymously after an auth failure.
func (c *Client) Without(key string) *Client {
	headers := maps.Clone(c.headers)
	delete(headers, key)
	return &Client{http: c.http, headers: headers}
}

// Header returns the default header value for key.
func (c *Client) Header(key string) string {
	return c.headers[key]
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers and handles retries automatically.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		resp, err := c.do(ctx, url, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return json.NewDecoder(resp.Body).Decode(v)
	})
}

// GetPage performs a GET like [Client.Get] and also returns the URL of the
// next page from the Link header, or "" when this is the last page.
func (c *Client) GetPage(ctx context.Context, url string, v any) (next string, err error) {
	err = httputil.RetryWithBackoff(ctx, func() error {
		resp, err := c.do(ctx, url, nil)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		next = httputil.NextLink(resp.Header)
		return json.NewDecoder(resp.Body).Decode(v)
	})
	return next, err
}

// Download streams the body of url into the file at dst, creating or
// truncating it on every attempt so a retried transfer never appends to a
// partial one. It returns the number of bytes written.
func (c *Client) Download(ctx context.Context, url, dst string) (int64, error) {
	start := time.Now()
	var n int64
	err := httputil.RetryWithBackoff(ctx, func() error {
		resp, err := c.do(ctx, url, map[string]string{"Accept": "application/octet-stream"})
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		f, err := os.Create(dst)
		if err != nil {
			return err
		}
		n, err = io.Copy(f, resp.Body)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		return nil
	})
	observability.Install().OnDownload(ctx, url, n, time.Since(start), err)
	return n, err
}

func (c *Client) do(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(rawURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// maxRetryAfter is the longest Retry-After the client waits out itself.
// Longer waits (the hourly primary limit) fail the request.
const maxRetryAfter = 10 * time.Second

func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		header := resp.Header.Get("Retry-After")
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || header != "" {
			retryAfter, _ := strconv.Atoi(header)
			err := apperrors.Wrap(apperrors.ErrCodeRateLimited,
				&apperrors.RateLimitedError{RetryAfter: retryAfter, Message: "GitHub API rate limit exceeded"},
				"request rejected with status %d", resp.StatusCode)
			if wait := time.Duration(retryAfter) * time.Second; wait > 0 && wait <= maxRetryAfter {
				return &httputil.RetryableError{Err: err, After: wait}
			}
			return err
		}
	}
	return checkStatus(resp.StatusCode)
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func hostPath(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
