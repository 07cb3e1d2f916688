// Package integrations provides the HTTP plumbing for talking to GitHub.
//
// # Overview
//
// [Client] wraps an *http.Client with default headers, retries and status
// mapping. It is shared by the release API client in the [github]
// subpackage and by the artifact installer for downloads:
//
//	api := integrations.NewClient(map[string]string{"Accept": "application/vnd.github+json"})
//	var release struct{ TagName string `json:"tag_name"` }
//	err := api.Get(ctx, "https://api.github.com/repos/etiennebacher/jarl/releases/latest", &release)
//
// # Errors
//
// Responses are mapped to sentinel errors so callers can react with
// errors.Is:
//
//   - [ErrNotFound]: 404
//   - [ErrUnauthorized]: 401, a bad or expired token
//   - [ErrNetwork]: transport failures and other non-2xx responses
//
// Transport failures and 5xx responses are wrapped in
// [httputil.RetryableError] and retried with backoff. Exhausted GitHub
// rate limits carry the RATE_LIMITED code from [errors].
//
// # Pagination
//
// [Client.GetPage] returns the rel="next" URL of list endpoints so callers
// can walk all pages.
//
// [github]: github.com/matzehuels/jarl-action/pkg/integrations/github
// [errors]: github.com/matzehuels/jarl-action/pkg/errors
package integrations
