package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

const (
	perPage = 100

	outageHint = "GitHub API request failed while getting releases. " +
		"Check the GitHub status page for outages. Try again later."
	anonymousHint = "No (valid) GitHub token provided. Falling back to anonymous. " +
		"Requests might be rate limited."
)

// ReleaseClient lists the published releases of one repository.
// It satisfies version.Releases.
type ReleaseClient struct {
	*integrations.Client
	baseURL string
	owner   string
	repo    string
	logger  *log.Logger
}

// NewReleaseClient creates a client for the releases of owner/repo.
// Pass an empty token for anonymous requests (60 requests/hour). An empty
// baseURL means [DefaultBaseURL].
func NewReleaseClient(baseURL, owner, repo, token string, logger *log.Logger) *ReleaseClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &ReleaseClient{
		Client:  integrations.NewClient(headers),
		baseURL: baseURL,
		owner:   owner,
		repo:    repo,
		logger:  logger,
	}
}

// Latest returns the tag name of the latest published release.
func (c *ReleaseClient) Latest(ctx context.Context) (string, error) {
	var tag string
	err := c.withFallback(func(api *integrations.Client) error {
		var rel release
		if err := api.Get(ctx, c.endpoint("releases/latest"), &rel); err != nil {
			return err
		}
		tag = rel.TagName
		return nil
	})
	if err != nil {
		if !errors.Is(err, integrations.ErrUnauthorized) {
			c.logger.Error(outageHint)
		}
		return "", wrapErr(err, "get latest release of %s/%s", c.owner, c.repo)
	}
	return tag, nil
}

// List returns the tag names of all published releases, following
// pagination, in the order the API returns them. Drafts, which a token with
// push access can see, are skipped since their assets cannot be downloaded
// by tag.
func (c *ReleaseClient) List(ctx context.Context) ([]string, error) {
	var tags []string
	err := c.withFallback(func(api *integrations.Client) error {
		tags = tags[:0]
		next := c.endpoint("releases") + "?" + url.Values{"per_page": {fmt.Sprint(perPage)}}.Encode()
		for next != "" {
			var page []release
			var err error
			if next, err = api.GetPage(ctx, next, &page); err != nil {
				return err
			}
			for _, r := range page {
				if !r.Draft {
					tags = append(tags, r.TagName)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err, "list releases of %s/%s", c.owner, c.repo)
	}
	if len(tags) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeRegistry, outageHint)
	}
	c.logger.Debug("listed releases", "repo", c.owner+"/"+c.repo, "count", len(tags))
	return tags, nil
}

// withFallback runs fn with the configured client and, when the token is
// rejected, exactly once more without the Authorization header.
func (c *ReleaseClient) withFallback(fn func(*integrations.Client) error) error {
	err := fn(c.Client)
	if !errors.Is(err, integrations.ErrUnauthorized) || c.Header("Authorization") == "" {
		return err
	}
	c.logger.Info(anonymousHint)
	return fn(c.Without("Authorization"))
}

func (c *ReleaseClient) endpoint(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/%s", c.baseURL, c.owner, c.repo, path)
}

func wrapErr(err error, format string, args ...any) error {
	switch {
	case apperrors.GetCode(err) != "":
		return err
	case errors.Is(err, integrations.ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, err, format, args...)
	case errors.Is(err, integrations.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err, format, args...)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, format, args...)
	}
}

type release struct {
	TagName string `json:"tag_name"`
	Draft   bool   `json:"draft"`
}
