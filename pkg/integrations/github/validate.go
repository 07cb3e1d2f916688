package github

import (
	"regexp"
	"strings"

	apperrors "github.com/matzehuels/jarl-action/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ParseRepoRef parses an "owner/repo" string and validates both parts.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return "", "", apperrors.New(apperrors.ErrCodeInvalidInput, "invalid repository %q: use owner/repo", ref)
	}
	if !validOwner.MatchString(owner) {
		return "", "", apperrors.New(apperrors.ErrCodeInvalidInput, "invalid repository owner %q", owner)
	}
	if !validRepo.MatchString(repo) {
		return "", "", apperrors.New(apperrors.ErrCodeInvalidInput, "invalid repository name %q", repo)
	}
	return owner, repo, nil
}
