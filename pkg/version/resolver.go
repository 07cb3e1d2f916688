package version

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/observability"
)

// Releases lists the published releases of the tool.
// It is implemented by the GitHub release client.
type Releases interface {
	// Latest returns the tag of the release marked as latest.
	Latest(ctx context.Context) (string, error)
	// List returns the tags of all published releases.
	List(ctx context.Context) ([]string, error)
}

// Resolver maps a constraint to a single concrete release.
type Resolver struct {
	releases Releases
	logger   *log.Logger
}

// NewResolver creates a Resolver backed by releases.
// If logger is nil, log.Default() is used.
func NewResolver(releases Releases, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{releases: releases, logger: logger}
}

// Resolve returns the release to install for constraint.
//
// "latest" is replaced by the latest release tag. An explicit version is
// returned unchanged without listing releases. Anything else is matched
// against all published releases with [MaxSatisfying]; when nothing
// matches, the error has code NO_MATCH.
func (r *Resolver) Resolve(ctx context.Context, constraint string) (string, error) {
	start := time.Now()
	resolved, err := r.resolve(ctx, constraint)
	observability.Install().OnResolve(ctx, constraint, resolved, time.Since(start), err)
	return resolved, err
}

func (r *Resolver) resolve(ctx context.Context, constraint string) (string, error) {
	r.logger.Debug("resolving version", "constraint", constraint)

	v := constraint
	if v == Latest {
		tag, err := r.releases.Latest(ctx)
		if err != nil {
			return "", err
		}
		if tag == "" {
			return "", errors.New(errors.ErrCodeRegistry, "could not determine latest release")
		}
		v = tag
	}

	if IsExplicit(v) {
		r.logger.Debug("version is explicit", "version", v)
		return v, nil
	}

	available, err := r.releases.List(ctx)
	if err != nil {
		return "", err
	}
	best, grammar, ok := MaxSatisfying(available, v)
	if !ok {
		return "", errors.New(errors.ErrCodeNoMatch, "no version found for %s", v)
	}
	r.logger.Debug("resolved version", "constraint", v, "version", best, "grammar", grammar)
	return best, nil
}
