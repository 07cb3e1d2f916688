// Package pipeline provides the install-and-run pipeline for jarl.
//
// This package implements the complete resolve → install → apply → invoke
// sequence used by both CLI commands. By centralising it, the run and setup
// entry points differ only in their [Mode].
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Resolve: Turn the requested version (explicit, range, "latest", or a
//     pin read from a manifest) into one published release
//  2. Install: Take the release from the tool cache or download it
//  3. Apply: Put jarl on PATH, export JARL_OUTPUT_FORMAT, register problem
//     matchers and set the jarl-version output
//  4. Invoke: Run jarl with the requested arguments and sources
//
// # Usage
//
//	runner := pipeline.NewRunner(releases, installer, actions.New(os.Stdout), target, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:        pipeline.ModeRun,
//	    VersionFile: "pyproject.toml",
//	    Args:        []string{"check"},
//	    Src:         []string{"."},
//	})
//
// Side effects already applied are not rolled back when a later stage fails.
package pipeline

import (
	"time"

	"github.com/matzehuels/jarl-action/pkg/actions"
	"github.com/matzehuels/jarl-action/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// Tool is the tool-cache name and artifact prefix.
	Tool = "jarl"

	// Owner and Repo identify the repository publishing releases.
	Owner = "etiennebacher"
	Repo  = "jarl"

	// MinRunVersion is the oldest release ModeRun accepts.
	MinRunVersion = "0.0.247"

	// OutputFormatEnv selects jarl's annotation output.
	OutputFormatEnv   = "JARL_OUTPUT_FORMAT"
	OutputFormatValue = "github"

	// OutputVersion is the step output carrying the installed version.
	OutputVersion = "jarl-version"

	// DefaultArgs is the subcommand run when no arguments are given.
	DefaultArgs = "check"

	// DefaultSrc is the source tree linted when none is given.
	DefaultSrc = "."
)

// Mode selects which entry point behaviour Execute follows.
type Mode int

const (
	// ModeRun infers the version from manifests, enforces MinRunVersion,
	// honours checksums and registers both problem matchers.
	ModeRun Mode = iota
	// ModeSetup installs the requested (or latest) version with no
	// inference, no minimum version and only the check matcher.
	ModeSetup
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeSetup:
		return "setup"
	}
	return "unknown"
}

// Matchers returns the problem matcher files the mode registers.
func (m Mode) Matchers() []string {
	if m == ModeRun {
		return []string{actions.MatcherCheck, actions.MatcherFormat}
	}
	return []string{actions.MatcherCheck}
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Mode        Mode
	Version     string   // explicit version, range, or "latest"; empty means not given
	VersionFile string   // manifest to read the version from (ModeRun only)
	Checksum    string   // expected archive digest (ModeRun only)
	GitHubToken string   // optional
	Args        []string // jarl arguments, DefaultArgs when empty
	Src         []string // source paths, DefaultSrc when empty

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Constraint is the version request before resolution.
	Constraint string

	// Version is the installed release.
	Version string

	// Dir is the directory holding the executable.
	Dir string

	// Executable is the absolute path of the jarl binary.
	Executable string

	// Cached reports whether the tool cache served the release.
	Cached bool

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime time.Duration
	InstallTime time.Duration
	RunTime     time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the inputs and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode != ModeRun && o.Mode != ModeSetup {
		return errors.New(errors.ErrCodeInvalidInput, "unknown mode %d", int(o.Mode))
	}
	if o.Mode == ModeRun && o.Version != "" && o.VersionFile != "" {
		return errors.New(errors.ErrCodeInvalidInput, "It is not allowed to specify both version and version-file")
	}
	if err := errors.ValidateVersionInput(o.Version); err != nil {
		return err
	}
	if o.Mode == ModeRun && o.Checksum != "" {
		if err := errors.ValidateChecksum(o.Checksum); err != nil {
			return err
		}
	}

	if len(o.Args) == 0 {
		o.Args = []string{DefaultArgs}
	}
	if len(o.Src) == 0 {
		o.Src = []string{DefaultSrc}
	}
	o.validated = true
	return nil
}
