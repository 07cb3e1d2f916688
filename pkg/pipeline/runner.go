package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarl-action/pkg/actions"
	"github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/install"
	"github.com/matzehuels/jarl-action/pkg/manifest"
	"github.com/matzehuels/jarl-action/pkg/observability"
	"github.com/matzehuels/jarl-action/pkg/version"
)

// Acquirer obtains an installed release. *install.Installer implements it.
type Acquirer interface {
	Acquire(ctx context.Context, req install.Request) (*install.Result, error)
}

// Effects applies changes to the CI host. *actions.Runner implements it.
type Effects interface {
	AddPath(dir string) error
	ExportVariable(name, value string) error
	SetOutput(name, value string) error
	AddMatcher(path string)
	Warning(msg string)
}

// Invoker runs the installed tool.
type Invoker interface {
	Invoke(ctx context.Context, path string, args []string) error
}

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for its collaborators; it doesn't store
// results between runs.
type Runner struct {
	Releases   version.Releases
	Installer  Acquirer
	Effects    Effects
	Invoker    Invoker
	Target     install.Target
	MatcherDir string // where problem matchers are written before registration
	Logger     *log.Logger
}

// NewRunner creates a runner. The tool is invoked as a subprocess with the
// current stdio and matchers are written below the runner temp directory.
// If logger is nil, log.Default() is used.
func NewRunner(releases version.Releases, installer Acquirer, effects Effects, target install.Target, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Releases:   releases,
		Installer:  installer,
		Effects:    effects,
		Invoker:    ExecInvoker{},
		Target:     target,
		MatcherDir: filepath.Join(actions.TempDir(), "jarl-action"),
		Logger:     logger,
	}
}

// Execute runs the complete resolve → install → apply → invoke pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	result.Constraint = r.DetermineVersion(opts)
	resolved, err := version.NewResolver(r.Releases, r.Logger).Resolve(ctx, result.Constraint)
	if err != nil {
		return nil, err
	}
	if opts.Mode == ModeRun {
		if err := checkMinimum(resolved); err != nil {
			return nil, err
		}
	}
	result.Stats.ResolveTime = time.Since(resolveStart)

	// Stage 2: Install
	installStart := time.Now()
	req := install.Request{Target: r.Target, Version: resolved, Token: opts.GitHubToken}
	if opts.Mode == ModeRun {
		req.Checksum = opts.Checksum
	}
	installed, err := r.Installer.Acquire(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Version = installed.Version
	result.Dir = installed.Dir
	result.Cached = installed.Cached
	result.Executable = filepath.Join(installed.Dir, r.Target.Executable(Tool))
	result.Stats.InstallTime = time.Since(installStart)

	// Stage 3: Apply
	if err := r.ApplyEffects(result, opts.Mode); err != nil {
		return nil, err
	}
	r.Logger.Info("Successfully installed " + Tool + " version " + result.Version)

	// Stage 4: Invoke
	runStart := time.Now()
	err = r.Invoke(ctx, result.Executable, opts)
	result.Stats.RunTime = time.Since(runStart)
	if err != nil {
		return result, err
	}

	r.Logger.Debug("pipeline finished",
		"version", result.Version,
		"cached", result.Cached,
		"resolve", result.Stats.ResolveTime,
		"install", result.Stats.InstallTime,
		"run", result.Stats.RunTime)
	return result, nil
}

// DetermineVersion picks the version constraint to resolve.
//
// In ModeRun the sources are, in order: the explicit version, the version
// file, and <first src>/pyproject.toml; each falls back to "latest" when
// it yields nothing. ModeSetup only considers the explicit version.
func (r *Runner) DetermineVersion(opts Options) string {
	if opts.Version != "" {
		return opts.Version
	}
	if opts.Mode != ModeRun {
		return version.Latest
	}

	if opts.VersionFile != "" {
		if v, ok := manifest.FromFile(opts.VersionFile, Tool, r.Logger); ok {
			return v
		}
		r.Effects.Warning("Could not parse version from " + opts.VersionFile + ". Using latest version.")
		return version.Latest
	}

	src := DefaultSrc
	if len(opts.Src) > 0 {
		src = opts.Src[0]
	}
	pyproject := filepath.Join(src, "pyproject.toml")
	if _, err := os.Stat(pyproject); err != nil {
		r.Logger.Info("Could not find " + pyproject + ". Using latest version.")
		return version.Latest
	}
	if v, ok := manifest.FromFile(pyproject, Tool, r.Logger); ok {
		return v
	}
	r.Logger.Info("Could not parse version from " + pyproject + ". Using latest version.")
	return version.Latest
}

// ApplyEffects exposes the installed release to the rest of the job.
func (r *Runner) ApplyEffects(result *Result, mode Mode) error {
	if err := r.Effects.AddPath(result.Dir); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "add %s to PATH", result.Dir)
	}
	r.Logger.Info("Added " + result.Dir + " to the path")

	if err := r.Effects.ExportVariable(OutputFormatEnv, OutputFormatValue); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "export %s", OutputFormatEnv)
	}
	r.Logger.Info("Set " + OutputFormatEnv + " to " + OutputFormatValue)

	paths, err := actions.WriteMatchers(r.MatcherDir, mode.Matchers()...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write problem matchers")
	}
	for _, p := range paths {
		r.Effects.AddMatcher(p)
	}

	if err := r.Effects.SetOutput(OutputVersion, result.Version); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "set output %s", OutputVersion)
	}
	return nil
}

// Invoke runs the executable with opts.Args followed by opts.Src.
// A non-zero exit is a TOOL_FAILED error.
func (r *Runner) Invoke(ctx context.Context, executable string, opts Options) error {
	args := append(append([]string{}, opts.Args...), opts.Src...)
	r.Logger.Debug("running "+Tool, "path", executable, "args", args)

	start := time.Now()
	err := r.Invoker.Invoke(ctx, executable, args)
	observability.Install().OnInvoke(ctx, executable, args, time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeToolFailed, err, "%s failed", Tool)
	}
	return nil
}

// checkMinimum rejects releases older than MinRunVersion.
func checkMinimum(resolved string) error {
	older, err := version.Less(resolved, MinRunVersion)
	if err != nil {
		return err
	}
	if older {
		return errors.New(errors.ErrCodeUnsupportedVersion,
			"This action does not support %s versions older than %s", Tool, MinRunVersion)
	}
	return nil
}

// ExecInvoker runs the tool as a subprocess sharing this process's stdio.
type ExecInvoker struct{}

// Invoke implements Invoker.
func (ExecInvoker) Invoke(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
