package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.Out = io.Discard

	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RUNNER_TOOL_CACHE", dir)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RUNNER_TOOL_CACHE", dir)

	out, err := execute(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "Tool cache is empty") {
		t.Errorf("empty cache list = %q", out)
	}

	entry := filepath.Join(dir, "jarl", "0.1.0", "x64")
	if err := os.MkdirAll(entry, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry+".complete", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err = execute(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "0.1.0 x64") || !strings.Contains(out, entry) {
		t.Errorf("cache list = %q", out)
	}
}

func TestRunRejectsVersionAndVersionFile(t *testing.T) {
	t.Setenv("RUNNER_TOOL_CACHE", t.TempDir())
	t.Setenv("RUNNER_TEMP", t.TempDir())

	_, err := execute(t, "run", "--version", "0.1.0", "--version-file", "pyproject.toml")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("run error = %v, want INVALID_INPUT", err)
	}
}

func TestInvalidRepository(t *testing.T) {
	_, err := execute(t, "setup", "--repository", "not-a-repo")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("setup error = %v, want INVALID_INPUT", err)
	}
}

func TestRejectsPositionalArgs(t *testing.T) {
	if _, err := execute(t, "run", "extra"); err == nil {
		t.Fatal("run accepted a positional argument")
	}
}

func TestInputsFromEnvironment(t *testing.T) {
	t.Setenv("INPUT_VERSION", " 0.2.0 ")
	t.Setenv("INPUT_ARGS", "format --check")
	t.Setenv("INPUT_SRC", "pkg  tests")
	t.Setenv("INPUT_GITHUB-TOKEN", "ghs_token")

	var in inputs
	cmd := &cobra.Command{}
	in.register(cmd, pipeline.ModeRun)
	opts := in.options(pipeline.ModeRun)

	if opts.Version != "0.2.0" {
		t.Errorf("Version = %q", opts.Version)
	}
	if opts.GitHubToken != "ghs_token" {
		t.Errorf("GitHubToken = %q", opts.GitHubToken)
	}
	if want := []string{"format", "--check"}; !reflect.DeepEqual(opts.Args, want) {
		t.Errorf("Args = %q, want %q", opts.Args, want)
	}
	if want := []string{"pkg", "tests"}; !reflect.DeepEqual(opts.Src, want) {
		t.Errorf("Src = %q, want %q", opts.Src, want)
	}
}

func TestInputDefaults(t *testing.T) {
	var in inputs
	cmd := &cobra.Command{}
	in.register(cmd, pipeline.ModeSetup)
	opts := in.options(pipeline.ModeSetup)

	if !reflect.DeepEqual(opts.Args, []string{pipeline.DefaultArgs}) {
		t.Errorf("Args = %q", opts.Args)
	}
	if !reflect.DeepEqual(opts.Src, []string{pipeline.DefaultSrc}) {
		t.Errorf("Src = %q", opts.Src)
	}
	for _, name := range []string{"version-file", "checksum"} {
		if cmd.Flags().Lookup(name) != nil {
			t.Errorf("setup should not define --%s", name)
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out, "jarl-action") {
		t.Error("bash completion should mention the command name")
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unknown shell")
	}
}
