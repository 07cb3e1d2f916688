package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarl-action/pkg/actions"
	"github.com/matzehuels/jarl-action/pkg/pipeline"
)

// inputs holds the action inputs. Each flag defaults to the matching
// INPUT_* variable the runner sets from the workflow's `with:` block.
type inputs struct {
	version     string
	versionFile string
	checksum    string
	githubToken string
	args        string
	src         string
}

func (in *inputs) register(cmd *cobra.Command, mode pipeline.Mode) {
	f := cmd.Flags()
	f.StringVar(&in.version, "version", actions.Input("version"), `jarl version, range or "latest"`)
	f.StringVar(&in.githubToken, "github-token", actions.Input("github-token"), "token for GitHub API requests")
	f.StringVar(&in.args, "args", inputOr("args", pipeline.DefaultArgs), "arguments passed to jarl")
	f.StringVar(&in.src, "src", inputOr("src", pipeline.DefaultSrc), "space-separated source paths")
	if mode == pipeline.ModeRun {
		f.StringVar(&in.versionFile, "version-file", actions.Input("version-file"), "read the jarl version from a pyproject.toml or requirements file")
		f.StringVar(&in.checksum, "checksum", actions.Input("checksum"), "expected sha256 (or algo:hex) of the release archive")
	}
}

func (in *inputs) options(mode pipeline.Mode) pipeline.Options {
	return pipeline.Options{
		Mode:        mode,
		Version:     strings.TrimSpace(in.version),
		VersionFile: strings.TrimSpace(in.versionFile),
		Checksum:    strings.TrimSpace(in.checksum),
		GitHubToken: strings.TrimSpace(in.githubToken),
		Args:        strings.Fields(in.args),
		Src:         strings.Fields(in.src),
	}
}

func inputOr(name, fallback string) string {
	if v := actions.Input(name); v != "" {
		return v
	}
	return fallback
}
