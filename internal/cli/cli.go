package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarl-action/pkg/actions"
	"github.com/matzehuels/jarl-action/pkg/install"
	"github.com/matzehuels/jarl-action/pkg/integrations/github"
	"github.com/matzehuels/jarl-action/pkg/pipeline"
	"github.com/matzehuels/jarl-action/pkg/toolcache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "jarl-action"

	// defaultRepository publishes the jarl releases.
	defaultRepository = pipeline.Owner + "/" + pipeline.Repo
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives GitHub Actions workflow commands.
	Out io.Writer

	repository string
	verbose    bool
}

// New creates a new CLI instance logging to w at level. Workflow commands
// go to stdout, where the runner reads them.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner wires the pipeline for the current host and runner environment.
func (c *CLI) newRunner(token string) (*pipeline.Runner, error) {
	owner, repo, err := github.ParseRepoRef(c.repository)
	if err != nil {
		return nil, err
	}
	target, err := install.Detect()
	if err != nil {
		return nil, err
	}
	cache, err := openToolCache()
	if err != nil {
		return nil, err
	}

	releases := github.NewReleaseClient(os.Getenv("GITHUB_API_URL"), owner, repo, token, c.Logger)
	installer := install.New(install.Config{
		Tool:      pipeline.Tool,
		Owner:     owner,
		Repo:      repo,
		ServerURL: os.Getenv("GITHUB_SERVER_URL"),
		TempDir:   actions.TempDir(),
		Cache:     cache,
		Logger:    c.Logger,
	})
	return pipeline.NewRunner(releases, installer, actions.New(c.Out), target, c.Logger), nil
}

func openToolCache() (*toolcache.Cache, error) {
	root, err := toolcache.DefaultRoot()
	if err != nil {
		return nil, err
	}
	return toolcache.New(root), nil
}
