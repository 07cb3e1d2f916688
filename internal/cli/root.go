package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarl-action/pkg/actions"
	"github.com/matzehuels/jarl-action/pkg/buildinfo"
	"github.com/matzehuels/jarl-action/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v) or RUNNER_DEBUG=1: debug level, plus debug
//     events for every HTTP request, cache lookup and tool run
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Install jarl and run it in GitHub Actions",
		Long:          `jarl-action resolves a jarl release, installs it from the runner tool cache or GitHub, and runs it against the repository with GitHub annotations enabled.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose || actions.IsDebug() {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.repository, "repository", defaultRepository, "GitHub repository publishing jarl releases (owner/repo)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.setupCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
