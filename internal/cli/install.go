package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarl-action/pkg/pipeline"
)

// runCommand creates the run command (the main action).
func (c *CLI) runCommand() *cobra.Command {
	return c.pipelineCommand(pipeline.ModeRun, &cobra.Command{
		Use:   "run",
		Short: "Install jarl and lint the sources",
		Long: `Install jarl and lint the sources.

The version comes from --version, else from --version-file, else from
<src>/pyproject.toml, else the latest release. Releases older than ` + pipeline.MinRunVersion + `
are rejected.`,
	})
}

// setupCommand creates the setup command.
func (c *CLI) setupCommand() *cobra.Command {
	return c.pipelineCommand(pipeline.ModeSetup, &cobra.Command{
		Use:   "setup",
		Short: "Install a jarl version and run it",
		Long: `Install the requested jarl version (or the latest release) and run it.

No manifest is consulted and no checksum is verified.`,
	})
}

func (c *CLI) pipelineCommand(mode pipeline.Mode, cmd *cobra.Command) *cobra.Command {
	var in inputs
	in.register(cmd, mode)
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)
		prog := newProgress(logger)

		runner, err := c.newRunner(in.githubToken)
		if err != nil {
			return err
		}
		result, err := runner.Execute(ctx, in.options(mode))
		if err != nil {
			return err
		}

		prog.done("Finished " + pipeline.Tool + " " + result.Version)
		return nil
	}
	return cmd
}
