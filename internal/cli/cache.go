package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarl-action/pkg/pipeline"
)

// cacheCommand creates the tool cache inspection command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the jarl tool cache",
	}

	cmd.AddCommand(c.cacheListCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached jarl releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openToolCache()
			if err != nil {
				return fmt.Errorf("get tool cache: %w", err)
			}
			entries, err := cache.Entries(pipeline.Tool)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				printInfo(out, "Tool cache is empty")
				printDetail(out, "Directory: %s", cache.Root())
				return nil
			}
			printSuccess(out, "%d cached %s releases", len(entries), pipeline.Tool)
			for _, e := range entries {
				printKeyValue(out, e.Version+" "+e.Arch, e.Path)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the tool cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openToolCache()
			if err != nil {
				return fmt.Errorf("get tool cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Root())
			return nil
		},
	}
}
