package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/knit/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the bundle info store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			output, _ := cmd.Flags().GetBool("output")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Dir:    dir,
				Output: output,
			})
		},
	}

	cmd.Flags().StringP("dir", "C", "", "Run as if knit was started in this directory")
	cmd.Flags().Bool("output", false, "Also remove the configured bundle and source map")

	return cmd
}
