package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/knit/internal/ui/style"
)

func (c *CLI) newPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List registered package names and the files they resolve to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.Packages(cmd.Context(), projectOptions(cmd))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			s := style.NewStyles(w)
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(w, s.Muted.Render("no packages registered"))
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s %s %s\n", s.Name.Render(e.Name), style.Arrow, s.Path.Render(e.Identity.String()))
			}
			return nil
		},
	}
	addProjectFlags(cmd)
	return cmd
}
