package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/knit/internal/app"
	"go.trai.ch/knit/internal/ui/style"
)

// virtualImporter on the command line selects an importer that is not a file.
const virtualImporter = "-"

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <importer> <specifier>...",
		Short: "Print the files specifiers resolve to",
		Long: "Print the files specifiers resolve to when imported from importer.\n\n" +
			"Pass - as importer to resolve registered package names only.",
		Args: cobra.MinimumNArgs(2), //nolint:mnd // importer and at least one specifier
		RunE: func(cmd *cobra.Command, args []string) error {
			importer := args[0]
			if importer == virtualImporter {
				importer = ""
			}

			resolutions, err := c.app.Resolve(cmd.Context(), app.ResolveOptions{
				ProjectOptions: projectOptions(cmd),
				Importer:       importer,
				Specifiers:     args[1:],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			s := style.NewStyles(w)
			for _, r := range resolutions {
				_, _ = fmt.Fprintf(w, "%s %s %s\n", s.Name.Render(r.Specifier), style.Arrow, s.Path.Render(r.Identity.String()))
			}
			return nil
		},
	}
	addProjectFlags(cmd)
	return cmd
}
