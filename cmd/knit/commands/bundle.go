package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/knit/internal/app"
	"go.trai.ch/knit/internal/ui/style"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle [entries...]",
		Short: "Bundle entry files into a single output",
		Long: "Bundle entry files into a single output.\n\n" +
			"Entries and flags override the values in knit.yaml.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Bundle(cmd.Context(), bundleOptions(cmd, args))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	addBundleFlags(cmd)
	return cmd
}

func addBundleFlags(cmd *cobra.Command) {
	addProjectFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Path of the bundle")
	cmd.Flags().String("sourcemap", "", "Write a source map to this path (next to the bundle when given without a value)")
	cmd.Flags().Lookup("sourcemap").NoOptDefVal = app.SourceMapBesideOutput
	cmd.Flags().String("format", "", "Module format: esm, iife or cjs")
	cmd.Flags().Bool("minify", false, "Minify the bundle")
}

func bundleOptions(cmd *cobra.Command, entries []string) app.BundleOptions {
	output, _ := cmd.Flags().GetString("output")
	sourceMap, _ := cmd.Flags().GetString("sourcemap")
	format, _ := cmd.Flags().GetString("format")
	minify, _ := cmd.Flags().GetBool("minify")

	return app.BundleOptions{
		ProjectOptions: projectOptions(cmd),
		Entries:        entries,
		Output:         output,
		SourceMap:      sourceMap,
		Format:         format,
		Minify:         minify,
	}
}

func printReport(w io.Writer, r *app.BundleReport) {
	s := style.NewStyles(w)

	detail := fmt.Sprintf("%d bytes, %d modules, %d packages", r.Bytes, r.Modules, r.Packages)
	if r.Unchanged {
		detail += ", unchanged"
	}
	_, _ = fmt.Fprintf(w, "%s %s %s\n", s.Success.Render(style.Check), s.Path.Render(r.Output), s.Muted.Render("("+detail+")"))
	if r.SourceMap != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", s.Success.Render(style.Check), s.Path.Render(r.SourceMap))
	}
}
