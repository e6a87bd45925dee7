// Package commands implements the CLI commands for the knit bundler.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/knit/internal/app"
	"go.trai.ch/knit/internal/build"
	"go.trai.ch/knit/internal/core/domain"
)

// CLI represents the command line interface for knit.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	setJSON  func(bool)
	verbose  bool
	jsonLogs bool
}

// Application represents the application logic interface.
type Application interface {
	Bundle(ctx context.Context, opts app.BundleOptions) (*app.BundleReport, error)
	Watch(ctx context.Context, opts app.BundleOptions) error
	Resolve(ctx context.Context, opts app.ResolveOptions) ([]app.Resolution, error)
	Packages(ctx context.Context, opts app.ProjectOptions) ([]domain.PackageEntry, error)
	Clean(ctx context.Context, opts app.CleanOptions) error
	EnableTracing()
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONLogs lets --log-json switch the logger to JSON output.
func WithJSONLogs(setJSON func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = setJSON
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "knit",
		Short:         "A JavaScript bundler with workspace package resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "Log the duration of each stage")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
		if c.verbose {
			c.app.EnableTracing()
		}
	}

	rootCmd.AddCommand(c.newBundleCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newPackagesCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addProjectFlags registers the flags shared by every command that builds the registry.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "C", "", "Run as if knit was started in this directory")
	cmd.Flags().StringArrayP("package", "p", nil, "Package directory pattern (repeatable, replaces knit.yaml packages)")
	cmd.Flags().String("duplicates", "", "Duplicate package names: last-wins or error")
	cmd.Flags().Bool("strict-absolute", false, "Require absolute imports to name existing files")
}

func projectOptions(cmd *cobra.Command) app.ProjectOptions {
	dir, _ := cmd.Flags().GetString("dir")
	packages, _ := cmd.Flags().GetStringArray("package")
	duplicates, _ := cmd.Flags().GetString("duplicates")
	strict, _ := cmd.Flags().GetBool("strict-absolute")

	return app.ProjectOptions{
		Dir:                 dir,
		Packages:            packages,
		Duplicates:          duplicates,
		StrictAbsolutePaths: strict,
	}
}
