// Package commands implements the CLI commands for matchview.
package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/app"
	"go.trai.ch/matchview/internal/build"
)

// CLI represents the command line interface for matchview.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options)
	Result(ctx context.Context, jobID string, values url.Values) error
	Search(ctx context.Context, query string, values url.Values) error
	Family(ctx context.Context, familyID int, query string, values url.Values) error
	Sample(ctx context.Context, sampleID int, query string, values url.Values) error
	Function(ctx context.Context, functionID int) error
	PicBlockHash(ctx context.Context, hash uint64) error
	Job(ctx context.Context, jobID string) error
	Jobs(ctx context.Context, query string, values url.Values) error
	Export(ctx context.Context, req app.ExportRequest) error
	CacheList() error
	CachePrune() error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "matchview",
		Short:         "Browse code similarity results of a matching service",
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the configuration file (default: nearest matchview.yaml)")
	flags.StringP("output", "o", "auto", "Output mode: auto, pretty, plain, or json")
	flags.Bool("ci", false, "Use plain output (shorthand for --output=plain)")
	flags.Bool("trace", false, "Log debug records and finished spans")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		configPath, _ := cmd.Flags().GetString("config")
		outputMode, _ := cmd.Flags().GetString("output")
		ci, _ := cmd.Flags().GetBool("ci")
		trace, _ := cmd.Flags().GetBool("trace")

		if ci {
			outputMode = "plain"
		}

		c.app.Configure(app.Options{
			ConfigPath: configPath,
			OutputMode: outputMode,
			Trace:      trace,
		})
	}

	rootCmd.AddCommand(c.newResultCmd())
	rootCmd.AddCommand(c.newSearchCmd())
	rootCmd.AddCommand(c.newFamilyCmd())
	rootCmd.AddCommand(c.newSampleCmd())
	rootCmd.AddCommand(c.newFunctionCmd())
	rootCmd.AddCommand(c.newPicBlockHashCmd())
	rootCmd.AddCommand(c.newJobCmd())
	rootCmd.AddCommand(c.newJobsCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newCacheCmd())
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
