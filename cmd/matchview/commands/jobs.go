package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/engine/views"
)

var jobsFlags = []queryFlag{
	{name: "others-page", param: views.ParamOthersPage, usage: "Page of the other jobs"},
	{name: "one-vs-one-page", param: views.ParamOneVsOnePage, usage: "Page of the one-vs-one matching jobs"},
	{name: "one-vs-all-page", param: views.ParamOneVsAllPage, usage: "Page of the one-vs-all matching jobs"},
	{name: "cross-page", param: views.ParamCrossPage, usage: "Page of the cross compare jobs"},
}

func (c *CLI) newJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "job <job-id>",
		Short: "Show a job and its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Job(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs [query...]",
		Short: "List the job queue",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := queryValues(cmd, jobsFlags)
			if err != nil {
				return err
			}
			return c.app.Jobs(cmd.Context(), strings.Join(args, " "), values)
		},
	}
	addQueryFlags(cmd, jobsFlags)
	return cmd
}
