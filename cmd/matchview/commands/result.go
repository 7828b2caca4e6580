package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/engine/views"
)

var resultFlags = []queryFlag{
	{name: "family", param: views.ParamFamilyID, usage: "Narrow matches to a family id"},
	{name: "sample", param: views.ParamSampleID, usage: "Narrow matches to a sample id"},
	{name: "function", param: views.ParamFunctionID, usage: "Narrow matches to a function id"},
	{name: "other-function", param: views.ParamOtherFunction, usage: "Compare --function against this function id"},
	{name: "sample-page", param: views.ParamSamplePage, usage: "Page of the sample list"},
	{name: "function-page", param: views.ParamFunctionPage, usage: "Page of the function list"},
	{name: "family-page", param: views.ParamFamilyPage, usage: "Page of the family list"},
	{name: "block-page", param: views.ParamBlockPage, usage: "Page of the unique block list"},
	{name: "min-score", param: views.ParamMinScore, usage: "Minimum unique block score"},
	{name: "min-block-length", param: views.ParamMinBlockLength, usage: "Minimum unique block length"},
	{name: "max-block-length", param: views.ParamMaxBlockLength, usage: "Maximum unique block length"},
	{name: "custom", param: views.ParamCustomOrder, usage: "Custom cross compare sample order as a comma separated id list", text: true},
}

func (c *CLI) newResultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result <job-id>",
		Short: "Show the result of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := queryValues(cmd, resultFlags)
			if err != nil {
				return err
			}
			return c.app.Result(cmd.Context(), args[0], values)
		},
	}
	addQueryFlags(cmd, resultFlags)
	return cmd
}
