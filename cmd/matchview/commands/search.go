package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/engine/views"
)

var searchFlags = []queryFlag{
	{name: "type", param: views.ParamSearchType, usage: "Entity kinds to search: family, sample, function (comma separated)", text: true},
}

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search families, samples and functions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := queryValues(cmd, searchFlags)
			if err != nil {
				return err
			}
			return c.app.Search(cmd.Context(), strings.Join(args, " "), values)
		},
	}
	addQueryFlags(cmd, searchFlags)
	return cmd
}
