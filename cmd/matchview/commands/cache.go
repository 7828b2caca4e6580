package commands

import "github.com/spf13/cobra"

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the local result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached job results",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.CacheList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove cached results beyond the configured eviction bounds",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.CachePrune()
		},
	})
	return cmd
}
