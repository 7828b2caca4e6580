package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newFamilyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family <family-id> [query...]",
		Short: "Show a family and its samples",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return err
			}
			values, err := queryValues(cmd, nil)
			if err != nil {
				return err
			}
			return c.app.Family(cmd.Context(), id, strings.Join(args[1:], " "), values)
		},
	}
	addQueryFlags(cmd, nil)
	return cmd
}

func (c *CLI) newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <sample-id> [query...]",
		Short: "Show a sample, its functions and the jobs referencing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return err
			}
			values, err := queryValues(cmd, nil)
			if err != nil {
				return err
			}
			return c.app.Sample(cmd.Context(), id, strings.Join(args[1:], " "), values)
		},
	}
	addQueryFlags(cmd, nil)
	return cmd
}

func (c *CLI) newFunctionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "function <function-id>",
		Short: "Show a function and how widely its pichash occurs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return err
			}
			return c.app.Function(cmd.Context(), id)
		},
	}
}

func (c *CLI) newPicBlockHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "picblockhash <hash>",
		Short: "Show how widely a picblockhash occurs",
		Long:  "Show how widely a picblockhash occurs. The hash is decimal, or hexadecimal with a 0x prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrInvalidInput, "malformed picblockhash"), "hash", args[0])
			}
			return c.app.PicBlockHash(cmd.Context(), hash)
		},
	}
}
