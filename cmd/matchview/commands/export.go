package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/matchview/internal/app"
	"go.trai.ch/matchview/internal/core/domain"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [sample-ids]",
		Short: "Export samples to a JSON file",
		Long: "Export samples to a JSON file. Without ids every sample is exported. " +
			"Ids are given as a comma separated list, --family exports all samples of a family.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req app.ExportRequest
			if len(args) == 1 {
				req.IDs = args[0]
			}
			req.Output, _ = cmd.Flags().GetString("file")

			if cmd.Flags().Changed("family") {
				raw, _ := cmd.Flags().GetString("family")
				id, err := domain.ParseID(raw)
				if err != nil {
					return err
				}
				req.FamilyID = &id
			}
			return c.app.Export(cmd.Context(), req)
		},
	}
	cmd.Flags().String("family", "", "Export all samples of this family id")
	cmd.Flags().StringP("file", "f", "", "Destination file (default: export_<selection>.json)")
	return cmd
}
