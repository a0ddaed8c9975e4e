package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newProcessImagesCmd(root *rootFlags) *cobra.Command {
	var siteID string

	cmd := &cobra.Command{
		Use:   "process-images",
		Short: "Re-run logo and favicon normalization for an existing site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if siteID == "" {
				return fmt.Errorf("site id is required")
			}

			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			assetsDir := filepath.Join(configsDir(), siteID, "assets")
			reports, err := app.service.ProcessExisting(cmd.Context(), assetsDir, siteID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintf(out, "no logo or favicon assets found in %s\n", assetsDir)
				return nil
			}
			for _, report := range reports {
				status := styled(successStyle, "cropped")
				if report.Decision.Skip {
					status = styled(labelStyle, "skipped")
				}
				fmt.Fprintf(out, "%s %s", status, report.File)
				if report.Decision.Reason != "" {
					fmt.Fprintf(out, " (%s)", report.Decision.Reason)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&siteID, "site", "s", "", "Site identifier whose assets to process")
	cmd.MarkFlagRequired("site") //nolint:errcheck

	return cmd
}
