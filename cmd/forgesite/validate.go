package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgesite/forgesite/internal/config"
	"github.com/forgesite/forgesite/internal/site"
	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Assemble and validate wizard input without persisting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateInputPath(inputPath); err != nil {
				return err
			}

			in, err := config.ParseWizardInput(inputPath)
			if err != nil {
				return err
			}

			cfg := site.Assemble(in)
			result := site.Validate(cfg)
			if !result.Valid {
				printValidation(cmd, result.Errors)
				return forgeerrors.NewValidationError(cfg.Meta.SiteID, result.Errors)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s configuration for %s is valid\n",
				styled(successStyle, "✓"), cfg.Meta.SiteID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the wizard input file (JSON or YAML)")
	cmd.MarkFlagRequired("input") //nolint:errcheck

	return cmd
}
