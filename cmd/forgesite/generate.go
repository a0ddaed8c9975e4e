package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgesite/forgesite/internal/pipeline"
	"github.com/forgesite/forgesite/internal/store"
)

type generateOptions struct {
	InputPath           string
	AssetsPath          string
	ProcessImages       bool
	SaveAsTemplate      bool
	TemplateName        string
	TemplateDescription string
	DryRun              bool
}

// assetPayload is the optional side file carrying uploaded images and
// generated blog posts alongside the wizard input.
type assetPayload struct {
	Images       map[string]any      `json:"images"`
	BlogArticles []store.BlogArticle `json:"blogArticles"`
}

func loadAssetPayload(path string) (*assetPayload, error) {
	var payload assetPayload
	if path == "" {
		return &payload, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assets file: %w", err)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode assets file: %w", err)
	}
	return &payload, nil
}

var generateCmdRunner = runGenerate

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and persist a site configuration from wizard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = root.dryRun
			opts.SaveAsTemplate = opts.TemplateName != ""

			if err := validateInputPath(opts.InputPath); err != nil {
				return err
			}

			app, err := newAppContext(root)
			if err != nil {
				return err
			}
			return generateCmdRunner(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Path to the wizard input file (JSON or YAML)")
	cmd.MarkFlagRequired("input") //nolint:errcheck
	cmd.Flags().StringVar(&opts.AssetsPath, "assets", "", "Optional JSON file with uploaded images and blog articles")
	cmd.Flags().BoolVar(&opts.ProcessImages, "process-images", true, "Normalize logo and favicon assets after saving")
	cmd.Flags().StringVar(&opts.TemplateName, "save-template", "", "Also store the result as a reusable template with this name")
	cmd.Flags().StringVar(&opts.TemplateDescription, "template-description", "", "Description for the stored template")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *appContext, opts generateOptions) error {
	payload, err := loadAssetPayload(opts.AssetsPath)
	if err != nil {
		return err
	}

	outcome, err := app.service.Run(cmd.Context(), pipeline.Request{
		InputPath: opts.InputPath,
		SaveOptions: store.SaveOptions{
			Images:              payload.Images,
			BlogArticles:        payload.BlogArticles,
			SaveAsTemplate:      opts.SaveAsTemplate,
			TemplateName:        opts.TemplateName,
			TemplateDescription: opts.TemplateDescription,
		},
		ProcessImages: opts.ProcessImages,
		DryRun:        opts.DryRun,
	})
	if err != nil {
		if outcome != nil && !outcome.Validation.Valid {
			printValidation(cmd, outcome.Validation.Errors)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.DryRun {
		fmt.Fprintf(out, "%s configuration for %s is valid, nothing written\n",
			styled(successStyle, "✓"), outcome.Config.Meta.SiteID)
		return nil
	}

	fmt.Fprintf(out, "%s site %s generated\n", styled(successStyle, "✓"), outcome.Save.SiteID)
	fmt.Fprintf(out, "  %s %s\n", styled(labelStyle, "config:"), styled(valueStyle, outcome.Save.ConfigPath))
	fmt.Fprintf(out, "  %s %s\n", styled(labelStyle, "assets:"), styled(valueStyle, outcome.Save.AssetsDir))
	if outcome.Save.TemplatePath != "" {
		fmt.Fprintf(out, "  %s %s\n", styled(labelStyle, "template:"), styled(valueStyle, outcome.Save.TemplatePath))
	}
	for _, report := range outcome.Assets {
		status := "cropped"
		if report.Decision.Skip {
			status = "skipped"
		}
		fmt.Fprintf(out, "  %s %s (%s)\n", styled(labelStyle, "asset:"), report.File, status)
	}
	return nil
}

func printValidation(cmd *cobra.Command, issues []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s configuration is invalid:\n", styled(errorStyle, "✗"))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
}
