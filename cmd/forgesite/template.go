package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forgesite/forgesite/internal/site"
)

func newTemplateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable site templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTemplateSaveCmd(root))
	cmd.AddCommand(newTemplateLoadCmd(root))
	cmd.AddCommand(newTemplateListCmd(root))

	return cmd
}

func newTemplateSaveCmd(root *rootFlags) *cobra.Command {
	var (
		siteID      string
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store an existing site configuration as a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			configPath := filepath.Join(configsDir(), siteID, "site-config.json")
			data, err := os.ReadFile(configPath)
			if err != nil {
				return fmt.Errorf("read site configuration: %w", err)
			}
			var cfg site.SiteConfig
			if err := json.Unmarshal(data, &cfg); err != nil {
				return fmt.Errorf("decode site configuration: %w", err)
			}

			path, err := app.store.SaveTemplate(&cfg, name, description)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s template saved to %s\n", styled(successStyle, "✓"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&siteID, "site", "s", "", "Site identifier to snapshot")
	cmd.MarkFlagRequired("site") //nolint:errcheck
	cmd.Flags().StringVarP(&name, "name", "n", "", "Template name")
	cmd.MarkFlagRequired("name") //nolint:errcheck
	cmd.Flags().StringVarP(&description, "description", "d", "", "Template description")

	return cmd
}

func newTemplateLoadCmd(root *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Print a stored template as starter configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			tpl, err := app.store.LoadTemplate(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(tpl, "", "  ")
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s template written to %s\n", styled(successStyle, "✓"), output)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the template to this file instead of stdout")

	return cmd
}

func newTemplateListCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root)
			if err != nil {
				return err
			}

			infos, err := app.store.ListTemplates()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "no templates stored")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%s %s", styled(valueStyle, info.Name), styled(labelStyle, "("+info.BusinessType+")"))
				if info.Description != "" {
					fmt.Fprintf(out, " %s", info.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
