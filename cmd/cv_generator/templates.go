package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/pipeline"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	gen, err := pipeline.New(pipeline.Options{})
	if err != nil {
		return err
	}
	templates := gen.Templates()

	if templatesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(templates)
	}

	rows := make([]observability.TemplateRow, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, observability.TemplateRow{
			ID:        string(t.ID),
			Primary:   t.Primary,
			Accent:    t.Accent,
			Highlight: t.Highlight,
			Font:      t.FontFamily,
			Layout:    t.Layout,
		})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(rows)
	return nil
}
