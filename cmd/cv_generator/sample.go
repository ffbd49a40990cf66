package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/types"
)

var (
	sampleTemplate string
	sampleFormat   string
	sampleMinimal  bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample request",
	Long:  "Prints a complete example request as JSON, ready to pipe into generate --input -.",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleTemplate, "template", "t", "frank-digital", "Template to put in the request")
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", "html", "Format to put in the request")
	sampleCmd.Flags().BoolVar(&sampleMinimal, "minimal", false, "Only the mandatory fields")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	data := types.SampleCV()
	if sampleMinimal {
		data = types.MinimalCV()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(types.Request{CompleteCVData: *data, Template: sampleTemplate, Format: sampleFormat})
}
