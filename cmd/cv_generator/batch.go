package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/output"
	"github.com/jonathan/cv-generator/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate every format, or every template and format",
	Long: `Renders a CV request as a batch and writes each successful document to --out-dir.

With --template only that template is rendered, in every format. Without it the full
template by format matrix is rendered. Failed cells are reported and do not stop the batch.`,
	RunE: runBatch,
}

var (
	batchInput    string
	batchTemplate string
	batchOutDir   string
)

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Path to the request JSON file, or - for stdin (required)")
	batchCmd.Flags().StringVarP(&batchTemplate, "template", "t", "", "Render only this template in every format")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "out", "Directory for the generated documents")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := readInput(cmd.InOrStdin(), batchInput)
	if err != nil {
		return err
	}
	req, err := pipeline.DecodeRequest(payload)
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	printer := observability.NewPrinter(cmd.OutOrStdout())
	progress := func(e pipeline.ProgressEvent) {
		printer.PrintProgress(e.Done, e.Total, reportRow(e.Result))
	}

	mode := pipeline.BatchMatrix
	if batchTemplate != "" {
		mode = pipeline.BatchFormats
		req.Template = batchTemplate
	}
	resp := rt.gen.InvokeBatch(ctx, req, mode, progress)
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
	}

	var results []pipeline.Result
	switch batch := resp.Data.(type) {
	case *pipeline.FormatsBatch:
		results = batch.Cells()
	case *pipeline.MatrixBatch:
		results = batch.Cells()
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	rows := make([]observability.ReportRow, 0, len(results))
	failed := 0
	for _, res := range results {
		row := reportRow(res)
		if res.Success {
			path := filepath.Join(batchOutDir, fmt.Sprintf("cv-%s.%s", res.Template, output.Extension(res.Format)))
			if _, err := writeDataURI(path, res.FileURL); err != nil {
				return err
			}
			row.Detail = path
		} else {
			failed++
		}
		rows = append(rows, row)
	}
	printer.PrintBatchReport(rows)

	if failed == len(results) {
		return fmt.Errorf("all %d cells failed", failed)
	}
	return nil
}

func reportRow(r pipeline.Result) observability.ReportRow {
	row := observability.ReportRow{
		Template:  string(r.Template),
		Format:    string(r.Format),
		Success:   r.Success,
		Cached:    r.Cached,
		ErrorCode: r.ErrorCode,
		Warning:   r.Warning,
	}
	if !r.Success {
		row.Detail = r.Error
	}
	return row
}
