package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/output"
	"github.com/jonathan/cv-generator/internal/pipeline"
	"github.com/jonathan/cv-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one CV document",
	Long: `Renders a CV request in one template and format and writes the document to a file.

The request is read from --input (use - for stdin) or loaded from the database with --profile-id.
--template and --format override the values carried in the request.`,
	RunE: runGenerate,
}

var (
	generateInput     string
	generateTemplate  string
	generateFormat    string
	generateOutput    string
	generateProfileID string
	generateDataURI   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to the request JSON file, or - for stdin")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template: modern, classic, creative, frank-digital")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format: html, pdf, docx")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output file (default: cv-<template>.<ext>)")
	generateCmd.Flags().StringVar(&generateProfileID, "profile-id", "", "Load the CV from a stored profile instead of --input")
	generateCmd.Flags().BoolVar(&generateDataURI, "data-uri", false, "Print the data URI to stdout instead of writing a file")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if (generateInput == "") == (generateProfileID == "") {
		return fmt.Errorf("exactly one of --input or --profile-id is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := newRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	req, ctx, err := loadRequest(ctx, cmd, rt)
	if err != nil {
		return err
	}
	if generateTemplate != "" {
		req.Template = generateTemplate
	}
	if generateFormat != "" {
		req.Format = generateFormat
	}

	resp := rt.gen.Invoke(ctx, req)
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", resp.Warning)
	}

	if generateDataURI {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Data)
		return err
	}

	path := generateOutput
	if path == "" {
		template, _ := types.ParseTemplateID(req.Template)
		format, _ := types.ParseFormat(req.Format)
		path = fmt.Sprintf("cv-%s.%s", template, output.Extension(format))
	}
	size, err := writeDataURI(path, resp.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, size)
	return nil
}

// loadRequest reads the request from --input or the profile store. A
// profile load tags the context so the generation log links back to it.
func loadRequest(ctx context.Context, cmd *cobra.Command, rt *runtime) (*types.Request, context.Context, error) {
	if generateProfileID == "" {
		payload, err := readInput(cmd.InOrStdin(), generateInput)
		if err != nil {
			return nil, ctx, err
		}
		req, err := pipeline.DecodeRequest(payload)
		if err != nil {
			return nil, ctx, fmt.Errorf("invalid request: %w", err)
		}
		return req, ctx, nil
	}

	id, err := uuid.Parse(generateProfileID)
	if err != nil {
		return nil, ctx, fmt.Errorf("invalid profile id: %w", err)
	}
	if rt.db == nil {
		return nil, ctx, fmt.Errorf("--profile-id requires database_url to be configured")
	}
	profile, err := rt.db.GetProfile(ctx, id)
	if err != nil {
		return nil, ctx, err
	}
	if profile.Data == nil {
		return nil, ctx, fmt.Errorf("profile %s has no CV data", id)
	}
	ctx = pipeline.WithRequestInfo(ctx, pipeline.RequestInfo{RequestID: uuid.New(), ProfileID: &id})
	return &types.Request{CompleteCVData: *profile.Data}, ctx, nil
}

// writeDataURI decodes uri and writes its payload to path
func writeDataURI(path, uri string) (int, error) {
	_, payload, err := output.DecodeDataURI(uri)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(payload), nil
}
