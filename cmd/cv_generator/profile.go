package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/pipeline"
	"github.com/jonathan/cv-generator/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored CV profiles",
}

var (
	profileName  string
	profileInput string
	profileID    string
	profileLimit int
)

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store a CV request as a profile",
	RunE:  runProfileSave,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the CV data of a stored profile",
	RunE:  runProfileUpdate,
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the generation log of a profile",
	RunE:  runProfileHistory,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE:  runProfileList,
}

func init() {
	profileSaveCmd.Flags().StringVarP(&profileName, "name", "n", "", "Profile name (required)")
	profileSaveCmd.Flags().StringVarP(&profileInput, "input", "i", "", "Path to the request JSON file, or - for stdin (required)")
	_ = profileSaveCmd.MarkFlagRequired("name")
	_ = profileSaveCmd.MarkFlagRequired("input")

	profileUpdateCmd.Flags().StringVar(&profileID, "id", "", "Profile id (required)")
	profileUpdateCmd.Flags().StringVarP(&profileInput, "input", "i", "", "Path to the request JSON file, or - for stdin (required)")
	_ = profileUpdateCmd.MarkFlagRequired("id")
	_ = profileUpdateCmd.MarkFlagRequired("input")

	profileHistoryCmd.Flags().StringVar(&profileID, "id", "", "Profile id (required)")
	profileHistoryCmd.Flags().IntVar(&profileLimit, "limit", 20, "Maximum number of generations to show")
	_ = profileHistoryCmd.MarkFlagRequired("id")

	profileListCmd.Flags().IntVar(&profileLimit, "limit", 50, "Maximum number of profiles to list")

	profileCmd.AddCommand(profileSaveCmd, profileUpdateCmd, profileListCmd, profileHistoryCmd)
	rootCmd.AddCommand(profileCmd)
}

func connectDB(ctx context.Context) (*db.DB, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is not configured (set DATABASE_URL)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.InitSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// readProfileData reads --input and applies the mandatory-field gate, so a
// stored profile can always be generated
func readProfileData(cmd *cobra.Command) (*types.CompleteCVData, error) {
	payload, err := readInput(cmd.InOrStdin(), profileInput)
	if err != nil {
		return nil, err
	}
	req, err := pipeline.DecodeRequest(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req.CompleteCVData, nil
}

func parseProfileID() (uuid.UUID, error) {
	id, err := uuid.Parse(profileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile id: %w", err)
	}
	return id, nil
}

func runProfileSave(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := readProfileData(cmd)
	if err != nil {
		return err
	}

	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.SaveProfile(ctx, profileName, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := parseProfileID()
	if err != nil {
		return err
	}
	data, err := readProfileData(cmd)
	if err != nil {
		return err
	}

	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.UpdateProfile(ctx, id, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", id)
	return nil
}

func runProfileHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := parseProfileID()
	if err != nil {
		return err
	}
	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListGenerations(ctx, id, profileLimit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTEMPLATE\tFORMAT\tRESULT\tDURATION\tSIZE")
	for _, r := range records {
		result := "ok"
		if !r.Success {
			result = r.ErrorCode
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dms\t%d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Template, r.Format, result, r.DurationMS, r.SizeBytes)
	}
	return w.Flush()
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	database, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	profiles, err := database.ListProfiles(ctx, profileLimit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
