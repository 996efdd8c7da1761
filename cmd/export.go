package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitcher/gitcher/config"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/output"
)

// NewCmdExport creates the export command.
func NewCmdExport(opts *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <username>",
		Short: "Export a user's repository data",
		Long: `Fetches a user's profile and repositories and writes them to a
file or stdout. JSON includes the full profile with summary totals;
CSV contains one row per repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, format, opts.Output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, csv)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, format, outPath string) error {
	if format != "json" && format != "csv" {
		return fmt.Errorf("invalid format %q: use json or csv", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	profile, _, err := svc.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%s", github.UserMessage(err))
	}

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		err = output.WriteExportCSV(profile.Repositories, w)
	default:
		err = output.WriteExportJSON(profile, time.Now(), w)
	}
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if outPath != "" {
		fmt.Printf("Exported %d repositories to %s.\n", len(profile.Repositories), outPath)
	}
	return nil
}
