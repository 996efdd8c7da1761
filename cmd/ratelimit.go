package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitcher/gitcher/config"
	"github.com/gitcher/gitcher/internal/github"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long:  `Display current GitHub API rate limit status including remaining quota and reset time.`,
	}
	cmd.AddCommand(NewCmdRateLimitStatus())
	return cmd
}

// NewCmdRateLimitStatus creates the ratelimit status subcommand.
func NewCmdRateLimitStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current rate limit status",
		RunE:  runRateLimitStatus,
	}
}

func runRateLimitStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := github.NewClient(cfg.GetGitHubToken(), github.NewTracker())
	limits, err := client.RateLimits(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get rate limits: %w", err)
	}

	fmt.Println("GitHub API Rate Limits:")
	fmt.Println()

	if limits.Core != nil {
		resetIn := time.Until(limits.Core.Reset.Time).Round(time.Second)
		if resetIn < 0 {
			resetIn = 0
		}
		fmt.Printf("Core API:   %d/%d remaining (resets in %s)\n",
			limits.Core.Remaining, limits.Core.Limit, resetIn)
	}

	if limits.Search != nil {
		resetIn := time.Until(limits.Search.Reset.Time).Round(time.Second)
		if resetIn < 0 {
			resetIn = 0
		}
		fmt.Printf("Search API: %d/%d remaining (resets in %s)\n",
			limits.Search.Remaining, limits.Search.Limit, resetIn)
	}

	return nil
}
