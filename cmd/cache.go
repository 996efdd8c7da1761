package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitcher/gitcher/internal/cache"
	"github.com/gitcher/gitcher/internal/constants"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the profile cache",
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

// newCmdCacheClear creates the cache clear subcommand.
func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached profiles",
		RunE:  runCacheClear,
	}
}

// newCmdCacheStats creates the cache stats subcommand.
func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE:  runCacheStats,
	}
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := cache.New()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := cache.New()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	fmt.Printf("Profile cache (TTL: %s):\n", constants.ProfileCacheTTL)
	fmt.Printf("  Total:   %d\n", stats.Total)
	fmt.Printf("  Valid:   %d\n", stats.Valid)
	fmt.Printf("  Expired: %d\n", stats.Expired)
	return nil
}
