package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitcher/gitcher/config"
	"github.com/gitcher/gitcher/internal/bookmarks"
	"github.com/gitcher/gitcher/internal/github"
)

// NewCmdBookmarks creates the bookmarks command with subcommands.
func NewCmdBookmarks() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage saved users",
		RunE:  runBookmarksList,
	}

	cmd.AddCommand(newCmdBookmarksAdd())
	cmd.AddCommand(newCmdBookmarksRemove())

	return cmd
}

func newCmdBookmarksAdd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <username>",
		Short: "Bookmark a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookmarksAdd,
	}
}

func newCmdBookmarksRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Remove a bookmarked user",
		Args:  cobra.ExactArgs(1),
		RunE:  runBookmarksRemove,
	}
}

func runBookmarksList(cmd *cobra.Command, args []string) error {
	store, err := bookmarks.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open bookmarks: %w", err)
	}

	saved := store.List()
	if len(saved) == 0 {
		fmt.Println("No bookmarks saved.")
		return nil
	}

	for _, mark := range saved {
		name := mark.Login
		if mark.Name != "" && mark.Name != mark.Login {
			name = fmt.Sprintf("%s (%s)", mark.Login, mark.Name)
		}
		fmt.Printf("%-40s saved %s\n", name, mark.BookmarkedAt.Format("2006-01-02"))
	}
	return nil
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := github.NewClient(cfg.GetGitHubToken(), github.NewTracker())
	user, err := client.FetchUser(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("%s", github.UserMessage(err))
	}

	store, err := bookmarks.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open bookmarks: %w", err)
	}
	if err := store.Add(*user, time.Now()); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}

	fmt.Printf("Bookmarked %s.\n", user.Login)
	return nil
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	store, err := bookmarks.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open bookmarks: %w", err)
	}

	if !store.Contains(args[0]) {
		return fmt.Errorf("%s is not bookmarked", args[0])
	}
	if err := store.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}

	fmt.Printf("Removed %s.\n", args[0])
	return nil
}
