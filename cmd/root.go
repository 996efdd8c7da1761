package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "gitcher [username]",
		Short: "Explore GitHub profiles",
		Long: `A tool for exploring GitHub user profiles and their repositories.
Profiles are cached for ten minutes and API rate limits are tracked
so the tool backs off before GitHub rejects requests.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add search flags to root command so `gitcher` and `gitcher search` work identically
	addSearchFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdSearch(opts))
	rootCmd.AddCommand(NewCmdServe())
	rootCmd.AddCommand(NewCmdBookmarks())
	rootCmd.AddCommand(NewCmdExport(opts))
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdRateLimit())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
