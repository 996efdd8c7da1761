package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitcher/gitcher/config"
	"github.com/gitcher/gitcher/internal/bookmarks"
	"github.com/gitcher/gitcher/internal/cache"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/output"
	"github.com/gitcher/gitcher/internal/service"
	"github.com/gitcher/gitcher/internal/tui"
)

// NewCmdSearch creates the search command.
func NewCmdSearch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [username]",
		Short: "Look up a GitHub user profile (same as root gitcher)",
		Long: `Fetches a user's profile and their repositories sorted by stars.
Without a username the interactive explorer opens with an empty
search box; with one the profile is fetched immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	addSearchFlags(cmd, opts)
	return cmd
}

// addSearchFlags adds the search-specific flags to a command.
func addSearchFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")
	cmd.Flags().BoolVar(&opts.Insights, "insights", false, "Show repository aggregations instead of the table")
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable interactive mode (default: auto-detect)")
}

func runSearch(cmd *cobra.Command, args []string, opts *Options) error {
	initLogging(opts.Verbosity)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	marks, err := bookmarks.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open bookmarks: %w", err)
	}

	username := ""
	if len(args) > 0 {
		username = args[0]
	}

	if shouldUseTUI(opts) {
		var modelOpts []tui.ModelOption
		if username != "" {
			modelOpts = append(modelOpts, tui.WithInitialQuery(username))
		}
		return tui.Run(svc, marks, modelOpts...)
	}

	if username == "" {
		return fmt.Errorf("a username is required when the interactive mode is disabled")
	}

	profile, source, err := svc.Fetch(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("%s", github.UserMessage(err))
	}
	if source == service.SourceCache {
		log.Info("profile served from cache", "username", username)
	}

	if opts.Insights {
		tf := &output.TableFormatter{}
		return tf.FormatInsights(profile.Repositories, os.Stdout)
	}

	format := opts.Format
	if format == "" {
		format = cfg.DefaultFormat
	}
	formatter := output.NewFormatter(output.Format(format))
	return formatter.Format(profile, os.Stdout)
}

// buildService wires the GitHub client, profile cache, and rate limit
// tracker into a fetch service.
func buildService(cfg *config.Config) (*service.Service, error) {
	limits := github.NewTracker()
	client := github.NewClient(cfg.GetGitHubToken(), limits)
	if cfg.UpstreamURL != "" {
		if err := client.SetBaseURL(cfg.UpstreamURL); err != nil {
			return nil, fmt.Errorf("invalid upstream URL: %w", err)
		}
	}

	store, err := cache.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open profile cache: %w", err)
	}

	return service.New(client, store, limits), nil
}

// initLogging maps the -v count to a log level.
func initLogging(verbosity int) {
	switch {
	case verbosity >= 2:
		log.Initialize(log.LevelDebug, os.Stderr)
	case verbosity == 1:
		log.Initialize(log.LevelInfo, os.Stderr)
	default:
		log.Initialize(log.LevelQuiet, os.Stderr)
	}
}
