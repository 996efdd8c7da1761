package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gitcher/gitcher/config"
	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/server"
)

// NewCmdServe creates the serve command.
func NewCmdServe() *cobra.Command {
	var addr string
	var upstream string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the GitHub relay server",
		Long: `Starts an HTTP server that relays profile and repository requests
to the GitHub API, forwarding rate limit headers so clients can
track their remaining quota.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, upstream)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, then :8080)")
	cmd.Flags().StringVarP(&upstream, "upstream", "u", "", "Upstream GitHub API URL")

	return cmd
}

func runServe(addr, upstream string) error {
	log.Initialize(log.LevelInfo, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if upstream == "" {
		upstream = cfg.UpstreamURL
	}

	srv := server.New(server.Config{Addr: addr, UpstreamURL: upstream})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("relay server stopped")
	return nil
}
