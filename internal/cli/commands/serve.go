package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/minisql/internal/server"
	"github.com/leapstack-labs/minisql/internal/state"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Watch     string
	NoHistory bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the JSON API for validation, execution, planning, highlighting
and suggestions. Each browser session gets its own in-memory store;
executed statements are recorded in the state database history.

With --watch, .sql files under the directory are validated whenever
they change and the results are logged.`,
		Example: `  minisql serve
  minisql serve --addr :9090 --watch queries/
  MINISQL_SERVER__SESSION_SECRET=... minisql serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	cmd.Flags().String("session-secret", "", "Session cookie signing key (default: random per start)")
	cmd.Flags().StringVar(&opts.Watch, "watch", "", "Directory of .sql files to validate on change")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record executed statements")
	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	watchDir := cfg.Server.Watch
	if opts.Watch != "" {
		watchDir = opts.Watch
	}

	var store state.Store
	if !opts.NoHistory {
		s, err := openStore(cfg, logger)
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			defer func() { _ = s.Close() }()
			store = s
		}
	}

	srv, err := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		SessionSecret: cfg.Server.SessionSecret,
		WatchDir:      watchDir,
		Store:         store,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx.Renderer.Println(fmt.Sprintf("Starting API server on %s", cfg.Server.Addr))
	cmdCtx.Renderer.Muted("Press Ctrl+C to stop")
	return srv.Serve(ctx)
}
