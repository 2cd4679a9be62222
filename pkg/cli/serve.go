package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/printmock/internal/id"
	"github.com/getmockd/printmock/pkg/api"
	"github.com/getmockd/printmock/pkg/config"
	"github.com/getmockd/printmock/pkg/logging"
	"github.com/getmockd/printmock/pkg/store"
	"github.com/getmockd/printmock/pkg/webhook"
)

// serveFlags holds the values bound to serve's command-line flags.
type serveFlags struct {
	configFile    string
	port          int
	logLevel      string
	logFormat     string
	logFile       string
	slicerDelay   time.Duration
	idStrategy    string
	maxLogEntries int
	corsOrigins   []string
}

func (f *serveFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to YAML configuration file (or set PRINTMOCK_CONFIG)")
	fs.IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format (text, json)")
	fs.StringVar(&f.logFile, "log-file", "", "Also append JSON logs to this file")
	fs.DurationVar(&f.slicerDelay, "slicer-delay", 0, "Fixed slicer delay, overriding the configured range (e.g. 0s, 500ms)")
	fs.StringVar(&f.idStrategy, "id-strategy", string(id.StrategyRandom), "Order ID strategy (random, sequential)")
	fs.IntVar(&f.maxLogEntries, "max-log-entries", config.DefaultMaxLogEntries, "Maximum request log entries")
	fs.StringSliceVar(&f.corsOrigins, "cors-origins", nil, "Comma-separated CORS allowed origins")
}

// apply copies explicitly set flags onto cfg.
func (f *serveFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("port") {
		cfg.Server.Port = f.port
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if fs.Changed("slicer-delay") {
		cfg.Slicer.MinDelay, cfg.Slicer.MaxDelay = f.slicerDelay, f.slicerDelay
	}
	if fs.Changed("id-strategy") {
		cfg.Orders.IDStrategy = f.idStrategy
	}
	if fs.Changed("max-log-entries") {
		cfg.RequestLog.MaxEntries = f.maxLogEntries
	}
	if fs.Changed("cors-origins") {
		cfg.CORS.AllowedOrigins = f.corsOrigins
	}
	return cfg.Validate()
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then environment, then flags.
func loadConfig(fs *pflag.FlagSet, flags *serveFlags, lookup env) (*config.Config, error) {
	path := flags.configFile
	if path == "" {
		path, _ = lookup(config.EnvConfig)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := flags.apply(fs, cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func newServeCommand(lookup env) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock API server (default command)",
		Long: `Start the mock Slant3D API in the foreground. The server stops on
SIGINT or SIGTERM, draining in-flight requests for up to
server.shutdownTimeout.`,
		Example: `  # Start with defaults on port 4000
  printmock serve

  # Instant slicing and predictable order IDs, for tests
  printmock serve --slicer-delay 0s --id-strategy sequential

  # Start from a config file with JSON logs
  printmock serve --config printmock.yaml --log-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), &flags, lookup)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd.OutOrStdout(), nil)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// runServe runs the API until ctx is cancelled. When ready is non-nil it
// receives the listener address once the server accepts connections.
func runServe(ctx context.Context, cfg *config.Config, out io.Writer, ready func(net.Addr)) error {
	log, closer, err := logging.Open(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := newServer(cfg, log)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	printStartupMessage(out, ln.Addr(), cfg)
	if ready != nil {
		ready(ln.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Server stopped")
	return nil
}

// newServer wires the store, webhook tester and API server from cfg.
func newServer(cfg *config.Config, log *slog.Logger) *api.Server {
	st := store.New(store.WithLedgerCapacity(cfg.RequestLog.MaxEntries))
	tester := webhook.NewTester(
		webhook.WithTimeout(cfg.Webhooks.TestTimeout),
		webhook.WithUserAgent(cfg.Webhooks.UserAgent),
		webhook.WithLogger(logging.Component(log, "webhook")),
	)

	cors := api.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.CORS.AllowedOrigins
	}

	return api.New(st,
		api.WithLogger(logging.Component(log, "api")),
		api.WithIDStrategy(id.ParseStrategy(cfg.Orders.IDStrategy)),
		api.WithSlicerDelay(cfg.Slicer.MinDelay, cfg.Slicer.MaxDelay),
		api.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		api.WithWebhookTester(tester),
		api.WithCORS(cors),
	)
}

func printStartupMessage(out io.Writer, addr net.Addr, cfg *config.Config) {
	port := cfg.Server.Port
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	fmt.Fprintln(out, api.Banner)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  API:        http://localhost:%d/api\n", port)
	fmt.Fprintf(out, "  Health:     http://localhost:%d/health\n", port)
	fmt.Fprintf(out, "  Dashboard:  http://localhost:%d/api/dashboard/stats\n", port)
	fmt.Fprintf(out, "  Metrics:    http://localhost:%d/metrics\n", port)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Order IDs: %s, slicer delay: %s-%s\n", cfg.Orders.IDStrategy, cfg.Slicer.MinDelay, cfg.Slicer.MaxDelay)
	fmt.Fprintln(out, "Press Ctrl+C to stop")
}
