package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/api"
	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/store"
	"github.com/claimlens/claimlens/internal/worker"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes the pipeline over HTTP: POST /api/v1/verify for single
claims, POST /api/v1/verify/batch for many, and /api/v1/reports for the
stored report archive.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger, err := newLogger(cfg.Server.LogMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reportCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("configure cache: %w", err)
	}
	defer closeCache(reportCache)

	p, err := pipeline.New(cfg, pipeline.WithCache(reportCache))
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Server.DatabasePath)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer func() { _ = st.Close() }()

	var limiter *worker.Limiter
	if cfg.RateLimit.Enabled {
		limiter = worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	batch := worker.NewBatchPool(p, cfg.Concurrency.BatchWorkers)
	server := api.NewServer(cfg.Server, p, batch, st, limiter, logger)

	return server.ListenAndServe(ctx)
}

// newLogger builds the server logger. dev mode is human-readable,
// anything else is production JSON.
func newLogger(mode string) (*zap.Logger, error) {
	if mode == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
