package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bazi/internal/api"
	"bazi/internal/bazi"
	"bazi/internal/config"
	"bazi/internal/engine"
	"bazi/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	var (
		configPath string
		port       int
	)
	cmd := &cobra.Command{
		Use:           "bazi-server",
		Short:         "Serve four-pillar charts over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, getenv)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to bazi.yaml (default $BAZI_CONFIG or ./bazi.yaml)")
	cmd.Flags().IntVar(&port, "port", 0, "override listen port")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// 1. Dataset and calculator. Nothing is read yet; the API is live at
	// once and answers 503 until the table is in memory.
	cache := engine.NewCache(engine.FileSource{Path: cfg.Dataset.Path})
	calc := bazi.New(cache,
		bazi.WithYearRange(cfg.Dataset.MinYear, cfg.Dataset.MaxYear),
		bazi.WithLateRatRollover(cfg.Calculator.LateRatRollover),
	)

	// 2. HTTP server.
	h := api.NewHandler(calc, cache, logger)
	e := api.NewServer(cfg.Server, h, logger)
	handler, err := api.Compress(e, cfg.Server.Compression)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// 3. Load the dataset in the background.
	g.Go(func() error {
		logger.Info("loading calendar data", zap.String("path", cfg.Dataset.Path))
		t0 := time.Now()
		if err := cache.Warm(); err != nil {
			// Keep serving so /healthz can report the failure.
			logger.Error("calendar data unavailable", zap.Error(err))
			return nil
		}
		years := cache.Years()
		logger.Info("calendar data ready",
			zap.Int("dates", cache.Stats().Dates),
			zap.Int("first_year", years[0]),
			zap.Int("last_year", years[len(years)-1]),
			zap.Duration("took", time.Since(t0)))
		if years[0] > cfg.Dataset.MinYear || years[len(years)-1] < cfg.Dataset.MaxYear {
			logger.Warn("dataset does not cover the configured years",
				zap.Int("min_year", cfg.Dataset.MinYear),
				zap.Int("max_year", cfg.Dataset.MaxYear))
		}
		return nil
	})

	// 4. Serve until the context ends.
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
