package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmhttp"
	"go.uber.org/zap"

	"github.com/spectriclabs/glmapviz/internal/api"
	"github.com/spectriclabs/glmapviz/internal/cache"
	"github.com/spectriclabs/glmapviz/internal/config"
)

// Run executes the glmapviz command line.
func Run() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "glmapviz",
		Short:        "color, radius, weight and height ramps for web map layers",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newPalettesCmd(),
		newScaleCmd(),
		newStopsCmd(),
		newLookupCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the ramp and lookup HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return Serve(cfg)
		},
	}
	config.SetupFlags(cmd.Flags())
	return cmd
}

// Serve runs the HTTP server until interrupted.
func Serve(cfg *config.Config) error {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "setting up logger")
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.UseCache {
		if err := SetupCache(ctx, cfg, logger); err != nil {
			return err
		}
	}

	mapAPI := api.NewAPI(cfg, logger)
	e := SetupServer(mapAPI)

	var handler http.Handler = e
	if cfg.APMEnabled {
		handler = apmhttp.Wrap(e)
	}
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: handler,
	}

	go func() {
		logger.Info("Starting server", zap.String("address", server.Addr), zap.Bool("apm", cfg.APMEnabled))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("Shutting down the server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	err = server.Shutdown(shutdownCtx)
	if cfg.APMEnabled {
		apm.DefaultTracer.Flush(shutdownCtx.Done())
	}
	return err
}

func SetupServer(a *api.API) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = a.Cfg.Debug

	// Setup Middleware
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	a.Routes(e)

	// Add Prometheus as middleware for metrics gathering
	p := prometheus.NewPrometheus("glmapviz", nil)
	p.Use(e)

	return e
}

// SetupCache will setup the cache directories and kick off cache checking
// goroutines, which stop when ctx is done.
func SetupCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	interval := time.Duration(cfg.CachePollingInterval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	for _, subDir := range []string{cache.OutputDir, cache.MinioDir} {
		dir := filepath.Join(cfg.CacheLocation, subDir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating cache directory %s", dir)
		}
		go cache.CheckCache(ctx, dir, interval, cfg.CacheMaxBytes, logger)
	}
	return nil
}
